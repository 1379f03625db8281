package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"numspell/cmd/numspell/grammar"
	"numspell/cmd/numspell/speller"

	"gopkg.in/yaml.v3"
)

var errInvalidNumber = errors.New("invalid number")

const (
	formatText = "text"
	formatYAML = "yaml"
)

// number is a parsed input value. Values above MaxInt64 are accepted as
// unsigned magnitudes.
type number struct {
	text      string
	negative  bool
	magnitude uint64
}

// parseNumber parses a decimal integer in -2^63 .. 2^64-1.
func parseNumber(tok string) (number, error) {
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return number{text: tok, negative: v < 0, magnitude: magnitude(v)}, nil
	}
	if !strings.HasPrefix(tok, "-") {
		if m, err := strconv.ParseUint(strings.TrimPrefix(tok, "+"), 10, 64); err == nil {
			return number{text: tok, magnitude: m}, nil
		}
	}
	return number{}, fmt.Errorf("%w: %q", errInvalidNumber, tok)
}

func magnitude(v int64) uint64 {
	if v < 0 {
		return uint64(^v) + 1
	}
	return uint64(v)
}

// spell spells n with root and trims the trailing separator unless raw.
func (n number) spell(root speller.Node, raw bool) string {
	s := speller.NewContext(n.magnitude, n.negative).Evaluate(root)
	if raw {
		return s
	}
	return strings.TrimRight(s, " ")
}

// language is a resolved output language.
type language struct {
	tag  string
	root speller.Node
}

func resolveLanguages(reg *grammar.Registry, tags []string) ([]language, error) {
	out := make([]language, 0, len(tags))
	for _, tag := range tags {
		root, err := reg.Build(tag)
		if err != nil {
			return nil, err
		}
		key, _ := grammar.Canonical(tag)
		out = append(out, language{tag: key, root: root})
	}
	return out, nil
}

// spellWriter writes spellings of numbers in one output format.
type spellWriter struct {
	w     io.Writer
	langs []language
	raw   bool
	enc   *yaml.Encoder
}

type yamlSpelling struct {
	Language string `yaml:"language"`
	Text     string `yaml:"text"`
}

type yamlRecord struct {
	Value     string         `yaml:"value"`
	Spellings []yamlSpelling `yaml:"spellings"`
}

func newSpellWriter(w io.Writer, format string, langs []language, raw bool) (*spellWriter, error) {
	sw := &spellWriter{w: w, langs: langs, raw: raw}
	switch format {
	case formatText:
	case formatYAML:
		sw.enc = yaml.NewEncoder(w)
		sw.enc.SetIndent(2)
	default:
		return nil, fmt.Errorf("unknown format %q (expected %s or %s)", format, formatText, formatYAML)
	}
	return sw, nil
}

// write prints one line per language in text mode, or one YAML document
// per number.
func (sw *spellWriter) write(n number) error {
	if sw.enc == nil {
		for _, l := range sw.langs {
			if _, err := fmt.Fprintln(sw.w, n.spell(l.root, sw.raw)); err != nil {
				return err
			}
		}
		return nil
	}
	rec := yamlRecord{Value: n.text}
	for _, l := range sw.langs {
		rec.Spellings = append(rec.Spellings, yamlSpelling{Language: l.tag, Text: n.spell(l.root, sw.raw)})
	}
	return sw.enc.Encode(rec)
}

func (sw *spellWriter) close() error {
	if sw.enc != nil {
		return sw.enc.Close()
	}
	return nil
}
