package grammaryaml

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"numspell/cmd/numspell/grammar"

	"gopkg.in/yaml.v3"
)

// Document is the Go-level representation of a parsed grammar file.
//
// Two kinds of file are supported:
//   - Grammar file: has a "root" key (and usually "language", "defs" and
//     "macros"). Its macros are local to that grammar.
//   - Macro library: only a "macros" key. Its macros are shared by every
//     grammar built from the same set of documents.
type Document struct {
	// Source names where the document came from (a file path); it prefixes
	// build errors. Empty for documents parsed from memory.
	Source string
	// Grammar is nil for a macro library.
	Grammar *grammar.RawGrammar
	// Macros holds the shared macros of a macro library.
	Macros map[string]grammar.Macro
}

// ---- Internal YAML parsing structs ----------------------------------------
//
// Node positions are kept as yaml.Node (not *yaml.Node): yaml.v3 does not
// populate *yaml.Node struct fields, while a non-pointer yaml.Node is
// decoded correctly. An absent key leaves Kind == 0.

type yamlDocument struct {
	Language string               `yaml:"language"`
	Name     string               `yaml:"name"`
	Macros   map[string]yamlMacro `yaml:"macros"`
	Defs     map[string]yaml.Node `yaml:"defs"`
	Root     yaml.Node            `yaml:"root"`
}

type yamlMacro struct {
	// Params maps parameter names to their default values.
	// A YAML null (~) is decoded as nil, meaning the parameter is required.
	Params map[string]interface{} `yaml:"params"`
	Body   yaml.Node              `yaml:"body"`
}

type yamlSelect struct {
	Threshold uint64    `yaml:"threshold"`
	Lower     yaml.Node `yaml:"lower"`
	Higher    yaml.Node `yaml:"higher"`
}

type yamlLadder struct {
	Rungs     []yamlRung `yaml:"rungs"`
	Otherwise yaml.Node  `yaml:"otherwise"`
}

type yamlRung struct {
	At   uint64    `yaml:"at"`
	Node yaml.Node `yaml:"node"`
}

type yamlSign struct {
	Negative yaml.Node `yaml:"negative"`
	Positive yaml.Node `yaml:"positive"`
}

type yamlSplit struct {
	Position int       `yaml:"position"`
	Low      yaml.Node `yaml:"low"`
	High     yaml.Node `yaml:"high"`
	Inverted bool      `yaml:"inverted"`
}

type yamlOverride struct {
	From   string    `yaml:"from"`
	To     yaml.Node `yaml:"to"`
	Target yaml.Node `yaml:"target"`
}

var documentKeys = []string{"language", "name", "macros", "defs", "root"}

// ---- Parse -----------------------------------------------------------------

// Parse parses one YAML grammar file or macro library.
func Parse(in []byte) (Document, error) {
	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: empty YAML")
	}
	root := docNode.Content[0]
	if root.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: expected a mapping, got YAML kind %d", root.Kind)
	}
	if err := checkKeys(root, "<doc>", documentKeys...); err != nil {
		return Document{}, err
	}

	var yd yamlDocument
	if err := root.Decode(&yd); err != nil {
		return Document{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	return convertDocument(yd)
}

// ---- Convert: yaml types → grammar types ----------------------------------

func convertDocument(yd yamlDocument) (Document, error) {
	macros, err := convertMacros(yd.Macros)
	if err != nil {
		return Document{}, err
	}

	if yd.Root.Kind == 0 {
		if yd.Language != "" || len(yd.Defs) > 0 {
			return Document{}, fmt.Errorf("phase=parse path=<doc>: missing 'root' " +
				"(only a macro library may omit it, and it holds nothing but 'macros')")
		}
		return Document{Macros: macros}, nil
	}

	g := &grammar.RawGrammar{
		Language: yd.Language,
		Name:     yd.Name,
		Macros:   macros,
	}
	if len(yd.Defs) > 0 {
		g.Defs = make(map[string]grammar.RawNode, len(yd.Defs))
		for name, yn := range yd.Defs {
			n, err := convertNode(&yn, joinPath("defs", name))
			if err != nil {
				return Document{}, err
			}
			g.Defs[name] = n
		}
	}
	g.Root, err = convertNode(&yd.Root, "root")
	if err != nil {
		return Document{}, err
	}
	return Document{Grammar: g}, nil
}

func convertMacros(raw map[string]yamlMacro) (map[string]grammar.Macro, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]grammar.Macro, len(raw))
	for name, ym := range raw {
		path := joinPath("macros", name)
		body, err := convertNode(&ym.Body, joinPath(path, "body"))
		if err != nil {
			return nil, err
		}
		out[name] = grammar.Macro{Params: convertParams(ym.Params), Body: body}
	}
	return out, nil
}

// convertParams converts a YAML params block to grammar.ParamDefs.
//
//   - null value (~)  → nil pointer  (parameter is required)
//   - any scalar      → fmt.Sprintf("%v", v) as default string
//
// Param names are checked later by grammar.ValidateMacro.
func convertParams(raw map[string]interface{}) grammar.ParamDefs {
	if len(raw) == 0 {
		return nil
	}
	defs := make(grammar.ParamDefs, len(raw))
	for k, v := range raw {
		if v == nil {
			defs[k] = nil
		} else {
			s := fmt.Sprintf("%v", v)
			defs[k] = &s
		}
	}
	return defs
}

// convertNode converts one polymorphic YAML node:
//
//	~                        → empty
//	Twenty                   → literal "Twenty"
//	[a, b, ...]              → sequence
//	{<kind>: ...}            → the named kind
//	{use: macro, with: {...}} → macro use
//
// An absent node (Kind == 0) converts to a RawNode with no kind set, which
// phase=raw validation reports with its full path.
func convertNode(n *yaml.Node, path string) (grammar.RawNode, error) {
	switch n.Kind {
	case 0:
		return grammar.RawNode{}, nil

	case yaml.AliasNode:
		return convertNode(n.Alias, path)

	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return grammar.RawNode{Empty: true}, nil
		}
		return grammar.Lit(n.Value), nil

	case yaml.SequenceNode:
		return convertSequence(n, path)

	case yaml.MappingNode:
		return convertKinds(n, path)
	}
	return grammar.RawNode{}, parseErr(n, path, "unexpected YAML kind %d", n.Kind)
}

func convertSequence(n *yaml.Node, path string) (grammar.RawNode, error) {
	items := make([]grammar.RawNode, 0, len(n.Content))
	for i, c := range n.Content {
		item, err := convertNode(c, indexPath(path, i))
		if err != nil {
			return grammar.RawNode{}, err
		}
		items = append(items, item)
	}
	return grammar.RawNode{Sequence: items}, nil
}

// convertKinds converts a mapping node. Every kind key present is set on
// the result, so a mapping naming two kinds fails the XOR rule in phase=raw
// with the usual message.
func convertKinds(n *yaml.Node, path string) (grammar.RawNode, error) {
	var (
		r    grammar.RawNode
		with *yaml.Node
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		sub := joinPath(path, key)
		var err error
		switch key {
		case "empty":
			if err = val.Decode(&r.Empty); err != nil || !r.Empty {
				err = parseErr(val, sub, "empty must be true when present")
			}
		case "literal":
			var s string
			err = decodeScalar(val, sub, &s)
			r.Literal = &s
		case "ref":
			err = decodeScalar(val, sub, &r.Ref)
			if err == nil && r.Ref == "" {
				err = parseErr(val, sub, "ref must name a def")
			}
		case "sequence":
			if val.Kind != yaml.SequenceNode {
				err = parseErr(val, sub, "sequence must be a list")
				break
			}
			var seq grammar.RawNode
			seq, err = convertSequence(val, path)
			r.Sequence = seq.Sequence
		case "select":
			r.Select, err = convertSelect(val, path)
		case "ladder":
			r.Ladder, err = convertLadder(val, path)
		case "sign":
			r.Sign, err = convertSign(val, path)
		case "split":
			r.Split, err = convertSplit(val, path)
		case "override":
			r.Override, err = convertOverride(val, path)
		case "use":
			var name string
			err = decodeScalar(val, sub, &name)
			r.Use = &grammar.RawUse{Macro: name}
		case "with":
			with = val
		default:
			err = parseErr(n.Content[i], path, "unknown key %q", key)
		}
		if err != nil {
			return grammar.RawNode{}, err
		}
	}

	if with != nil {
		if r.Use == nil {
			return grammar.RawNode{}, parseErr(with, joinPath(path, "with"), "'with' is only valid next to 'use'")
		}
		m, err := decodeMappingAsStrings(with, joinPath(path, "with"))
		if err != nil {
			return grammar.RawNode{}, err
		}
		r.Use.With = m
	}
	return r, nil
}

func convertSelect(n *yaml.Node, path string) (*grammar.RawSelect, error) {
	var ys yamlSelect
	if err := decodeStruct(n, joinPath(path, "select"), &ys, "threshold", "lower", "higher"); err != nil {
		return nil, err
	}
	lower, err := convertNode(&ys.Lower, joinPath(path, "lower"))
	if err != nil {
		return nil, err
	}
	higher, err := convertNode(&ys.Higher, joinPath(path, "higher"))
	if err != nil {
		return nil, err
	}
	return &grammar.RawSelect{Threshold: ys.Threshold, Lower: lower, Higher: higher}, nil
}

func convertLadder(n *yaml.Node, path string) (*grammar.RawLadder, error) {
	var yl yamlLadder
	if err := decodeStruct(n, joinPath(path, "ladder"), &yl, "rungs", "otherwise"); err != nil {
		return nil, err
	}
	l := &grammar.RawLadder{Rungs: make([]grammar.RawRung, 0, len(yl.Rungs))}
	for i, yr := range yl.Rungs {
		node, err := convertNode(&yr.Node, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		l.Rungs = append(l.Rungs, grammar.RawRung{At: yr.At, Node: node})
	}
	otherwise, err := convertNode(&yl.Otherwise, joinPath(path, "otherwise"))
	if err != nil {
		return nil, err
	}
	l.Otherwise = otherwise
	return l, nil
}

func convertSign(n *yaml.Node, path string) (*grammar.RawSign, error) {
	var ys yamlSign
	if err := decodeStruct(n, joinPath(path, "sign"), &ys, "negative", "positive"); err != nil {
		return nil, err
	}
	neg, err := convertNode(&ys.Negative, joinPath(path, "negative"))
	if err != nil {
		return nil, err
	}
	pos, err := convertNode(&ys.Positive, joinPath(path, "positive"))
	if err != nil {
		return nil, err
	}
	return &grammar.RawSign{Negative: neg, Positive: pos}, nil
}

func convertSplit(n *yaml.Node, path string) (*grammar.RawSplit, error) {
	var ys yamlSplit
	if err := decodeStruct(n, joinPath(path, "split"), &ys, "position", "low", "high", "inverted"); err != nil {
		return nil, err
	}
	low, err := convertNode(&ys.Low, joinPath(path, "low"))
	if err != nil {
		return nil, err
	}
	high, err := convertNode(&ys.High, joinPath(path, "high"))
	if err != nil {
		return nil, err
	}
	return &grammar.RawSplit{Position: ys.Position, Low: low, High: high, Inverted: ys.Inverted}, nil
}

func convertOverride(n *yaml.Node, path string) (*grammar.RawOverride, error) {
	var yo yamlOverride
	if err := decodeStruct(n, joinPath(path, "override"), &yo, "from", "to", "target"); err != nil {
		return nil, err
	}
	to, err := convertNode(&yo.To, joinPath(path, "to"))
	if err != nil {
		return nil, err
	}
	target, err := convertNode(&yo.Target, joinPath(path, "target"))
	if err != nil {
		return nil, err
	}
	return &grammar.RawOverride{From: yo.From, To: to, Target: target}, nil
}

// ---- Decoding helpers ------------------------------------------------------

// decodeStruct decodes a mapping node into out after rejecting keys that
// out does not declare; yaml.Node.Decode has no strict mode of its own.
func decodeStruct(n *yaml.Node, path string, out interface{}, keys ...string) error {
	if n.Kind != yaml.MappingNode {
		return parseErr(n, path, "expected a mapping, got YAML kind %d", n.Kind)
	}
	if err := checkKeys(n, path, keys...); err != nil {
		return err
	}
	if err := n.Decode(out); err != nil {
		return parseErr(n, path, "%v", err)
	}
	return nil
}

func decodeScalar(n *yaml.Node, path string, out *string) error {
	if n.Kind != yaml.ScalarNode {
		return parseErr(n, path, "expected a scalar, got YAML kind %d", n.Kind)
	}
	*out = n.Value
	return nil
}

func checkKeys(n *yaml.Node, path string, allowed ...string) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		known := false
		for _, a := range allowed {
			if key.Value == a {
				known = true
				break
			}
		}
		if !known {
			return parseErr(key, path, "unknown key %q (expected one of: %s)", key.Value, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// decodeMappingAsStrings reads a YAML mapping node into a map[string]string.
// yaml.v3 keeps every scalar's text in node.Value, so numbers like 1000
// arrive here already as "1000".
func decodeMappingAsStrings(n *yaml.Node, path string) (map[string]string, error) {
	if n.Kind != yaml.MappingNode {
		return nil, parseErr(n, path, "expected a mapping, got YAML kind %d", n.Kind)
	}
	out := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		val := n.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, parseErr(val, joinPath(path, n.Content[i].Value), "param values must be scalars")
		}
		out[n.Content[i].Value] = val.Value
	}
	return out, nil
}

func parseErr(n *yaml.Node, path, format string, args ...interface{}) error {
	return fmt.Errorf("phase=parse path=%s line=%d: %s", path, n.Line, fmt.Sprintf(format, args...))
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func sortedKeys(m map[string]grammar.Macro) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ---- Public build functions ------------------------------------------------

// NewMacroRegistryFromDocuments collects the macros of every macro library
// in docs. Returns an error if a macro name appears in more than one.
func NewMacroRegistryFromDocuments(docs ...Document) (*grammar.MacroRegistry, error) {
	reg := grammar.NewMacroRegistry()
	for _, doc := range docs {
		for _, name := range sortedKeys(doc.Macros) {
			m := doc.Macros[name]
			if err := grammar.ValidateMacro(name, m); err != nil {
				return nil, withSource(doc.Source, err)
			}
			if err := reg.Register(name, m); err != nil {
				return nil, withSource(doc.Source, fmt.Errorf("phase=parse path=<doc>: register macro %q: %w", name, err))
			}
		}
	}
	return reg, nil
}

// Build parses a single YAML grammar file and builds it.
func Build(in []byte) (*grammar.Grammar, error) {
	doc, err := Parse(in)
	if err != nil {
		return nil, err
	}
	gs, err := BuildFromDocuments(doc)
	if err != nil {
		return nil, err
	}
	return gs[0], nil
}

// BuildMany parses several YAML documents and builds every grammar among
// them. Macro libraries are shared by all of them.
func BuildMany(inputs ...[]byte) ([]*grammar.Grammar, error) {
	docs := make([]Document, 0, len(inputs))
	for _, in := range inputs {
		doc, err := Parse(in)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return BuildFromDocuments(docs...)
}

// BuildFromDocuments builds the grammars of already-parsed documents, in
// order.
func BuildFromDocuments(docs ...Document) ([]*grammar.Grammar, error) {
	macros, err := NewMacroRegistryFromDocuments(docs...)
	if err != nil {
		return nil, err
	}
	eng := grammar.NewEngine(macros)

	var out []*grammar.Grammar
	for _, doc := range docs {
		if doc.Grammar == nil {
			continue
		}
		g, err := eng.Build(*doc.Grammar)
		if err != nil {
			return nil, withSource(doc.Source, err)
		}
		out = append(out, g)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("phase=parse path=<doc>: no grammar found (a grammar needs a 'root')")
	}
	return out, nil
}

// Load reads and builds grammar files.
func Load(paths ...string) ([]*grammar.Grammar, error) {
	docs := make([]Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		doc, err := Parse(data)
		if err != nil {
			return nil, withSource(p, err)
		}
		doc.Source = p
		docs = append(docs, doc)
	}
	return BuildFromDocuments(docs...)
}

func withSource(source string, err error) error {
	if source == "" {
		return err
	}
	return fmt.Errorf("%s: %w", source, err)
}
