package grammaryaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numspell/cmd/numspell/grammar"
	"numspell/cmd/numspell/speller"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func requireBuildOK(t *testing.T, yml string) *grammar.Grammar {
	t.Helper()
	g, err := Build([]byte(yml))
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	return g
}

func requireBuildErr(t *testing.T, yml string, wantSubstrs ...string) error {
	t.Helper()
	_, err := Build([]byte(yml))
	if err == nil {
		t.Fatalf("expected error but got none")
	}
	for _, sub := range wantSubstrs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("error %q does not contain %q", err.Error(), sub)
		}
	}
	return err
}

func requireParseErr(t *testing.T, yml string, wantSubstrs ...string) {
	t.Helper()
	_, err := Parse([]byte(yml))
	if err == nil {
		t.Fatalf("expected parse error but got none")
	}
	for _, sub := range wantSubstrs {
		if !strings.Contains(err.Error(), sub) {
			t.Errorf("parse error %q does not contain %q", err.Error(), sub)
		}
	}
}

func spell(g *grammar.Grammar, v int64) string {
	return speller.Spell(g.Root, v)
}

const digits = `
language: en-GB
name: Digits
root:
  sign:
    negative: [minus, {ref: pair}]
    positive: {ref: pair}
defs:
  digit:
    ladder:
      rungs:
        - {at: 0, node: zero}
        - {at: 1, node: one}
        - {at: 2, node: two}
      otherwise: many
`

const pairDef = `
  pair:
    split: {position: 1, low: {ref: digit}, high: {ref: digit}}
`

// ---------------------------------------------------------------------------
// Scalars, lists and kinds
// ---------------------------------------------------------------------------

func TestNodeForms(t *testing.T) {
	g := requireBuildOK(t, digits+pairDef)
	assert.Equal(t, "en", g.Language)
	assert.Equal(t, "Digits", g.Name)
	assert.Equal(t, "one two ", spell(g, 12))
	assert.Equal(t, "minus zero many ", spell(g, -7))
	assert.Empty(t, g.Warnings)
}

func TestInvertedSplit(t *testing.T) {
	g := requireBuildOK(t, digits+`
  pair:
    split: {position: 1, inverted: true, low: {ref: digit}, high: {ref: digit}}
`)
	assert.Equal(t, "two one ", spell(g, 12))
}

func TestNullIsEmpty(t *testing.T) {
	g := requireBuildOK(t, `
language: en
root:
  select: {threshold: 5, lower: ~, higher: big}
`)
	assert.Equal(t, "", spell(g, 5))
	assert.Equal(t, "big ", spell(g, 6))
}

func TestQuotedScalarsAreLiterals(t *testing.T) {
	g := requireBuildOK(t, `
language: de
root: [{literal: "null"}, "~", 7]
`)
	assert.Equal(t, "null ~ 7 ", spell(g, 0))
}

func TestExplicitEmpty(t *testing.T) {
	g := requireBuildOK(t, `
language: en
root: {sequence: [{empty: true}, x]}
`)
	assert.Equal(t, "x ", spell(g, 0))

	requireParseErr(t, `
language: en
root: {empty: false}
`, "phase=parse", "path=root.empty", "must be true")
}

func TestAnchorsAreCopies(t *testing.T) {
	g := requireBuildOK(t, `
language: en
root:
  split:
    position: 1
    low: &word {select: {threshold: 0, lower: none, higher: some}}
    high: *word
`)
	assert.Equal(t, "some none ", spell(g, 10))
}

// ---------------------------------------------------------------------------
// Shared defs and overrides
// ---------------------------------------------------------------------------

func TestOverrideRedirectsSharedDef(t *testing.T) {
	g := requireBuildOK(t, `
language: en
defs:
  unit: ~
  digit: [{ladder: {rungs: [{at: 1, node: One}], otherwise: Two}}, {ref: unit}]
root:
  split:
    position: 1
    low: {ref: digit}
    high:
      override: {from: unit, to: Ten, target: {ref: digit}}
`)
	assert.Equal(t, "Two Ten One ", spell(g, 21))
}

func TestWarnings(t *testing.T) {
	g := requireBuildOK(t, `
language: en
defs:
  unit: ~
  spare: never
root:
  override: {from: unit, to: x, target: y}
`)
	require.Len(t, g.Warnings, 3)
	assert.Contains(t, g.Warnings[0], "not a sign branch")
	assert.Contains(t, g.Warnings[1], `"spare"`)
	assert.Contains(t, g.Warnings[2], `override of "unit" has no effect`)
}

// ---------------------------------------------------------------------------
// Macros
// ---------------------------------------------------------------------------

func TestMacros(t *testing.T) {
	g := requireBuildOK(t, `
language: en
macros:
  tagged:
    params:
      word: ~
      suffix: "!"
      count: 3
    body: ["{{ .word }}{{ .suffix }}", "{{ .count }}"]
root: {use: tagged, with: {word: hi, count: 5}}
`)
	assert.Equal(t, "hi! 5 ", spell(g, 0))
}

func TestMacroLibraries(t *testing.T) {
	lib := []byte(`
macros:
  boxed:
    params: {w: ~}
    body: ["[", "{{ .w }}", "]"]
`)
	en := []byte(`
language: en
root: {use: boxed, with: {w: one}}
`)
	fr := []byte(`
language: fr
root: {use: boxed, with: {w: un}}
`)
	gs, err := BuildMany(lib, en, fr)
	require.NoError(t, err)
	require.Len(t, gs, 2)
	assert.Equal(t, "en", gs[0].Language)
	assert.Equal(t, "[ one ] ", spell(gs[0], 1))
	assert.Equal(t, "fr", gs[1].Language)
	assert.Equal(t, "[ un ] ", spell(gs[1], 1))

	_, err = BuildMany(lib, lib, en)
	require.ErrorIs(t, err, grammar.ErrMacroAlreadyExists)
	assert.Contains(t, err.Error(), `register macro "boxed"`)

	_, err = BuildMany(lib)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no grammar found")
}

func TestMacroErrors(t *testing.T) {
	t.Run("missing param", func(t *testing.T) {
		err := requireBuildErr(t, `
language: en
macros:
  m: {params: {w: ~}, body: "{{ .w }}"}
root: {use: m}
`, "phase=expand", "path=root", "macro m")
		assert.ErrorIs(t, err, grammar.ErrMissingParam)
	})

	t.Run("hyphenated param", func(t *testing.T) {
		requireBuildErr(t, `
language: en
macros:
  m: {params: {my-word: ~}, body: x}
root: {use: m, with: {my-word: y}}
`, "phase=raw", "path=macros.m", `"my-word"`)
	})

	t.Run("with without use", func(t *testing.T) {
		requireParseErr(t, `
language: en
root: {ref: x, with: {a: b}}
`, "phase=parse", "path=root.with", "only valid next to 'use'")
	})

	t.Run("library with bad macro", func(t *testing.T) {
		_, err := BuildMany([]byte(`
macros:
  bad: {body: {}}
`), []byte("language: en\nroot: x\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path=macros.bad.body")
	})
}

// ---------------------------------------------------------------------------
// Parse and validation errors
// ---------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yml  string
		subs []string
	}{
		{"empty document", "", []string{"phase=parse", "empty YAML"}},
		{"list document", "- a\n- b\n", []string{"expected a mapping"}},
		{"unknown top-level key", "language: en\nnodes: []\nroot: x\n", []string{"path=<doc>", `unknown key "nodes"`}},
		{"unknown kind", "language: en\nroot: {repeat: x}\n", []string{"path=root", `unknown key "repeat"`}},
		{"unknown select key", "language: en\nroot: {select: {threshold: 1, lower: a, higher: b, middle: c}}\n",
			[]string{"path=root.select", `unknown key "middle"`, "line=2"}},
		{"negative threshold", "language: en\nroot: {select: {threshold: -1, lower: a, higher: b}}\n",
			[]string{"path=root.select"}},
		{"ref to list", "language: en\nroot: {ref: [a]}\n", []string{"path=root.ref", "expected a scalar"}},
		{"defs without root", "language: en\ndefs: {a: x}\n", []string{"missing 'root'"}},
		{"sequence not a list", "language: en\nroot: {sequence: x}\n", []string{"sequence must be a list"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireParseErr(t, tc.yml, tc.subs...)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	t.Run("two kinds", func(t *testing.T) {
		err := requireBuildErr(t, "language: en\nroot: {ref: a, literal: b}\n", "phase=raw", "path=root", "cannot combine literal, ref")
		assert.ErrorIs(t, err, grammar.ErrInvalidNode)
	})

	t.Run("missing child", func(t *testing.T) {
		requireBuildErr(t, "language: en\nroot: {select: {threshold: 1, lower: a}}\n", "phase=raw", "path=root.higher", "exactly one of")
	})

	t.Run("missing language", func(t *testing.T) {
		requireBuildErr(t, "root: x\n", "phase=raw", "language is required")
	})

	t.Run("unordered ladder", func(t *testing.T) {
		requireBuildErr(t, "language: en\nroot: {ladder: {rungs: [{at: 2, node: a}, {at: 1, node: b}], otherwise: c}}\n",
			"phase=raw", "path=root[1]", "strictly increasing")
	})

	t.Run("split too large", func(t *testing.T) {
		requireBuildErr(t, "language: en\nroot: {split: {position: 25, low: a, high: b}}\n", "split position 25")
	})

	t.Run("cycle", func(t *testing.T) {
		err := requireBuildErr(t, "language: en\ndefs:\n  a: [x, {ref: b}]\n  b: [y, {ref: a}]\nroot: {ref: a}\n", "phase=expand")
		assert.ErrorIs(t, err, grammar.ErrCycleDetected)
	})
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "digits.yml")
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(good, []byte(digits+pairDef), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("language: en\nroot: {ref: nowhere}\n"), 0o644))

	gs, err := Load(good)
	require.NoError(t, err)
	require.Len(t, gs, 1)
	assert.Equal(t, "one one ", spell(gs[0], 11))

	_, err = Load(good, bad)
	require.ErrorIs(t, err, grammar.ErrUnknownRef)
	assert.True(t, strings.HasPrefix(err.Error(), bad+": phase=expand"), err.Error())

	_, err = Load(filepath.Join(dir, "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
