package main

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numspell/cmd/numspell/grammar"
	"numspell/cmd/numspell/grammaryaml"
	"numspell/cmd/numspell/speller"
)

func TestExampleEnglishMatchesBuiltin(t *testing.T) {
	g, err := grammaryaml.Build(exampleEnglishYAML)
	require.NoError(t, err)
	assert.Equal(t, "en", g.Language)
	assert.Empty(t, g.Warnings)

	en := grammar.English()
	values := []int64{math.MinInt64, math.MaxInt64, -1_000_000_001, 1_000_000_000_000, 123_456_789_012_345}
	for v := int64(-1100); v <= 1100; v++ {
		values = append(values, v)
	}
	for v := int64(1); v < math.MaxInt64/7; v *= 7 {
		values = append(values, v, -v, v+19)
	}
	for _, v := range values {
		require.Equal(t, speller.Spell(en, v), speller.Spell(g.Root, v), "value %d", v)
	}
	assert.Equal(t, speller.SpellUnsigned(en, math.MaxUint64), speller.SpellUnsigned(g.Root, math.MaxUint64))
}

func TestExampleGerman(t *testing.T) {
	g, err := grammaryaml.Build(exampleGermanYAML)
	require.NoError(t, err)
	assert.Equal(t, "de", g.Language)
	assert.Empty(t, g.Warnings)

	cases := []struct {
		in   int64
		want string
	}{
		{0, "null "},
		{1, "eins "},
		{7, "sieben "},
		{13, "dreizehn "},
		{20, "zwanzig "},
		{21, "ein und zwanzig "},
		{99, "neun und neunzig "},
		{100, "ein hundert "},
		{101, "ein hundert eins "},
		{1000, "ein tausend "},
		{1001, "ein tausend eins "},
		{21000, "ein und zwanzig tausend "},
		{1000000, "eine Million "},
		{1000001, "eine Million eins "},
		{2000000, "zwei Millionen "},
		{3000000000, "drei Milliarden "},
		{-7, "minus sieben "},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, speller.Spell(g.Root, tc.in), "spell(de, %d)", tc.in)
	}
}

func TestExampleGrammarsHaveHeaders(t *testing.T) {
	for lang, data := range exampleGrammars {
		assert.True(t, bytes.HasPrefix(data, []byte("language: "+lang)), lang)
	}
}

func TestPrintLanguages(t *testing.T) {
	var out bytes.Buffer
	printLanguages(&out, grammar.NewBuiltinRegistry(), []string{"ru-RU"})
	assert.Equal(t, "  en  English\n* ru  Russian\n", out.String())

	out.Reset()
	printLanguages(&out, grammar.NewRegistry(), nil)
	assert.Equal(t, "no languages found\n", out.String())
}

func TestPrintTree(t *testing.T) {
	unit := speller.NewEmpty()
	root := speller.NewSplit(1, unit, speller.NewSequence(speller.NewLiteral("ten"), unit))

	var out bytes.Buffer
	printTree(&out, root)
	got := out.String()
	lines := strings.Split(strings.TrimSpace(got), "\n")

	assert.Contains(t, lines[0], "split")
	assert.Contains(t, lines[0], "@1")
	assert.Contains(t, got, `"ten"`)
	assert.Contains(t, got, "-> ")
	assert.True(t, strings.HasSuffix(got, "\n4 nodes\n"), got)
}

func TestBenchLanguage(t *testing.T) {
	ru, err := grammar.Build("ru")
	require.NoError(t, err)

	res, err := benchLanguage(context.Background(), ru, -500, 2500, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3001), res.values)
	assert.Positive(t, res.bytes)

	res, err = benchLanguage(context.Background(), ru, 7, 7, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.values)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = benchLanguage(ctx, ru, 0, 10, 2)
	require.ErrorIs(t, err, context.Canceled)

	var out bytes.Buffer
	printBench(&out, "ru", res, 8)
	assert.Contains(t, out.String(), "parallel == sequential")
}
