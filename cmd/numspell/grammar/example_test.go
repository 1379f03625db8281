package grammar_test

import (
	"fmt"
	"strings"

	"numspell/cmd/numspell/grammar"
	"numspell/cmd/numspell/speller"
)

func ExampleBuild() {
	ru, err := grammar.Build("ru-RU")
	if err != nil {
		panic(err)
	}
	for _, v := range []int64{1000, 2000, 5000} {
		fmt.Println(strings.TrimSpace(speller.Spell(ru, v)))
	}
	// Output:
	// одна тысяча
	// две тысячи
	// пять тысяч
}

func ExampleEngine_Build() {
	raw := grammar.RawGrammar{
		Language: "en",
		Defs: map[string]grammar.RawNode{
			"unit":  {Empty: true},
			"digit": {Sequence: []grammar.RawNode{grammar.Lit("some"), grammar.Ref("unit")}},
		},
		Root: grammar.RawNode{Sign: &grammar.RawSign{
			Negative: grammar.Lit("minus"),
			Positive: grammar.RawNode{Override: &grammar.RawOverride{
				From:   "unit",
				To:     grammar.Lit("things"),
				Target: grammar.Ref("digit"),
			}},
		}},
	}
	g, err := grammar.NewEngine(nil).Build(raw)
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.TrimSpace(speller.Spell(g.Root, 3)))
	fmt.Println(strings.TrimSpace(speller.Spell(g.Root, -3)))
	// Output:
	// some things
	// minus
}
