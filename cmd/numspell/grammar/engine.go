package grammar

import (
	"fmt"

	"numspell/cmd/numspell/speller"
)

// Grammar is a built grammar ready for speller.Spell.
type Grammar struct {
	Language string
	Name     string
	Root     speller.Node
	// Warnings lists suspicious but valid constructs, such as defs that
	// nothing references.
	Warnings []string
}

// Engine builds grammars from raw definitions, sharing one set of macros.
type Engine struct {
	macros *MacroRegistry
}

// NewEngine returns an Engine using macros; nil means no shared macros.
func NewEngine(macros *MacroRegistry) *Engine {
	if macros == nil {
		macros = NewMacroRegistry()
	}
	return &Engine{macros: macros}
}

// Build validates raw, expands it and checks the result.
func (e *Engine) Build(raw RawGrammar) (*Grammar, error) {
	if err := ValidateRawGrammar(raw); err != nil {
		return nil, err
	}

	root, built, err := ExpandGrammar(raw, e.macros)
	if err != nil {
		return nil, err
	}

	warnings, err := validateRuntimeGraph(raw, root, built)
	if err != nil {
		return nil, err
	}

	lang, _ := Canonical(raw.Language)
	return &Grammar{
		Language: lang,
		Name:     raw.Name,
		Root:     root,
		Warnings: warnings,
	}, nil
}

// ---------------------------------------------------------------------------
// Phase 3: runtime graph validation
// ---------------------------------------------------------------------------

// validateRuntimeGraph checks the built graph and collects warnings.
func validateRuntimeGraph(raw RawGrammar, root speller.Node, built map[string]speller.Node) ([]string, error) {
	if root == nil {
		return nil, fmt.Errorf("phase=runtime path=root: grammar has no root")
	}

	var warnings []string
	if _, ok := root.(*speller.Sign); !ok {
		warnings = append(warnings, "root is not a sign branch: negative numbers are spelled without a sign word")
	}
	for _, name := range sortedKeys(raw.Defs) {
		if _, ok := built[name]; !ok {
			warnings = append(warnings, fmt.Sprintf("def %q is never referenced", name))
		}
	}

	names := make(map[speller.Handle]string, len(built))
	for name, n := range built {
		names[n.Handle()] = name
	}
	speller.Walk(root, func(v speller.Visit) bool {
		o, ok := v.Node.(*speller.Override)
		if ok && !v.Seen && !reaches(o.Target, o.From.Handle()) {
			warnings = append(warnings, fmt.Sprintf("override of %q has no effect: its target never uses it", names[o.From.Handle()]))
		}
		return true
	})
	return warnings, nil
}

// reaches reports whether the node with handle h is reachable from n.
func reaches(n speller.Node, h speller.Handle) bool {
	found := false
	speller.Walk(n, func(v speller.Visit) bool {
		if v.Node.Handle() == h {
			found = true
		}
		return !found
	})
	return found
}
