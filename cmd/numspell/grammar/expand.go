package grammar

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"numspell/cmd/numspell/speller"
)

// ---------------------------------------------------------------------------
// Phase 2: expansion into speller nodes
// ---------------------------------------------------------------------------

type expander struct {
	g      RawGrammar
	macros *MacroRegistry

	built  map[string]speller.Node
	defs   []string // defs being built, for cycle detection
	inMacs []string // macros being expanded, for cycle detection
}

func newExpander(g RawGrammar, macros *MacroRegistry) *expander {
	if macros == nil {
		macros = NewMacroRegistry()
	}
	return &expander{g: g, macros: macros, built: make(map[string]speller.Node)}
}

// ExpandGrammar builds the node graph of g. Every def is built at most
// once, on first reference, and shared by all its referrers.
func ExpandGrammar(g RawGrammar, macros *MacroRegistry) (speller.Node, map[string]speller.Node, error) {
	e := newExpander(g, macros)
	root, err := e.node(g.Root, "root", nil)
	if err != nil {
		return nil, nil, err
	}
	return root, e.built, nil
}

// def returns the shared node for the def called name.
func (e *expander) def(name, path string) (speller.Node, error) {
	if n, ok := e.built[name]; ok {
		return n, nil
	}
	for _, d := range e.defs {
		if d == name {
			return nil, fmt.Errorf("phase=expand path=%s: %w: %s", path, ErrCycleDetected, name)
		}
	}
	raw, ok := e.g.Defs[name]
	if !ok {
		return nil, fmt.Errorf("phase=expand path=%s: %w: %s", path, ErrUnknownRef, name)
	}

	e.defs = append(e.defs, name)
	n, err := e.node(raw, joinPath("defs", name), nil)
	e.defs = e.defs[:len(e.defs)-1]
	if err != nil {
		return nil, err
	}
	e.built[name] = n
	return n, nil
}

func (e *expander) macro(name string) (Macro, bool) {
	if m, ok := e.g.Macros[name]; ok {
		return m, true
	}
	return e.macros.Get(name)
}

// node builds r. params is non-nil inside a macro body and is substituted
// into literal text, ref names and override sources.
func (e *expander) node(r RawNode, path string, params map[string]string) (speller.Node, error) {
	switch {
	case r.Empty:
		return speller.NewEmpty(), nil

	case r.Literal != nil:
		text, err := substituteString(*r.Literal, params)
		if err != nil {
			return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
		}
		return speller.NewLiteral(norm.NFC.String(text)), nil

	case r.Ref != "":
		name, err := substituteString(r.Ref, params)
		if err != nil {
			return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
		}
		return e.def(name, path)

	case r.Sequence != nil:
		var out speller.Node
		for i, c := range r.Sequence {
			n, err := e.node(c, indexPath(path, i), params)
			if err != nil {
				return nil, err
			}
			if out == nil {
				out = n
			} else {
				out = speller.NewSequence(out, n)
			}
		}
		return out, nil

	case r.Select != nil:
		lower, higher, err := e.pair(path, params, child{"lower", r.Select.Lower}, child{"higher", r.Select.Higher})
		if err != nil {
			return nil, err
		}
		return speller.NewSelect(r.Select.Threshold, lower, higher), nil

	case r.Ladder != nil:
		rungs := make([]speller.Rung, len(r.Ladder.Rungs))
		for i, rung := range r.Ladder.Rungs {
			n, err := e.node(rung.Node, indexPath(path, i), params)
			if err != nil {
				return nil, err
			}
			rungs[i] = speller.R(rung.At, n)
		}
		otherwise, err := e.node(r.Ladder.Otherwise, joinPath(path, "otherwise"), params)
		if err != nil {
			return nil, err
		}
		n, err := speller.Ladder(rungs, otherwise)
		if err != nil {
			return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
		}
		return n, nil

	case r.Sign != nil:
		neg, pos, err := e.pair(path, params, child{"negative", r.Sign.Negative}, child{"positive", r.Sign.Positive})
		if err != nil {
			return nil, err
		}
		return speller.NewSign(neg, pos), nil

	case r.Split != nil:
		low, high, err := e.pair(path, params, child{"low", r.Split.Low}, child{"high", r.Split.High})
		if err != nil {
			return nil, err
		}
		if r.Split.Inverted {
			return speller.NewInvertedSplit(r.Split.Position, low, high), nil
		}
		return speller.NewSplit(r.Split.Position, low, high), nil

	case r.Override != nil:
		fromName, err := substituteString(r.Override.From, params)
		if err != nil {
			return nil, fmt.Errorf("phase=expand path=%s: from: %w", path, err)
		}
		from, err := e.def(fromName, joinPath(path, "from"))
		if err != nil {
			return nil, err
		}
		to, target, err := e.pair(path, params, child{"to", r.Override.To}, child{"target", r.Override.Target})
		if err != nil {
			return nil, err
		}
		return speller.NewOverride(from, to, target), nil

	case r.Use != nil:
		return e.use(*r.Use, path, params)
	}
	return nil, fmt.Errorf("phase=expand path=%s: %w", path, ErrInvalidNode)
}

func (e *expander) pair(path string, params map[string]string, a, b child) (speller.Node, speller.Node, error) {
	x, err := e.node(a.node, joinPath(path, a.role), params)
	if err != nil {
		return nil, nil, err
	}
	y, err := e.node(b.node, joinPath(path, b.role), params)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// use expands a macro body with its resolved params. Each use builds a
// fresh copy of the body; refs inside it still resolve to shared defs.
func (e *expander) use(u RawUse, path string, outer map[string]string) (speller.Node, error) {
	for _, m := range e.inMacs {
		if m == u.Macro {
			return nil, fmt.Errorf("phase=expand path=%s: %w: %s", path, ErrCycleDetected, u.Macro)
		}
	}
	m, ok := e.macro(u.Macro)
	if !ok {
		return nil, fmt.Errorf("phase=expand path=%s: %w: %s", path, ErrUnknownMacro, u.Macro)
	}
	with, err := substituteParams(u.With, outer)
	if err != nil {
		return nil, fmt.Errorf("phase=expand path=%s: %w", path, err)
	}
	params, err := applyParamDefs(m.Params, with)
	if err != nil {
		return nil, fmt.Errorf("phase=expand path=%s: macro %s: %w", path, u.Macro, err)
	}

	e.inMacs = append(e.inMacs, u.Macro)
	defer func() { e.inMacs = e.inMacs[:len(e.inMacs)-1] }()
	return e.node(m.Body, joinPath(path, u.Macro), params)
}
