package grammar

import (
	"fmt"
	"strings"
	"unicode"
)

// maxSplitPosition is the largest split whose divisor fits in a uint64.
const maxSplitPosition = 19

// ---------------------------------------------------------------------------
// Phase 1: raw grammar validation
// ---------------------------------------------------------------------------

// ValidateRawGrammar checks the structure of g before anything is built.
// Refs and macro uses are resolved later, in phase 2.
func ValidateRawGrammar(g RawGrammar) error {
	if strings.TrimSpace(g.Language) == "" {
		return fmt.Errorf("phase=raw path=<grammar>: language is required")
	}
	if _, err := Canonical(g.Language); err != nil {
		return fmt.Errorf("phase=raw path=<grammar>: %w", err)
	}
	for _, name := range sortedKeys(g.Macros) {
		if err := ValidateMacro(name, g.Macros[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(g.Defs) {
		if err := validateRawNode(g.Defs[name], joinPath("defs", name)); err != nil {
			return err
		}
	}
	return validateRawNode(g.Root, "root")
}

// ValidateMacro checks a macro's param names and body.
func ValidateMacro(name string, m Macro) error {
	path := joinPath("macros", name)
	for p := range m.Params {
		if !isIdentifier(p) {
			return fmt.Errorf("phase=raw path=%s: param %q: names must be identifiers "+
				"(letters, digits and underscores) so they can be used as {{ .%s }}", path, p, p)
		}
	}
	return validateRawNode(m.Body, joinPath(path, "body"))
}

// validateRawNode checks the XOR rule and the kind-specific constraints of
// n, then recurses into its children.
func validateRawNode(n RawNode, path string) error {
	kinds := n.kinds()
	switch len(kinds) {
	case 0:
		return fmt.Errorf("phase=raw path=%s: %w: node must define exactly one of: "+
			"empty, literal, ref, sequence, select, ladder, sign, split, override, use", path, ErrInvalidNode)
	case 1:
	default:
		return fmt.Errorf("phase=raw path=%s: %w: node cannot combine %s", path, ErrInvalidNode, strings.Join(kinds, ", "))
	}

	switch {
	case n.Empty, n.Literal != nil, n.Ref != "":
		return nil

	case n.Sequence != nil:
		if len(n.Sequence) < 2 {
			return fmt.Errorf("phase=raw path=%s: %w: sequence needs at least two items", path, ErrInvalidNode)
		}
		for i, c := range n.Sequence {
			if err := validateRawNode(c, indexPath(path, i)); err != nil {
				return err
			}
		}

	case n.Select != nil:
		return validateChildren(path, child{"lower", n.Select.Lower}, child{"higher", n.Select.Higher})

	case n.Ladder != nil:
		for i, r := range n.Ladder.Rungs {
			if i > 0 && r.At <= n.Ladder.Rungs[i-1].At {
				return fmt.Errorf("phase=raw path=%s: %w: ladder thresholds must be strictly increasing (%d after %d)",
					indexPath(path, i), ErrInvalidNode, r.At, n.Ladder.Rungs[i-1].At)
			}
			if err := validateRawNode(r.Node, indexPath(path, i)); err != nil {
				return err
			}
		}
		return validateRawNode(n.Ladder.Otherwise, joinPath(path, "otherwise"))

	case n.Sign != nil:
		return validateChildren(path, child{"negative", n.Sign.Negative}, child{"positive", n.Sign.Positive})

	case n.Split != nil:
		if n.Split.Position < 0 || n.Split.Position > maxSplitPosition {
			return fmt.Errorf("phase=raw path=%s: %w: split position %d out of range 0..%d",
				path, ErrInvalidNode, n.Split.Position, maxSplitPosition)
		}
		return validateChildren(path, child{"low", n.Split.Low}, child{"high", n.Split.High})

	case n.Override != nil:
		if strings.TrimSpace(n.Override.From) == "" {
			return fmt.Errorf("phase=raw path=%s: %w: override requires 'from' naming a def", path, ErrInvalidNode)
		}
		return validateChildren(path, child{"to", n.Override.To}, child{"target", n.Override.Target})

	case n.Use != nil:
		if strings.TrimSpace(n.Use.Macro) == "" {
			return fmt.Errorf("phase=raw path=%s: %w: use requires a macro name", path, ErrInvalidNode)
		}
	}
	return nil
}

type child struct {
	role string
	node RawNode
}

func validateChildren(path string, children ...child) error {
	for _, c := range children {
		if err := validateRawNode(c.node, joinPath(path, c.role)); err != nil {
			return err
		}
	}
	return nil
}

// isIdentifier reports whether s is a valid Go identifier:
// a non-empty string of letters, digits, and underscores that does not
// start with a digit.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
