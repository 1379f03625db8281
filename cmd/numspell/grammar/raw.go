package grammar

// RawGrammar is a grammar as read from an external source (e.g. YAML).
// It is intentionally format-agnostic: no serialization tags.
type RawGrammar struct {
	// Language is the BCP 47 tag the grammar is registered under.
	Language string
	// Name is the display name; optional.
	Name string
	// Defs holds named nodes. Every ref to a name resolves to the same
	// built node, which is what makes a def usable as an override target.
	Defs map[string]RawNode
	// Macros holds parameterised fragments local to this grammar. They
	// take precedence over macros registered with the Engine.
	Macros map[string]Macro
	Root   RawNode
}

// RawNode is one node of a raw grammar. Exactly one kind must be set:
//
//   - Empty: says nothing.
//   - Literal: says the text. Macro params are substituted into it.
//   - Ref: the shared node built from Defs[Ref].
//   - Sequence: two or more nodes said in order.
//   - Select, Ladder, Sign, Split, Override: the matching speller nodes.
//   - Use: the body of a macro, expanded with the given params.
type RawNode struct {
	Empty    bool
	Literal  *string
	Ref      string
	Sequence []RawNode
	Select   *RawSelect
	Ladder   *RawLadder
	Sign     *RawSign
	Split    *RawSplit
	Override *RawOverride
	Use      *RawUse
}

type RawSelect struct {
	Threshold     uint64
	Lower, Higher RawNode
}

type RawLadder struct {
	Rungs     []RawRung
	Otherwise RawNode
}

type RawRung struct {
	At   uint64
	Node RawNode
}

type RawSign struct {
	Negative, Positive RawNode
}

type RawSplit struct {
	Position  int
	Low, High RawNode
	Inverted  bool
}

// RawOverride redirects the def named From to To while spelling Target.
type RawOverride struct {
	From       string
	To, Target RawNode
}

// RawUse expands a macro. With holds the params passed to it.
type RawUse struct {
	Macro string
	With  map[string]string
}

// Macro is a named, parameterised node. Literals, refs and override
// sources in Body may reference params as {{ .name }}.
type Macro struct {
	Params ParamDefs
	Body   RawNode
}

// ParamDefs maps parameter names to their default value.
//
//   - nil value  → the parameter is required; the caller MUST supply it.
//   - non-nil    → the parameter is optional with that string as its default.
type ParamDefs map[string]*string

// Lit returns a literal RawNode.
func Lit(text string) RawNode { return RawNode{Literal: &text} }

// Ref returns a reference RawNode.
func Ref(name string) RawNode { return RawNode{Ref: name} }

// kinds lists the kinds set on n, in declaration order.
func (n RawNode) kinds() []string {
	var k []string
	if n.Empty {
		k = append(k, "empty")
	}
	if n.Literal != nil {
		k = append(k, "literal")
	}
	if n.Ref != "" {
		k = append(k, "ref")
	}
	if n.Sequence != nil {
		k = append(k, "sequence")
	}
	if n.Select != nil {
		k = append(k, "select")
	}
	if n.Ladder != nil {
		k = append(k, "ladder")
	}
	if n.Sign != nil {
		k = append(k, "sign")
	}
	if n.Split != nil {
		k = append(k, "split")
	}
	if n.Override != nil {
		k = append(k, "override")
	}
	if n.Use != nil {
		k = append(k, "use")
	}
	return k
}
