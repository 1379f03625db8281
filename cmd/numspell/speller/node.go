package speller

import (
	"fmt"
	"sync/atomic"
)

// Handle is the stable identity of a node. Overrides are keyed by handle,
// never by the structure of the node: two Empty nodes are different slots.
type Handle uint64

var lastHandle atomic.Uint64

func nextHandle() Handle { return Handle(lastHandle.Add(1)) }

// Node is the sealed interface for all speller variants.
// Only the types in this file implement it; the unexported isNode() method
// prevents external implementations, so Context.Evaluate can switch over the
// complete set.
type Node interface {
	isNode()
	Handle() Handle
}

type node struct{ handle Handle }

func (n node) isNode()        {}
func (n node) Handle() Handle { return n.handle }

// Empty says nothing.
type Empty struct{ node }

// Literal says Text followed by a single space.
type Literal struct {
	node
	Text string
}

// Sequence says First and then Second, both for the same context.
type Sequence struct {
	node
	First, Second Node
}

// Select says Lower when the magnitude is at most Threshold, Higher otherwise.
type Select struct {
	node
	Threshold     uint64
	Lower, Higher Node
}

// Sign says Negative for negative input and NonNegative otherwise.
type Sign struct {
	node
	Negative, NonNegative Node
}

// Split cuts the magnitude at Position decimal digits. High spells the
// more significant part, Low the remainder. The output is High then Low
// unless Inverted is set.
type Split struct {
	node
	Position  int
	Low, High Node
	Inverted  bool
}

// Override spells Target with every use of From redirected to To.
type Override struct {
	node
	From, To, Target Node
}

// NewEmpty returns a fresh Empty node with its own identity.
func NewEmpty() *Empty { return &Empty{node{nextHandle()}} }

// NewLiteral returns a node that always says text.
func NewLiteral(text string) *Literal {
	return &Literal{node: node{nextHandle()}, Text: text}
}

// NewSequence returns a node saying first, then second.
func NewSequence(first, second Node) *Sequence {
	mustChildren("sequence", first, second)
	return &Sequence{node: node{nextHandle()}, First: first, Second: second}
}

// NewSelect returns a threshold branch: lower for magnitudes <= threshold.
func NewSelect(threshold uint64, lower, higher Node) *Select {
	mustChildren("select", lower, higher)
	return &Select{node: node{nextHandle()}, Threshold: threshold, Lower: lower, Higher: higher}
}

// NewSign returns a sign branch.
func NewSign(negative, nonNegative Node) *Sign {
	mustChildren("sign", negative, nonNegative)
	return &Sign{node: node{nextHandle()}, Negative: negative, NonNegative: nonNegative}
}

// NewSplit returns a position split printing the high part first.
func NewSplit(position int, low, high Node) *Split {
	return newSplit(position, low, high, false)
}

// NewInvertedSplit returns a position split printing the low part first,
// as in "ein und zwanzig".
func NewInvertedSplit(position int, low, high Node) *Split {
	return newSplit(position, low, high, true)
}

func newSplit(position int, low, high Node, inverted bool) *Split {
	if position < 0 {
		panic(fmt.Sprintf("speller: negative split position %d", position))
	}
	mustChildren("split", low, high)
	return &Split{node: node{nextHandle()}, Position: position, Low: low, High: high, Inverted: inverted}
}

// NewOverride returns a node spelling target with from replaced by to.
func NewOverride(from, to, target Node) *Override {
	mustChildren("override", from, to, target)
	return &Override{node: node{nextHandle()}, From: from, To: to, Target: target}
}

func mustChildren(kind string, children ...Node) {
	for i, c := range children {
		if c == nil {
			panic(fmt.Sprintf("speller: %s child %d is nil", kind, i))
		}
	}
}

// Children returns the direct children of n in declaration order.
func Children(n Node) []Node {
	switch x := n.(type) {
	case *Sequence:
		return []Node{x.First, x.Second}
	case *Select:
		return []Node{x.Lower, x.Higher}
	case *Sign:
		return []Node{x.Negative, x.NonNegative}
	case *Split:
		return []Node{x.Low, x.High}
	case *Override:
		return []Node{x.From, x.To, x.Target}
	}
	return nil
}

// Kind returns a short lower-case name for the variant of n.
func Kind(n Node) string {
	switch n.(type) {
	case *Empty:
		return "empty"
	case *Literal:
		return "literal"
	case *Sequence:
		return "sequence"
	case *Select:
		return "select"
	case *Sign:
		return "sign"
	case *Split:
		return "split"
	case *Override:
		return "override"
	default:
		return fmt.Sprintf("%T", n)
	}
}
