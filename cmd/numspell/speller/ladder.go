package speller

import "fmt"

// Rung is one row of a threshold ladder: magnitudes up to At go to Node.
type Rung struct {
	At   uint64
	Node Node
}

// R is shorthand for a Rung literal in grammar code.
func R(at uint64, n Node) Rung { return Rung{At: at, Node: n} }

// Ladder chains Select nodes over rungs sorted by strictly increasing
// threshold. A magnitude is spelled by the first rung it fits under
// (inclusive) and by otherwise when it exceeds every rung.
//
//	Ladder([]Rung{{1, a}, {5, b}}, c) == Select(1, a, Select(5, b, c))
func Ladder(rungs []Rung, otherwise Node) (Node, error) {
	if otherwise == nil {
		return nil, fmt.Errorf("%w: otherwise is nil", ErrInvalidLadder)
	}
	for i, r := range rungs {
		if r.Node == nil {
			return nil, fmt.Errorf("%w: rung %d has no node", ErrInvalidLadder, i)
		}
		if i > 0 && r.At <= rungs[i-1].At {
			return nil, fmt.Errorf("%w: rung %d threshold %d after %d", ErrUnorderedLadder, i, r.At, rungs[i-1].At)
		}
	}
	result := otherwise
	for i := len(rungs) - 1; i >= 0; i-- {
		result = NewSelect(rungs[i].At, rungs[i].Node, result)
	}
	return result, nil
}

// MustLadder is like Ladder but panics on a malformed ladder.
// It is meant for grammars written as Go code.
func MustLadder(otherwise Node, rungs ...Rung) Node {
	n, err := Ladder(rungs, otherwise)
	if err != nil {
		panic("speller: " + err.Error())
	}
	return n
}
