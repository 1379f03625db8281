package speller

import (
	"fmt"
	"strings"
)

// Visit describes one step of a Walk.
type Visit struct {
	Node  Node
	Depth int
	// Role is the child slot the node occupies in its parent ("low",
	// "target", ...); empty for the root.
	Role string
	// Seen is true when the node was already visited through another
	// parent. Its children are not walked again.
	Seen bool
}

var roles = map[string][]string{
	"sequence": {"first", "second"},
	"select":   {"lower", "higher"},
	"sign":     {"negative", "non-negative"},
	"split":    {"low", "high"},
	"override": {"from", "to", "target"},
}

// Walk visits the graph under root depth-first, parents before children.
// Shared nodes are reported once with Seen=false and then with Seen=true
// at every other parent. Returning false from fn skips the node's children.
func Walk(root Node, fn func(Visit) bool) {
	seen := make(map[Handle]struct{})
	var walk func(n Node, depth int, role string)
	walk = func(n Node, depth int, role string) {
		_, dup := seen[n.Handle()]
		if !fn(Visit{Node: n, Depth: depth, Role: role, Seen: dup}) || dup {
			return
		}
		seen[n.Handle()] = struct{}{}
		names := roles[Kind(n)]
		for i, c := range Children(n) {
			walk(c, depth+1, names[i])
		}
	}
	walk(root, 0, "")
}

// Label returns a one-line description of n without its children.
func Label(n Node) string {
	switch x := n.(type) {
	case *Literal:
		return fmt.Sprintf("literal %q", x.Text)
	case *Select:
		return fmt.Sprintf("select <=%d", x.Threshold)
	case *Split:
		if x.Inverted {
			return fmt.Sprintf("split @%d inverted", x.Position)
		}
		return fmt.Sprintf("split @%d", x.Position)
	default:
		return Kind(n)
	}
}

// Describe renders the graph under root as an indented listing. Nodes
// reached a second time are printed as a reference to their handle.
func Describe(root Node) string {
	var b strings.Builder
	Walk(root, func(v Visit) bool {
		b.WriteString(strings.Repeat("  ", v.Depth))
		if v.Role != "" {
			b.WriteString(v.Role)
			b.WriteString(": ")
		}
		if v.Seen {
			fmt.Fprintf(&b, "-> #%d\n", v.Node.Handle())
			return false
		}
		fmt.Fprintf(&b, "#%d %s\n", v.Node.Handle(), Label(v.Node))
		return true
	})
	return b.String()
}

// Count returns the number of distinct nodes reachable from root.
func Count(root Node) int {
	n := 0
	Walk(root, func(v Visit) bool {
		if !v.Seen {
			n++
		}
		return true
	})
	return n
}
