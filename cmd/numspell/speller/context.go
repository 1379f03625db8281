package speller

import (
	"fmt"
	"strings"
)

// pow10 holds every power of ten representable in a uint64.
var pow10 = func() [20]uint64 {
	var p [20]uint64
	p[0] = 1
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1] * 10
	}
	return p
}()

// overlay is a persistent list of redirections. The newest entry wins,
// so adding a mapping for a handle already present replaces it without
// touching the parent list.
type overlay struct {
	from   Handle
	to     Node
	parent *overlay
}

func (o *overlay) lookup(h Handle) (Node, bool) {
	for ; o != nil; o = o.parent {
		if o.from == h {
			return o.to, true
		}
	}
	return nil, false
}

// Context is the value a grammar is evaluated against: what is left of
// the magnitude, the sign of the original input and the active overrides.
// It is immutable; every operation returns a new Context.
type Context struct {
	magnitude uint64
	negative  bool
	overlay   *overlay
}

// NewContext returns a root context with no overrides.
func NewContext(magnitude uint64, negative bool) Context {
	return Context{magnitude: magnitude, negative: negative}
}

// Magnitude returns the absolute value still to be spelled.
func (c Context) Magnitude() uint64 { return c.magnitude }

// Negative reports the sign of the original input.
func (c Context) Negative() bool { return c.negative }

// AtMost reports whether the magnitude is <= threshold.
func (c Context) AtMost(threshold uint64) bool { return c.magnitude <= threshold }

// SliceHigh keeps the digits above position: magnitude / 10^position.
func (c Context) SliceHigh(position int) Context {
	if position >= len(pow10) {
		c.magnitude = 0
		return c
	}
	c.magnitude /= pow10[position]
	return c
}

// SliceLow keeps the lowest position digits: magnitude mod 10^position.
func (c Context) SliceLow(position int) Context {
	if position < len(pow10) {
		c.magnitude %= pow10[position]
	}
	return c
}

// WithOverride returns a context in which from is spelled by to.
func (c Context) WithOverride(from, to Node) Context {
	c.overlay = &overlay{from: from.Handle(), to: to, parent: c.overlay}
	return c
}

// Resolve returns the node that actually spells n under this context.
func (c Context) Resolve(n Node) Node {
	if to, ok := c.overlay.lookup(n.Handle()); ok {
		return to
	}
	return n
}

// Evaluate spells n against this context.
func (c Context) Evaluate(n Node) string {
	var b strings.Builder
	c.write(&b, n)
	return b.String()
}

// write dispatches on the node variant. A redirected node spells this same
// context directly; its target is not looked up again.
func (c Context) write(b *strings.Builder, n Node) {
	switch x := c.Resolve(n).(type) {
	case *Empty:
	case *Literal:
		b.WriteString(x.Text)
		b.WriteByte(' ')
	case *Sequence:
		c.write(b, x.First)
		c.write(b, x.Second)
	case *Select:
		if c.AtMost(x.Threshold) {
			c.write(b, x.Lower)
		} else {
			c.write(b, x.Higher)
		}
	case *Sign:
		if c.negative {
			c.write(b, x.Negative)
		} else {
			c.write(b, x.NonNegative)
		}
	case *Split:
		low, high := c.SliceLow(x.Position), c.SliceHigh(x.Position)
		if x.Inverted {
			low.write(b, x.Low)
			high.write(b, x.High)
		} else {
			high.write(b, x.High)
			low.write(b, x.Low)
		}
	case *Override:
		c.WithOverride(x.From, x.To).write(b, x.Target)
	default:
		panic(fmt.Sprintf("speller: unexpected node type %T", x))
	}
}

// String is used by %v in test failures.
func (c Context) String() string {
	sign := ""
	if c.negative {
		sign = "-"
	}
	n := 0
	for o := c.overlay; o != nil; o = o.parent {
		n++
	}
	return fmt.Sprintf("%s%d (overrides=%d)", sign, c.magnitude, n)
}
