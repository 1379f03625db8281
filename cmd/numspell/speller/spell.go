package speller

// Spell returns the spelling of v under the grammar rooted at root.
// The minimum int64 is negated in unsigned arithmetic, so every value in
// the domain has a magnitude.
func Spell(root Node, v int64) string {
	if v < 0 {
		return NewContext(uint64(^v)+1, true).Evaluate(root)
	}
	return NewContext(uint64(v), false).Evaluate(root)
}

// SpellUnsigned spells a non-negative magnitude, including values above
// the int64 range.
func SpellUnsigned(root Node, m uint64) string {
	return NewContext(m, false).Evaluate(root)
}
