package grammar

import "numspell/cmd/numspell/speller"

// English builds the English grammar in title case:
// -1234 is "Minus One Thousand Two Hundred Thirty Four ".
//
// The units column ends with a placeholder that says nothing on its own.
// Hundreds and every scale redirect it to their own word, which is how
// "Two" becomes "Two Hundred" or "Two Thousand" without a second copy of
// the units.
func English() speller.Node {
	lit := speller.NewLiteral
	unit := speller.NewEmpty()

	units := speller.NewSequence(
		nonZero(wordLadder(1, "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine")),
		unit,
	)
	teens := wordLadder(10, "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
		"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen")
	tens := wordLadder(2, "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety")

	tensAndUnits := speller.NewSelect(9, units,
		speller.NewSelect(19, speller.NewSequence(teens, unit),
			speller.NewSplit(1, units, tens)))
	hundreds := nonZero(speller.NewOverride(unit, lit("Hundred"), units))
	triad := speller.NewSplit(2, tensAndUnits, hundreds)

	scale := func(word string) speller.Node {
		return nonZero(speller.NewOverride(unit, lit(word), triad))
	}
	positive := groups(triad,
		scale("Thousand"),
		scale("Million"),
		scale("Billion"),
		scale("Trillion"),
		scale("Quadrillion"),
		scale("Quintillion"),
	)
	return signed("Minus", "Zero", positive)
}
