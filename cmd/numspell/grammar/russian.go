package grammar

import "numspell/cmd/numspell/speller"

// Russian builds the Russian grammar in lower case.
//
// Three placeholders follow the units word: unit after 1, unitGen after
// 2-4 and unitGenPl after 0 and 5-20. They are silent at the top level.
// Each scale binds them to its singular, paucal and plural forms, so
// 1000, 2000 and 5000 pick "тысяча", "тысячи" and "тысяч". Thousands
// also switch "один" and "два" to the feminine "одна" and "две".
func Russian() speller.Node {
	lit := speller.NewLiteral
	seq := speller.NewSequence

	one, two := lit("один"), lit("два")
	unit, unitGen, unitGenPl := speller.NewEmpty(), speller.NewEmpty(), speller.NewEmpty()

	units := speller.MustLadder(
		seq(wordLadder(5, "пять", "шесть", "семь", "восемь", "девять"), unitGenPl),
		speller.R(0, unitGenPl),
		speller.R(1, seq(one, unit)),
		speller.R(2, seq(two, unitGen)),
		speller.R(3, seq(lit("три"), unitGen)),
		speller.R(4, seq(lit("четыре"), unitGen)),
	)
	teens := wordLadder(10, "десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
		"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать")
	tens := wordLadder(2, "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят",
		"семьдесят", "восемьдесят", "девяносто")

	tensAndUnits := speller.NewSelect(9, units,
		speller.NewSelect(19, seq(teens, unitGenPl),
			speller.NewSplit(1, units, tens)))
	hundreds := nonZero(wordLadder(1, "сто", "двести", "триста", "четыреста", "пятьсот",
		"шестьсот", "семьсот", "восемьсот", "девятьсот"))
	triad := speller.NewSplit(2, tensAndUnits, hundreds)

	agree := func(singular, paucal, plural string, target speller.Node) speller.Node {
		return speller.NewOverride(unit, lit(singular),
			speller.NewOverride(unitGen, lit(paucal),
				speller.NewOverride(unitGenPl, lit(plural), target)))
	}
	masculine := func(singular, paucal, plural string) speller.Node {
		return nonZero(agree(singular, paucal, plural, triad))
	}
	thousands := nonZero(
		speller.NewOverride(one, lit("одна"),
			speller.NewOverride(two, lit("две"),
				agree("тысяча", "тысячи", "тысяч", triad))))

	positive := groups(triad,
		thousands,
		masculine("миллион", "миллиона", "миллионов"),
		masculine("миллиард", "миллиарда", "миллиардов"),
		masculine("триллион", "триллиона", "триллионов"),
		masculine("квадриллион", "квадриллиона", "квадриллионов"),
		masculine("квинтиллион", "квинтиллиона", "квинтиллионов"),
	)
	return signed("минус", "ноль", positive)
}
