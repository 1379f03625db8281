package grammar

import "numspell/cmd/numspell/speller"

// wordLadder maps first, first+1, ... to words. The last word also covers
// every larger magnitude.
func wordLadder(first uint64, words ...string) speller.Node {
	last := len(words) - 1
	rungs := make([]speller.Rung, last)
	for i, w := range words[:last] {
		rungs[i] = speller.R(first+uint64(i), speller.NewLiteral(w))
	}
	return speller.MustLadder(speller.NewLiteral(words[last]), rungs...)
}

// nonZero says nothing for a zero magnitude and n otherwise.
func nonZero(n speller.Node) speller.Node {
	return speller.NewSelect(0, speller.NewEmpty(), n)
}

// groups chains digit groups of three, least significant first:
//
//	Split(3, triad, Split(3, scales[0], Split(3, scales[1], ... scales[n-1])))
func groups(triad speller.Node, scales ...speller.Node) speller.Node {
	high := scales[len(scales)-1]
	for i := len(scales) - 2; i >= 0; i-- {
		high = speller.NewSplit(3, scales[i], high)
	}
	return speller.NewSplit(3, triad, high)
}

// signed wraps the positive grammar with the zero word and the minus word.
func signed(minus, zero string, positive speller.Node) speller.Node {
	return speller.NewSign(
		speller.NewSequence(speller.NewLiteral(minus), positive),
		speller.NewSelect(0, speller.NewLiteral(zero), positive),
	)
}
