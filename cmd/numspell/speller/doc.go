// Package speller turns integers into words with small composable grammars.
//
// A grammar is a graph of immutable nodes built once and shared freely:
//
//   - Empty and Literal are the vocabulary ("", "One ").
//   - Sequence glues two spellings of the same number.
//   - Select branches on a threshold; Ladder chains them into a lookup table.
//   - Sign branches on the sign of the input.
//   - Split cuts the number at a decimal position and spells both halves.
//   - Override redirects one node to another for the subtree it wraps.
//
// Evaluation threads a Context (magnitude, sign, overrides) through the graph.
// Overrides are how agreement works: a shared "units" grammar refers to a
// placeholder node, and an ancestor decides what the placeholder says
// ("Hundred", "тысячи", a feminine "одна"...) without the units grammar
// knowing about its callers.
//
// Nodes never change after construction and a Context is a value, so a
// grammar can be evaluated from any number of goroutines without locking.
package speller
