// Package grammar holds the numeral grammars: the built-in English and
// Russian assemblies, a registry keyed by language tag, and an engine that
// builds grammars from declarative definitions.
//
// Declarative grammars go through three phases, each reported in errors
// as "phase=<name> path=<where>":
//
//   - raw: structure of the definitions (one kind per node, split ranges,
//     ladder order, param names).
//   - expand: refs and macros are resolved into speller nodes. A def is
//     built once and shared, so overriding it affects every place that
//     refers to it.
//   - runtime: checks on the built graph; questionable but valid grammars
//     produce warnings rather than errors.
package grammar
