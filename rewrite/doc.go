// Package rewrite implements the topologically-ordered, rule-driven
// rewrite driver described in SPEC_FULL.md §4.E: it visits every cell of a
// core.Design at most once in topological order, dispatches each one
// through an ordered list of Rulesets, hash-conses structurally identical
// pure cells, and propagates any Value-shaped rewrite result to every
// downstream consumer via the same net-replacement machinery core.Design
// uses for its own deferred mutation.
//
// A single Run call drains into one core.Design.Apply(): rules queue cell
// replacements and tombstones through core.CellRef exactly as any other
// caller would. The driver also writes each changed cell it finalizes into
// its arena slot during the pass, so that FindCell sees the rewritten cell
// before Apply runs; the queued replacement carries the same cell.
package rewrite
