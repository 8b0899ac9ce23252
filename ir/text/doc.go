// Package text implements a small line-oriented textual IR for
// core.Design, sketched per SPEC_FULL.md §4.H/§6: a module header, one
// "%id:width = opname operands;" statement per cell, bit/int literals,
// and control-net negation ("~%id"). Anything after a "!" on a cell line
// (flags and annotations) is dropped by the parser, and the emitter writes
// no annotations.
//
// This is a deliberate sketch, not a production parser: it covers the
// subset of cell kinds needed to round-trip the bitwise/arithmetic/
// comparison/shift/stateful core and the worked examples in this repo's
// tests, not every annotation or flag named in spec §6. Reserved opcodes
// (e.g. "parswitch") are accepted and silently skipped rather than
// rejected, per SPEC_FULL.md §9.
package text
