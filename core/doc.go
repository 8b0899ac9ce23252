// Package core defines the central netlist data model: three-valued Bit,
// Net/ControlNet/Value references, the tagged Cell catalog, the Design
// arena that owns them, and the Metadata store attached to cells.
//
// A Design is a flat arena of Cells addressed by Net. Mutation is deferred:
// ReplaceNet/ReplaceValue/CellRef.Replace enqueue changes into a change
// queue, and Apply drains that queue in a fixed order (tombstones, then
// cell replacements, then net-map propagation to a fixpoint). Compact then
// performs reverse-reachability dead-code elimination and renumbers the
// arena. This mirrors the deferred-mutation protocol used by rewrite
// passes throughout this module (see package rewrite).
//
// A Design is not safe for concurrent mutation from multiple goroutines.
// It is owned by exactly one pass at a time; see the module's design notes
// for why, unlike some other arena types in this style of codebase, no
// locking is used here.
package core
