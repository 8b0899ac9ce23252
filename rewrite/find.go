package rewrite

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
)

// FindKind tags which of the three FindCell shapes a lookup produced, per
// SPEC_FULL.md §4.E.
type FindKind uint8

const (
	// FindConst means the net is one of the reserved constant/undef nets.
	FindConst FindKind = iota
	// FindOpaque means the net refers to a cell the driver has not yet
	// finished processing in this pass; rules must not look through it.
	FindOpaque
	// FindCell means the net resolves to a live, already-processed cell.
	FindCell
)

// FindResult is the outcome of Rewriter.FindCell.
type FindResult struct {
	Kind      FindKind
	Bit       core.Bit  // valid when Kind == FindConst
	Cell      *core.Cell // valid when Kind == FindCell
	Meta      meta.Ref   // valid when Kind == FindCell
	BitOffset int        // valid when Kind == FindCell
}

// FindCell resolves n to a constant bit, an opaque (not-yet-processed)
// reference, or a live already-processed cell plus the bit offset within
// its output that n addresses. Rules never dereference a net directly;
// they always go through this surface so that the rewrite driver's
// topological ordering is the only thing a rule can observe.
func (rw *Rewriter) FindCell(n core.Net) FindResult {
	if b, ok := n.AsConstBit(); ok {
		return FindResult{Kind: FindConst, Bit: b}
	}
	if !rw.processed[n] {
		return FindResult{Kind: FindOpaque}
	}
	ref, bit, err := rw.d.FindCell(n)
	if err != nil {
		return FindResult{Kind: FindOpaque}
	}
	c := ref.Cell()
	return FindResult{Kind: FindCell, Cell: c, Meta: c.Meta, BitOffset: bit}
}
