package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// LowerShift decomposes Shl/UShr/SShr/XShr into a binary staircase of Mux
// cells, per SPEC_FULL.md §4.F: bit i of the shift amount conditionally
// applies a fixed shift of stride*2^i, each step built from the previous
// one's result. A step whose fixed amount already reaches or exceeds the
// value's width collapses to the kind's overflow fill (0, sign-repeat, or
// X) without needing a separate "remaining amount" check, since every
// larger step in the staircase shifts an already-correctly-filled value by
// at least as much again.
type LowerShift struct {
	rewrite.BaseRuleset
}

// stepAmount computes the fixed shift distance contributed by amount bit i,
// clamped to width once it would reach or exceed it (avoiding overflow for
// large i while preserving "shift by >= width" semantics).
func stepAmount(stride uint32, i, width int) int {
	if i >= 32 {
		return width
	}
	n := int64(stride) << uint(i)
	if n < 0 || n > int64(width) {
		return width
	}
	return int(n)
}

func (LowerShift) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	var left bool
	switch cell.Kind {
	case core.KindShl:
		left = true
	case core.KindUShr, core.KindSShr, core.KindXShr:
		left = false
	default:
		return rewrite.NoMatch()
	}
	width := cell.Width
	if width == 0 || len(cell.B) == 0 {
		return rewrite.ReplaceWithValue(cell.A)
	}

	value := cell.A
	for i := range cell.B {
		n := stepAmount(cell.Stride, i, width)
		var shifted core.Value
		if left {
			shifted = shiftLeftByInt(value, n)
		} else {
			fill := core.ZeroNet
			switch cell.Kind {
			case core.KindSShr:
				fill = value.MSB()
			case core.KindXShr:
				fill = core.UndefNet
			}
			shifted = shiftRightByInt(value, n, fill)
		}
		muxC, err := core.NewMux(cell.B[i], shifted, value)
		next, err := addCell(rw, metaRef, muxC, err)
		if err != nil {
			return rewrite.NoMatch()
		}
		value = next
	}
	return rewrite.ReplaceWithValue(value)
}
