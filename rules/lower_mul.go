package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// LowerMul decomposes a truncating Mul(a,b) into an iterated shift-and-add:
// for each bit of b, conditionally add a shifted copy of a into a running
// accumulator via Adc, dropping the carry out each step and keeping only the
// low len(a) bits of the final sum, per SPEC_FULL.md §4.F.
type LowerMul struct {
	rewrite.BaseRuleset
}

func (LowerMul) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	if cell.Kind != core.KindMul {
		return rewrite.NoMatch()
	}
	width := cell.Width
	if width == 0 {
		return rewrite.ReplaceWithValue(core.Value{})
	}

	acc := zeros(width)
	zero := zeros(width)
	for i := 0; i < len(cell.B); i++ {
		shifted := shiftLeftByInt(cell.A, i)
		muxC, err := core.NewMux(cell.B[i], shifted, zero)
		term, err := addCell(rw, metaRef, muxC, err)
		if err != nil {
			return rewrite.NoMatch()
		}
		adcC, err := core.NewAdc(acc, term, core.ZeroNet)
		sum, err := addCell(rw, metaRef, adcC, err)
		if err != nil {
			return rewrite.NoMatch()
		}
		acc = sum.Slice(0, width)
	}
	return rewrite.ReplaceWithValue(acc)
}
