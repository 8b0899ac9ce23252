package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// LowerEq decomposes Eq(a,b) into a reduce-AND of per-bit XNOR (Not(Xor))
// terms, per SPEC_FULL.md §4.F. A zero-width comparison is vacuously true.
type LowerEq struct {
	rewrite.BaseRuleset
}

func (LowerEq) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	if cell.Kind != core.KindEq {
		return rewrite.NoMatch()
	}
	if len(cell.A) == 0 {
		return rewrite.ReplaceWithValue(core.Value{core.OneNet})
	}

	xnors := make([]core.Net, len(cell.A))
	for i := range cell.A {
		xorC, err := core.NewXor(core.Value{cell.A[i]}, core.Value{cell.B[i]})
		xorN, err := addNet(rw, metaRef, xorC, err)
		if err != nil {
			return rewrite.NoMatch()
		}
		notC, err := core.NewNot(core.Value{xorN})
		notN, err := addNet(rw, metaRef, notC, err)
		if err != nil {
			return rewrite.NoMatch()
		}
		xnors[i] = notN
	}

	result, err := reduceAnd(rw, metaRef, xnors)
	if err != nil {
		return rewrite.NoMatch()
	}
	return rewrite.ReplaceWithValue(core.Value{result})
}
