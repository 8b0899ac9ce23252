package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// LowerMux decomposes Mux(sel, hi, lo) into Or(And(rep(sel), hi),
// And(Not(rep(sel)), lo)), per SPEC_FULL.md §4.F. The result is plain
// bitwise primitives, which SimpleAigOpt then folds into the Aig form.
type LowerMux struct {
	rewrite.BaseRuleset
}

func (LowerMux) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	if cell.Kind != core.KindMux || cell.Width == 0 {
		return rewrite.NoMatch()
	}

	notSel, err := core.NewNot(core.Value{cell.Sel})
	if err != nil {
		return rewrite.NoMatch()
	}
	notSelV, err := addCell(rw, metaRef, notSel, nil)
	if err != nil {
		return rewrite.NoMatch()
	}

	hiSel := repeatNet(cell.Sel, cell.Width)
	loSel := repeatNet(notSelV[0], cell.Width)

	hiC, err := core.NewAnd(hiSel, cell.A)
	hiTerm, err := addCell(rw, metaRef, hiC, err)
	if err != nil {
		return rewrite.NoMatch()
	}
	loC, err := core.NewAnd(loSel, cell.B)
	loTerm, err := addCell(rw, metaRef, loC, err)
	if err != nil {
		return rewrite.NoMatch()
	}
	orC, err := core.NewOr(hiTerm, loTerm)
	out, err := addCell(rw, metaRef, orC, err)
	if err != nil {
		return rewrite.NoMatch()
	}
	return rewrite.ReplaceWithValue(out)
}
