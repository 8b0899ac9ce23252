package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// Normalize is a pure reassociation pass: it canonicalizes the operand
// order of commutative cells (And, Or, Xor, Adc, Aig, Eq, Mul) under
// core.Value.Compare/core.Net.Compare, and replaces Buf with its input.
// Per SPEC_FULL.md §4.F it is monotone: once a cell is in canonical order,
// Rewrite returns NoMatch, so running Normalize twice changes nothing
// (spec §8 invariant 3, "Normalization idempotence").
type Normalize struct {
	rewrite.BaseRuleset
}

func controlCompare(a, b core.ControlNet) int {
	if c := a.Net.Compare(b.Net); c != 0 {
		return c
	}
	if a.Negated == b.Negated {
		return 0
	}
	if !a.Negated {
		return -1
	}
	return 1
}

func (Normalize) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	switch cell.Kind {
	case core.KindBuf:
		return rewrite.ReplaceWithValue(cell.A)

	case core.KindAnd, core.KindOr, core.KindXor, core.KindEq, core.KindMul, core.KindAdc:
		if cell.A.Compare(cell.B) <= 0 {
			return rewrite.NoMatch()
		}
		swapped := *cell
		swapped.A, swapped.B = cell.B, cell.A
		return rewrite.ReplaceCell(&swapped)

	case core.KindAig:
		if controlCompare(cell.CA, cell.CB) <= 0 {
			return rewrite.NoMatch()
		}
		swapped := *cell
		swapped.CA, swapped.CB = cell.CB, cell.CA
		return rewrite.ReplaceCell(&swapped)
	}
	return rewrite.NoMatch()
}
