package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// LowerLt decomposes ULt/SLt into the classic two's-complement-subtraction
// trick: a<b iff the carry out of a+(~b)+1 is clear, per SPEC_FULL.md §4.F.
// SLt reduces to ULt by flipping both operands' sign bit first, the
// standard way to turn a signed comparison into an unsigned one.
type LowerLt struct {
	rewrite.BaseRuleset
}

func signFlip(rw *rewrite.Rewriter, metaRef meta.Ref, v core.Value) (core.Value, error) {
	if len(v) == 0 {
		return v, nil
	}
	notC, err := core.NewNot(core.Value{v.MSB()})
	notMsb, err := addNet(rw, metaRef, notC, err)
	if err != nil {
		return nil, err
	}
	return v.Slice(0, len(v)-1).Concat(core.Value{notMsb}), nil
}

func lowerLt(rw *rewrite.Rewriter, metaRef meta.Ref, a, b core.Value) rewrite.Result {
	notBC, err := core.NewNot(b)
	notB, err := addCell(rw, metaRef, notBC, err)
	if err != nil {
		return rewrite.NoMatch()
	}
	adcC, err := core.NewAdc(a, notB, core.OneNet)
	sum, err := addCell(rw, metaRef, adcC, err)
	if err != nil {
		return rewrite.NoMatch()
	}
	notC, err := core.NewNot(core.Value{sum.MSB()})
	result, err := addNet(rw, metaRef, notC, err)
	if err != nil {
		return rewrite.NoMatch()
	}
	return rewrite.ReplaceWithValue(core.Value{result})
}

func (LowerLt) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	switch cell.Kind {
	case core.KindULt:
		return lowerLt(rw, metaRef, cell.A, cell.B)
	case core.KindSLt:
		a, err := signFlip(rw, metaRef, cell.A)
		if err != nil {
			return rewrite.NoMatch()
		}
		b, err := signFlip(rw, metaRef, cell.B)
		if err != nil {
			return rewrite.NoMatch()
		}
		return lowerLt(rw, metaRef, a, b)
	}
	return rewrite.NoMatch()
}
