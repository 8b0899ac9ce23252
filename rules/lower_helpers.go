package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// addCell is the Lower* rules' common "build this cell, add it through the
// rewrite loop, take its output Value" idiom.
func addCell(rw *rewrite.Rewriter, metaRef meta.Ref, c *core.Cell, err error) (core.Value, error) {
	if err != nil {
		return nil, err
	}
	v, _, err := rw.AddCell(c, metaRef)
	return v, err
}

func addNet(rw *rewrite.Rewriter, metaRef meta.Ref, c *core.Cell, err error) (core.Net, error) {
	v, err := addCell(rw, metaRef, c, err)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

// repeatNet returns a Value of width copies of n, used by LowerMux to
// replicate a 1-bit select across the width of its hi/lo operands.
func repeatNet(n core.Net, width int) core.Value {
	return core.Value{n}.Repeat(width)
}

// reduceAnd folds bits pairwise into a single-bit AND tree. The balancing
// passes (package balance) are responsible for re-associating this into a
// logarithmic-depth tree later; LowerEq only needs to produce a
// semantically correct linear chain.
func reduceAnd(rw *rewrite.Rewriter, metaRef meta.Ref, bits []core.Net) (core.Net, error) {
	if len(bits) == 0 {
		return core.OneNet, nil
	}
	acc := bits[0]
	for _, b := range bits[1:] {
		andC, err := core.NewAnd(core.Value{acc}, core.Value{b})
		n, err := addNet(rw, metaRef, andC, err)
		if err != nil {
			return core.Net{}, err
		}
		acc = n
	}
	return acc, nil
}

// zeros returns a Value of n copies of ZeroNet.
func zeros(n int) core.Value {
	out := make(core.Value, n)
	for i := range out {
		out[i] = core.ZeroNet
	}
	return out
}

// shiftLeftByInt returns v shifted left by the fixed amount n, zero-filling
// the low bits and truncating to stay at v's width, the same recombination
// core.Value.ShlConst performs for a runtime constant amount but taking a
// plain int known at lowering time (LowerMul's per-bit partial products,
// LowerShift's power-of-two staircase steps).
func shiftLeftByInt(v core.Value, n int) core.Value {
	width := len(v)
	out := make(core.Value, width)
	for i := 0; i < width; i++ {
		if i < n {
			out[i] = core.ZeroNet
		} else {
			out[i] = v[i-n]
		}
	}
	return out
}

// shiftRightByInt is shiftLeftByInt's right-shift counterpart, filling
// vacated high bits with fill.
func shiftRightByInt(v core.Value, n int, fill core.Net) core.Value {
	width := len(v)
	out := make(core.Value, width)
	for i := 0; i < width; i++ {
		src := i + n
		if src < width {
			out[i] = v[src]
		} else {
			out[i] = fill
		}
	}
	return out
}
