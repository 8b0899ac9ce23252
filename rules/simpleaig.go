package rules

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// SimpleAigOpt normalizes Boolean fragments into the AIG + single-bit XOR +
// single-bit NOT form described in SPEC_FULL.md §4.F: it bitblasts
// multi-bit And/Or/Xor/Not, rewrites And/Or into Aig, absorbs NOTs into
// ControlNet polarity, constant-folds, and applies the idempotence,
// contradiction, subsumption, resolution, XOR-recognition, AND-XOR, and
// XOR push/fold identities over Aig-and-Xor-shaped subgraphs.
//
// Per spec, each rewrite creates at most one new non-NOT cell and never
// increases the logic level, which is what keeps the pass terminating: see
// SPEC_FULL.md §5 "Termination".
type SimpleAigOpt struct {
	rewrite.BaseRuleset
}

func (SimpleAigOpt) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	switch cell.Kind {
	case core.KindNot:
		return rewriteNot(rw, cell, metaRef)
	case core.KindAnd:
		return rewriteAnd(rw, cell, metaRef)
	case core.KindOr:
		return rewriteOr(rw, cell, metaRef)
	case core.KindXor:
		return rewriteXor(rw, cell, metaRef)
	case core.KindAig:
		return rewriteAig(rw, cell, metaRef)
	}
	return rewrite.NoMatch()
}

// canonLit absorbs a chain of Not-cell producers into cn's own polarity,
// per "absorb NOTs on AIG inputs by flipping polarity".
func canonLit(rw *rewrite.Rewriter, cn core.ControlNet) core.ControlNet {
	for {
		fr := rw.FindCell(cn.Net)
		if fr.Kind != rewrite.FindCell || fr.Cell.Kind != core.KindNot || len(fr.Cell.A) != 1 {
			return cn
		}
		cn = core.ControlNet{Net: fr.Cell.A[0], Negated: !cn.Negated}
	}
}

func negLit(cn core.ControlNet) core.ControlNet { return cn.Not() }

func litEqual(a, b core.ControlNet) bool { return a.Net == b.Net && a.Negated == b.Negated }

// materializeLit returns a plain Net carrying lit's value, building a Not
// cell only when lit is negated and no cheaper constant shortcut applies.
func materializeLit(rw *rewrite.Rewriter, metaRef meta.Ref, lit core.ControlNet) (core.Net, error) {
	if !lit.Negated {
		return lit.Net, nil
	}
	if b, ok := lit.Net.AsConstBit(); ok {
		switch b {
		case core.Bit0:
			return core.OneNet, nil
		case core.Bit1:
			return core.ZeroNet, nil
		default:
			return core.UndefNet, nil
		}
	}
	notCell, err := core.NewNot(core.Value{lit.Net})
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(notCell, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

// tryAig reports whether n is produced by an Aig cell, returning its two
// ControlNet operands.
func tryAig(rw *rewrite.Rewriter, n core.Net) (ca, cb core.ControlNet, ok bool) {
	fr := rw.FindCell(n)
	if fr.Kind != rewrite.FindCell || fr.Cell.Kind != core.KindAig {
		return core.ControlNet{}, core.ControlNet{}, false
	}
	return fr.Cell.CA, fr.Cell.CB, true
}

// tryXor reports whether n is produced by a single-bit Xor cell.
func tryXor(rw *rewrite.Rewriter, n core.Net) (x, y core.Net, ok bool) {
	fr := rw.FindCell(n)
	if fr.Kind != rewrite.FindCell || fr.Cell.Kind != core.KindXor || len(fr.Cell.A) != 1 || len(fr.Cell.B) != 1 {
		return core.Net{}, core.Net{}, false
	}
	return fr.Cell.A[0], fr.Cell.B[0], true
}

// buildAig appends an Aig(ca, cb) cell (through the usual rule loop, so the
// result is itself re-simplified) and returns its output net.
func buildAig(rw *rewrite.Rewriter, metaRef meta.Ref, ca, cb core.ControlNet) (core.Net, error) {
	cell, err := core.NewAig(ca, cb)
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(cell, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

// buildNot appends a Not(n) cell and returns its output net.
func buildNot(rw *rewrite.Rewriter, metaRef meta.Ref, n core.Net) (core.Net, error) {
	cell, err := core.NewNot(core.Value{n})
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(cell, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	return v[0], nil
}

// buildXor appends a Xor(a.Net, b.Net) cell honoring a/b's polarity: since
// Xor is insensitive to flipping both operands' sign, an odd number of
// negated operands surfaces as one outer Not, per "XOR push/fold".
func buildXor(rw *rewrite.Rewriter, metaRef meta.Ref, a, b core.ControlNet) (core.Net, error) {
	xc, err := core.NewXor(core.Value{a.Net}, core.Value{b.Net})
	if err != nil {
		return core.Net{}, err
	}
	v, _, err := rw.AddCell(xc, metaRef)
	if err != nil {
		return core.Net{}, err
	}
	if a.Negated == b.Negated {
		return v[0], nil
	}
	return buildNot(rw, metaRef, v[0])
}

func bitblastBinary(rw *rewrite.Rewriter, metaRef meta.Ref, a, b core.Value, build func(av, bv core.Value) (*core.Cell, error)) (core.Value, error) {
	out := make(core.Value, len(a))
	for i := range a {
		c, err := build(core.Value{a[i]}, core.Value{b[i]})
		if err != nil {
			return nil, err
		}
		v, _, err := rw.AddCell(c, metaRef)
		if err != nil {
			return nil, err
		}
		out[i] = v[0]
	}
	return out, nil
}

func rewriteNot(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref) rewrite.Result {
	if cell.Width > 1 {
		out := make(core.Value, cell.Width)
		for i := 0; i < cell.Width; i++ {
			c, err := core.NewNot(core.Value{cell.A[i]})
			if err != nil {
				return rewrite.NoMatch()
			}
			v, _, err := rw.AddCell(c, metaRef)
			if err != nil {
				return rewrite.NoMatch()
			}
			out[i] = v[0]
		}
		return rewrite.ReplaceWithValue(out)
	}
	if cell.Width == 0 {
		return rewrite.NoMatch()
	}
	in := cell.A[0]
	// fold over constant
	if b, ok := in.AsConstBit(); ok {
		return rewrite.ReplaceWithValue(core.Value{constNet(b.Not())})
	}
	// involution: Not(Not(x)) = x
	if fr := rw.FindCell(in); fr.Kind == rewrite.FindCell && fr.Cell.Kind == core.KindNot && len(fr.Cell.A) == 1 {
		return rewrite.ReplaceWithValue(core.Value{fr.Cell.A[0]})
	}
	return rewrite.NoMatch()
}

func constNet(b core.Bit) core.Net {
	switch b {
	case core.Bit0:
		return core.ZeroNet
	case core.Bit1:
		return core.OneNet
	default:
		return core.UndefNet
	}
}

func rewriteAnd(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref) rewrite.Result {
	if cell.Width == 0 {
		return rewrite.NoMatch()
	}
	if cell.Width > 1 {
		out, err := bitblastBinary(rw, metaRef, cell.A, cell.B, func(av, bv core.Value) (*core.Cell, error) {
			return core.NewAnd(av, bv)
		})
		if err != nil {
			return rewrite.NoMatch()
		}
		return rewrite.ReplaceWithValue(out)
	}
	newCell, err := core.NewAig(core.Pos(cell.A[0]), core.Pos(cell.B[0]))
	if err != nil {
		return rewrite.NoMatch()
	}
	return rewrite.ReplaceCell(newCell)
}

func rewriteOr(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref) rewrite.Result {
	if cell.Width == 0 {
		return rewrite.NoMatch()
	}
	if cell.Width > 1 {
		out, err := bitblastBinary(rw, metaRef, cell.A, cell.B, func(av, bv core.Value) (*core.Cell, error) {
			return core.NewOr(av, bv)
		})
		if err != nil {
			return rewrite.NoMatch()
		}
		return rewrite.ReplaceWithValue(out)
	}
	aigNet, err := buildAig(rw, metaRef, core.Neg(cell.A[0]), core.Neg(cell.B[0]))
	if err != nil {
		return rewrite.NoMatch()
	}
	notCell, err := core.NewNot(core.Value{aigNet})
	if err != nil {
		return rewrite.NoMatch()
	}
	return rewrite.ReplaceCell(notCell)
}

// rewriteAig implements the single-bit AIG local rewrites: constant
// folding, idempotence, contradiction, subsumption, resolution, and XOR
// recognition from SPEC_FULL.md §4.F.
func rewriteAig(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref) rewrite.Result {
	ca := canonLit(rw, cell.CA)
	cb := canonLit(rw, cell.CB)
	if ca != cell.CA || cb != cell.CB {
		newCell, err := core.NewAig(ca, cb)
		if err != nil {
			return rewrite.NoMatch()
		}
		return rewrite.ReplaceCell(newCell)
	}

	if bit, ok := ca.AsConstBit(); ok {
		switch bit {
		case core.Bit0:
			return rewrite.ReplaceWithValue(core.Value{core.ZeroNet})
		case core.Bit1:
			n, err := materializeLit(rw, metaRef, cb)
			if err != nil {
				return rewrite.NoMatch()
			}
			return rewrite.ReplaceWithValue(core.Value{n})
		default: // X
			if cbit, ok := cb.AsConstBit(); ok && cbit == core.Bit0 {
				return rewrite.ReplaceWithValue(core.Value{core.ZeroNet})
			}
			return rewrite.ReplaceWithValue(core.Value{core.UndefNet})
		}
	}
	if bit, ok := cb.AsConstBit(); ok {
		switch bit {
		case core.Bit0:
			return rewrite.ReplaceWithValue(core.Value{core.ZeroNet})
		case core.Bit1:
			n, err := materializeLit(rw, metaRef, ca)
			if err != nil {
				return rewrite.NoMatch()
			}
			return rewrite.ReplaceWithValue(core.Value{n})
		default:
			return rewrite.ReplaceWithValue(core.Value{core.UndefNet})
		}
	}

	// a&a=a, a&¬a=0
	if ca.Net == cb.Net {
		if ca.Negated == cb.Negated {
			n, err := materializeLit(rw, metaRef, ca)
			if err != nil {
				return rewrite.NoMatch()
			}
			return rewrite.ReplaceWithValue(core.Value{n})
		}
		return rewrite.ReplaceWithValue(core.Value{core.ZeroNet})
	}

	if res, ok := rewriteAigStructural(rw, metaRef, ca, cb); ok {
		return res
	}
	if res, ok := rewriteAigStructural(rw, metaRef, cb, ca); ok {
		return res
	}
	return rewrite.NoMatch()
}

// rewriteAigStructural tries every identity that treats lhs as the "(a∧b)"
// or "¬(a∧b)" sub-expression and rhs as the other Aig operand, matching
// idempotence / contradiction / subsumption / resolution / XOR recognition
// from SPEC_FULL.md §4.F. Called twice by the caller with operands swapped
// to cover both orderings.
func rewriteAigStructural(rw *rewrite.Rewriter, metaRef meta.Ref, lhs, rhs core.ControlNet) (rewrite.Result, bool) {
	x, y, ok := tryAig(rw, lhs.Net)
	if !ok {
		return rewrite.Result{}, false
	}

	if !lhs.Negated {
		// lhs = a∧b
		if litEqual(x, rhs) || litEqual(y, rhs) {
			// (a∧b)∧a = a∧b
			return rewrite.ReplaceWithValue(core.Value{lhs.Net}), true
		}
		if litEqual(negLit(x), rhs) || litEqual(negLit(y), rhs) {
			// (a∧b)∧¬a = 0
			return rewrite.ReplaceWithValue(core.Value{core.ZeroNet}), true
		}
		// (a∧b)∧(a∧c) = (a∧b)∧c
		if x2, y2, ok2 := tryAig(rw, rhs.Net); ok2 && !rhs.Negated {
			switch {
			case litEqual(x, x2):
				if n, err := materializeLit(rw, metaRef, y2); err == nil {
					if out, err := buildAig(rw, metaRef, lhs, core.Pos(n)); err == nil {
						return rewrite.ReplaceWithValue(core.Value{out}), true
					}
				}
			case litEqual(x, y2):
				if n, err := materializeLit(rw, metaRef, x2); err == nil {
					if out, err := buildAig(rw, metaRef, lhs, core.Pos(n)); err == nil {
						return rewrite.ReplaceWithValue(core.Value{out}), true
					}
				}
			case litEqual(y, x2):
				if n, err := materializeLit(rw, metaRef, y2); err == nil {
					if out, err := buildAig(rw, metaRef, lhs, core.Pos(n)); err == nil {
						return rewrite.ReplaceWithValue(core.Value{out}), true
					}
				}
			case litEqual(y, y2):
				if n, err := materializeLit(rw, metaRef, x2); err == nil {
					if out, err := buildAig(rw, metaRef, lhs, core.Pos(n)); err == nil {
						return rewrite.ReplaceWithValue(core.Value{out}), true
					}
				}
			}
		}
		return rewrite.Result{}, false
	}

	// lhs = ¬(a∧b) : subsumption, resolution, XOR recognition
	if litEqual(x, rhs) {
		// ¬(a∧b)∧a = ¬b∧a
		out, err := buildAig(rw, metaRef, negLit(y), rhs)
		if err != nil {
			return rewrite.Result{}, false
		}
		return rewrite.ReplaceWithValue(core.Value{out}), true
	}
	if litEqual(y, rhs) {
		out, err := buildAig(rw, metaRef, negLit(x), rhs)
		if err != nil {
			return rewrite.Result{}, false
		}
		return rewrite.ReplaceWithValue(core.Value{out}), true
	}
	if litEqual(negLit(x), rhs) {
		// ¬(a∧b)∧¬a = ¬a
		n, err := materializeLit(rw, metaRef, rhs)
		if err != nil {
			return rewrite.Result{}, false
		}
		return rewrite.ReplaceWithValue(core.Value{n}), true
	}
	if litEqual(negLit(y), rhs) {
		n, err := materializeLit(rw, metaRef, rhs)
		if err != nil {
			return rewrite.Result{}, false
		}
		return rewrite.ReplaceWithValue(core.Value{n}), true
	}

	// rhs must also be a ¬(...) Aig sub-expression for resolution/XOR.
	if !rhs.Negated {
		return rewrite.Result{}, false
	}
	x2, y2, ok2 := tryAig(rw, rhs.Net)
	if !ok2 {
		return rewrite.Result{}, false
	}

	// resolution: ¬(a∧b)∧¬(¬a∧b) = ¬b
	for _, shared := range [][2]core.ControlNet{{x, y}, {y, x}} {
		other, sharedLit := shared[0], shared[1]
		for _, other2 := range []core.ControlNet{x2, y2} {
			if !litEqual(negLit(other), other2) {
				continue
			}
			var rest2 core.ControlNet
			if litEqual(other2, x2) {
				rest2 = y2
			} else {
				rest2 = x2
			}
			if litEqual(sharedLit, rest2) {
				n, err := materializeLit(rw, metaRef, negLit(sharedLit))
				if err == nil {
					return rewrite.ReplaceWithValue(core.Value{n}), true
				}
			}
		}
	}

	// XOR recognition: ¬(a∧b)∧¬(¬a∧¬b) = a⊕b
	if (litEqual(negLit(x), x2) && litEqual(negLit(y), y2)) ||
		(litEqual(negLit(x), y2) && litEqual(negLit(y), x2)) {
		out, err := buildXor(rw, metaRef, x, y)
		if err != nil {
			return rewrite.Result{}, false
		}
		return rewrite.ReplaceWithValue(core.Value{out}), true
	}

	return rewrite.Result{}, false
}

// rewriteXor implements single-bit Xor constant folding, NOT push/fold,
// and the AND-XOR identities from SPEC_FULL.md §4.F.
func rewriteXor(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref) rewrite.Result {
	if cell.Width == 0 {
		return rewrite.NoMatch()
	}
	if cell.Width > 1 {
		out, err := bitblastBinary(rw, metaRef, cell.A, cell.B, func(av, bv core.Value) (*core.Cell, error) {
			return core.NewXor(av, bv)
		})
		if err != nil {
			return rewrite.NoMatch()
		}
		return rewrite.ReplaceWithValue(out)
	}

	litA := canonLit(rw, core.Pos(cell.A[0]))
	litB := canonLit(rw, core.Pos(cell.B[0]))
	if litA.Net != cell.A[0] || litA.Negated || litB.Net != cell.B[0] || litB.Negated {
		// at least one operand absorbed a NOT: ¬a⊕b = ¬(a⊕b)
		out, err := buildXor(rw, metaRef, litA, litB)
		if err != nil {
			return rewrite.NoMatch()
		}
		return rewrite.ReplaceWithValue(core.Value{out})
	}

	if bit, ok := litA.AsConstBit(); ok {
		switch bit {
		case core.Bit0:
			return rewrite.ReplaceWithValue(core.Value{litB.Net})
		case core.Bit1:
			n, err := materializeLit(rw, metaRef, negLit(litB))
			if err != nil {
				return rewrite.NoMatch()
			}
			return rewrite.ReplaceWithValue(core.Value{n})
		default:
			return rewrite.ReplaceWithValue(core.Value{core.UndefNet})
		}
	}
	if bit, ok := litB.AsConstBit(); ok {
		switch bit {
		case core.Bit0:
			return rewrite.ReplaceWithValue(core.Value{litA.Net})
		case core.Bit1:
			n, err := materializeLit(rw, metaRef, negLit(litA))
			if err != nil {
				return rewrite.NoMatch()
			}
			return rewrite.ReplaceWithValue(core.Value{n})
		default:
			return rewrite.ReplaceWithValue(core.Value{core.UndefNet})
		}
	}

	if litA.Net == litB.Net {
		return rewrite.ReplaceWithValue(core.Value{core.ZeroNet}) // a^a=0
	}

	// AND-XOR: (a∧b)⊕a=a∧¬b ; (a∧b)⊕¬a=¬(a∧¬b)
	if res, ok := andXor(rw, metaRef, litA, litB); ok {
		return res
	}
	if res, ok := andXor(rw, metaRef, litB, litA); ok {
		return res
	}

	// (a⊕b)⊕a=b ; (a⊕b)⊕(a⊕c)=b⊕c
	if res, ok := xorFold(rw, metaRef, litA, litB); ok {
		return res
	}
	if res, ok := xorFold(rw, metaRef, litB, litA); ok {
		return res
	}

	return rewrite.NoMatch()
}

// andXor matches the two AND-XOR identities: (a∧b)⊕a=a∧¬b and
// (a∧b)⊕¬a=¬(a∧¬b) (plus the symmetric form with b in place of a).
func andXor(rw *rewrite.Rewriter, metaRef meta.Ref, andSide, other core.ControlNet) (rewrite.Result, bool) {
	x, y, ok := tryAig(rw, andSide.Net)
	if !ok || andSide.Negated {
		return rewrite.Result{}, false
	}
	var shared, rest core.ControlNet
	var negatedForm bool
	switch {
	case litEqual(x, other):
		shared, rest, negatedForm = x, y, false
	case litEqual(y, other):
		shared, rest, negatedForm = y, x, false
	case litEqual(negLit(x), other):
		shared, rest, negatedForm = x, y, true
	case litEqual(negLit(y), other):
		shared, rest, negatedForm = y, x, true
	default:
		return rewrite.Result{}, false
	}
	out, err := buildAig(rw, metaRef, shared, negLit(rest))
	if err != nil {
		return rewrite.Result{}, false
	}
	if !negatedForm {
		return rewrite.ReplaceWithValue(core.Value{out}), true
	}
	notOut, err := buildNot(rw, metaRef, out)
	if err != nil {
		return rewrite.Result{}, false
	}
	return rewrite.ReplaceWithValue(core.Value{notOut}), true
}

func xorFold(rw *rewrite.Rewriter, metaRef meta.Ref, xorSide, other core.ControlNet) (rewrite.Result, bool) {
	x, y, ok := tryXor(rw, xorSide.Net)
	if !ok {
		return rewrite.Result{}, false
	}
	// (a⊕b)⊕a = b, honoring xorSide's own sign.
	if !other.Negated {
		switch other.Net {
		case x:
			n, err := materializeLit(rw, metaRef, core.ControlNet{Net: y, Negated: xorSide.Negated})
			if err == nil {
				return rewrite.ReplaceWithValue(core.Value{n}), true
			}
		case y:
			n, err := materializeLit(rw, metaRef, core.ControlNet{Net: x, Negated: xorSide.Negated})
			if err == nil {
				return rewrite.ReplaceWithValue(core.Value{n}), true
			}
		}
	}

	// (a⊕b)⊕(a⊕c) = b⊕c
	x2, y2, ok2 := tryXor(rw, other.Net)
	if !ok2 {
		return rewrite.Result{}, false
	}
	outSign := xorSide.Negated != other.Negated
	combos := [][2]core.Net{{x, x2}, {x, y2}, {y, x2}, {y, y2}}
	for _, c := range combos {
		if c[0] != c[1] {
			continue
		}
		var r1, r2 core.Net
		if c[0] == x {
			r1 = y
		} else {
			r1 = x
		}
		if c[1] == x2 {
			r2 = y2
		} else {
			r2 = x2
		}
		out, err := buildXor(rw, metaRef, core.Pos(r1), core.ControlNet{Net: r2, Negated: outSign})
		if err != nil {
			continue
		}
		return rewrite.ReplaceWithValue(core.Value{out}), true
	}
	return rewrite.Result{}, false
}
