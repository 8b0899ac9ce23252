// Package isocheck implements the isomorphism checker named as a testing
// collaborator in SPEC_FULL.md §4.H: given two designs, it pairs primary
// outputs by name, then BFS-matches the cells driving each paired net pair
// structurally, reporting the first mismatch it finds. It never claims
// full semantic equivalence (that needs a SAT/BDD backend, explicitly out
// of scope per spec §1) — it is the cheaper structural-isomorphism check
// spec §8 invariant 4 ("canonicalization confluence") and invariant 1
// ("equivalence preservation... verified via... structural isomorphism
// after canonicalization") rely on.
package isocheck

import (
	"fmt"

	"github.com/silicon-weave/netlist/core"
)

// Mismatch describes the first structural difference Isomorphic found.
type Mismatch struct {
	Detail string
}

func (m *Mismatch) Error() string { return "isocheck: " + m.Detail }

func mismatch(format string, args ...any) error {
	return &Mismatch{Detail: fmt.Sprintf(format, args...)}
}

// netPair is a to-be-verified correspondence between a net of design a and
// a net of design b, queued by whatever comparison produced it.
type netPair struct {
	a, b core.Net
}

// Isomorphic reports whether a and b are structurally isomorphic: every
// Name/Output cell in a has a same-named, same-width counterpart in b, and
// the cells transitively driving each paired output are identical in kind,
// width, and operand structure once nets are matched up by the BFS below.
// It returns nil on success, or the first *Mismatch encountered.
func Isomorphic(a, b *core.Design) error {
	outsA := namedOutputs(a)
	outsB := namedOutputs(b)
	if len(outsA) != len(outsB) {
		return mismatch("output count differs: %d vs %d", len(outsA), len(outsB))
	}

	pairing := make(map[core.Net]core.Net)
	var queue []netPair

	names := make([]string, 0, len(outsA))
	for name := range outsA {
		names = append(names, name)
	}
	for _, name := range names {
		va := outsA[name]
		vb, ok := outsB[name]
		if !ok {
			return mismatch("output %q present in a, missing in b", name)
		}
		if len(va) != len(vb) {
			return mismatch("output %q width differs: %d vs %d", name, len(va), len(vb))
		}
		for i := range va {
			queue = append(queue, netPair{va[i], vb[i]})
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if existing, ok := pairing[p.a]; ok {
			if existing != p.b {
				return mismatch("net %v already paired with a different net than %v", p.a, p.b)
			}
			continue
		}

		ba, constA := p.a.AsConstBit()
		bb, constB := p.b.AsConstBit()
		if constA || constB {
			if !constA || !constB {
				return mismatch("one side constant, other not (a=%v const=%v, b=%v const=%v)", p.a, constA, p.b, constB)
			}
			if ba != bb {
				return mismatch("constant mismatch: %v vs %v", ba, bb)
			}
			pairing[p.a] = p.b
			continue
		}

		refA, bitA, errA := a.FindCell(p.a)
		refB, bitB, errB := b.FindCell(p.b)
		if errA != nil || errB != nil {
			return mismatch("net lookup failed (a err=%v, b err=%v)", errA, errB)
		}
		if bitA != bitB {
			return mismatch("output-bit offset differs: %d vs %d", bitA, bitB)
		}

		pairing[p.a] = p.b
		more, err := compareCells(refA.Cell(), refB.Cell(), bitA)
		if err != nil {
			return err
		}
		queue = append(queue, more...)
	}
	return nil
}

// namedOutputs collects every KindOutput and KindName cell's Value, keyed
// by its Name; a design's Name cells double as internal checkpoints that
// also participate in isomorphism pairing, matching the original's pairing
// of "outputs by name" loosely (any named net counts).
func namedOutputs(d *core.Design) map[string]core.Value {
	out := make(map[string]core.Value)
	for _, ref := range d.IterCellsTopo() {
		c := ref.Cell()
		if c.Kind != core.KindOutput && c.Kind != core.KindName {
			continue
		}
		out[c.Name] = c.A
	}
	return out
}

// compareCells checks that ca and cb (the cells producing output bit
// bitOffset of a paired net) agree in kind, width, and any scalar fields,
// then returns the operand net pairs that must themselves be verified.
func compareCells(ca, cb *core.Cell, bitOffset int) ([]netPair, error) {
	if ca.Kind != cb.Kind {
		return nil, mismatch("kind differs: %v vs %v", ca.Kind, cb.Kind)
	}
	if ca.Width != cb.Width {
		return nil, mismatch("width differs: %d vs %d (kind %v)", ca.Width, cb.Width, ca.Kind)
	}

	pairValues := func(va, vb core.Value) []netPair {
		pairs := make([]netPair, 0, len(va))
		for i := range va {
			pairs = append(pairs, netPair{va[i], vb[i]})
		}
		return pairs
	}

	switch ca.Kind {
	case core.KindInput:
		if ca.Name != cb.Name {
			return nil, mismatch("input name differs: %q vs %q", ca.Name, cb.Name)
		}
		return nil, nil
	case core.KindConst:
		if ca.ConstVal.String() != cb.ConstVal.String() {
			return nil, mismatch("const value differs: %s vs %s", ca.ConstVal, cb.ConstVal)
		}
		return nil, nil
	case core.KindMux:
		return append([]netPair{{ca.Sel, cb.Sel}}, append(pairValues(ca.A, cb.A), pairValues(ca.B, cb.B)...)...), nil
	case core.KindAig:
		if ca.CA.Negated != cb.CA.Negated || ca.CB.Negated != cb.CB.Negated {
			return nil, mismatch("aig polarity differs")
		}
		return []netPair{{ca.CA.Net, cb.CA.Net}, {ca.CB.Net, cb.CB.Net}}, nil
	case core.KindAdc:
		return append(pairValues(ca.A, cb.A), append(pairValues(ca.B, cb.B), netPair{ca.Cin, cb.Cin})...), nil
	case core.KindShl, core.KindUShr, core.KindSShr, core.KindXShr:
		if ca.Stride != cb.Stride {
			return nil, mismatch("shift stride differs: %d vs %d", ca.Stride, cb.Stride)
		}
		return append(pairValues(ca.A, cb.A), pairValues(ca.B, cb.B)...), nil
	case core.KindSlice:
		if ca.SliceLo != cb.SliceLo || ca.SliceHi != cb.SliceHi {
			return nil, mismatch("slice range differs: [%d,%d) vs [%d,%d)", ca.SliceLo, ca.SliceHi, cb.SliceLo, cb.SliceHi)
		}
		return pairValues(ca.A, cb.A), nil
	case core.KindExt:
		if ca.ExtSigned != cb.ExtSigned {
			return nil, mismatch("ext signedness differs")
		}
		return pairValues(ca.A, cb.A), nil
	case core.KindSwizzle:
		if len(ca.Chunks) != len(cb.Chunks) {
			return nil, mismatch("swizzle chunk count differs: %d vs %d", len(ca.Chunks), len(cb.Chunks))
		}
		var pairs []netPair
		for i := range ca.Chunks {
			cha, chb := ca.Chunks[i], cb.Chunks[i]
			if cha.IsConst != chb.IsConst || cha.SignExt != chb.SignExt {
				return nil, mismatch("swizzle chunk %d shape differs", i)
			}
			if cha.IsConst {
				if cha.Const.String() != chb.Const.String() {
					return nil, mismatch("swizzle chunk %d constant differs", i)
				}
				continue
			}
			pairs = append(pairs, pairValues(cha.Value, chb.Value)...)
		}
		return pairs, nil
	case core.KindOutput, core.KindName:
		if ca.Name != cb.Name {
			return nil, mismatch("name differs: %q vs %q", ca.Name, cb.Name)
		}
		return pairValues(ca.A, cb.A), nil
	case core.KindDff:
		if ca.FF == nil || cb.FF == nil {
			return nil, mismatch("dff missing flip-flop definition")
		}
		pairs := append(pairValues(ca.FF.Data, cb.FF.Data), netPair{ca.FF.Clock.Net, cb.FF.Clock.Net})
		if ca.FF.Clock.Negated != cb.FF.Clock.Negated {
			return nil, mismatch("dff clock polarity differs")
		}
		return pairs, nil
	default:
		return append(pairValues(ca.A, cb.A), pairValues(ca.B, cb.B)...), nil
	}
}
