package core

// This file implements one constructor per public Cell kind. Each
// constructor validates operand widths per SPEC_FULL.md §3 Invariant 1 and
// returns a *ValidationError (never a panic) on mismatch, so that a Design
// is never left partially built by a failed AddCell call.

func sameWidth(op string, a, b Value) error {
	if len(a) != len(b) {
		return validationErr(op, ErrWidthMismatch)
	}
	return nil
}

func nonEmpty(op string, v Value) error {
	if len(v) == 0 {
		return validationErr(op, ErrEmptyValue)
	}
	return nil
}

// canonicalizeControl rewrites a negated constant ControlNet to its
// positive equivalent, per Invariant 2: !UNDEF stays UNDEF (positive),
// !0 becomes positive 1, !1 becomes positive 0.
func canonicalizeControl(cn ControlNet) ControlNet {
	if !cn.Negated {
		return cn
	}
	if b, ok := cn.Net.AsConstBit(); ok {
		switch b {
		case Bit0:
			return Pos(OneNet)
		case Bit1:
			return Pos(ZeroNet)
		default:
			return Pos(UndefNet)
		}
	}
	return cn
}

func NewInput(name string, width int) (*Cell, error) {
	if width < 0 {
		return nil, validationErr("NewInput", ErrWidthMismatch)
	}
	return &Cell{Kind: KindInput, Width: width, Name: name}, nil
}

func NewConst(c Const) (*Cell, error) {
	return &Cell{Kind: KindConst, Width: len(c), ConstVal: append(Const(nil), c...)}, nil
}

func NewParam(name string, v ParamValue, width int) (*Cell, error) {
	return &Cell{Kind: KindParam, Width: width, Name: name, ParamVal: v}, nil
}

func NewSwizzle(chunks []SwizzleChunk) (*Cell, error) {
	width := 0
	for _, ch := range chunks {
		if ch.IsConst {
			width += ch.Const.Len()
		} else {
			width += ch.Value.Len()
		}
	}
	return &Cell{Kind: KindSwizzle, Width: width, Chunks: append([]SwizzleChunk(nil), chunks...)}, nil
}

func NewSlice(v Value, lo, hi int) (*Cell, error) {
	if lo < 0 || hi > v.Len() || lo > hi {
		return nil, validationErr("NewSlice", ErrWidthMismatch)
	}
	return &Cell{Kind: KindSlice, Width: hi - lo, A: v, SliceLo: lo, SliceHi: hi}, nil
}

func NewExt(v Value, width int, signed bool) (*Cell, error) {
	if signed {
		if err := nonEmpty("NewExt", v); err != nil {
			return nil, err
		}
	}
	if width < v.Len() {
		return nil, validationErr("NewExt", ErrWidthMismatch)
	}
	return &Cell{Kind: KindExt, Width: width, A: v, ExtSigned: signed}, nil
}

func NewBuf(v Value) (*Cell, error) {
	return &Cell{Kind: KindBuf, Width: v.Len(), A: v}, nil
}

func NewNot(v Value) (*Cell, error) {
	return &Cell{Kind: KindNot, Width: v.Len(), A: v}, nil
}

func newBinaryBitwise(k Kind, op string, a, b Value) (*Cell, error) {
	if err := sameWidth(op, a, b); err != nil {
		return nil, err
	}
	return &Cell{Kind: k, Width: a.Len(), A: a, B: b}, nil
}

func NewAnd(a, b Value) (*Cell, error) { return newBinaryBitwise(KindAnd, "NewAnd", a, b) }
func NewOr(a, b Value) (*Cell, error)  { return newBinaryBitwise(KindOr, "NewOr", a, b) }
func NewXor(a, b Value) (*Cell, error) { return newBinaryBitwise(KindXor, "NewXor", a, b) }

func NewMux(sel Net, hi, lo Value) (*Cell, error) {
	if err := sameWidth("NewMux", hi, lo); err != nil {
		return nil, err
	}
	return &Cell{Kind: KindMux, Width: hi.Len(), Sel: sel, A: hi, B: lo}, nil
}

// NewAig builds the single-bit normalized AND cell: f(a) AND f(b), with
// independently negatable inputs. This is the target form SimpleAigOpt
// normalizes Boolean fragments into.
func NewAig(a, b ControlNet) (*Cell, error) {
	return &Cell{Kind: KindAig, Width: 1, CA: canonicalizeControl(a), CB: canonicalizeControl(b)}, nil
}

// NewAdc builds a full-width-plus-one unsigned adder: width = len(a)+1.
func NewAdc(a, b Value, cin Net) (*Cell, error) {
	if err := sameWidth("NewAdc", a, b); err != nil {
		return nil, err
	}
	return &Cell{Kind: KindAdc, Width: a.Len() + 1, A: a, B: b, Cin: cin}, nil
}

func newArith(k Kind, op string, a, b Value) (*Cell, error) {
	if err := sameWidth(op, a, b); err != nil {
		return nil, err
	}
	return &Cell{Kind: k, Width: a.Len(), A: a, B: b}, nil
}

func NewMul(a, b Value) (*Cell, error)        { return newArith(KindMul, "NewMul", a, b) }
func NewUDiv(a, b Value) (*Cell, error)       { return newArith(KindUDiv, "NewUDiv", a, b) }
func NewUMod(a, b Value) (*Cell, error)       { return newArith(KindUMod, "NewUMod", a, b) }
func NewSDivTrunc(a, b Value) (*Cell, error)  { return newArith(KindSDivTrunc, "NewSDivTrunc", a, b) }
func NewSDivFloor(a, b Value) (*Cell, error)  { return newArith(KindSDivFloor, "NewSDivFloor", a, b) }
func NewSModTrunc(a, b Value) (*Cell, error)  { return newArith(KindSModTrunc, "NewSModTrunc", a, b) }
func NewSModFloor(a, b Value) (*Cell, error)  { return newArith(KindSModFloor, "NewSModFloor", a, b) }

func newCompare(k Kind, op string, a, b Value) (*Cell, error) {
	if err := sameWidth(op, a, b); err != nil {
		return nil, err
	}
	return &Cell{Kind: k, Width: 1, A: a, B: b}, nil
}

func NewEq(a, b Value) (*Cell, error)  { return newCompare(KindEq, "NewEq", a, b) }
func NewULt(a, b Value) (*Cell, error) { return newCompare(KindULt, "NewULt", a, b) }
func NewSLt(a, b Value) (*Cell, error) { return newCompare(KindSLt, "NewSLt", a, b) }

func newShift(k Kind, op string, v, amount Value, stride uint32) (*Cell, error) {
	if err := nonEmpty(op, amount); err != nil {
		return nil, err
	}
	if stride == 0 {
		return nil, validationErr(op, ErrWidthMismatch)
	}
	return &Cell{Kind: k, Width: v.Len(), A: v, B: amount, Stride: stride}, nil
}

func NewShl(v, amount Value, stride uint32) (*Cell, error) {
	return newShift(KindShl, "NewShl", v, amount, stride)
}
func NewUShr(v, amount Value, stride uint32) (*Cell, error) {
	return newShift(KindUShr, "NewUShr", v, amount, stride)
}
func NewSShr(v, amount Value, stride uint32) (*Cell, error) {
	return newShift(KindSShr, "NewSShr", v, amount, stride)
}
func NewXShr(v, amount Value, stride uint32) (*Cell, error) {
	return newShift(KindXShr, "NewXShr", v, amount, stride)
}

func NewDff(ff *FlipFlop) (*Cell, error) {
	if ff == nil || len(ff.Data) == 0 {
		return nil, validationErr("NewDff", ErrEmptyValue)
	}
	if ff.HasClear && len(ff.ClearValue) != len(ff.Data) {
		return nil, validationErr("NewDff", ErrWidthMismatch)
	}
	if ff.HasReset && len(ff.ResetValue) != len(ff.Data) {
		return nil, validationErr("NewDff", ErrWidthMismatch)
	}
	if len(ff.Init) != 0 && len(ff.Init) != len(ff.Data) {
		return nil, validationErr("NewDff", ErrWidthMismatch)
	}
	return &Cell{Kind: KindDff, Width: len(ff.Data), FF: ff}, nil
}

func NewMemory(m *MemoryDef) (*Cell, error) {
	if m == nil || m.Depth <= 0 {
		return nil, validationErr("NewMemory", ErrWidthMismatch)
	}
	return &Cell{Kind: KindMemory, Width: 0, Mem: m}, nil
}

func NewIob(def *IobDef) (*Cell, error) {
	if def == nil || def.Pad == "" {
		return nil, validationErr("NewIob", ErrEmptyValue)
	}
	return &Cell{Kind: KindIob, Width: def.Output.Len(), Iob: def}, nil
}

func NewTarget(def *TargetCell) (*Cell, error) {
	if def == nil || def.Name == "" {
		return nil, validationErr("NewTarget", ErrEmptyValue)
	}
	return &Cell{Kind: KindTarget, Width: def.OutputWidth, Target: def}, nil
}

func NewInstance(def *InstanceDef) (*Cell, error) {
	if def == nil || def.Module == "" {
		return nil, validationErr("NewInstance", ErrEmptyValue)
	}
	return &Cell{Kind: KindInstance, Width: 0, Instance: def}, nil
}

func NewName(name string, v Value) (*Cell, error) {
	return &Cell{Kind: KindName, Width: v.Len(), Name: name, A: v}, nil
}

func NewOutput(name string, v Value) (*Cell, error) {
	return &Cell{Kind: KindOutput, Width: v.Len(), Name: name, A: v}, nil
}
