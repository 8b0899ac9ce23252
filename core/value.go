package core

import "math"

// Value is an ordered, LSB-first vector of Nets: the natural width-many-bit
// operand or result type used throughout the Cell catalog. Unlike the
// original Rust implementation, Value is a plain Go slice rather than a
// small-vector enum: a 1-element slice is cheap enough in Go that the
// micro-optimization isn't worth the complexity it would add (see
// SPEC_FULL.md §3, Open Question resolution).
type Value []Net

// FromNet returns a 1-bit Value wrapping a single Net.
func FromNet(n Net) Value { return Value{n} }

// FromConst returns a Value of constant/undefined Nets matching c bit for
// bit.
func FromConst(c Const) Value {
	v := make(Value, len(c))
	for i, b := range c {
		switch b {
		case Bit0:
			v[i] = ZeroNet
		case Bit1:
			v[i] = OneNet
		default:
			v[i] = UndefNet
		}
	}
	return v
}

// Len returns the bit width of v.
func (v Value) Len() int { return len(v) }

// LSB returns the least significant Net of v. It panics on an empty Value.
func (v Value) LSB() Net { return v[0] }

// MSB returns the most significant Net of v. It panics on an empty Value.
func (v Value) MSB() Net { return v[len(v)-1] }

// Concat returns the concatenation of v and rest, v first (i.e. v occupies
// the low bits of the result).
func (v Value) Concat(rest ...Value) Value {
	total := len(v)
	for _, r := range rest {
		total += len(r)
	}
	out := make(Value, 0, total)
	out = append(out, v...)
	for _, r := range rest {
		out = append(out, r...)
	}
	return out
}

// Repeat returns v concatenated with itself n times.
func (v Value) Repeat(n int) Value {
	out := make(Value, 0, len(v)*n)
	for i := 0; i < n; i++ {
		out = append(out, v...)
	}
	return out
}

// Slice returns the bits [lo, hi) of v.
func (v Value) Slice(lo, hi int) Value {
	out := make(Value, hi-lo)
	copy(out, v[lo:hi])
	return out
}

// Zext returns v zero-extended to width bits. If width < v.Len() it returns
// the low width bits of v.
func (v Value) Zext(width int) Value {
	out := make(Value, width)
	copy(out, v)
	for i := len(v); i < width; i++ {
		out[i] = ZeroNet
	}
	return out
}

// Sext returns v sign-extended to width bits, replicating v.MSB(). It
// panics if v is empty; if width < v.Len() it returns the low width bits.
func (v Value) Sext(width int) Value {
	out := make(Value, width)
	copy(out, v)
	msb := v.MSB()
	for i := len(v); i < width; i++ {
		out[i] = msb
	}
	return out
}

// AsConst returns the Const v represents and true, if every Net in v is
// constant or undefined; otherwise it returns (nil, false).
func (v Value) AsConst() (Const, bool) {
	c := make(Const, len(v))
	for i, n := range v {
		b, ok := n.AsConstBit()
		if !ok {
			return nil, false
		}
		c[i] = b
	}
	return c, true
}

// Compare imposes a total, arbitrary-but-stable order over Values, used by
// rules.Normalize to canonicalize the operand order of commutative cells:
// shorter values sort first, then lexicographically by per-bit Net.Compare.
// Like Net.Compare, this ordering carries no semantic meaning.
func (v Value) Compare(o Value) int {
	if len(v) != len(o) {
		if len(v) < len(o) {
			return -1
		}
		return 1
	}
	for i := range v {
		if c := v[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Visit calls fn once for every non-constant, non-undefined Net referenced
// by v, in order. Constant operands carry no structural dependency and are
// skipped, matching the Cell.visit convention used throughout the rewrite
// engine and the balancing passes' level analysis.
func (v Value) Visit(fn func(Net)) {
	for _, n := range v {
		if !n.IsConst() && !n.IsUndef() {
			fn(n)
		}
	}
}

// shiftCount computes the Bit-width-saturating unsigned integer that amt
// represents, multiplied by stride (the spec's "effective bit count =
// (constant value) x stride", §4.A), and reports whether amt has any X bit.
// It mirrors the original implementation's Value::shift_count and the
// has_undef short-circuit each of shl/ushr/sshr/xshr applies before
// computing a count at all: accumulation saturates to math.MaxInt rather
// than overflowing, both before and after the stride multiplication.
func (amt Value) shiftCount(stride uint32) (count int, hasX bool) {
	for i, n := range amt {
		b, ok := n.AsConstBit()
		if !ok || b == BitX {
			return 0, true
		}
		if b != Bit1 {
			continue
		}
		if i >= 63 {
			count = math.MaxInt
			continue
		}
		bit := 1 << uint(i)
		if count > math.MaxInt-bit {
			count = math.MaxInt
			continue
		}
		count += bit
	}
	if count > 0 && count < math.MaxInt {
		s := int(stride)
		switch {
		case s == 0:
			count = 0
		case count > math.MaxInt/s:
			count = math.MaxInt
		default:
			count *= s
		}
	}
	return count, false
}

// ShiftKind selects the fill behavior used when a constant-amount shift
// runs off the end of the value.
type ShiftKind uint8

const (
	// ShiftLogical fills vacated bits with Bit0 (low bits for Shl, high
	// bits for UShr).
	ShiftLogical ShiftKind = iota
	// ShiftArithmetic fills vacated high bits by repeating the sign bit (SShr).
	ShiftArithmetic
	// ShiftUndef fills vacated bits with BitX (XShr).
	ShiftUndef
)

// ShlConst returns v shifted left by the constant amount amt (scaled by
// stride), LSB-filling with Bit0, truncated/extended to stay at v's width.
// If amt has any X bit the result is all-X at v's width, matching the
// original implementation's has_undef short-circuit.
func (v Value) ShlConst(amt Value, stride uint32) Value {
	n, hasX := amt.shiftCount(stride)
	width := len(v)
	if hasX {
		return FromConst(NewConstX(width))
	}
	out := make(Value, width)
	for i := 0; i < width; i++ {
		if i < n {
			out[i] = ZeroNet
		} else if i-n < width {
			out[i] = v[i-n]
		} else {
			out[i] = ZeroNet
		}
	}
	return out
}

// ShrConst returns v shifted right by the constant amount amt (scaled by
// stride), according to kind's fill rule, staying at v's width. If amt has
// any X bit the result is all-X at v's width, matching the original
// implementation's has_undef short-circuit.
func (v Value) ShrConst(amt Value, stride uint32, kind ShiftKind) Value {
	n, hasX := amt.shiftCount(stride)
	width := len(v)
	if hasX {
		return FromConst(NewConstX(width))
	}
	out := make(Value, width)
	fill := ZeroNet
	switch kind {
	case ShiftArithmetic:
		if width > 0 {
			fill = v.MSB()
		}
	case ShiftUndef:
		fill = UndefNet
	}
	for i := 0; i < width; i++ {
		src := i + n
		if src < width && src >= 0 {
			out[i] = v[src]
		} else {
			out[i] = fill
		}
	}
	return out
}
