package core

import "math"

// Net addresses a single bit signal inside a Design: either one of the two
// constant nets (ZeroNet, OneNet), the undefined net (UndefNet), or one
// output bit of some cell in the arena, identified by index.
//
// Net indices 0 and 1 are reserved for the constant nets so that they stay
// contiguous at the bottom of the index space; UndefNet is pinned to the
// maximum representable index instead of a third low value, mirroring the
// original implementation's encoding (see SPEC_FULL.md §3).
type Net struct {
	index uint32
}

const (
	undefIndex = math.MaxUint32
)

var (
	// ZeroNet is the constant-0 net, present in every Design.
	ZeroNet = Net{index: 0}
	// OneNet is the constant-1 net, present in every Design.
	OneNet = Net{index: 1}
	// UndefNet is the undefined (X) net, present in every Design.
	UndefNet = Net{index: undefIndex}
)

// firstCellIndex is the lowest Net index that can belong to a real cell
// output; indices 0 and 1 are reserved for the constant nets.
const firstCellIndex = 2

// IsConst reports whether n is ZeroNet or OneNet.
func (n Net) IsConst() bool { return n.index == 0 || n.index == 1 }

// IsUndef reports whether n is UndefNet.
func (n Net) IsUndef() bool { return n.index == undefIndex }

// AsConstBit returns the constant bit n represents and true, if n is
// ZeroNet, OneNet, or UndefNet; otherwise it returns (BitX, false).
func (n Net) AsConstBit() (Bit, bool) {
	switch n.index {
	case 0:
		return Bit0, true
	case 1:
		return Bit1, true
	case undefIndex:
		return BitX, true
	default:
		return BitX, false
	}
}

// cellIndex returns the zero-based index into Design.cells that n refers
// to, and whether n refers to a real cell at all (as opposed to a constant
// or undefined net).
func (n Net) cellIndex() (int, bool) {
	if n.IsConst() || n.IsUndef() {
		return 0, false
	}
	return int(n.index - firstCellIndex), true
}

func netFromCellIndex(i int) Net {
	return Net{index: uint32(i) + firstCellIndex}
}

// RawIndex returns n's underlying arena index, exposed for collaborator
// packages (ir/text, ir/yosysjson, ir/dot) that need a stable per-net
// textual or map-key identifier. It carries no semantic meaning beyond
// identity and stability within one Design.
func (n Net) RawIndex() uint32 { return n.index }

// Compare imposes a total, arbitrary-but-stable order over Nets, used by
// rule sets (e.g. Normalize) to canonicalize commutative operand order. It
// is not semantically meaningful, only a tie-breaker.
func (n Net) Compare(o Net) int {
	switch {
	case n.index < o.index:
		return -1
	case n.index > o.index:
		return 1
	default:
		return 0
	}
}

// ControlNet is a Net together with a polarity: a negated ControlNet reads
// as the complement of its underlying Net, without materializing a Not
// cell. Aig operands, the Dff clock/clear/reset/enable inputs and the Iob
// enable use ControlNet so that an inverted condition can be represented
// for free; the Mux select is a plain Net.
type ControlNet struct {
	Net   Net
	Negated bool
}

// Pos returns a non-negated ControlNet over n.
func Pos(n Net) ControlNet { return ControlNet{Net: n} }

// Neg returns a negated ControlNet over n.
func Neg(n Net) ControlNet { return ControlNet{Net: n, Negated: true} }

// Not returns the logical complement of c, by toggling its polarity rather
// than touching the underlying Net.
func (c ControlNet) Not() ControlNet {
	return ControlNet{Net: c.Net, Negated: !c.Negated}
}

// AsConstBit returns the constant bit c represents and true, if the
// underlying Net is constant or undefined, applying the polarity.
func (c ControlNet) AsConstBit() (Bit, bool) {
	b, ok := c.Net.AsConstBit()
	if !ok {
		return BitX, false
	}
	if c.Negated {
		b = b.Not()
	}
	return b, true
}
