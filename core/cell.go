package core

import "github.com/silicon-weave/netlist/core/meta"

// Kind tags which variant of the cell catalog a Cell holds.
type Kind uint8

const (
	// internal bookkeeping kinds, never returned by a public constructor.
	kindVoid Kind = iota // tombstoned slot
	kindSkip              // secondary slot of a multi-bit cell's output

	// Sources
	KindInput
	KindConst
	KindParam

	// Swizzle family
	KindSwizzle
	KindSlice
	KindExt

	// Bitwise
	KindBuf
	KindNot
	KindAnd
	KindOr
	KindXor
	KindMux
	KindAig

	// Arithmetic
	KindAdc
	KindMul
	KindUDiv
	KindUMod
	KindSDivTrunc
	KindSDivFloor
	KindSModTrunc
	KindSModFloor

	// Comparison
	KindEq
	KindULt
	KindSLt

	// Shifts
	KindShl
	KindUShr
	KindSShr
	KindXShr

	// Stateful / IO / generic
	KindDff
	KindMemory
	KindIob
	KindTarget
	KindInstance
	KindName
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case kindVoid:
		return "void"
	case kindSkip:
		return "skip"
	case KindInput:
		return "input"
	case KindConst:
		return "const"
	case KindParam:
		return "param"
	case KindSwizzle:
		return "swizzle"
	case KindSlice:
		return "slice"
	case KindExt:
		return "ext"
	case KindBuf:
		return "buf"
	case KindNot:
		return "not"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindXor:
		return "xor"
	case KindMux:
		return "mux"
	case KindAig:
		return "aig"
	case KindAdc:
		return "adc"
	case KindMul:
		return "mul"
	case KindUDiv:
		return "udiv"
	case KindUMod:
		return "umod"
	case KindSDivTrunc:
		return "sdivtrunc"
	case KindSDivFloor:
		return "sdivfloor"
	case KindSModTrunc:
		return "smodtrunc"
	case KindSModFloor:
		return "smodfloor"
	case KindEq:
		return "eq"
	case KindULt:
		return "ult"
	case KindSLt:
		return "slt"
	case KindShl:
		return "shl"
	case KindUShr:
		return "ushr"
	case KindSShr:
		return "sshr"
	case KindXShr:
		return "xshr"
	case KindDff:
		return "dff"
	case KindMemory:
		return "memory"
	case KindIob:
		return "iob"
	case KindTarget:
		return "target"
	case KindInstance:
		return "instance"
	case KindName:
		return "name"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// SwizzleChunk is one segment of a Swizzle cell: either a slice of an
// existing Value or a Const, optionally sign-extended to fill its share of
// the output width.
type SwizzleChunk struct {
	Value   Value
	Const   Const
	IsConst bool
	SignExt bool
}

// ParamValue is a generic-typed module parameter value (int, float, or
// string), carried by KindParam and by InstanceDef's parameter bindings.
type ParamValue struct {
	IntVal   int64
	FloatVal float64
	StrVal   string
	Kind     ParamKind
}

// ParamKind selects which field of a ParamValue is meaningful.
type ParamKind uint8

const (
	ParamInt ParamKind = iota
	ParamFloat
	ParamString
)

// FlipFlop holds the stateful fields of a Dff cell: clocked data with
// optional clear/reset (each with its own async value) and optional
// enable, arbitrated by ResetOverEnable priority, plus the power-on Init
// value.
type FlipFlop struct {
	Data  Value
	Clock ControlNet

	HasClear   bool
	Clear      ControlNet
	ClearValue Const

	HasReset   bool
	Reset      ControlNet
	ResetValue Const

	HasEnable bool
	Enable    ControlNet

	// ResetOverEnable reports whether an asserted Reset/Clear wins over an
	// asserted Enable when both fire in the same cycle.
	ResetOverEnable bool

	Init Const
}

// MemoryDef holds the fields of a Memory cell: a fixed depth, a list of
// write ports and a list of read ports, each with their own clock/address/
// data/enable wiring. This is a deliberately small sketch of a memory
// macro, sufficient to round-trip through the textual IR and Yosys-JSON
// collaborators without claiming full memory-inference semantics.
type MemoryDef struct {
	Depth      int
	WidthBits  int
	WritePorts []MemoryWritePort
	ReadPorts  []MemoryReadPort
}

type MemoryWritePort struct {
	Clock   ControlNet
	Addr    Value
	Data    Value
	Enable  Value
}

type MemoryReadPort struct {
	Clock    ControlNet // zero ControlNet means asynchronous read
	Addr     Value
	Width    int
}

// IobDef holds the fields of an Iob (I/O buffer) cell: its external pad
// name and direction-specific wiring.
type IobDef struct {
	Pad     string
	Output  Value // driven to the pad; empty for input-only pads
	Enable  ControlNet
}

// TargetCell holds the fields of a Target (target-primitive) cell: an
// opaque target-defined name, parameter bindings, and input/output
// widths.
type TargetCell struct {
	Name    string
	Params  map[string]ParamValue
	Inputs  Value
	OutputWidth int
}

// InstanceDef holds the fields of a generic module Instance cell.
type InstanceDef struct {
	Module string
	Params map[string]ParamValue
	Ports  map[string]Value
}

// Cell is one node of the netlist arena: a Kind tag plus only the fields
// relevant to that Kind, following the teacher's flat-struct convention
// for tagged records rather than a family of small concrete types per
// variant.
type Cell struct {
	Kind  Kind
	Width int
	Meta  meta.Ref

	// generic binary/ternary operand slots, reused across many Kinds.
	A, B Value
	Cin  Net        // Adc carry-in
	Sel  Net        // Mux select (1-bit)
	CA   ControlNet // Aig first input
	CB   ControlNet // Aig second input

	// swizzle / slice / ext
	Chunks    []SwizzleChunk
	SliceLo   int
	SliceHi   int
	ExtSigned bool

	// shifts: Shl/UShr/SShr/XShr operate on A shifted by amount B, scaled
	// by Stride.
	Stride uint32

	// sources
	Name     string
	ConstVal Const
	ParamVal ParamValue

	// stateful / IO / generic
	FF       *FlipFlop
	Mem      *MemoryDef
	Iob      *IobDef
	Target   *TargetCell
	Instance *InstanceDef

	// internal bookkeeping
	skipBack int // kindSkip: distance back to the primary slot
}

// IsEffectful reports whether the cell has observable effects and must
// never be hash-consed or removed by compact even if structurally
// unreferenced. Matches Invariant 4 in SPEC_FULL.md §3: Input, Output,
// Name, Iob, Instance, Dff, and an effectful Target.
func (c *Cell) IsEffectful() bool {
	switch c.Kind {
	case KindInput, KindOutput, KindName, KindIob, KindInstance, KindDff:
		return true
	case KindTarget:
		return true // targets are conservatively treated as effectful
	default:
		return false
	}
}

// HasState reports whether the cell carries register state (Dff, Memory),
// which the level analysis treats as a level-0 source.
func (c *Cell) HasState() bool {
	return c.Kind == KindDff || c.Kind == KindMemory
}

// Visit calls fn once for every live Net the cell's operands reference,
// skipping constant and undefined nets. Used by compact's reachability
// walk, level analysis, and the rewrite driver's operand remapping.
func (c *Cell) Visit(fn func(Net)) {
	visitCtrl := func(cn ControlNet) {
		if !cn.Net.IsConst() && !cn.Net.IsUndef() {
			fn(cn.Net)
		}
	}
	c.A.Visit(fn)
	c.B.Visit(fn)
	switch c.Kind {
	case KindAdc:
		if !c.Cin.IsConst() && !c.Cin.IsUndef() {
			fn(c.Cin)
		}
	case KindMux:
		if !c.Sel.IsConst() && !c.Sel.IsUndef() {
			fn(c.Sel)
		}
	case KindAig:
		visitCtrl(c.CA)
		visitCtrl(c.CB)
	case KindSwizzle:
		for _, ch := range c.Chunks {
			if !ch.IsConst {
				ch.Value.Visit(fn)
			}
		}
	case KindDff:
		if c.FF != nil {
			c.FF.Data.Visit(fn)
			visitCtrl(c.FF.Clock)
			if c.FF.HasClear {
				visitCtrl(c.FF.Clear)
			}
			if c.FF.HasReset {
				visitCtrl(c.FF.Reset)
			}
			if c.FF.HasEnable {
				visitCtrl(c.FF.Enable)
			}
		}
	case KindMemory:
		if c.Mem != nil {
			for _, wp := range c.Mem.WritePorts {
				visitCtrl(wp.Clock)
				wp.Addr.Visit(fn)
				wp.Data.Visit(fn)
				wp.Enable.Visit(fn)
			}
			for _, rp := range c.Mem.ReadPorts {
				visitCtrl(rp.Clock)
				rp.Addr.Visit(fn)
			}
		}
	case KindIob:
		if c.Iob != nil {
			c.Iob.Output.Visit(fn)
			visitCtrl(c.Iob.Enable)
		}
	case KindTarget:
		if c.Target != nil {
			c.Target.Inputs.Visit(fn)
		}
	case KindInstance:
		if c.Instance != nil {
			for _, v := range c.Instance.Ports {
				v.Visit(fn)
			}
		}
	}
}

// StructKey returns a comparable representation of the cell's structure
// (kind, width, operands) used by the rewrite driver's hash-cons cache.
// Two pure cells with equal StructKey are interchangeable. Metadata is
// deliberately excluded: hash-consing merges metadata rather than treating
// it as distinguishing.
func (c *Cell) StructKey() string {
	return cellStructKey(c)
}
