// Package yosysjson implements the Yosys-JSON interop sketch named in
// SPEC_FULL.md §4.H: Import and Export against a small subset of the
// Yosys JSON netlist schema covering $and/$or/$xor/$not/$mux/$dff cells
// and module ports — enough to round-trip the worked examples and tests
// in this repo, not the full Yosys cell library (spec §1's "Yosys-JSON
// interop" is named an out-of-scope external collaborator; this package
// is a sketch of that interface, not a production importer/exporter).
package yosysjson

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/silicon-weave/netlist/core"
)

// ImportError wraps a failure to interpret a Yosys JSON document,
// including which module/cell was being processed, per spec §7's
// "Import/export errors... surfaced with context; never swallowed."
type ImportError struct {
	Context string
	Err     error
}

func (e *ImportError) Error() string { return "ir/yosysjson: import: " + e.Context + ": " + e.Err.Error() }
func (e *ImportError) Unwrap() error  { return e.Err }

// ExportError is the Export-side counterpart of ImportError.
type ExportError struct {
	Context string
	Err     error
}

func (e *ExportError) Error() string { return "ir/yosysjson: export: " + e.Context + ": " + e.Err.Error() }
func (e *ExportError) Unwrap() error  { return e.Err }

// bitRef is one entry of a Yosys "bits"/"connections" array: either a net
// id (an integer allocated by Yosys) or one of the constant strings
// "0"/"1"/"x"/"z". encoding/json's json.Number + raw-message handling
// can't express this union directly, so bitRef implements its own
// (Un)MarshalJSON.
type bitRef struct {
	isConst bool
	constv  string
	id      int
}

func (b bitRef) MarshalJSON() ([]byte, error) {
	if b.isConst {
		return json.Marshal(b.constv)
	}
	return json.Marshal(b.id)
}

func (b *bitRef) UnmarshalJSON(data []byte) error {
	var asInt int
	if err := json.Unmarshal(data, &asInt); err == nil {
		b.id = asInt
		return nil
	}
	var asStr string
	if err := json.Unmarshal(data, &asStr); err != nil {
		return fmt.Errorf("bit ref is neither int nor string: %s", data)
	}
	b.isConst = true
	b.constv = asStr
	return nil
}

type jsonPort struct {
	Direction string   `json:"direction"`
	Bits      []bitRef `json:"bits"`
}

type jsonCell struct {
	Type        string            `json:"type"`
	Connections map[string][]bitRef `json:"connections"`
}

type jsonModule struct {
	Ports map[string]jsonPort `json:"ports"`
	Cells map[string]jsonCell `json:"cells"`
}

type jsonNetlist struct {
	Modules map[string]jsonModule `json:"modules"`
}

// supportedCellTypes lists the cell types this sketch understands;
// anything else produces an *ImportError rather than being silently
// dropped, per spec §7's "never swallowed" policy.
var supportedCellTypes = map[string]bool{
	"$and": true, "$or": true, "$xor": true, "$not": true, "$mux": true, "$dff": true,
}

// Import reads a Yosys JSON document from r and builds a *core.Design from
// the module named moduleName; any other modules in the document are
// ignored.
func Import(r io.Reader, moduleName string) (*core.Design, error) {
	var doc jsonNetlist
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ImportError{Context: "decode", Err: err}
	}
	mod, ok := doc.Modules[moduleName]
	if !ok {
		return nil, &ImportError{Context: moduleName, Err: fmt.Errorf("module not found")}
	}

	d := core.NewDesign()
	nets := make(map[int]core.Net) // yosys bit id -> core.Net

	resolve := func(b bitRef) (core.Net, error) {
		if b.isConst {
			switch b.constv {
			case "0":
				return core.ZeroNet, nil
			case "1":
				return core.OneNet, nil
			default:
				return core.UndefNet, nil
			}
		}
		if n, ok := nets[b.id]; ok {
			return n, nil
		}
		return core.Net{}, fmt.Errorf("bit %d referenced before it is driven", b.id)
	}
	resolveValue := func(bits []bitRef) (core.Value, error) {
		v := make(core.Value, len(bits))
		for i, b := range bits {
			n, err := resolve(b)
			if err != nil {
				return nil, err
			}
			v[i] = n
		}
		return v, nil
	}

	// Inputs first: they must be resolvable before any cell connection.
	portNames := sortedKeys(mod.Ports)
	for _, name := range portNames {
		p := mod.Ports[name]
		if p.Direction != "input" {
			continue
		}
		cell, err := core.NewInput(name, len(p.Bits))
		if err != nil {
			return nil, &ImportError{Context: name, Err: err}
		}
		out, err := d.AddCell(cell)
		if err != nil {
			return nil, &ImportError{Context: name, Err: err}
		}
		for i, b := range p.Bits {
			if !b.isConst {
				nets[b.id] = out[i]
			}
		}
	}

	cellNames := sortedKeys(mod.Cells)
	for _, name := range cellNames {
		jc := mod.Cells[name]
		if !supportedCellTypes[jc.Type] {
			return nil, &ImportError{Context: name, Err: fmt.Errorf("unsupported cell type %q", jc.Type)}
		}
		if err := importCell(d, nets, name, jc); err != nil {
			return nil, &ImportError{Context: name, Err: err}
		}
	}

	for _, name := range portNames {
		p := mod.Ports[name]
		if p.Direction != "output" {
			continue
		}
		v, err := resolveValue(p.Bits)
		if err != nil {
			return nil, &ImportError{Context: name, Err: err}
		}
		cell, err := core.NewOutput(name, v)
		if err != nil {
			return nil, &ImportError{Context: name, Err: err}
		}
		if _, err := d.AddCell(cell); err != nil {
			return nil, &ImportError{Context: name, Err: err}
		}
	}

	return d, nil
}

func importCell(d *core.Design, nets map[int]core.Net, name string, jc jsonCell) error {
	resolve := func(key string) (core.Value, error) {
		bits, ok := jc.Connections[key]
		if !ok {
			return nil, fmt.Errorf("missing connection %q", key)
		}
		v := make(core.Value, len(bits))
		for i, b := range bits {
			if b.isConst {
				switch b.constv {
				case "0":
					v[i] = core.ZeroNet
				case "1":
					v[i] = core.OneNet
				default:
					v[i] = core.UndefNet
				}
				continue
			}
			n, ok := nets[b.id]
			if !ok {
				return nil, fmt.Errorf("bit %d referenced before it is driven", b.id)
			}
			v[i] = n
		}
		return v, nil
	}
	bind := func(yBits []bitRef, v core.Value) {
		for i, b := range yBits {
			if !b.isConst {
				nets[b.id] = v[i]
			}
		}
	}

	switch jc.Type {
	case "$and", "$or", "$xor":
		a, err := resolve("A")
		if err != nil {
			return err
		}
		b, err := resolve("B")
		if err != nil {
			return err
		}
		var cell *core.Cell
		switch jc.Type {
		case "$and":
			cell, err = core.NewAnd(a, b)
		case "$or":
			cell, err = core.NewOr(a, b)
		case "$xor":
			cell, err = core.NewXor(a, b)
		}
		if err != nil {
			return err
		}
		out, err := d.AddCell(cell)
		if err != nil {
			return err
		}
		bind(jc.Connections["Y"], out)
	case "$not":
		a, err := resolve("A")
		if err != nil {
			return err
		}
		cell, err := core.NewNot(a)
		if err != nil {
			return err
		}
		out, err := d.AddCell(cell)
		if err != nil {
			return err
		}
		bind(jc.Connections["Y"], out)
	case "$mux":
		aIn, err := resolve("A")
		if err != nil {
			return err
		}
		bIn, err := resolve("B")
		if err != nil {
			return err
		}
		sel, err := resolve("S")
		if err != nil {
			return err
		}
		if len(sel) != 1 {
			return fmt.Errorf("$mux select must be 1 bit, got %d", len(sel))
		}
		cell, err := core.NewMux(sel[0], bIn, aIn)
		if err != nil {
			return err
		}
		out, err := d.AddCell(cell)
		if err != nil {
			return err
		}
		bind(jc.Connections["Y"], out)
	case "$dff":
		data, err := resolve("D")
		if err != nil {
			return err
		}
		clk, err := resolve("CLK")
		if err != nil {
			return err
		}
		if len(clk) != 1 {
			return fmt.Errorf("$dff CLK must be 1 bit, got %d", len(clk))
		}
		cell, err := core.NewDff(&core.FlipFlop{
			Data:  data,
			Clock: core.Pos(clk[0]),
			Init:  core.NewConstX(len(data)),
		})
		if err != nil {
			return err
		}
		out, err := d.AddCell(cell)
		if err != nil {
			return err
		}
		bind(jc.Connections["Q"], out)
	}
	return nil
}

// Export writes d as a single-module Yosys JSON document named
// moduleName, covering the same cell subset Import understands. Any other
// live cell kind in d produces an *ExportError rather than a silently
// truncated document.
func Export(w io.Writer, d *core.Design, moduleName string) error {
	mod := jsonModule{Ports: map[string]jsonPort{}, Cells: map[string]jsonCell{}}
	netID := make(map[core.Net]int)
	nextID := 2 // Yosys reserves 0/1 for the constant strings, not ids.

	idFor := func(n core.Net) bitRef {
		if b, ok := n.AsConstBit(); ok {
			switch b {
			case core.Bit0:
				return bitRef{isConst: true, constv: "0"}
			case core.Bit1:
				return bitRef{isConst: true, constv: "1"}
			default:
				return bitRef{isConst: true, constv: "x"}
			}
		}
		if id, ok := netID[n]; ok {
			return bitRef{id: id}
		}
		id := nextID
		nextID++
		netID[n] = id
		return bitRef{id: id}
	}
	bitsFor := func(v core.Value) []bitRef {
		out := make([]bitRef, len(v))
		for i, n := range v {
			out[i] = idFor(n)
		}
		return out
	}

	cellCounter := 0
	for i, ref := range d.IterCellsTopo() {
		c := ref.Cell()
		switch c.Kind {
		case core.KindInput:
			mod.Ports[c.Name] = jsonPort{Direction: "input", Bits: bitsFor(ref.Output())}
		case core.KindOutput:
			mod.Ports[c.Name] = jsonPort{Direction: "output", Bits: bitsFor(c.A)}
		case core.KindAnd, core.KindOr, core.KindXor:
			cellCounter++
			mod.Cells[fmt.Sprintf("$%d", cellCounter)] = jsonCell{
				Type: yosysOpName(c.Kind),
				Connections: map[string][]bitRef{
					"A": bitsFor(c.A), "B": bitsFor(c.B), "Y": bitsFor(ref.Output()),
				},
			}
		case core.KindNot:
			cellCounter++
			mod.Cells[fmt.Sprintf("$%d", cellCounter)] = jsonCell{
				Type: "$not",
				Connections: map[string][]bitRef{
					"A": bitsFor(c.A), "Y": bitsFor(ref.Output()),
				},
			}
		case core.KindMux:
			cellCounter++
			mod.Cells[fmt.Sprintf("$%d", cellCounter)] = jsonCell{
				Type: "$mux",
				Connections: map[string][]bitRef{
					"A": bitsFor(c.B), "B": bitsFor(c.A), "S": bitsFor(core.Value{c.Sel}), "Y": bitsFor(ref.Output()),
				},
			}
		case core.KindDff:
			cellCounter++
			mod.Cells[fmt.Sprintf("$%d", cellCounter)] = jsonCell{
				Type: "$dff",
				Connections: map[string][]bitRef{
					"D": bitsFor(c.FF.Data), "CLK": bitsFor(core.Value{c.FF.Clock.Net}), "Q": bitsFor(ref.Output()),
				},
			}
		case core.KindConst, core.KindName, core.KindParam:
			// Carries no Yosys-JSON port/cell of its own in this subset.
		default:
			return &ExportError{Context: fmt.Sprintf("cell %d", i), Err: fmt.Errorf("unsupported cell kind %v for this schema subset", c.Kind)}
		}
	}

	doc := jsonNetlist{Modules: map[string]jsonModule{moduleName: mod}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return &ExportError{Context: moduleName, Err: err}
	}
	return nil
}

func yosysOpName(k core.Kind) string {
	switch k {
	case core.KindAnd:
		return "$and"
	case core.KindOr:
		return "$or"
	case core.KindXor:
		return "$xor"
	default:
		return "$unknown"
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
