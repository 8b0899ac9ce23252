package core

import (
	"fmt"

	"github.com/silicon-weave/netlist/core/meta"
)

// changeQueue accumulates deferred mutations between Apply calls, per
// SPEC_FULL.md §9 "Deferred mutation": a net-to-net replacement map, an
// index-to-replacement-cell map, and a tombstone set. Apply drains them in
// a fixed order: tombstones, then cell replacements, then the net map.
type changeQueue struct {
	netMap      map[Net]Net
	cellReplace map[int]*Cell
	tombstones  map[int]bool
}

func newChangeQueue() changeQueue {
	return changeQueue{
		netMap:      make(map[Net]Net),
		cellReplace: make(map[int]*Cell),
		tombstones:  make(map[int]bool),
	}
}

func (q *changeQueue) empty() bool {
	return len(q.netMap) == 0 && len(q.cellReplace) == 0 && len(q.tombstones) == 0
}

// Design is the flat arena owning every cell of a netlist, plus its
// metadata store and pending change queue. See package doc for the
// mutation protocol.
type Design struct {
	cells []Cell
	meta  *meta.Store
	queue changeQueue

	// constCache interns Const cells: SPEC_FULL.md §3 Invariant 5.
	constCache map[string]Net
}

// NewDesign returns an empty Design ready for AddCell calls.
func NewDesign() *Design {
	return &Design{
		meta:       meta.New(),
		queue:      newChangeQueue(),
		constCache: make(map[string]Net),
	}
}

// Meta returns the Design's metadata store, for interning Source/Ident/Attr
// items before attaching them to a cell via WithMeta.
func (d *Design) Meta() *meta.Store { return d.meta }

// CellRef addresses one cell's primary slot inside a Design.
type CellRef struct {
	d   *Design
	idx int
}

// Valid reports whether the ref still addresses a live, non-tombstoned
// cell.
func (r CellRef) Valid() bool {
	if r.d == nil || r.idx < 0 || r.idx >= len(r.d.cells) {
		return false
	}
	return r.d.cells[r.idx].Kind != kindVoid
}

// Cell returns the current cell value at r. Callers must not retain the
// pointer across an Apply/Compact call.
func (r CellRef) Cell() *Cell { return &r.d.cells[r.idx] }

// Output returns the Value referencing every output bit of the cell at r.
func (r CellRef) Output() Value {
	c := &r.d.cells[r.idx]
	if c.Width == 0 {
		return nil
	}
	out := make(Value, c.Width)
	for i := 0; i < c.Width; i++ {
		out[i] = netFromCellIndex(r.idx + i)
	}
	return out
}

// Replace queues a cell replacement that must preserve the cell's current
// output width; the replacement takes effect on the next Apply.
func (r CellRef) Replace(newCell *Cell) error {
	cur := &r.d.cells[r.idx]
	if cur.Kind == kindVoid {
		return ErrAlreadyTombstoned
	}
	if newCell.Width != cur.Width {
		return validationErr("CellRef.Replace", ErrWidthMismatch)
	}
	r.d.queue.cellReplace[r.idx] = newCell
	return nil
}

// Unalive queues this cell's conversion to a tombstone.
func (r CellRef) Unalive() {
	r.d.queue.tombstones[r.idx] = true
}

// WithMeta sets c.Meta to ref (already interned through Design.Meta) and
// returns c; a convenience for the common "build cell, attach metadata"
// sequence.
func WithMeta(c *Cell, ref meta.Ref) *Cell {
	c.Meta = ref
	return c
}

// AddCell appends cell to the arena (or reuses an interned Const hit) and
// returns the Value referencing each output bit, per SPEC_FULL.md §4.C:
// multi-output cells occupy Width consecutive slots, the first holding the
// cell itself and the rest holding internal skip markers.
func (d *Design) AddCell(cell *Cell) (Value, error) {
	if cell.Kind == KindConst {
		key := cell.ConstVal.String()
		if n, ok := d.constCache[key]; ok {
			return d.outputOfNet(n), nil
		}
	}

	idx := len(d.cells)
	d.cells = append(d.cells, *cell)
	for i := 1; i < cell.Width; i++ {
		d.cells = append(d.cells, Cell{Kind: kindSkip, skipBack: i})
	}

	if cell.Kind == KindConst {
		d.constCache[cell.ConstVal.String()] = netFromCellIndex(idx)
	}

	ref := CellRef{d: d, idx: idx}
	return ref.Output(), nil
}

// outputOfNet rebuilds the Value for the cell owning net n (used for
// constant-cache hits, where n is the primary net of a previously interned
// Const cell).
func (d *Design) outputOfNet(n Net) Value {
	idx, ok := n.cellIndex()
	if !ok {
		return Value{n}
	}
	return CellRef{d: d, idx: idx}.Output()
}

// FindCell locates the producing cell of a non-constant, non-undefined net
// and the bit offset within its output that n refers to.
func (d *Design) FindCell(n Net) (CellRef, int, error) {
	idx, ok := n.cellIndex()
	if !ok {
		return CellRef{}, 0, ErrNetNotFound
	}
	if idx < 0 || idx >= len(d.cells) {
		return CellRef{}, 0, ErrNetNotFound
	}
	c := &d.cells[idx]
	switch c.Kind {
	case kindVoid:
		return CellRef{}, 0, ErrCellNotFound
	case kindSkip:
		primary := idx - c.skipBack
		return CellRef{d: d, idx: primary}, idx - primary, nil
	default:
		return CellRef{d: d, idx: idx}, 0, nil
	}
}

// ReplaceNet enqueues the substitution of every reference to from with to.
// from and to must differ.
func (d *Design) ReplaceNet(from, to Net) error {
	if from == to {
		return fmt.Errorf("core: ReplaceNet: %w", ErrNetNotFound)
	}
	d.queue.netMap[from] = to
	return nil
}

// ReplaceValue enqueues a bitwise substitution of from with to; bits that
// already agree are skipped rather than treated as an error.
func (d *Design) ReplaceValue(from, to Value) error {
	if err := sameWidth("ReplaceValue", from, to); err != nil {
		return err
	}
	for i := range from {
		if from[i] != to[i] {
			d.queue.netMap[from[i]] = to[i]
		}
	}
	return nil
}

// NumCells returns the number of arena slots, including skip and void
// slots, currently allocated.
func (d *Design) NumCells() int { return len(d.cells) }

// Stats is a read-only snapshot of cell-kind population counts, used by the
// stats CLI subcommand and diagnostic logging.
type Stats struct {
	Total     int
	ByKind    map[Kind]int
	Tombstone int
	Skip      int
}

// Stats computes a fresh snapshot in O(NumCells).
func (d *Design) Stats() Stats {
	s := Stats{ByKind: make(map[Kind]int)}
	for i := range d.cells {
		c := &d.cells[i]
		s.Total++
		switch c.Kind {
		case kindVoid:
			s.Tombstone++
		case kindSkip:
			s.Skip++
		default:
			s.ByKind[c.Kind]++
		}
	}
	return s
}
