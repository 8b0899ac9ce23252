package rewrite

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
)

// ResultKind tags which shape a Result carries, matching the four
// RewriteResult shapes in SPEC_FULL.md §4.E: None, Cell, CellMeta, Value.
type ResultKind uint8

const (
	// None means the rule did not match; the driver tries the next rule.
	None ResultKind = iota
	// ReplacedCell means the cell is replaced in place by Cell, keeping its
	// current metadata; evaluation restarts from the first rule.
	ReplacedCell
	// ReplacedCellMeta is ReplacedCell plus a new metadata Ref.
	ReplacedCellMeta
	// ReplacedValue means every output net of the cell is replaced by the
	// corresponding net in Value, which must have the same width as the
	// cell's output; the cell is tombstoned.
	ReplacedValue
)

// Result is the value a Ruleset.Rewrite call returns for one cell.
type Result struct {
	Kind  ResultKind
	Cell  *core.Cell
	Meta  meta.Ref
	Value core.Value
}

// NoMatch is the Result a rule returns when it does not apply.
func NoMatch() Result { return Result{Kind: None} }

// ReplaceCell replaces the cell being rewritten with c, preserving its
// current metadata, and restarts rule evaluation from the first rule.
func ReplaceCell(c *core.Cell) Result { return Result{Kind: ReplacedCell, Cell: c} }

// ReplaceCellMeta is ReplaceCell plus a new metadata reference.
func ReplaceCellMeta(c *core.Cell, m meta.Ref) Result {
	return Result{Kind: ReplacedCellMeta, Cell: c, Meta: m}
}

// ReplaceWithValue replaces every output net of the cell being rewritten
// with the corresponding net of v and tombstones the cell.
func ReplaceWithValue(v core.Value) Result { return Result{Kind: ReplacedValue, Value: v} }
