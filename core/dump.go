package core

import "github.com/kr/pretty"

// Dump renders d's full internal state (every cell, the pending change
// queue, the constant-intern cache) as a deep, field-by-field debug
// string via kr/pretty, the way the teacher's test helpers lean on
// descriptive failure output. It is a debug/test helper, never used on a
// hot path or to carry program logic.
func (d *Design) Dump() string {
	return pretty.Sprint(d)
}

// DumpCell renders a single cell the same way, as a debug helper.
func DumpCell(c *Cell) string {
	return pretty.Sprint(c)
}
