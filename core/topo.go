package core

// IterCellsTopo returns every live cell's CellRef in an order suitable for
// rewrite traversal: non-terminal effectful/stateful cells (Input, Iob,
// Instance, Dff, Target) first in insertion order, then combinational
// cells in DFS-postorder (a cell's inputs before itself, cycles broken at
// the first re-entry), then Name/Output cells last. See SPEC_FULL.md
// §4.C.
func (d *Design) IterCellsTopo() []CellRef {
	n := len(d.cells)
	visited := make([]bool, n)
	visiting := make([]bool, n)
	order := make([]int, 0, n)

	primaryOf := func(idx int) int {
		if d.cells[idx].Kind == kindSkip {
			return idx - d.cells[idx].skipBack
		}
		return idx
	}

	var dfs func(idx int)
	dfs = func(idx int) {
		if visited[idx] || visiting[idx] {
			return
		}
		visiting[idx] = true
		d.cells[idx].Visit(func(net Net) {
			if ci, ok := net.cellIndex(); ok && ci >= 0 && ci < n {
				dfs(primaryOf(ci))
			}
		})
		visiting[idx] = false
		visited[idx] = true
		order = append(order, idx)
	}

	// Phase A: non-terminal effectful cells, insertion order.
	for i := 0; i < n; i++ {
		c := &d.cells[i]
		if c.Kind == kindVoid || c.Kind == kindSkip {
			continue
		}
		if c.IsEffectful() && c.Kind != KindName && c.Kind != KindOutput {
			visited[i] = true
			order = append(order, i)
		}
	}

	// Phase B: remaining combinational cells, DFS-postorder.
	for i := 0; i < n; i++ {
		c := &d.cells[i]
		if c.Kind == kindVoid || c.Kind == kindSkip || c.Kind == KindName || c.Kind == KindOutput {
			continue
		}
		dfs(i)
	}

	// Phase C: Name/Output cells, insertion order, pulling in any
	// remaining combinational cone that only they reference.
	for i := 0; i < n; i++ {
		c := &d.cells[i]
		if c.Kind != KindName && c.Kind != KindOutput {
			continue
		}
		if visited[i] {
			continue
		}
		c.Visit(func(net Net) {
			if ci, ok := net.cellIndex(); ok && ci >= 0 && ci < n {
				dfs(primaryOf(ci))
			}
		})
		visited[i] = true
		order = append(order, i)
	}

	refs := make([]CellRef, len(order))
	for i, idx := range order {
		refs[i] = CellRef{d: d, idx: idx}
	}
	return refs
}
