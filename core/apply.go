package core

// remapNet returns f(n) for a cell-referencing net n. Constant and
// undefined nets are returned unchanged (f is only ever meaningful for
// cell-referencing nets).
func remapNet(n Net, f func(Net) Net) Net {
	if n.IsConst() || n.IsUndef() {
		return n
	}
	return f(n)
}

func remapValue(v Value, f func(Net) Net) {
	for i := range v {
		v[i] = remapNet(v[i], f)
	}
}

func remapControl(cn *ControlNet, f func(Net) Net) {
	cn.Net = remapNet(cn.Net, f)
}

// remapCell rewrites every operand Net/Value/ControlNet field of c in
// place using f. This mirrors Cell.Visit's case coverage but mutates
// rather than merely observing.
func remapCell(c *Cell, f func(Net) Net) {
	remapValue(c.A, f)
	remapValue(c.B, f)
	switch c.Kind {
	case KindAdc:
		c.Cin = remapNet(c.Cin, f)
	case KindMux:
		c.Sel = remapNet(c.Sel, f)
	case KindAig:
		remapControl(&c.CA, f)
		remapControl(&c.CB, f)
	case KindSwizzle:
		for i := range c.Chunks {
			if !c.Chunks[i].IsConst {
				remapValue(c.Chunks[i].Value, f)
			}
		}
	case KindDff:
		if c.FF != nil {
			remapValue(c.FF.Data, f)
			remapControl(&c.FF.Clock, f)
			if c.FF.HasClear {
				remapControl(&c.FF.Clear, f)
			}
			if c.FF.HasReset {
				remapControl(&c.FF.Reset, f)
			}
			if c.FF.HasEnable {
				remapControl(&c.FF.Enable, f)
			}
		}
	case KindMemory:
		if c.Mem != nil {
			for i := range c.Mem.WritePorts {
				remapControl(&c.Mem.WritePorts[i].Clock, f)
				remapValue(c.Mem.WritePorts[i].Addr, f)
				remapValue(c.Mem.WritePorts[i].Data, f)
				remapValue(c.Mem.WritePorts[i].Enable, f)
			}
			for i := range c.Mem.ReadPorts {
				remapControl(&c.Mem.ReadPorts[i].Clock, f)
				remapValue(c.Mem.ReadPorts[i].Addr, f)
			}
		}
	case KindIob:
		if c.Iob != nil {
			remapValue(c.Iob.Output, f)
			remapControl(&c.Iob.Enable, f)
		}
	case KindTarget:
		if c.Target != nil {
			remapValue(c.Target.Inputs, f)
		}
	case KindInstance:
		if c.Instance != nil {
			for _, v := range c.Instance.Ports {
				remapValue(v, f)
			}
		}
	}
}

// resolveNetMap path-compresses the raw (possibly chained) net-replacement
// map into a map from every source net directly to its final target,
// breaking on a cycle by leaving the last-seen target in place (a
// replacement cycle indicates two rules fighting over equivalent nets;
// treating it as already-resolved is the safe, terminating choice).
func resolveNetMap(raw map[Net]Net) map[Net]Net {
	resolved := make(map[Net]Net, len(raw))
	var resolve func(n Net, seen map[Net]bool) Net
	resolve = func(n Net, seen map[Net]bool) Net {
		if r, ok := resolved[n]; ok {
			return r
		}
		to, ok := raw[n]
		if !ok {
			return n
		}
		if seen[n] {
			return to
		}
		seen[n] = true
		final := resolve(to, seen)
		resolved[n] = final
		return final
	}
	for n := range raw {
		resolve(n, make(map[Net]bool))
	}
	return resolved
}

// Apply drains the change queue in the fixed order described in
// SPEC_FULL.md §4.C: tombstone conversions, then cell replacements, then
// net-map propagation across all live cells to a fixpoint. It reports
// whether anything changed.
func (d *Design) Apply() (bool, error) {
	changed := !d.queue.empty()

	for idx := range d.queue.tombstones {
		d.cells[idx] = Cell{Kind: kindVoid}
	}

	for idx, newCell := range d.queue.cellReplace {
		cur := &d.cells[idx]
		if cur.Kind == kindVoid {
			continue // tombstoned in this same Apply; tombstone wins.
		}
		if newCell.Width != cur.Width {
			return changed, validationErr("Apply", ErrWidthMismatch)
		}
		d.cells[idx] = *newCell
	}

	if len(d.queue.netMap) > 0 {
		resolved := resolveNetMap(d.queue.netMap)
		f := func(n Net) Net {
			if to, ok := resolved[n]; ok {
				return to
			}
			return n
		}
		for i := range d.cells {
			if d.cells[i].Kind == kindVoid || d.cells[i].Kind == kindSkip {
				continue
			}
			remapCell(&d.cells[i], f)
		}
	}

	d.queue = newChangeQueue()
	return changed, nil
}
