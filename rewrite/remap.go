package rewrite

import "github.com/silicon-weave/netlist/core"

// remapOperandNet applies f to n unless n is constant or undefined, mirroring
// core's own (unexported) operand-remapping convention; see core/apply.go.
func remapOperandNet(n core.Net, f func(core.Net) core.Net) core.Net {
	if n.IsConst() || n.IsUndef() {
		return n
	}
	return f(n)
}

func remapOperandValue(v core.Value, f func(core.Net) core.Net) {
	for i := range v {
		v[i] = remapOperandNet(v[i], f)
	}
}

func remapOperandControl(cn *core.ControlNet, f func(core.Net) core.Net) {
	cn.Net = remapOperandNet(cn.Net, f)
}

// remapCellOperands rewrites every operand field of c in place using f. It
// is the rewrite package's copy of core's internal remapCell: the rewrite
// driver needs the same traversal to apply its own in-pass net-replacement
// map to a working copy of a cell before handing it to a Ruleset, but core
// does not (and should not) export its deferred-apply remap helper for
// arbitrary callers to invoke outside the change-queue protocol.
func remapCellOperands(c *core.Cell, f func(core.Net) core.Net) {
	remapOperandValue(c.A, f)
	remapOperandValue(c.B, f)
	switch c.Kind {
	case core.KindAdc:
		c.Cin = remapOperandNet(c.Cin, f)
	case core.KindMux:
		c.Sel = remapOperandNet(c.Sel, f)
	case core.KindAig:
		remapOperandControl(&c.CA, f)
		remapOperandControl(&c.CB, f)
	case core.KindSwizzle:
		for i := range c.Chunks {
			if !c.Chunks[i].IsConst {
				remapOperandValue(c.Chunks[i].Value, f)
			}
		}
	case core.KindDff:
		if c.FF != nil {
			remapOperandValue(c.FF.Data, f)
			remapOperandControl(&c.FF.Clock, f)
			if c.FF.HasClear {
				remapOperandControl(&c.FF.Clear, f)
			}
			if c.FF.HasReset {
				remapOperandControl(&c.FF.Reset, f)
			}
			if c.FF.HasEnable {
				remapOperandControl(&c.FF.Enable, f)
			}
		}
	case core.KindMemory:
		if c.Mem != nil {
			for i := range c.Mem.WritePorts {
				remapOperandControl(&c.Mem.WritePorts[i].Clock, f)
				remapOperandValue(c.Mem.WritePorts[i].Addr, f)
				remapOperandValue(c.Mem.WritePorts[i].Data, f)
				remapOperandValue(c.Mem.WritePorts[i].Enable, f)
			}
			for i := range c.Mem.ReadPorts {
				remapOperandControl(&c.Mem.ReadPorts[i].Clock, f)
				remapOperandValue(c.Mem.ReadPorts[i].Addr, f)
			}
		}
	case core.KindIob:
		if c.Iob != nil {
			remapOperandValue(c.Iob.Output, f)
			remapOperandControl(&c.Iob.Enable, f)
		}
	case core.KindTarget:
		if c.Target != nil {
			remapOperandValue(c.Target.Inputs, f)
		}
	case core.KindInstance:
		if c.Instance != nil {
			for _, v := range c.Instance.Ports {
				remapOperandValue(v, f)
			}
		}
	}
}

// cloneCell returns a shallow copy of *c suitable for mutating as a
// "working cell" during rule evaluation without disturbing the arena until
// the driver commits the result via core.CellRef.Replace.
func cloneCell(c *core.Cell) core.Cell {
	cp := *c
	cp.A = append(core.Value(nil), c.A...)
	cp.B = append(core.Value(nil), c.B...)
	if c.Chunks != nil {
		cp.Chunks = append([]core.SwizzleChunk(nil), c.Chunks...)
	}
	return cp
}
