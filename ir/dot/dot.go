// Package dot implements the Graphviz emitter sketched in SPEC_FULL.md
// §4.H: it walks core.Design.IterCellsTopo() and renders one record-shaped
// node per cell, with one output port and one port per operand. It is a
// sketch of the collaborator, not a full-fidelity schematic renderer —
// Memory and Instance cells render their structural fields but not a
// per-port breakdown, matching spec §1's framing of this package as an
// external collaborator whose interface we only sketch.
package dot

import (
	"fmt"
	"io"
	"sort"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
)

// fanoutThreshold is the default high-fanout clipping point; named nets
// clip sooner, at namedFanoutThreshold, per spec §4.H.
const (
	fanoutThreshold      = 10
	namedFanoutThreshold = 5
)

// Emit writes a Graphviz "digraph" description of d to w: one node per
// live cell (as IterCellsTopo orders them) plus one stub node per net
// whose fanout exceeds the threshold, with overflow edges redirected to
// the stub instead of drawn individually.
func Emit(w io.Writer, d *core.Design) error {
	refs := d.IterCellsTopo()

	nodeOf := make(map[core.Net]int, len(refs)) // primary net -> node index in refs
	for i, ref := range refs {
		out := ref.Output()
		for _, n := range out {
			nodeOf[n] = i
		}
	}

	consumers := make(map[core.Net][]int) // net -> consumer node indices, in order
	for i, ref := range refs {
		ref.Cell().Visit(func(n core.Net) {
			consumers[n] = append(consumers[n], i)
		})
	}

	if _, err := fmt.Fprintln(w, "digraph netlist {"); err != nil {
		return err
	}
	fmt.Fprintln(w, `  node [shape=record, fontname="monospace"];`)

	for i, ref := range refs {
		fmt.Fprintf(w, "  cell%d [label=\"%s\"];\n", i, nodeLabel(ref.Cell()))
	}

	// Emit edges, clipping any net whose consumer count exceeds its
	// threshold: the first threshold consumers get a direct edge, the
	// rest are redirected through one stub node for that net.
	stubbed := make(map[core.Net]bool)
	var nets []core.Net
	for n := range consumers {
		nets = append(nets, n)
	}
	sort.Slice(nets, func(i, j int) bool { return nets[i].Compare(nets[j]) < 0 })

	for _, n := range nets {
		src, ok := nodeOf[n]
		if !ok {
			continue // constant/undefined/primary-input net with no driving cell node
		}
		cons := consumers[n]
		threshold := fanoutThreshold
		if isNamed(d, refs[src].Cell()) {
			threshold = namedFanoutThreshold
		}
		if len(cons) <= threshold {
			for _, dst := range cons {
				fmt.Fprintf(w, "  cell%d -> cell%d;\n", src, dst)
			}
			continue
		}
		for _, dst := range cons[:threshold] {
			fmt.Fprintf(w, "  cell%d -> cell%d;\n", src, dst)
		}
		if !stubbed[n] {
			fmt.Fprintf(w, "  stub_%d [shape=plaintext, label=\"+%d more\"];\n", src, len(cons)-threshold)
			stubbed[n] = true
		}
		fmt.Fprintf(w, "  cell%d -> stub_%d;\n", src, src)
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

func isNamed(d *core.Design, c *core.Cell) bool {
	if c.Kind == core.KindInput || c.Kind == core.KindOutput || c.Kind == core.KindName {
		return c.Name != ""
	}
	item := d.Meta().Get(c.Meta)
	return item.Kind == meta.KindIdent || item.Kind == meta.KindNamedScope
}

func nodeLabel(c *core.Cell) string {
	switch c.Kind {
	case core.KindInput:
		return fmt.Sprintf("{<out>%s:%d|input}", escape(c.Name), c.Width)
	case core.KindConst:
		return fmt.Sprintf("{<out>const|%s}", escape(c.ConstVal.String()))
	case core.KindOutput, core.KindName:
		return fmt.Sprintf("{<in0>in|%s:%s}", c.Kind, escape(c.Name))
	case core.KindAig:
		return fmt.Sprintf("{<out>aig|{<in0>%s|<in1>%s}}", ctrlLabel(c.CA), ctrlLabel(c.CB))
	case core.KindMux:
		return "{<out>mux|{<sel>sel|<in0>hi|<in1>lo}}"
	default:
		return fmt.Sprintf("{<out>%s:%d|{<in0>a|<in1>b}}", c.Kind, c.Width)
	}
}

func ctrlLabel(cn core.ControlNet) string {
	if cn.Negated {
		return "!in"
	}
	return "in"
}

func escape(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '{' || r == '}' || r == '|' || r == '<' || r == '>' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
