package balance

import (
	"container/heap"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
	"github.com/silicon-weave/netlist/rewrite"
)

// TreeRebalance implements §4.G.2: classify single-use Aig/Xor nodes as
// "inner" (part of a still-growing associative tree) and, at each boundary
// node, rebuild a balanced binary tree from the accumulated leaf set using a
// level-keyed min-heap. Ported from tree_rebalance.rs.
type TreeRebalance struct {
	levels   *LevelAnalysis
	innerAig map[core.Net]bool
	innerXor map[core.Net]bool
	aigTrees map[core.Net]map[core.ControlNet]struct{}
	xorTrees map[core.Net]map[core.Net]struct{}
}

// NewTreeRebalance scans d once to compute per-net use counts and classify
// every Aig/Xor operand net with exactly one use as "inner", then returns a
// TreeRebalance ready to run alongside levels in the same rewrite.Run call.
func NewTreeRebalance(d *core.Design, levels *LevelAnalysis) *TreeRebalance {
	refs := d.IterCellsTopo()
	useCount := make(map[core.Net]uint32)
	for _, ref := range refs {
		ref.Cell().Visit(func(n core.Net) { useCount[n]++ })
	}

	innerAig := make(map[core.Net]bool)
	innerXor := make(map[core.Net]bool)
	for _, ref := range refs {
		c := ref.Cell()
		switch c.Kind {
		case core.KindAig:
			for _, cn := range [2]core.ControlNet{c.CA, c.CB} {
				if !cn.Negated && useCount[cn.Net] == 1 {
					innerAig[cn.Net] = true
				}
			}
		case core.KindXor:
			for _, v := range [2]core.Value{c.A, c.B} {
				for _, n := range v {
					if useCount[n] == 1 {
						innerXor[n] = true
					}
				}
			}
		}
	}

	return &TreeRebalance{
		levels:   levels,
		innerAig: innerAig,
		innerXor: innerXor,
		aigTrees: make(map[core.Net]map[core.ControlNet]struct{}),
		xorTrees: make(map[core.Net]map[core.Net]struct{}),
	}
}

func (tr *TreeRebalance) Rewrite(rw *rewrite.Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) rewrite.Result {
	if len(output) != 1 {
		return rewrite.NoMatch()
	}
	switch cell.Kind {
	case core.KindAig:
		return tr.rewriteAig(rw, metaRef, cell.CA, cell.CB, output[0])
	case core.KindXor:
		if len(cell.A) != 1 || len(cell.B) != 1 {
			return rewrite.NoMatch()
		}
		return tr.rewriteXor(rw, metaRef, cell.A[0], cell.B[0], output[0])
	}
	return rewrite.NoMatch()
}

func (tr *TreeRebalance) CellAdded(core.CellRef) {}

func (tr *TreeRebalance) NetReplaced(from, to core.Net) {
	if tree, ok := tr.aigTrees[from]; ok {
		delete(tr.aigTrees, from)
		tr.aigTrees[to] = tree
	}
	if tree, ok := tr.xorTrees[from]; ok {
		delete(tr.xorTrees, from)
		tr.xorTrees[to] = tree
	}
}

func (tr *TreeRebalance) takeAigInputs(cn core.ControlNet) map[core.ControlNet]struct{} {
	if !cn.Negated {
		if tree, ok := tr.aigTrees[cn.Net]; ok {
			delete(tr.aigTrees, cn.Net)
			return tree
		}
	}
	return map[core.ControlNet]struct{}{cn: {}}
}

func (tr *TreeRebalance) takeXorInputs(n core.Net) map[core.Net]struct{} {
	if tree, ok := tr.xorTrees[n]; ok {
		delete(tr.xorTrees, n)
		return tree
	}
	return map[core.Net]struct{}{n: {}}
}

// materializeControlNet returns a plain Net carrying cn's value, building a
// Not cell only when cn is negated.
func materializeControlNet(rw *rewrite.Rewriter, metaRef meta.Ref, cn core.ControlNet) (core.Net, error) {
	if !cn.Negated {
		return cn.Net, nil
	}
	if b, ok := cn.Net.AsConstBit(); ok {
		switch b {
		case core.Bit0:
			return core.OneNet, nil
		case core.Bit1:
			return core.ZeroNet, nil
		default:
			return core.UndefNet, nil
		}
	}
	return addNot(rw, metaRef, cn.Net)
}

func (tr *TreeRebalance) rewriteAig(rw *rewrite.Rewriter, metaRef meta.Ref, net1, net2 core.ControlNet, output core.Net) rewrite.Result {
	inputs1 := tr.takeAigInputs(net1)
	inputs2 := tr.takeAigInputs(net2)
	if len(inputs1) < len(inputs2) {
		inputs1, inputs2 = inputs2, inputs1
	}
	for cn := range inputs2 {
		inputs1[cn] = struct{}{}
	}
	inputs := inputs1

	if tr.innerAig[output] {
		tr.aigTrees[output] = inputs
		return rewrite.NoMatch()
	}
	if len(inputs) < 2 {
		for cn := range inputs {
			n, err := materializeControlNet(rw, metaRef, cn)
			if err != nil {
				return rewrite.NoMatch()
			}
			return rewrite.ReplaceWithValue(core.Value{n})
		}
		return rewrite.NoMatch()
	}
	if len(inputs) == 2 {
		return rewrite.NoMatch()
	}

	h := &aigHeap{}
	heap.Init(h)
	for cn := range inputs {
		heap.Push(h, aigHeapItem{level: tr.levels.Get(cn.Net), net: cn})
	}
	for h.Len() > 1 {
		a := heap.Pop(h).(aigHeapItem)
		b := heap.Pop(h).(aigHeapItem)
		lvl := a.level
		if b.level > lvl {
			lvl = b.level
		}
		lvl++
		net, err := addControlNet(rw, metaRef, a.net, b.net)
		if err != nil {
			return rewrite.NoMatch()
		}
		heap.Push(h, aigHeapItem{level: lvl, net: core.Pos(net)})
	}
	final := heap.Pop(h).(aigHeapItem)
	result, err := materializeControlNet(rw, metaRef, final.net)
	if err != nil {
		return rewrite.NoMatch()
	}
	return rewrite.ReplaceWithValue(core.Value{result})
}

func (tr *TreeRebalance) rewriteXor(rw *rewrite.Rewriter, metaRef meta.Ref, net1, net2, output core.Net) rewrite.Result {
	inputs1 := tr.takeXorInputs(net1)
	inputs2 := tr.takeXorInputs(net2)
	if len(inputs1) < len(inputs2) {
		inputs1, inputs2 = inputs2, inputs1
	}
	for n := range inputs2 {
		if _, ok := inputs1[n]; ok {
			delete(inputs1, n)
		} else {
			inputs1[n] = struct{}{}
		}
	}
	inputs := inputs1

	if tr.innerXor[output] {
		tr.xorTrees[output] = inputs
		return rewrite.NoMatch()
	}
	if len(inputs) < 2 {
		for n := range inputs {
			return rewrite.ReplaceWithValue(core.Value{n})
		}
		return rewrite.NoMatch()
	}
	if len(inputs) == 2 {
		return rewrite.NoMatch()
	}

	h := &xorHeap{}
	heap.Init(h)
	for n := range inputs {
		heap.Push(h, xorHeapItem{level: tr.levels.Get(n), net: n})
	}
	for h.Len() > 1 {
		a := heap.Pop(h).(xorHeapItem)
		b := heap.Pop(h).(xorHeapItem)
		lvl := a.level
		if b.level > lvl {
			lvl = b.level
		}
		lvl++
		net, err := addXor(rw, metaRef, a.net, b.net)
		if err != nil {
			return rewrite.NoMatch()
		}
		heap.Push(h, xorHeapItem{level: lvl, net: net})
	}
	final := heap.Pop(h).(xorHeapItem)
	return rewrite.ReplaceWithValue(core.Value{final.net})
}

func controlNetLess(a, b core.ControlNet) bool {
	if c := a.Net.Compare(b.Net); c != 0 {
		return c < 0
	}
	return !a.Negated && b.Negated
}

type aigHeapItem struct {
	level uint32
	net   core.ControlNet
}

type aigHeap []aigHeapItem

func (h aigHeap) Len() int { return len(h) }
func (h aigHeap) Less(i, j int) bool {
	if h[i].level != h[j].level {
		return h[i].level < h[j].level
	}
	return controlNetLess(h[i].net, h[j].net)
}
func (h aigHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *aigHeap) Push(x interface{}) { *h = append(*h, x.(aigHeapItem)) }
func (h *aigHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type xorHeapItem struct {
	level uint32
	net   core.Net
}

type xorHeap []xorHeapItem

func (h xorHeap) Len() int { return len(h) }
func (h xorHeap) Less(i, j int) bool {
	if h[i].level != h[j].level {
		return h[i].level < h[j].level
	}
	return h[i].net.Compare(h[j].net) < 0
}
func (h xorHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *xorHeap) Push(x interface{}) { *h = append(*h, x.(xorHeapItem)) }
func (h *xorHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
