package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
)

func addOutput(t *testing.T, d *core.Design, name string, v core.Value) core.CellRef {
	t.Helper()
	out, err := core.NewOutput(name, v)
	require.NoError(t, err)
	ov, err := d.AddCell(out)
	require.NoError(t, err)
	ref, _, err := d.FindCell(ov[0])
	require.NoError(t, err)
	return ref
}

func depthOf(t *testing.T, d *core.Design, n core.Net) uint32 {
	t.Helper()
	levels := NewLevelAnalysis()
	_, err := rewrite.Run(d, []rewrite.Ruleset{levels})
	require.NoError(t, err)
	return levels.Get(n)
}

// S2 — chain rebalance: an 8-input linear AND chain (depth 7) must collapse
// to a logarithmic-depth tree after ChainRebalancePass.
func TestChainRebalanceFlattensLinearAndChain(t *testing.T) {
	const n = 8
	d := core.NewDesign()
	ins := make([]core.Value, n)
	for i := 0; i < n; i++ {
		in, _ := core.NewInput(string(rune('a'+i)), 1)
		v, err := d.AddCell(in)
		require.NoError(t, err)
		ins[i] = v
	}

	acc := ins[0]
	for i := 1; i < n; i++ {
		andCell, err := core.NewAnd(acc, ins[i])
		require.NoError(t, err)
		acc, err = d.AddCell(andCell)
		require.NoError(t, err)
	}
	outRef := addOutput(t, d, "o", acc)

	changed, err := ChainRebalancePass(d)
	require.NoError(t, err)
	assert.True(t, changed)
	d.Compact()

	depth := depthOf(t, d, outRef.Cell().A[0])
	assert.LessOrEqual(t, depth, uint32(5), "8-leaf AND chain should rebalance to roughly log2(8) depth, got %d", depth)
}

func TestChainRebalanceNoOpOnAlreadyBalancedTree(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 1)
	vb, _ := d.AddCell(b)
	c, _ := core.NewInput("c", 1)
	vc, _ := d.AddCell(c)
	e, _ := core.NewInput("e", 1)
	ve, _ := d.AddCell(e)

	left, _ := core.NewAnd(va, vb)
	vleft, err := d.AddCell(left)
	require.NoError(t, err)
	right, _ := core.NewAnd(vc, ve)
	vright, err := d.AddCell(right)
	require.NoError(t, err)
	top, _ := core.NewAnd(vleft, vright)
	vtop, err := d.AddCell(top)
	require.NoError(t, err)
	addOutput(t, d, "o", vtop)

	_, err = ChainRebalancePass(d)
	require.NoError(t, err)
}
