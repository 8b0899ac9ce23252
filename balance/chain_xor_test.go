package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
)

func TestChainRebalanceFlattensLinearXorChain(t *testing.T) {
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
		xorCell, err := core.NewXor(acc, ins[i])
		require.NoError(t, err)
		acc, err = d.AddCell(xorCell)
		require.NoError(t, err)
	}
	outRef := addOutput(t, d, "o", acc)

	changed, err := ChainRebalancePass(d)
	require.NoError(t, err)
	assert.True(t, changed)
	d.Compact()

	depth := depthOf(t, d, outRef.Cell().A[0])
	assert.LessOrEqual(t, depth, uint32(5), "8-leaf XOR chain should rebalance to roughly log2(8) depth, got %d", depth)
}
