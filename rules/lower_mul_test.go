package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
	"github.com/silicon-weave/netlist/rules"
)

func TestLowerMulBuildsShiftAndAddChain(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 4)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 4)
	vb, _ := d.AddCell(b)

	mul, _ := core.NewMul(va, vb)
	vmul, err := d.AddCell(mul)
	require.NoError(t, err)
	outRef := addOutput(t, d, "o", vmul)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerMul{}})
	require.NoError(t, err)
	d.Compact()

	adcCount := 0
	for _, ref := range d.IterCellsTopo() {
		switch ref.Cell().Kind {
		case core.KindMul:
			t.Fatalf("Mul cell must be fully lowered")
		case core.KindAdc:
			adcCount++
		}
	}
	assert.Equal(t, 4, adcCount, "one partial-product add per bit of b")
	require.Len(t, outRef.Cell().A, 4)
}

func TestLowerMulZeroWidthIsEmpty(t *testing.T) {
	d := core.NewDesign()
	mul, err := core.NewMul(core.Value{}, core.Value{})
	require.NoError(t, err)
	vmul, err := d.AddCell(mul)
	require.NoError(t, err)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerMul{}})
	require.NoError(t, err)
	assert.Empty(t, vmul)
}
