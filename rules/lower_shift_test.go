package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
	"github.com/silicon-weave/netlist/rules"
)

// S6 — Shl lowering: a 4-bit value shifted left by a 2-bit amount (stride 1)
// lowers to a cascade of Mux cells, one per amount bit, with no Shl cell
// surviving.
func TestLowerShlBuildsMuxCascade(t *testing.T) {
	d := core.NewDesign()
	v, _ := core.NewInput("v", 4)
	vv, _ := d.AddCell(v)
	amt, _ := core.NewInput("amt", 2)
	vamt, _ := d.AddCell(amt)

	shl, _ := core.NewShl(vv, vamt, 1)
	vshl, err := d.AddCell(shl)
	require.NoError(t, err)
	outRef := addOutput(t, d, "o", vshl)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerShift{}})
	require.NoError(t, err)
	d.Compact()

	muxCount := 0
	for _, ref := range d.IterCellsTopo() {
		switch ref.Cell().Kind {
		case core.KindShl:
			t.Fatalf("Shl cell must be fully lowered")
		case core.KindMux:
			muxCount++
		}
	}
	assert.Equal(t, 2, muxCount, "one Mux per amount bit")
	require.Len(t, outRef.Cell().A, 4)
}

func TestLowerShiftZeroWidthValueIsIdentity(t *testing.T) {
	d := core.NewDesign()
	amt, _ := core.NewInput("amt", 2)
	vamt, _ := d.AddCell(amt)
	shl, err := core.NewShl(core.Value{}, vamt, 1)
	require.NoError(t, err)
	vshl, err := d.AddCell(shl)
	require.NoError(t, err)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerShift{}})
	require.NoError(t, err)
	assert.Empty(t, vshl)
}
