package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
	"github.com/silicon-weave/netlist/rules"
)

func TestLowerMuxBuildsOrOfAnds(t *testing.T) {
	d := core.NewDesign()
	sel, _ := core.NewInput("sel", 1)
	vsel, _ := d.AddCell(sel)
	hi, _ := core.NewInput("hi", 3)
	vhi, _ := d.AddCell(hi)
	lo, _ := core.NewInput("lo", 3)
	vlo, _ := d.AddCell(lo)

	mux, _ := core.NewMux(vsel[0], vhi, vlo)
	vmux, err := d.AddCell(mux)
	require.NoError(t, err)
	outRef := addOutput(t, d, "o", vmux)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerMux{}})
	require.NoError(t, err)
	d.Compact()

	foundOr, foundAnd := false, false
	for _, ref := range d.IterCellsTopo() {
		switch ref.Cell().Kind {
		case core.KindMux:
			t.Fatalf("Mux cell must be fully lowered")
		case core.KindOr:
			foundOr = true
		case core.KindAnd:
			foundAnd = true
		}
	}
	assert.True(t, foundOr)
	assert.True(t, foundAnd)
	require.Len(t, outRef.Cell().A, 3)
}

func TestLowerMuxZeroWidthIsNoMatch(t *testing.T) {
	d := core.NewDesign()
	sel, _ := core.NewInput("sel", 1)
	vsel, _ := d.AddCell(sel)
	mux, err := core.NewMux(vsel[0], core.Value{}, core.Value{})
	require.NoError(t, err)
	vmux, err := d.AddCell(mux)
	require.NoError(t, err)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerMux{}})
	require.NoError(t, err)
	assert.Empty(t, vmux)
}
