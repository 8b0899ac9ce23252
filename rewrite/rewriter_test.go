package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
	"github.com/silicon-weave/netlist/rules"
)

func TestRunNormalizeSwapsCommutativeOperands(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)
	b, _ := core.NewInput("b", 1)
	vb, err := d.AddCell(b)
	require.NoError(t, err)

	// Build And(b, a): Normalize should swap to And(a, b) since a < b by
	// Net.Compare (a was added first, so its index is lower).
	andCell, _ := core.NewAnd(vb, va)
	vand, err := d.AddCell(andCell)
	require.NoError(t, err)
	out, _ := core.NewOutput("o", vand)
	_, err = d.AddCell(out)
	require.NoError(t, err)

	changed, err := rewrite.Run(d, []rewrite.Ruleset{rules.Normalize{}})
	require.NoError(t, err)
	assert.True(t, changed)

	ref, _, err := d.FindCell(vand[0])
	require.NoError(t, err)
	assert.Equal(t, va[0], ref.Cell().A[0])
	assert.Equal(t, vb[0], ref.Cell().B[0])
}

func TestRunNormalizeIsIdempotent(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 1)
	vb, _ := d.AddCell(b)
	andCell, _ := core.NewAnd(vb, va)
	vand, err := d.AddCell(andCell)
	require.NoError(t, err)
	out, _ := core.NewOutput("o", vand)
	_, err = d.AddCell(out)
	require.NoError(t, err)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.Normalize{}})
	require.NoError(t, err)

	changed, err := rewrite.Run(d, []rewrite.Ruleset{rules.Normalize{}})
	require.NoError(t, err)
	assert.False(t, changed, "re-running Normalize after it has already run must report no change")
}

func TestRunHashConsDeduplicatesIdenticalCells(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 1)
	vb, _ := d.AddCell(b)

	and1, _ := core.NewAnd(va, vb)
	v1, err := d.AddCell(and1)
	require.NoError(t, err)
	and2, _ := core.NewAnd(va, vb)
	v2, err := d.AddCell(and2)
	require.NoError(t, err)

	out1, _ := core.NewOutput("o1", v1)
	_, err = d.AddCell(out1)
	require.NoError(t, err)
	out2, _ := core.NewOutput("o2", v2)
	_, err = d.AddCell(out2)
	require.NoError(t, err)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.SimpleAigOpt{}})
	require.NoError(t, err)
	d.Compact()

	s := d.Stats()
	assert.Equal(t, 1, s.ByKind[core.KindAig], "two structurally identical Aig cells must hash-cons to one")
}

func TestAigFormOnlyAigXorNot(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 1)
	vb, _ := d.AddCell(b)

	orCell, _ := core.NewOr(va, vb)
	vor, err := d.AddCell(orCell)
	require.NoError(t, err)
	out, _ := core.NewOutput("o", vor)
	_, err = d.AddCell(out)
	require.NoError(t, err)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.SimpleAigOpt{}, rules.Normalize{}})
	require.NoError(t, err)
	d.Compact()

	for _, ref := range d.IterCellsTopo() {
		switch ref.Cell().Kind {
		case core.KindAig, core.KindNot, core.KindXor, core.KindInput, core.KindOutput:
		default:
			t.Fatalf("unexpected non-AIG-form cell kind %v after SimpleAigOpt", ref.Cell().Kind)
		}
	}
}
