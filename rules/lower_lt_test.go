package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
	"github.com/silicon-weave/netlist/rules"
)

func TestLowerULtBuildsSubtractionCarryChain(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 4)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 4)
	vb, _ := d.AddCell(b)

	lt, _ := core.NewULt(va, vb)
	vlt, err := d.AddCell(lt)
	require.NoError(t, err)
	outRef := addOutput(t, d, "o", vlt)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerLt{}})
	require.NoError(t, err)
	d.Compact()

	foundAdc := false
	for _, ref := range d.IterCellsTopo() {
		switch ref.Cell().Kind {
		case core.KindULt, core.KindSLt:
			t.Fatalf("comparison cell must be fully lowered")
		case core.KindAdc:
			foundAdc = true
		}
	}
	assert.True(t, foundAdc, "ULt must lower through an adder")
	require.Len(t, outRef.Cell().A, 1)
}

func TestLowerSLtFlipsSignBitsBeforeSubtracting(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 4)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 4)
	vb, _ := d.AddCell(b)

	lt, _ := core.NewSLt(va, vb)
	vlt, err := d.AddCell(lt)
	require.NoError(t, err)
	addOutput(t, d, "o", vlt)

	_, err = rewrite.Run(d, []rewrite.Ruleset{rules.LowerLt{}})
	require.NoError(t, err)
	d.Compact()

	flippedA := false
	for _, ref := range d.IterCellsTopo() {
		if ref.Cell().Kind == core.KindSLt {
			t.Fatalf("SLt cell must be fully lowered")
		}
		if ref.Cell().Kind == core.KindNot && assert.ObjectsAreEqual(core.Value{va[3]}, ref.Cell().A) {
			flippedA = true
		}
	}
	assert.True(t, flippedA, "SLt must invert a's sign bit before the subtraction")
}
