package isocheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
)

func buildAndOutput(t *testing.T, swap bool) *core.Design {
	t.Helper()
	d := core.NewDesign()
	a, err := core.NewInput("a", 1)
	require.NoError(t, err)
	va, err := d.AddCell(a)
	require.NoError(t, err)
	b, err := core.NewInput("b", 1)
	require.NoError(t, err)
	vb, err := d.AddCell(b)
	require.NoError(t, err)

	lhs, rhs := va, vb
	if swap {
		lhs, rhs = vb, va
	}
	andCell, err := core.NewAnd(lhs, rhs)
	require.NoError(t, err)
	vy, err := d.AddCell(andCell)
	require.NoError(t, err)

	out, err := core.NewOutput("y", vy)
	require.NoError(t, err)
	_, err = d.AddCell(out)
	require.NoError(t, err)
	return d
}

func TestIsomorphicAcceptsOperandSwap(t *testing.T) {
	a := buildAndOutput(t, false)
	b := buildAndOutput(t, true)
	assert.NoError(t, Isomorphic(a, b))
}

func TestIsomorphicRejectsDifferentKind(t *testing.T) {
	a := buildAndOutput(t, false)

	d := core.NewDesign()
	ai, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(ai)
	bi, _ := core.NewInput("b", 1)
	vb, _ := d.AddCell(bi)
	orCell, _ := core.NewOr(va, vb)
	vy, _ := d.AddCell(orCell)
	out, _ := core.NewOutput("y", vy)
	_, _ = d.AddCell(out)

	err := Isomorphic(a, d)
	require.Error(t, err)
	var mismatch *Mismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestIsomorphicRejectsMissingOutput(t *testing.T) {
	a := buildAndOutput(t, false)

	d := core.NewDesign()
	ai, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(ai)
	out, _ := core.NewOutput("different_name", va)
	_, _ = d.AddCell(out)

	assert.Error(t, Isomorphic(a, d))
}
