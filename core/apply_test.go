package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyNetReplacementPropagates(t *testing.T) {
	d := NewDesign()
	a, _ := NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)
	b, _ := NewInput("b", 1)
	vb, err := d.AddCell(b)
	require.NoError(t, err)

	notCell, _ := NewNot(va)
	vn, err := d.AddCell(notCell)
	require.NoError(t, err)

	require.NoError(t, d.ReplaceNet(va[0], vb[0]))
	changed, err := d.Apply()
	require.NoError(t, err)
	assert.True(t, changed)

	ref, _, err := d.FindCell(vn[0])
	require.NoError(t, err)
	assert.Equal(t, vb[0], ref.Cell().A[0])
}

func TestApplyTombstoneBeatsReplace(t *testing.T) {
	d := NewDesign()
	a, _ := NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)

	ref, _, err := d.FindCell(va[0])
	require.NoError(t, err)
	ref.Unalive()
	other, _ := NewInput("other", 1)
	require.NoError(t, ref.Replace(other))

	_, err = d.Apply()
	require.NoError(t, err)
	assert.False(t, ref.Valid())
}

func TestApplyChainedReplacementResolves(t *testing.T) {
	d := NewDesign()
	a, _ := NewInput("a", 1)
	va, _ := d.AddCell(a)
	b, _ := NewInput("b", 1)
	vb, _ := d.AddCell(b)
	c, _ := NewInput("c", 1)
	vc, _ := d.AddCell(c)

	notCell, _ := NewNot(va)
	vn, _ := d.AddCell(notCell)

	require.NoError(t, d.ReplaceNet(va[0], vb[0]))
	require.NoError(t, d.ReplaceNet(vb[0], vc[0]))
	_, err := d.Apply()
	require.NoError(t, err)

	ref, _, err := d.FindCell(vn[0])
	require.NoError(t, err)
	assert.Equal(t, vc[0], ref.Cell().A[0])
}

func TestApplyReportsNoChangeOnEmptyQueue(t *testing.T) {
	d := NewDesign()
	changed, err := d.Apply()
	require.NoError(t, err)
	assert.False(t, changed)
}
