package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCellMultiOutputSkipSlots(t *testing.T) {
	d := NewDesign()
	in, err := NewInput("a", 3)
	require.NoError(t, err)
	v, err := d.AddCell(in)
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())

	ref0, off0, err := d.FindCell(v[0])
	require.NoError(t, err)
	assert.Equal(t, 0, off0)
	ref1, off1, err := d.FindCell(v[1])
	require.NoError(t, err)
	assert.Equal(t, 1, off1)
	assert.Equal(t, ref0.Cell(), ref1.Cell())
}

func TestConstInterning(t *testing.T) {
	d := NewDesign()
	c1, err := NewConst(NewConstFromUint(5, 4))
	require.NoError(t, err)
	v1, err := d.AddCell(c1)
	require.NoError(t, err)

	c2, err := NewConst(NewConstFromUint(5, 4))
	require.NoError(t, err)
	v2, err := d.AddCell(c2)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
}

func TestReplaceNetRequiresDistinct(t *testing.T) {
	d := NewDesign()
	err := d.ReplaceNet(ZeroNet, ZeroNet)
	assert.Error(t, err)
}

func TestCellRefReplacePreservesWidth(t *testing.T) {
	d := NewDesign()
	in, _ := NewInput("a", 2)
	v, err := d.AddCell(in)
	require.NoError(t, err)
	ref, _, err := d.FindCell(v[0])
	require.NoError(t, err)

	wrongWidth, _ := NewInput("b", 3)
	assert.Error(t, ref.Replace(wrongWidth))

	okWidth, _ := NewInput("c", 2)
	assert.NoError(t, ref.Replace(okWidth))
}

func TestStatsCounts(t *testing.T) {
	d := NewDesign()
	in, _ := NewInput("a", 2)
	_, err := d.AddCell(in)
	require.NoError(t, err)

	s := d.Stats()
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.ByKind[KindInput])
	assert.Equal(t, 1, s.Skip)
}
