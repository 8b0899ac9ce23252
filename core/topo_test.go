package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterCellsTopoRespectsDependencies(t *testing.T) {
	d := NewDesign()
	a, _ := NewInput("a", 1)
	va, _ := d.AddCell(a)
	n1, _ := NewNot(va)
	v1, _ := d.AddCell(n1)
	n2, _ := NewNot(v1)
	v2, _ := d.AddCell(n2)
	out, _ := NewOutput("o", v2)
	_, err := d.AddCell(out)
	require.NoError(t, err)

	refs := d.IterCellsTopo()
	require.Len(t, refs, 4)

	pos := make(map[Kind]int, len(refs))
	for i, r := range refs {
		pos[r.Cell().Kind] = i
	}
	assert.Less(t, pos[KindInput], pos[KindNot])
	assert.Less(t, pos[KindOutput], len(refs))
	assert.Equal(t, len(refs)-1, pos[KindOutput])
}

func TestIterCellsTopoEachCellOnce(t *testing.T) {
	d := NewDesign()
	a, _ := NewInput("a", 2)
	va, _ := d.AddCell(a)
	andCell, _ := NewAnd(Value{va[0]}, Value{va[1]})
	vand, _ := d.AddCell(andCell)
	out, _ := NewOutput("o", vand)
	_, err := d.AddCell(out)
	require.NoError(t, err)

	refs := d.IterCellsTopo()
	require.Len(t, refs, 3)
	seen := make(map[CellRef]bool, len(refs))
	for _, r := range refs {
		assert.False(t, seen[r], "cell visited twice")
		seen[r] = true
	}
}
