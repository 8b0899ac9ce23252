package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/rewrite"
)

func TestLevelAnalysisInputsAreLevelZero(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)

	levels := NewLevelAnalysis()
	_, err = rewrite.Run(d, []rewrite.Ruleset{levels})
	require.NoError(t, err)

	assert.Equal(t, uint32(0), levels.Get(va[0]))
}

func TestLevelAnalysisNotPassesThroughLevel(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, _ := d.AddCell(a)
	b, _ := core.NewInput("b", 1)
	vb, _ := d.AddCell(b)

	andCell, _ := core.NewAnd(va, vb)
	vand, err := d.AddCell(andCell)
	require.NoError(t, err)
	notCell, _ := core.NewNot(vand)
	vnot, err := d.AddCell(notCell)
	require.NoError(t, err)

	levels := NewLevelAnalysis()
	_, err = rewrite.Run(d, []rewrite.Ruleset{levels})
	require.NoError(t, err)

	assert.Equal(t, levels.Get(vand[0]), levels.Get(vnot[0]), "Not must not add a level")
	assert.Equal(t, uint32(1), levels.Get(vand[0]))
}

func TestLevelAnalysisConstantsAreLevelZero(t *testing.T) {
	levels := NewLevelAnalysis()
	assert.Equal(t, uint32(0), levels.Get(core.ZeroNet))
	assert.Equal(t, uint32(0), levels.Get(core.UndefNet))
}
