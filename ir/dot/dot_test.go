package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
)

func TestEmitRendersNodesAndEdges(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)
	b, _ := core.NewInput("b", 1)
	vb, err := d.AddCell(b)
	require.NoError(t, err)

	andCell, _ := core.NewAnd(va, vb)
	vy, err := d.AddCell(andCell)
	require.NoError(t, err)

	out, _ := core.NewOutput("y", vy)
	_, err = d.AddCell(out)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, d))

	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "digraph netlist {"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "}"))
	assert.Contains(t, s, "->")
	assert.Contains(t, s, "input")
}

func TestEmitClipsHighFanout(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		notCell, _ := core.NewNot(va)
		_, err := d.AddCell(notCell)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, d))
	assert.Contains(t, buf.String(), "more")
}
