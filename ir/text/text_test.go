package text

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/isocheck"
)

func TestEmitParseRoundTrip(t *testing.T) {
	d := core.NewDesign()
	a, _ := core.NewInput("a", 1)
	va, err := d.AddCell(a)
	require.NoError(t, err)
	b, _ := core.NewInput("b", 1)
	vb, err := d.AddCell(b)
	require.NoError(t, err)

	andCell, _ := core.NewAnd(va, vb)
	vAnd, err := d.AddCell(andCell)
	require.NoError(t, err)
	notCell, _ := core.NewNot(vAnd)
	vNot, err := d.AddCell(notCell)
	require.NoError(t, err)

	out, _ := core.NewOutput("y", vNot)
	_, err = d.AddCell(out)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, d, false))

	d2, err := Parse(&buf)
	require.NoError(t, err)

	assert.NoError(t, isocheck.Isomorphic(d, d2))
}

func TestParseRejectsMissingEquals(t *testing.T) {
	_, err := Parse(strings.NewReader("%0:1 input \"a\";\n"))
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestParseSkipsReservedOpcode(t *testing.T) {
	d, err := Parse(strings.NewReader("%0:1 = parswitch \"x\";\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, d.NumCells())
}

func TestParseConstLiteralAndAig(t *testing.T) {
	src := "" +
		"%2:1 = const 0b1;\n" +
		"%3:1 = const 0b0;\n" +
		"%4:1 = aig %2, ~%3;\n" +
		"%5:1 = output \"y\", %4;\n"
	d, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 4, d.NumCells())
}
