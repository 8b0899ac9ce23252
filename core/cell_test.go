package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEffectful(t *testing.T) {
	in, _ := NewInput("a", 1)
	assert.True(t, in.IsEffectful())

	and, _ := NewAnd(Value{ZeroNet}, Value{OneNet})
	assert.False(t, and.IsEffectful())

	dff, _ := NewDff(&FlipFlop{Data: Value{ZeroNet}, Clock: Pos(ZeroNet)})
	assert.True(t, dff.IsEffectful())
}

func TestHasState(t *testing.T) {
	dff, _ := NewDff(&FlipFlop{Data: Value{ZeroNet}, Clock: Pos(ZeroNet)})
	assert.True(t, dff.HasState())

	in, _ := NewInput("a", 1)
	assert.False(t, in.HasState())
}

func TestStructKeyDistinguishesOperands(t *testing.T) {
	a1, _ := NewAnd(Value{ZeroNet}, Value{OneNet})
	a2, _ := NewAnd(Value{ZeroNet}, Value{OneNet})
	a3, _ := NewAnd(Value{OneNet}, Value{ZeroNet})

	assert.Equal(t, a1.StructKey(), a2.StructKey())
	assert.NotEqual(t, a1.StructKey(), a3.StructKey())
}

func TestVisitSkipsConstOperands(t *testing.T) {
	d := NewDesign()
	in, _ := NewInput("a", 1)
	va, err := d.AddCell(in)
	require.NoError(t, err)

	mux, _ := NewMux(va[0], Value{ZeroNet}, Value{OneNet})
	var seen []Net
	mux.Visit(func(n Net) { seen = append(seen, n) })
	assert.Equal(t, []Net{va[0]}, seen)
}
