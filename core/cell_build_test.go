package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndWidthMismatch(t *testing.T) {
	a := Value{ZeroNet, OneNet}
	b := Value{ZeroNet}
	_, err := NewAnd(a, b)
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrWidthMismatch, verr.Err)
}

func TestNewAdcWidthIsOnePlusOperand(t *testing.T) {
	a := Value{ZeroNet, OneNet}
	b := Value{OneNet, ZeroNet}
	c, err := NewAdc(a, b, ZeroNet)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Width)
}

func TestNewMuxRequiresEqualWidth(t *testing.T) {
	hi := Value{ZeroNet, OneNet}
	lo := Value{ZeroNet}
	_, err := NewMux(ZeroNet, hi, lo)
	assert.Error(t, err)
}

func TestNewSliceValidatesRange(t *testing.T) {
	v := Value{ZeroNet, OneNet, UndefNet}
	_, err := NewSlice(v, 1, 4)
	assert.Error(t, err)

	ok, err := NewSlice(v, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, ok.Width)
}

func TestNewExtSignedRequiresNonEmpty(t *testing.T) {
	_, err := NewExt(Value{}, 4, true)
	assert.Error(t, err)

	_, err = NewExt(Value{}, 0, false)
	assert.NoError(t, err)
}

func TestNewAigCanonicalizesNegatedConstants(t *testing.T) {
	c, err := NewAig(Neg(ZeroNet), Pos(OneNet))
	require.NoError(t, err)
	assert.False(t, c.CA.Negated)
	assert.Equal(t, OneNet, c.CA.Net)
}

func TestNewDffValidatesClearResetWidths(t *testing.T) {
	data := Value{ZeroNet, OneNet}
	ff := &FlipFlop{
		Data:       data,
		Clock:      Pos(ZeroNet),
		HasClear:   true,
		ClearValue: Const{Bit0},
	}
	_, err := NewDff(ff)
	assert.Error(t, err)

	ff.ClearValue = Const{Bit0, Bit0}
	c, err := NewDff(ff)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Width)
}

func TestNewShiftRejectsZeroStride(t *testing.T) {
	v := Value{ZeroNet, OneNet}
	amt := Value{OneNet}
	_, err := NewShl(v, amt, 0)
	assert.Error(t, err)
}
