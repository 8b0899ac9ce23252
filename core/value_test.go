package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConcatRepeatSlice(t *testing.T) {
	a := Value{ZeroNet, OneNet}
	b := Value{UndefNet}
	cat := a.Concat(b)
	require.Equal(t, 3, cat.Len())
	assert.Equal(t, Value{ZeroNet, OneNet, UndefNet}, cat)

	rep := a.Repeat(2)
	assert.Equal(t, Value{ZeroNet, OneNet, ZeroNet, OneNet}, rep)

	sl := cat.Slice(1, 3)
	assert.Equal(t, Value{OneNet, UndefNet}, sl)
}

func TestValueZextSext(t *testing.T) {
	a := Value{OneNet, ZeroNet}
	z := a.Zext(4)
	assert.Equal(t, Value{OneNet, ZeroNet, ZeroNet, ZeroNet}, z)

	s := a.Sext(4)
	assert.Equal(t, Value{OneNet, ZeroNet, ZeroNet, ZeroNet}, s)

	neg := Value{OneNet, OneNet}
	sneg := neg.Sext(4)
	assert.Equal(t, Value{OneNet, OneNet, OneNet, OneNet}, sneg)
}

func TestValueAsConst(t *testing.T) {
	v := FromConst(Const{Bit1, Bit0, BitX})
	c, ok := v.AsConst()
	require.True(t, ok)
	assert.Equal(t, Const{Bit1, Bit0, BitX}, c)
}

func TestValueAsConstFailsOnLiveNet(t *testing.T) {
	v := Value{netFromCellIndex(0)}
	_, ok := v.AsConst()
	assert.False(t, ok)
}

func TestValueCompare(t *testing.T) {
	short := Value{ZeroNet}
	long := Value{ZeroNet, ZeroNet}
	assert.Equal(t, -1, short.Compare(long))
	assert.Equal(t, 1, long.Compare(short))
	assert.Equal(t, 0, short.Compare(Value{ZeroNet}))
}

func TestValueVisitSkipsConstants(t *testing.T) {
	live := netFromCellIndex(3)
	v := Value{ZeroNet, OneNet, UndefNet, live}
	var seen []Net
	v.Visit(func(n Net) { seen = append(seen, n) })
	assert.Equal(t, []Net{live}, seen)
}

func TestShlConst(t *testing.T) {
	live := Value{netFromCellIndex(0), netFromCellIndex(1), netFromCellIndex(2), netFromCellIndex(3)}
	amt := FromConst(NewConstFromUint(1, 2))
	out := live.ShlConst(amt, 1)
	require.Equal(t, 4, out.Len())
	assert.Equal(t, ZeroNet, out[0])
	assert.Equal(t, live[0], out[1])
	assert.Equal(t, live[1], out[2])
	assert.Equal(t, live[2], out[3])
}

func TestShlConstAppliesStride(t *testing.T) {
	live := Value{netFromCellIndex(0), netFromCellIndex(1), netFromCellIndex(2), netFromCellIndex(3)}
	amt := FromConst(NewConstFromUint(1, 2)) // amount 1, stride 2 -> shift by 2
	out := live.ShlConst(amt, 2)
	require.Equal(t, 4, out.Len())
	assert.Equal(t, ZeroNet, out[0])
	assert.Equal(t, ZeroNet, out[1])
	assert.Equal(t, live[0], out[2])
	assert.Equal(t, live[1], out[3])
}

func TestShlConstUndefAmountForcesAllX(t *testing.T) {
	live := Value{netFromCellIndex(0), netFromCellIndex(1)}
	amt := Value{UndefNet}
	out := live.ShlConst(amt, 1)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, UndefNet, out[0])
	assert.Equal(t, UndefNet, out[1])
}

func TestShrConstVariants(t *testing.T) {
	live := Value{netFromCellIndex(0), netFromCellIndex(1), netFromCellIndex(2), netFromCellIndex(3)}
	amt := FromConst(NewConstFromUint(1, 2))

	logical := live.ShrConst(amt, 1, ShiftLogical)
	assert.Equal(t, live[1], logical[0])
	assert.Equal(t, ZeroNet, logical[3])

	undef := live.ShrConst(amt, 1, ShiftUndef)
	assert.Equal(t, UndefNet, undef[3])

	arith := live.ShrConst(amt, 1, ShiftArithmetic)
	assert.Equal(t, live[3], arith[3])
}

func TestShrConstUndefAmountForcesAllX(t *testing.T) {
	live := Value{netFromCellIndex(0), netFromCellIndex(1)}
	amt := Value{UndefNet}
	out := live.ShrConst(amt, 1, ShiftLogical)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, UndefNet, out[0])
	assert.Equal(t, UndefNet, out[1])
}

func TestShiftCountSaturates(t *testing.T) {
	amt := FromConst(NewConstFromUint(0, 0))
	count, hasX := amt.shiftCount(1)
	assert.Equal(t, 0, count)
	assert.False(t, hasX)

	big := make(Value, 64)
	for i := range big {
		big[i] = OneNet
	}
	count, hasX = big.shiftCount(1)
	assert.Equal(t, math.MaxInt, count)
	assert.False(t, hasX)
}

func TestShiftCountAppliesStride(t *testing.T) {
	amt := FromConst(NewConstFromUint(3, 4))
	count, hasX := amt.shiftCount(4)
	assert.Equal(t, 12, count)
	assert.False(t, hasX)
}

func TestShiftCountXReportsHasX(t *testing.T) {
	amt := Value{UndefNet}
	count, hasX := amt.shiftCount(1)
	assert.Equal(t, 0, count)
	assert.True(t, hasX)
}
