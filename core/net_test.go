package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetConstants(t *testing.T) {
	assert.True(t, ZeroNet.IsConst())
	assert.True(t, OneNet.IsConst())
	assert.False(t, UndefNet.IsConst())
	assert.True(t, UndefNet.IsUndef())
}

func TestNetAsConstBit(t *testing.T) {
	b, ok := ZeroNet.AsConstBit()
	assert.True(t, ok)
	assert.Equal(t, Bit0, b)

	b, ok = OneNet.AsConstBit()
	assert.True(t, ok)
	assert.Equal(t, Bit1, b)

	b, ok = UndefNet.AsConstBit()
	assert.True(t, ok)
	assert.Equal(t, BitX, b)

	_, ok = netFromCellIndex(0).AsConstBit()
	assert.False(t, ok)
}

func TestControlNetNotTogglesPolarityOnly(t *testing.T) {
	n := netFromCellIndex(5)
	c := Pos(n)
	nc := c.Not()
	assert.Equal(t, n, nc.Net)
	assert.True(t, nc.Negated)
	assert.False(t, nc.Not().Negated)
}

func TestControlNetAsConstBitAppliesPolarity(t *testing.T) {
	b, ok := Neg(ZeroNet).AsConstBit()
	assert.True(t, ok)
	assert.Equal(t, Bit1, b)
}

func TestNetCompareTotalOrder(t *testing.T) {
	assert.Equal(t, -1, ZeroNet.Compare(OneNet))
	assert.Equal(t, 1, OneNet.Compare(ZeroNet))
	assert.Equal(t, 0, ZeroNet.Compare(ZeroNet))
}
