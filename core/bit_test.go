package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitNot(t *testing.T) {
	assert.Equal(t, Bit1, Bit0.Not())
	assert.Equal(t, Bit0, Bit1.Not())
	assert.Equal(t, BitX, BitX.Not())
}

func TestBitString(t *testing.T) {
	assert.Equal(t, "0", Bit0.String())
	assert.Equal(t, "1", Bit1.String())
	assert.Equal(t, "X", BitX.String())
}

func TestConstFromUintAndAsUint(t *testing.T) {
	c := NewConstFromUint(0b1011, 4)
	require.True(t, c.IsFullyConst())
	assert.Equal(t, uint64(0b1011), c.AsUint())
	assert.Equal(t, "1011", c.String())
}

func TestConstNot(t *testing.T) {
	c := Const{Bit0, Bit1, BitX}
	got := c.Not()
	assert.Equal(t, Const{Bit1, Bit0, BitX}, got)
}

func TestConstIsFullyConst(t *testing.T) {
	assert.True(t, NewConstZero(3).IsFullyConst())
	assert.False(t, NewConstX(3).IsFullyConst())
}
