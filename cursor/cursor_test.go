/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveReadsAdvancePosition(t *testing.T) {
	data := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x11, 0x00, 0x00, 0x00, 0x2A}
	c := New(data)

	magic, err := c.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), magic)
	assert.Equal(t, 4, c.Position())

	minor, err := c.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x11), minor)
	assert.Equal(t, 6, c.Position())

	v, err := c.I32()
	require.NoError(t, err)
	assert.Equal(t, int32(0x2A), v)
	assert.Equal(t, 10, c.Position())
}

func TestReadPastEndIsUnexpectedEOFAndLeavesPositionAtBoundary(t *testing.T) {
	c := New([]byte{0x01})
	_, err := c.U16()
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, c.Position())
}

func TestBytesReturnsBorrowedSubslice(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	c := New(data)
	_ = c.Skip(1)
	b, err := c.Bytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, b)
	assert.Equal(t, 1, c.Remaining())
}

func TestAlignToFindsNextMultipleOf4RelativeToBase(t *testing.T) {
	// base simulates pc=0 for the opcode byte; cursor sits right after it at pos=1
	c := New(make([]byte, 16))
	base := 0
	_, _ = c.Bytes(1) // consume the opcode byte itself (tableswitch at pc 0)
	err := c.AlignTo(4, base)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Position())
}

func TestAlignToIsNoopWhenAlreadyAligned(t *testing.T) {
	c := New(make([]byte, 16))
	c.SetPosition(8)
	err := c.AlignTo(4, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Position())
}

func TestFloatsRoundTripIEEE754(t *testing.T) {
	// 1.5f = 0x3FC00000
	c := New([]byte{0x3F, 0xC0, 0x00, 0x00})
	f, err := c.F32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)
}
