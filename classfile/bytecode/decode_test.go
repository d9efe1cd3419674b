/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSimpleReturn(t *testing.T) {
	instrs, err := Decode([]byte{0xB1}, 0) // return
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, 0, instrs[0].PC)
	assert.Equal(t, "return", instrs[0].Mnemonic)
	assert.Equal(t, NoOperand{}, instrs[0].Operand)
}

func TestDecodePCsAccumulateEncodedLength(t *testing.T) {
	// aload_0 (1 byte), invokespecial #1 (3 bytes), return (1 byte)
	code := []byte{0x2A, 0xB7, 0x00, 0x01, 0xB1}
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 3)
	assert.Equal(t, 0, instrs[0].PC)
	assert.Equal(t, 1, instrs[1].PC)
	assert.Equal(t, U16Operand{Value: 1}, instrs[1].Operand)
	assert.Equal(t, 4, instrs[2].PC)
}

func TestDecodeBipushIsSigned(t *testing.T) {
	code := []byte{0x10, 0xFF} // bipush -1
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, I8Operand{Value: -1}, instrs[0].Operand)
}

func TestDecodeUnsupportedOpcode(t *testing.T) {
	_, err := Decode([]byte{0xFF}, 0) // 0xFF has no defined opcode in this table
	require.Error(t, err)
	var uerr *UnsupportedOpCodeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, uint8(0xFF), uerr.Opcode)
}

func TestDecodeWideIload(t *testing.T) {
	code := []byte{0xC4, 0x15, 0x01, 0x02} // wide iload #0x0102
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, "iload", instrs[0].Mnemonic)
	assert.Equal(t, LocalIndexOperand{Value: 0x0102, Wide: true}, instrs[0].Operand)
}

func TestDecodeWideIinc(t *testing.T) {
	code := []byte{0xC4, 0x84, 0x00, 0x05, 0x00, 0x0A} // wide iinc #5, +10
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, IincOperand{Index: 5, Const: 10, Wide: true}, instrs[0].Operand)
}

func TestDecodeWideRejectsNonWidenableTarget(t *testing.T) {
	code := []byte{0xC4, 0xB1} // wide return -- return cannot be widened
	_, err := Decode(code, 0)
	require.Error(t, err)
	var werr *InvalidWideTargetError
	require.ErrorAs(t, err, &werr)
}

func TestDecodeNewarrayArrayType(t *testing.T) {
	code := []byte{0xBC, 0x0A} // newarray int
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	assert.Equal(t, NewArrayOperand{Type: ArrayInt}, instrs[0].Operand)
}

func TestDecodeNewarrayUnknownType(t *testing.T) {
	code := []byte{0xBC, 0x02}
	_, err := Decode(code, 0)
	require.Error(t, err)
	var uerr *UnknownArrayTypeError
	require.ErrorAs(t, err, &uerr)
}

func TestDecodeInvokeDynamicConsumesTrailingZeroBytes(t *testing.T) {
	code := []byte{0xBA, 0x00, 0x07, 0x00, 0x00}
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	assert.Equal(t, InvokeDynamicOperand{Index: 7}, instrs[0].Operand)
}

func TestDecodeInvokeInterface(t *testing.T) {
	code := []byte{0xB9, 0x00, 0x03, 0x02, 0x00}
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	assert.Equal(t, InvokeInterfaceOperand{Index: 3, Count: 2}, instrs[0].Operand)
}

func TestDecodeTableSwitchPaddingAndOffsets(t *testing.T) {
	// tableswitch at pc 0: opcode(1) + 3 pad, default=10, low=1, high=2, offsets[0x20,0x30]
	code := []byte{
		0xAA,
		0x00, 0x00, 0x00, // padding
		0x00, 0x00, 0x00, 0x0A, // default
		0x00, 0x00, 0x00, 0x01, // low
		0x00, 0x00, 0x00, 0x02, // high
		0x00, 0x00, 0x00, 0x20, // offsets[0]
		0x00, 0x00, 0x00, 0x30, // offsets[1]
	}
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	ts, ok := instrs[0].Operand.(TableSwitchOperand)
	require.True(t, ok)
	assert.Equal(t, 3, ts.Data.Padding)
	assert.Equal(t, int32(10), ts.Data.DefaultOffset)
	assert.Equal(t, int32(1), ts.Data.Low)
	assert.Equal(t, int32(2), ts.Data.High)
	assert.Equal(t, []int32{0x20, 0x30}, ts.Data.Offsets)
}

func TestDecodeTableSwitchRejectsLowGreaterThanHigh(t *testing.T) {
	code := []byte{
		0xAA,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // default
		0x00, 0x00, 0x00, 0x05, // low = 5
		0x00, 0x00, 0x00, 0x01, // high = 1
	}
	_, err := Decode(code, 0)
	require.Error(t, err)
	var rerr *TableSwitchRangeError
	require.ErrorAs(t, err, &rerr)
}

func TestDecodeLookupSwitchPaddingAndPairs(t *testing.T) {
	// lookupswitch at pc 0: opcode(1) + 3 pad, default=10, npairs=2, pairs (1,0x20) (2,0x30)
	code := []byte{
		0xAB,
		0x00, 0x00, 0x00, // padding
		0x00, 0x00, 0x00, 0x0A, // default
		0x00, 0x00, 0x00, 0x02, // npairs
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x20, // (1, 0x20)
		0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x30, // (2, 0x30)
	}
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 1)
	ls, ok := instrs[0].Operand.(LookupSwitchOperand)
	require.True(t, ok)
	assert.Equal(t, 3, ls.Data.Padding)
	assert.Equal(t, int32(10), ls.Data.DefaultOffset)
	assert.Equal(t, []LookupPair{{Match: 1, Offset: 0x20}, {Match: 2, Offset: 0x30}}, ls.Data.Pairs)
}

func TestDecodeLookupSwitchRejectsNonIncreasingMatch(t *testing.T) {
	code := []byte{
		0xAB,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // default
		0x00, 0x00, 0x00, 0x02, // npairs
		0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x10, // (2, 0x10)
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x20, // (1, 0x20) -- decreasing
	}
	_, err := Decode(code, 0)
	require.Error(t, err)
	var oerr *LookupSwitchOrderError
	require.ErrorAs(t, err, &oerr)
}

func TestDecodeSwitchPaddingFromNonZeroPC(t *testing.T) {
	// a 3-byte instruction (sipush) followed by tableswitch at pc 3
	code := []byte{
		0x11, 0x00, 0x01, // sipush 1 (pc 0..2)
		0xAA, // tableswitch at pc 3; next multiple of 4 is 4, so padding=0
		0x00, 0x00, 0x00, 0x00, // default
		0x00, 0x00, 0x00, 0x01, // low
		0x00, 0x00, 0x00, 0x01, // high
		0x00, 0x00, 0x00, 0x00, // offsets[0]
	}
	instrs, err := Decode(code, 0)
	require.NoError(t, err)
	require.Len(t, instrs, 2)
	assert.Equal(t, 3, instrs[1].PC)
	ts := instrs[1].Operand.(TableSwitchOperand)
	assert.Equal(t, 0, ts.Data.Padding)
}

func TestArrayTypeDescriptorAndByteSize(t *testing.T) {
	assert.Equal(t, "[I", ArrayInt.Descriptor())
	assert.Equal(t, 4, ArrayInt.ByteSize())
	assert.Equal(t, "boolean", ArrayBoolean.String())
}
