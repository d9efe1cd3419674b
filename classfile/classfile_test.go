/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obito-git/lagertha/classfile/cpool"
)

// --- byte-building helpers ---

type builder struct{ buf []byte }

func (b *builder) u8(v uint8)   { b.buf = append(b.buf, v) }
func (b *builder) u16(v uint16) { b.buf = append(b.buf, byte(v>>8), byte(v)) }
func (b *builder) u32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}
func (b *builder) i64(v int64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(v))
	b.buf = append(b.buf, tmp[:]...)
}
func (b *builder) bytes(v []byte) { b.buf = append(b.buf, v...) }
func (b *builder) utf8Entry(s string) {
	b.u8(1) // tag Utf8
	b.u16(uint16(len(s)))
	b.bytes([]byte(s))
}
func (b *builder) classEntry(nameIdx uint16) {
	b.u8(7) // tag Class
	b.u16(nameIdx)
}
func (b *builder) longEntry(v int64) {
	b.u8(5) // tag Long
	b.i64(v)
}

// header writes magic/minor/major.
func (b *builder) header() {
	b.u32(0xCAFEBABE)
	b.u16(0)  // minor
	b.u16(52) // major
}

// classHeaderAfterPool writes access_flags/this_class/super_class/interfaces(0) and lets
// the caller continue with fields/methods/class attributes.
func (b *builder) classHeaderAfterPool(thisClass, superClass uint16) {
	b.u16(uint16(AccPublic) | uint16(AccSuper))
	b.u16(thisClass)
	b.u16(superClass)
	b.u16(0) // interfaces_count
}

func TestDecodeWrongMagic(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x00}
	_, err := Decode(data)
	require.Error(t, err)
	var magicErr *WrongMagicError
	require.ErrorAs(t, err, &magicErr)
	assert.Equal(t, uint32(0), magicErr.Got)
}

func TestDecodeMinimalValidClass(t *testing.T) {
	var b builder
	b.header()

	b.u16(5) // constant_pool_count: entries 1..4
	b.utf8Entry("Hello")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)

	b.classHeaderAfterPool(2, 4)
	b.u16(0) // fields_count
	b.u16(0) // methods_count
	b.u16(0) // class attributes_count

	cf, err := Decode(b.buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(52), cf.MajorVersion)
	assert.True(t, cf.AccessFlags.Has(AccPublic))

	name, err := cf.ConstantPool.GetClassName(cf.ThisClass)
	require.NoError(t, err)
	assert.Equal(t, "Hello", name)

	super, err := cf.ConstantPool.GetClassName(cf.SuperClass)
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Object", super)
}

func TestDecodeWideConstantReservesTrailingUnusedSlot(t *testing.T) {
	var b builder
	b.header()

	b.u16(7) // entries 1..6, index 5 is Long (wide), 6 is the trailing Unused
	b.utf8Entry("C")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.longEntry(42)

	b.classHeaderAfterPool(2, 4)
	b.u16(0)
	b.u16(0)
	b.u16(0)

	cf, err := Decode(b.buf)
	require.NoError(t, err)

	v, err := cf.ConstantPool.GetLong(5)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = cf.ConstantPool.GetUtf8(6)
	var typeErr *cpool.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, uint16(6), typeErr.Index)
	assert.Equal(t, cpool.KindUtf8, typeErr.Expected)
	assert.Equal(t, cpool.KindUnused, typeErr.Actual)
}

func TestDecodeTrailingBytes(t *testing.T) {
	var b builder
	b.header()
	b.u16(5)
	b.utf8Entry("Hello")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.classHeaderAfterPool(2, 4)
	b.u16(0)
	b.u16(0)
	b.u16(0)
	b.u8(0xFF) // trailing

	_, err := Decode(b.buf)
	require.Error(t, err)
	var trailing *TrailingBytesError
	require.ErrorAs(t, err, &trailing)
	assert.Equal(t, 1, trailing.Remaining)
}

// buildMethodWithCodeAttr appends a minimal method_info with accessFlags,
// name/descriptor indices, and codeAttrCount copies of a trivial Code
// attribute (max_stack=0, max_locals=0, one `return` instruction, no
// exception table, no nested attributes) naming it via codeNameIdx.
func buildMethodWithCodeAttr(b *builder, accessFlags uint16, nameIdx, descIdx, codeNameIdx uint16, codeAttrCount int) {
	b.u16(accessFlags)
	b.u16(nameIdx)
	b.u16(descIdx)
	b.u16(uint16(codeAttrCount))
	for i := 0; i < codeAttrCount; i++ {
		var code builder
		code.u16(0) // max_stack
		code.u16(0) // max_locals
		code.u32(1) // code_length
		code.u8(0xB1)
		code.u16(0) // exception_table_count
		code.u16(0) // attributes_count

		b.u16(codeNameIdx)
		b.u32(uint32(len(code.buf)))
		b.bytes(code.buf)
	}
}

func TestDecodeDuplicateCodeAttributeErrors(t *testing.T) {
	var b builder
	b.header()

	b.u16(8) // entries 1..7
	b.utf8Entry("Hello")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.utf8Entry("m")
	b.utf8Entry("()V")
	b.utf8Entry("Code")

	b.classHeaderAfterPool(2, 4)
	b.u16(0) // fields_count
	b.u16(1) // methods_count
	buildMethodWithCodeAttr(&b, 0, 5, 6, 7, 2)
	b.u16(0) // class attributes_count

	_, err := Decode(b.buf)
	require.Error(t, err)
	var dup *DuplicatedAttributeError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Code", dup.Name)
}

func TestDecodeNativeMethodWithCodeAttributeErrors(t *testing.T) {
	var b builder
	b.header()

	b.u16(8)
	b.utf8Entry("Hello")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.utf8Entry("m")
	b.utf8Entry("()V")
	b.utf8Entry("Code")

	b.classHeaderAfterPool(2, 4)
	b.u16(0)
	b.u16(1)
	buildMethodWithCodeAttr(&b, uint16(AccNative), 5, 6, 7, 1)
	b.u16(0)

	_, err := Decode(b.buf)
	require.Error(t, err)
	var ambiguous *CodeAttrIsAmbiguousForNativeError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "m", ambiguous.MethodName)
}

func TestDecodeUnknownClassAttributeErrors(t *testing.T) {
	var b builder
	b.header()

	b.u16(6) // entries 1..5
	b.utf8Entry("Hello")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.utf8Entry("Foo")

	b.classHeaderAfterPool(2, 4)
	b.u16(0)
	b.u16(0)
	b.u16(1) // class attributes_count
	b.u16(5) // name_index -> "Foo"
	b.u32(0) // attribute_length

	_, err := Decode(b.buf)
	require.Error(t, err)
	var unknown *UnknownAttributeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Foo", unknown.Name)
	assert.Equal(t, "class", unknown.Location)
}

func TestDecodeMethodBodyInstructionsAreDecoded(t *testing.T) {
	var b builder
	b.header()

	b.u16(8)
	b.utf8Entry("Hello")
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.utf8Entry("m")
	b.utf8Entry("()V")
	b.utf8Entry("Code")

	b.classHeaderAfterPool(2, 4)
	b.u16(0)
	b.u16(1)
	buildMethodWithCodeAttr(&b, 0, 5, 6, 7, 1)
	b.u16(0)

	cf, err := Decode(b.buf)
	require.NoError(t, err)
	require.Len(t, cf.Methods, 1)
	require.Len(t, cf.Methods[0].Attributes, 1)

	code, ok := cf.Methods[0].Attributes[0].(*CodeAttribute)
	require.True(t, ok)
	require.Len(t, code.Instructions, 1)
	assert.Equal(t, "return", code.Instructions[0].Mnemonic)
}
