/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderInternsUtf8AndClass(t *testing.T) {
	b := NewBuilder()
	a1 := b.AddUtf8("java/lang/Object")
	a2 := b.AddUtf8("java/lang/Object")
	assert.Equal(t, a1, a2, "equal utf8 values should share an index")

	c1 := b.AddClass(a1)
	c2 := b.AddClass(a1)
	assert.Equal(t, c1, c2, "equal class entries should share an index")

	pool := b.Build()
	name, err := pool.GetClassName(c1)
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Object", name)
}

func TestBuilderWideEntryReservesTrailingUnusedSlot(t *testing.T) {
	b := NewBuilder()
	idx := b.AddLong(42)
	nextUtf8 := b.AddUtf8("next")

	assert.Equal(t, idx+2, nextUtf8, "entry following a Long must skip the reserved Unused slot")

	pool := b.Build()
	v, err := pool.GetLong(idx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	_, err = pool.Get(idx + 1)
	require.Error(t, err, "the slot after a Long is Unused and must not resolve")
}

func TestPoolGetUtf8TypeMismatch(t *testing.T) {
	b := NewBuilder()
	idx := b.AddInteger(7)
	pool := b.Build()

	_, err := pool.GetUtf8(idx)
	require.Error(t, err)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, KindUtf8, typeErr.Expected)
	assert.Equal(t, KindInteger, typeErr.Actual)
}

func TestPoolGetUtf8OnUnusedSlotIsTypeErrorNotNotFound(t *testing.T) {
	b := NewBuilder()
	idx := b.AddLong(42)
	pool := b.Build()

	_, err := pool.GetUtf8(idx + 1)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr, "an occupied-but-Unused slot is a kind mismatch, not a missing entry")
	assert.Equal(t, idx+1, typeErr.Index)
	assert.Equal(t, KindUtf8, typeErr.Expected)
	assert.Equal(t, KindUnused, typeErr.Actual)
}

func TestPoolGetOutOfRangeOrIndexZero(t *testing.T) {
	b := NewBuilder()
	b.AddUtf8("x")
	pool := b.Build()

	_, err := pool.Get(0)
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = pool.Get(99)
	require.Error(t, err)
	require.ErrorAs(t, err, &nf)
}

func TestFieldRefAndMethodRefResolveThroughNameAndType(t *testing.T) {
	b := NewBuilder()
	className := b.AddUtf8("java/lang/String")
	classIdx := b.AddClass(className)
	nameIdx := b.AddUtf8("length")
	descIdx := b.AddUtf8("()I")
	natIdx := b.AddNameAndType(nameIdx, descIdx)
	methodRefIdx := b.AddMethodRef(classIdx, natIdx)

	pool := b.Build()
	ref, err := pool.GetMethodRef(methodRefIdx)
	require.NoError(t, err)

	cname, err := pool.GetClassName(ref.ClassIndex)
	require.NoError(t, err)
	assert.Equal(t, "java/lang/String", cname)

	nat, err := pool.GetNameAndType(ref.NameAndTypeIndex)
	require.NoError(t, err)
	name, err := pool.GetUtf8(nat.NameIndex)
	require.NoError(t, err)
	assert.Equal(t, "length", name)
}

func TestMethodHandleRejectsInvalidReferenceKind(t *testing.T) {
	b := NewBuilder()
	idx := b.AddMethodHandle(MethodHandleKind(0), 1)
	pool := b.Build()

	_, err := pool.GetMethodHandle(idx)
	require.Error(t, err)
}

func TestMethodHandleKindValid(t *testing.T) {
	assert.True(t, RefInvokeInterface.Valid())
	assert.False(t, MethodHandleKind(10).Valid())
	assert.False(t, MethodHandleKind(0).Valid())
}

func TestKindStringMatchesJVMSpecNames(t *testing.T) {
	assert.Equal(t, "Fieldref", KindFieldRef.String())
	assert.Equal(t, "InvokeDynamic", KindInvokeDynamic.String())
}

func TestInvokeDynamicRoundTrip(t *testing.T) {
	b := NewBuilder()
	nameIdx := b.AddUtf8("makeConcatWithConstants")
	descIdx := b.AddUtf8("(Ljava/lang/String;)Ljava/lang/String;")
	natIdx := b.AddNameAndType(nameIdx, descIdx)
	idIdx := b.AddInvokeDynamic(0, natIdx)

	pool := b.Build()
	dyn, err := pool.GetInvokeDynamic(idIdx)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), dyn.BootstrapMethodAttrIndex)
	assert.Equal(t, natIdx, dyn.NameAndTypeIndex)
}
