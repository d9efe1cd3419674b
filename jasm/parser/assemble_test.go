/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obito-git/lagertha/classfile"
	"github.com/obito-git/lagertha/classfile/cpool"
)

func hasUtf8(t *testing.T, pool *cpool.Pool, value string) bool {
	t.Helper()
	for i := 1; i < pool.Len(); i++ {
		e, err := pool.Get(uint16(i))
		if err != nil {
			continue
		}
		if u, ok := e.(cpool.Utf8Entry); ok && u.Value == value {
			return true
		}
	}
	return false
}

func TestAssembleJasmHappyPath(t *testing.T) {
	src := `.class public Hello
.super java/lang/Object
.method public static main ([Ljava/lang/String;)V
.code stack 2 locals 1
return
.end method
`
	file, err := Parse(src)
	require.NoError(t, err)

	cf, err := Assemble(file)
	require.NoError(t, err)

	name, err := cf.ConstantPool.GetClassName(cf.ThisClass)
	require.NoError(t, err)
	assert.Equal(t, "Hello", name)

	super, err := cf.ConstantPool.GetClassName(cf.SuperClass)
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Object", super)

	assert.True(t, hasUtf8(t, cf.ConstantPool, "Hello"))
	assert.True(t, hasUtf8(t, cf.ConstantPool, "java/lang/Object"))
	assert.True(t, hasUtf8(t, cf.ConstantPool, "main"))
	assert.True(t, hasUtf8(t, cf.ConstantPool, "([Ljava/lang/String;)V"))

	require.Len(t, cf.Methods, 1)
	method := cf.Methods[0]
	methodName, err := cf.ConstantPool.GetUtf8(method.NameIndex)
	require.NoError(t, err)
	assert.Equal(t, "main", methodName)

	require.Len(t, method.Attributes, 1)
	code, ok := method.Attributes[0].(*classfile.CodeAttribute)
	require.True(t, ok)
	assert.Equal(t, 2, int(code.MaxStack))
	assert.Equal(t, 1, int(code.MaxLocals))
	require.Len(t, code.Instructions, 1)
	assert.Equal(t, "return", code.Instructions[0].Mnemonic)
}

func TestAssembleDefaultsSuperToObjectWhenAbsent(t *testing.T) {
	file, err := Parse(".class public Hello\n")
	require.NoError(t, err)

	cf, err := Assemble(file)
	require.NoError(t, err)

	super, err := cf.ConstantPool.GetClassName(cf.SuperClass)
	require.NoError(t, err)
	assert.Equal(t, "java/lang/Object", super)
}

func TestAssembleInternsSharedConstantsOnce(t *testing.T) {
	src := `.class public Hello
.super java/lang/Object
.method public <init> ()V
.code stack 1 locals 1
aload_0
invokespecial java/lang/Object <init> ()V
return
.end method
`
	file, err := Parse(src)
	require.NoError(t, err)

	cf, err := Assemble(file)
	require.NoError(t, err)

	count := 0
	for i := 1; i < cf.ConstantPool.Len(); i++ {
		e, err := cf.ConstantPool.Get(uint16(i))
		if err != nil {
			continue
		}
		if u, ok := e.(cpool.Utf8Entry); ok && u.Value == "java/lang/Object" {
			count++
		}
	}
	assert.Equal(t, 1, count, "java/lang/Object should be interned once, shared by the class's super and the invokespecial target")
}
