/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obito-git/lagertha/jasm/token"
)

func TestParseConstructorMethod(t *testing.T) {
	src := `.class public Hello
.super java/lang/Object

.method public <init> ()V
.code stack 1 locals 1
aload_0
invokespecial java/lang/Object <init> ()V
return
.end method
.end class
`
	f, err := Parse(src)
	require.NoError(t, err)

	assert.Equal(t, "Hello", f.Class.Name)
	assert.Equal(t, "java/lang/Object", f.Class.Super)
	require.Len(t, f.Class.Methods, 1)

	m := f.Class.Methods[0]
	assert.Equal(t, "<init>", m.Name)
	assert.Equal(t, "()V", m.DescriptorRaw)
	assert.True(t, m.Descriptor.Return.Void)
	assert.Equal(t, 1, m.Code.MaxStack)
	assert.Equal(t, 1, m.Code.MaxLocals)

	require.Len(t, m.Code.Instructions, 3)
	assert.Equal(t, "aload_0", m.Code.Instructions[0].Mnemonic)

	invoke := m.Code.Instructions[1]
	assert.Equal(t, "invokespecial", invoke.Mnemonic)
	require.Len(t, invoke.Args, 3)
	assert.Equal(t, "java/lang/Object", invoke.Args[0].Text)
	assert.Equal(t, "<init>", invoke.Args[1].Text)
	assert.Equal(t, "()V", invoke.Args[2].Text)

	assert.Equal(t, "return", m.Code.Instructions[2].Mnemonic)
}

func TestParseEmptyFileError(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	var emptyErr *EmptyFileError
	require.ErrorAs(t, err, &emptyErr)
}

func TestParseMissingClassDirective(t *testing.T) {
	_, err := Parse(".method public foo ()V\n.code\n.end method\n")
	require.Error(t, err)
	var classErr *ClassDirectiveExpectedError
	require.ErrorAs(t, err, &classErr)
}

func TestParseUnknownInstructionSuggestsClosest(t *testing.T) {
	src := ".class public Hello\n.method public m ()V\n.code\nretrun\n.end method\n.end class\n"
	_, err := Parse(src)
	require.Error(t, err)
	var unknown *UnknownInstructionError
	require.ErrorAs(t, err, &unknown)
	assert.True(t, unknown.HasSuggestion)
	assert.Equal(t, "return", unknown.Suggestion)
}

func TestParseTrailingTokensOnClassDirective(t *testing.T) {
	_, err := Parse(".class public Hello extra\n")
	require.Error(t, err)
	var trailing *TrailingTokensError
	require.ErrorAs(t, err, &trailing)
	assert.Equal(t, ContextClass, trailing.Context)
}

func TestParseNonNegativeIntegerExpectedForCodeOpt(t *testing.T) {
	src := ".class public Hello\n.method public m ()V\n.code stack\nreturn\n.end method\n.end class\n"
	_, err := Parse(src)
	require.Error(t, err)
	var nn *NonNegativeIntegerExpectedError
	require.ErrorAs(t, err, &nn)
	assert.Equal(t, CodeOptStack, nn.Opt)
}

func TestParseMismatchedEndCloser(t *testing.T) {
	src := ".class public Hello\n.method public m ()V\n.code\nreturn\n.end class\n"
	_, err := Parse(src)
	require.Error(t, err)
	var mismatch *UnexpectedEndCloserError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "method", mismatch.Want)
	assert.Equal(t, "class", mismatch.Got)
}

func TestParseLimitDirectiveIsSkipped(t *testing.T) {
	src := ".class public Hello\n.method public m ()V\n.code\n.limit stack 4\n.limit locals 2\nreturn\n.end method\n.end class\n"
	f, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, f.Class.Methods[0].Code.Instructions, 1)
	assert.Equal(t, "return", f.Class.Methods[0].Code.Instructions[0].Mnemonic)
}

func TestParseFieldDescriptorArgumentValidated(t *testing.T) {
	src := ".class public Hello\n.method public m ()V\n.code\ngetstatic java/lang/System out Ljava/io/PrintStream;\nreturn\n.end method\n.end class\n"
	f, err := Parse(src)
	require.NoError(t, err)
	instr := f.Class.Methods[0].Code.Instructions[0]
	assert.Equal(t, "getstatic", instr.Mnemonic)
	assert.Equal(t, "Ljava/io/PrintStream;", instr.Args[2].Text)
}

func TestParseAccessFlagsAreOrEd(t *testing.T) {
	f, err := Parse(".class public final Hello\n")
	require.NoError(t, err)
	assert.NotZero(t, f.Class.AccessFlags&0x0001) // public
	assert.NotZero(t, f.Class.AccessFlags&0x0010) // final
}

func TestTokenKindUnused(t *testing.T) {
	// sanity: token.KindLParen/KindRParen exist even though normal sources
	// never produce them standalone (method descriptors lex as one token).
	assert.NotEqual(t, token.KindLParen, token.KindRParen)
}
