/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package lexer

import (
	"testing"

	"github.com/obito-git/lagertha/jasm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeClassDirective(t *testing.T) {
	toks, err := Tokenize(".class public Foo\n")
	require.NoError(t, err)
	kinds := kindsOf(toks)
	assert.Equal(t, []token.Kind{
		token.KindDotClass, token.KindPublic, token.KindIdentifier,
		token.KindNewline, token.KindEOF,
	}, kinds)
}

func TestTokenizeSkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := Tokenize("  .class Foo ; trailing comment\n")
	require.NoError(t, err)
	kinds := kindsOf(toks)
	assert.Equal(t, []token.Kind{
		token.KindDotClass, token.KindIdentifier, token.KindNewline, token.KindEOF,
	}, kinds)
}

func TestTokenizeUnknownDirectiveSuggestsClosest(t *testing.T) {
	_, err := Tokenize(".clss public Foo\n")
	require.Error(t, err)
	var uerr *UnknownDirectiveError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "clss", uerr.Name)
	assert.True(t, uerr.HasSuggestion)
	assert.Equal(t, "class", uerr.Suggestion)
	assert.Contains(t, uerr.Note(), "class")
}

func TestTokenizeMethodDescriptorAsSingleToken(t *testing.T) {
	toks, err := Tokenize("(II)V\n")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, token.KindMethodDescriptor, toks[0].Kind)
	assert.Equal(t, "(II)V", toks[0].Text)
}

func TestTokenizeIntegerLiteral(t *testing.T) {
	toks, err := Tokenize("-42\n")
	require.NoError(t, err)
	assert.Equal(t, token.KindInteger, toks[0].Kind)
	assert.Equal(t, int32(-42), toks[0].Int)
}

func TestTokenizeIntegerOverflow(t *testing.T) {
	_, err := Tokenize("99999999999\n")
	require.Error(t, err)
	var nerr *InvalidNumberError
	require.ErrorAs(t, err, &nerr)
	assert.True(t, nerr.Overflow)
}

func TestTokenizeHexPrefixRejected(t *testing.T) {
	_, err := Tokenize("0x1F\n")
	require.Error(t, err)
	var nerr *InvalidNumberError
	require.ErrorAs(t, err, &nerr)
	assert.Contains(t, nerr.Note(), "hexadecimal")
}

func TestTokenizeStringLiteralWithEscapes(t *testing.T) {
	toks, err := Tokenize(`"hello\nworld"` + "\n")
	require.NoError(t, err)
	assert.Equal(t, token.KindStringLiteral, toks[0].Kind)
	assert.Equal(t, "hello\nworld", toks[0].Text)
}

func TestTokenizeUnterminatedStringAtNewline(t *testing.T) {
	_, err := Tokenize("\"abc\ndef\"")
	require.Error(t, err)
	var uerr *UnterminatedStringError
	require.ErrorAs(t, err, &uerr)
}

func TestTokenizeUnterminatedStringAtEof(t *testing.T) {
	_, err := Tokenize("\"abc")
	require.Error(t, err)
	var uerr *UnterminatedStringError
	require.ErrorAs(t, err, &uerr)
}

func TestTokenizeInvalidEscape(t *testing.T) {
	_, err := Tokenize(`"bad\qescape"` + "\n")
	require.Error(t, err)
	var eerr *InvalidEscapeError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, 'q', eerr.Char)
}

func TestTokenizeInitAndClinitIdentifiers(t *testing.T) {
	toks, err := Tokenize("<init> <clinit>\n")
	require.NoError(t, err)
	assert.Equal(t, token.KindIdentifier, toks[0].Kind)
	assert.Equal(t, "<init>", toks[0].Text)
	assert.Equal(t, token.KindIdentifier, toks[1].Kind)
	assert.Equal(t, "<clinit>", toks[1].Text)
}

func TestTokenizeInvalidAngleIdentifier(t *testing.T) {
	_, err := Tokenize("<bogus>\n")
	require.Error(t, err)
	var cerr *UnexpectedCharError
	require.ErrorAs(t, err, &cerr)
}

func TestTokenizeIdentifierWithSlashesAndSemicolon(t *testing.T) {
	toks, err := Tokenize("Ljava/lang/String;\n")
	require.NoError(t, err)
	assert.Equal(t, "Ljava/lang/String;", toks[0].Text)
}

func TestTokenizeSpansCoverSource(t *testing.T) {
	src := ".class public Foo\n"
	toks, err := Tokenize(src)
	require.NoError(t, err)
	for i := 1; i < len(toks); i++ {
		assert.GreaterOrEqual(t, toks[i].Span.Start, toks[i-1].Span.End)
	}
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}
