/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseParserError(t *testing.T) {
	_, err := Parse(".class public Hello extra\n")
	require.Error(t, err)

	d, ok := Diagnose(err)
	require.True(t, ok)
	assert.Contains(t, d.Message, "trailing token")
}

func TestDiagnoseLexerErrorDelegatesToLexer(t *testing.T) {
	_, err := Parse(".class public Hello\n.unknownthing\n")
	require.Error(t, err)

	d, ok := Diagnose(err)
	require.True(t, ok)
	assert.Contains(t, d.Message, "unknown directive")
}

func TestDiagnoseInvalidDescriptorPreservesSpan(t *testing.T) {
	src := ".class public Hello\n.method public m ()V\n.code\ngetstatic java/lang/System out NotADescriptor\nreturn\n.end method\n.end class\n"
	_, err := Parse(src)
	require.Error(t, err)

	var invalid *InvalidDescriptorError
	require.ErrorAs(t, err, &invalid)

	d, ok := Diagnose(err)
	require.True(t, ok)
	assert.NotZero(t, d.PrimarySpan.End)
}
