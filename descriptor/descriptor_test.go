/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypePrimitive(t *testing.T) {
	ty, err := ParseType("I")
	require.NoError(t, err)
	assert.Equal(t, KindInt, ty.Kind)
}

func TestParseTypeObject(t *testing.T) {
	ty, err := ParseType("Ljava/lang/String;")
	require.NoError(t, err)
	assert.Equal(t, KindObject, ty.Kind)
	assert.Equal(t, "java/lang/String", ty.ClassName)
}

func TestParseTypeArrayOfArray(t *testing.T) {
	ty, err := ParseType("[[I")
	require.NoError(t, err)
	assert.Equal(t, KindArray, ty.Kind)
	assert.Equal(t, KindArray, ty.Elem.Kind)
	assert.Equal(t, KindInt, ty.Elem.Elem.Kind)
	assert.Equal(t, "[[I", ty.String())
}

func TestParseTypeMissingSemicolon(t *testing.T) {
	_, err := ParseType("Ljava/lang/String")
	require.Error(t, err)
	var oerr *InvalidObjectRefError
	require.ErrorAs(t, err, &oerr)
}

func TestParseTypeTrailingGarbage(t *testing.T) {
	_, err := ParseType("II")
	require.Error(t, err)
	var ierr *InvalidTypeError
	require.ErrorAs(t, err, &ierr)
}

func TestParseTypeUnknownChar(t *testing.T) {
	_, err := ParseType("Q")
	require.Error(t, err)
	var ierr *InvalidTypeError
	require.ErrorAs(t, err, &ierr)
}

func TestParseMethodSimple(t *testing.T) {
	mt, err := ParseMethod("(II)V")
	require.NoError(t, err)
	require.Len(t, mt.Params, 2)
	assert.Equal(t, KindInt, mt.Params[0].Kind)
	assert.True(t, mt.Return.Void)
}

func TestParseMethodWithObjectAndArrayParams(t *testing.T) {
	mt, err := ParseMethod("(Ljava/lang/String;[I)Ljava/lang/String;")
	require.NoError(t, err)
	require.Len(t, mt.Params, 2)
	assert.Equal(t, "java/lang/String", mt.Params[0].ClassName)
	assert.Equal(t, KindArray, mt.Params[1].Kind)
	assert.False(t, mt.Return.Void)
	assert.Equal(t, "java/lang/String", mt.Return.Type.ClassName)
}

func TestParseMethodMissingOpenParen(t *testing.T) {
	_, err := ParseMethod("II)V")
	require.Error(t, err)
	var perr *ShouldStartWithParenthesesError
	require.ErrorAs(t, err, &perr)
}

func TestParseMethodMissingCloseParen(t *testing.T) {
	_, err := ParseMethod("(II")
	require.Error(t, err)
	var perr *MissingClosingParenthesisError
	require.ErrorAs(t, err, &perr)
}

func TestParseMethodTrailingCharacters(t *testing.T) {
	_, err := ParseMethod("()Vx")
	require.Error(t, err)
	var terr *TrailingCharactersError
	require.ErrorAs(t, err, &terr)
}

func TestParseClassSignatureBalanced(t *testing.T) {
	err := ParseClassSignature("Ljava/util/List<Ljava/lang/String;>;")
	require.NoError(t, err)
}

func TestParseClassSignatureUnbalancedAngleBrackets(t *testing.T) {
	err := ParseClassSignature("Ljava/util/List<Ljava/lang/String;")
	require.Error(t, err)
}

func TestParseClassSignatureTypeVariable(t *testing.T) {
	err := ParseClassSignature("TT;")
	require.NoError(t, err)
}
