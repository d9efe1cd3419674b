/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package levenshtein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIdentical(t *testing.T) {
	assert.Equal(t, 0, Distance("class", "class"))
}

func TestDistanceSingleEdits(t *testing.T) {
	assert.Equal(t, 1, Distance("clss", "class"))   // insertion
	assert.Equal(t, 1, Distance("classs", "class")) // deletion
	assert.Equal(t, 1, Distance("clas", "class"))
}

func TestDistanceEmptyStrings(t *testing.T) {
	assert.Equal(t, 3, Distance("", "abc"))
	assert.Equal(t, 3, Distance("abc", ""))
}

func TestClosestFindsWithinThreshold(t *testing.T) {
	candidates := []string{"class", "super", "method", "code", "end", "limit"}
	got, ok := Closest("clss", candidates, 2)
	assert.True(t, ok)
	assert.Equal(t, "class", got)
}

func TestClosestRejectsBeyondThreshold(t *testing.T) {
	candidates := []string{"class", "super", "method", "code", "end", "limit"}
	_, ok := Closest("xyzxyzxyz", candidates, 2)
	assert.False(t, ok)
}
