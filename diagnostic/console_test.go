/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package diagnostic

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestLineColComputesRowAndColumn(t *testing.T) {
	src := "first\nsecond\nthird"
	line, col := lineCol(src, 6) // 's' of "second"
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestLineColOnFirstLine(t *testing.T) {
	src := "abcdef"
	line, col := lineCol(src, 3)
	assert.Equal(t, 1, line)
	assert.Equal(t, 4, col)
}

func TestConsoleReporterReportIncludesMessageAndLocation(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	color.NoColor = true

	src := ".clss public Foo\n"
	d := Diagnostic{
		Severity:    SeverityError,
		PrimarySpan: Span{Start: 0, End: 5},
		Message:     "unknown directive '.clss'",
		Note:        "did you mean '.class'?",
	}
	r.Report("test.jasm", src, d)

	out := buf.String()
	assert.Contains(t, out, "unknown directive")
	assert.Contains(t, out, "test.jasm:1:1")
	assert.Contains(t, out, "did you mean")
}

func TestConsoleReporterReportInternal(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf)
	r.ReportInternal("parser reached an unreachable state")
	out := buf.String()
	assert.Contains(t, out, "INTERNAL ERROR")
	assert.Contains(t, out, "parser reached an unreachable state")
}
