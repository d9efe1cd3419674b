/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ConsoleReporter renders diagnostics to an io.Writer (typically stderr) as
// colored, file:line:col-anchored text with a caret under the primary span
// and any secondary labels, matching the CLI's single-diagnostic-per-run
// policy.
type ConsoleReporter struct {
	Out io.Writer

	errorTag  *color.Color
	warnTag   *color.Color
	caretLine *color.Color
	noteLabel *color.Color
}

// NewConsoleReporter returns a reporter writing to out. If out is nil,
// os.Stderr is used.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleReporter{
		Out:       out,
		errorTag:  color.New(color.FgRed, color.Bold),
		warnTag:   color.New(color.FgYellow, color.Bold),
		caretLine: color.New(color.FgCyan),
		noteLabel: color.New(color.FgGreen),
	}
}

func lineCol(source string, offset int) (line, col int) {
	line = 1
	col = 1
	for i := 0; i < offset && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func lineText(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[start:], '\n')
	if end < 0 {
		return source[start:]
	}
	return source[start : start+end]
}

// Report renders d against filename/source.
func (r *ConsoleReporter) Report(filename string, source string, d Diagnostic) {
	tag := r.errorTag
	if d.Severity == SeverityWarning {
		tag = r.warnTag
	}
	line, col := lineCol(source, d.PrimarySpan.Start)
	fmt.Fprintf(r.Out, "%s: %s\n", tag.Sprint(d.Severity.String()), d.Message)
	fmt.Fprintf(r.Out, "  --> %s:%d:%d\n", filename, line, col)

	text := lineText(source, d.PrimarySpan.Start)
	fmt.Fprintf(r.Out, "   | %s\n", text)
	caretLen := d.PrimarySpan.End - d.PrimarySpan.Start
	if caretLen < 1 {
		caretLen = 1
	}
	fmt.Fprintf(r.Out, "   | %s%s\n", strings.Repeat(" ", col-1), r.caretLine.Sprint(strings.Repeat("^", caretLen)))

	for _, l := range d.Labels {
		lline, lcol := lineCol(source, l.Span.Start)
		fmt.Fprintf(r.Out, "  note: %s (at %d:%d)\n", l.Text, lline, lcol)
	}
	if d.Note != "" {
		fmt.Fprintf(r.Out, "%s: %s\n", r.noteLabel.Sprint("note"), d.Note)
	}
}

// ReportInternal renders an internal-error banner distinct from ordinary
// diagnostics; it signals a bug in this toolchain rather than a problem
// with the user's input.
func (r *ConsoleReporter) ReportInternal(msg string) {
	banner := color.New(color.FgWhite, color.BgRed, color.Bold)
	fmt.Fprintln(r.Out, banner.Sprint("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
	fmt.Fprintln(r.Out, banner.Sprint("!        INTERNAL ERROR         !"))
	fmt.Fprintln(r.Out, banner.Sprint("!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
	fmt.Fprintln(r.Out, "This is a bug in this toolchain, not in your input.")
	fmt.Fprintf(r.Out, "Details: %s\n", msg)
}
