/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package lexer

import (
	"github.com/obito-git/lagertha/diagnostic"
)

// noter is implemented by lexer error types that carry a "did you mean"
// or other trailing hint, surfaced as Diagnostic.Note.
type noter interface{ Note() string }

// Diagnose converts a lexer error into a diagnostic.Diagnostic, preserving
// its span. Returns false if err is not a lexer error this package produced.
func Diagnose(err error) (diagnostic.Diagnostic, bool) {
	var span diagnostic.Span
	switch e := err.(type) {
	case *UnexpectedCharError:
		span = e.Span
	case *UnknownDirectiveError:
		span = e.Span
	case *UnexpectedEofError:
		span = e.Span
	case *UnterminatedStringError:
		span = e.Span
	case *InvalidEscapeError:
		span = e.Span
	case *InvalidNumberError:
		span = e.Span
	default:
		return diagnostic.Diagnostic{}, false
	}

	d := diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityError,
		PrimarySpan: span,
		Message:     err.Error(),
	}
	if n, ok := err.(noter); ok {
		d.Note = n.Note()
	}
	return d, true
}
