/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"github.com/obito-git/lagertha/diagnostic"
	"github.com/obito-git/lagertha/jasm/lexer"
)

type noter interface{ Note() string }

// Diagnose converts an error returned by Parse into a diagnostic.Diagnostic.
// Parse can return either a lexer error (Tokenize failed before parsing
// started) or one of this package's own parse errors; both carry a span,
// so the higher layer (parser) delegates to the lower layer's own
// conversion rather than re-deriving it, per the "explicit conversion
// functions between layers" design note.
func Diagnose(err error) (diagnostic.Diagnostic, bool) {
	if d, ok := lexer.Diagnose(err); ok {
		return d, true
	}

	var span diagnostic.Span
	switch e := err.(type) {
	case *ClassDirectiveExpectedError:
		span = e.Span
	case *EmptyFileError:
		span = e.Span
	case *IdentifierExpectedError:
		span = e.Span
	case *MethodDescriptorExpectedError:
		span = e.Span
	case *NonNegativeIntegerExpectedError:
		span = e.Span
	case *UnexpectedCodeDirectiveArgError:
		span = e.Span
	case *TrailingTokensError:
		span = e.Span
	case *UnknownInstructionError:
		span = e.Span
	case *MissingEndError:
		span = e.Span
	case *UnexpectedTokenError:
		span = e.Span
	case *UnexpectedEndCloserError:
		span = e.Span
	case *ArgumentMismatchError:
		span = e.Span
	case *InvalidDescriptorError:
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
