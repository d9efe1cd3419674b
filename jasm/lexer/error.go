/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package lexer

import (
	"fmt"

	"github.com/obito-git/lagertha/jasm/token"
	"github.com/obito-git/lagertha/levenshtein"
)

// UnexpectedCharError reports a character the lexer cannot start a token
// with.
type UnexpectedCharError struct {
	Span token.Span
	Char rune
	Hint string
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q: %s", e.Char, e.Hint)
}

// UnknownDirectiveError reports a `.name` directive not in token.Directives.
// Suggestion is the nearest known directive within Levenshtein distance 2,
// when one exists.
type UnknownDirectiveError struct {
	Span          token.Span
	Name          string
	Suggestion    string
	HasSuggestion bool
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown directive '.%s'", e.Name)
}

// Note returns the "did you mean" text, or "" if no close match exists.
func (e *UnknownDirectiveError) Note() string {
	if !e.HasSuggestion {
		return ""
	}
	return fmt.Sprintf("did you mean '%s'?", e.Suggestion)
}

func newUnknownDirectiveError(span token.Span, name string) *UnknownDirectiveError {
	suggestion, ok := levenshtein.Closest(name, bareDirectiveNames(), 2)
	return &UnknownDirectiveError{Span: span, Name: name, Suggestion: suggestion, HasSuggestion: ok}
}

func bareDirectiveNames() []string {
	names := make([]string, 0, len(token.Directives))
	for name := range token.Directives {
		names = append(names, name)
	}
	return names
}

// UnexpectedEofError reports the source ending mid-token.
type UnexpectedEofError struct{ Span token.Span }

func (e *UnexpectedEofError) Error() string { return "unexpected end of input" }

// UnterminatedStringError reports a string literal with no closing quote
// before a bare newline or EOF.
type UnterminatedStringError struct{ Span token.Span }

func (e *UnterminatedStringError) Error() string { return "unterminated string literal" }

// InvalidEscapeError reports a backslash escape sequence the lexer does not
// recognise.
type InvalidEscapeError struct {
	Span token.Span
	Char rune
}

func (e *InvalidEscapeError) Error() string {
	return fmt.Sprintf("invalid escape sequence '\\%c'", e.Char)
}

// InvalidNumberError reports a numeric literal that failed to parse as a
// signed 32-bit integer. Overflow distinguishes "parses as an integer but
// doesn't fit in 32 bits" from "contains non-digit characters".
type InvalidNumberError struct {
	Span     token.Span
	Text     string
	Overflow bool
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid integer literal %q", e.Text)
}

func (e *InvalidNumberError) Note() string {
	if e.Overflow {
		return "value does not fit in a signed 32-bit integer"
	}
	if len(e.Text) > 1 && (e.Text[0:2] == "0x" || e.Text[0:2] == "0X") {
		return "hexadecimal literals are not supported"
	}
	return "expected an optional leading '-' followed by decimal digits"
}
