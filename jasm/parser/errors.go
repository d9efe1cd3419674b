/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"fmt"

	"github.com/obito-git/lagertha/jasm/token"
)

// Context names the directive a parse error occurred while parsing, for
// diagnostics that apply at more than one grammar position.
type Context int

const (
	ContextClass Context = iota
	ContextSuper
	ContextMethod
	ContextCode
)

func (c Context) String() string {
	switch c {
	case ContextClass:
		return "class"
	case ContextSuper:
		return "super"
	case ContextMethod:
		return "method"
	case ContextCode:
		return "code"
	default:
		return "unknown"
	}
}

// CodeOptContext names which `.code` option (`stack` or `locals`) a
// NonNegativeIntegerExpected error occurred in.
type CodeOptContext int

const (
	CodeOptStack CodeOptContext = iota
	CodeOptLocals
)

func (c CodeOptContext) String() string {
	if c == CodeOptStack {
		return "stack"
	}
	return "locals"
}

// ClassDirectiveExpectedError reports a file not starting with `.class`.
type ClassDirectiveExpectedError struct{ Span token.Span }

func (e *ClassDirectiveExpectedError) Error() string {
	return "expected `.class` directive"
}

// EmptyFileError reports a source file with no tokens at all (besides Eof).
type EmptyFileError struct{ Span token.Span }

func (e *EmptyFileError) Error() string { return "empty file: expected a `.class` directive" }

// IdentifierExpectedError reports a token that should have been an
// identifier (a class/method/field name, or a field descriptor, which
// shares the identifier token kind) but wasn't.
type IdentifierExpectedError struct {
	Span    token.Span
	Context Context
	Got     token.Kind
}

func (e *IdentifierExpectedError) Error() string {
	return fmt.Sprintf("expected identifier in %s, got %s", e.Context, e.Got)
}

// MethodDescriptorExpectedError reports a token that should have been a
// MethodDescriptor (`(...)...`) but wasn't.
type MethodDescriptorExpectedError struct {
	Span    token.Span
	Context Context
	Got     token.Kind
}

func (e *MethodDescriptorExpectedError) Error() string {
	return fmt.Sprintf("expected method descriptor in %s, got %s", e.Context, e.Got)
}

// NonNegativeIntegerExpectedError reports a `.code stack`/`.code locals`
// option whose argument was missing, negative, or not an integer token.
type NonNegativeIntegerExpectedError struct {
	Span token.Span
	Opt  CodeOptContext
	Got  token.Kind
}

func (e *NonNegativeIntegerExpectedError) Error() string {
	return fmt.Sprintf("expected non-negative integer for `%s`, got %s", e.Opt, e.Got)
}

// UnexpectedCodeDirectiveArgError reports a `.code` option token that is
// neither `stack` nor `locals`.
type UnexpectedCodeDirectiveArgError struct {
	Span token.Span
	Text string
}

func (e *UnexpectedCodeDirectiveArgError) Error() string {
	return fmt.Sprintf("unexpected `.code` option %q, want `stack` or `locals`", e.Text)
}

// TrailingTokensError reports extra tokens after a directive's required
// arguments, up to end-of-line.
type TrailingTokensError struct {
	Span    token.Span
	Context Context
	Tokens  []token.Token
}

func (e *TrailingTokensError) Error() string {
	return fmt.Sprintf("%d trailing token(s) after %s directive", len(e.Tokens), e.Context)
}

// UnknownInstructionError reports a mnemonic with no entry in the
// instruction argument table, with an optional "did you mean" suggestion.
type UnknownInstructionError struct {
	Span          token.Span
	Name          string
	Suggestion    string
	HasSuggestion bool
}

func (e *UnknownInstructionError) Error() string {
	if e.HasSuggestion {
		return fmt.Sprintf("unknown instruction %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown instruction %q", e.Name)
}

func (e *UnknownInstructionError) Note() string {
	if e.HasSuggestion {
		return fmt.Sprintf("a mnemonic named %q is recognised", e.Suggestion)
	}
	return ""
}

// MissingEndError reports a construct that requires a mandatory `.end`
// closer (a method's `.end method`) reaching Eof without one.
type MissingEndError struct {
	Span token.Span
	Want string
}

func (e *MissingEndError) Error() string {
	return fmt.Sprintf("expected `.end %s` before end of file", e.Want)
}

// UnexpectedTokenError is a catch-all for a token that doesn't start any
// grammar production valid at the current position (e.g. a class member
// that is neither `.super` nor `.method`).
type UnexpectedTokenError struct {
	Span    token.Span
	Context Context
	Got     token.Kind
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected %s in %s body", e.Got, e.Context)
}

// UnexpectedEndCloserError reports an `.end` directive naming a construct
// other than the one currently open (e.g. `.end class` while a method is
// still open).
type UnexpectedEndCloserError struct {
	Span token.Span
	Want string
	Got  string
}

func (e *UnexpectedEndCloserError) Error() string {
	return fmt.Sprintf("expected `.end %s`, got `.end %s`", e.Want, e.Got)
}

// InvalidDescriptorError wraps a descriptor-package parse error with the
// span of the token it came from, per the "preserve span information when
// converting a lower-layer error" rule: descriptor errors carry only the
// offending descriptor text, not a source span.
type InvalidDescriptorError struct {
	Span token.Span
	Err  error
}

func (e *InvalidDescriptorError) Error() string { return e.Err.Error() }
func (e *InvalidDescriptorError) Unwrap() error { return e.Err }

// ArgumentMismatchError reports an instruction argument whose token kind
// doesn't match what the mnemonic's argument-kind table expects.
type ArgumentMismatchError struct {
	Span     token.Span
	Mnemonic string
	Index    int
	Expected ArgKind
	Got      token.Kind
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("%s: argument %d: expected %s, got %s", e.Mnemonic, e.Index, argKindName(e.Expected), e.Got)
}

func argKindName(k ArgKind) string {
	switch k {
	case ArgClassName:
		return "class name"
	case ArgMethodName:
		return "method name"
	case ArgMethodDescriptor:
		return "method descriptor"
	case ArgFieldName:
		return "field name"
	case ArgFieldDescriptor:
		return "field descriptor"
	case ArgStringLiteral:
		return "string literal"
	case ArgInteger:
		return "integer"
	default:
		return "argument"
	}
}
