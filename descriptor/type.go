/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package descriptor parses JVM field, method, and (syntactically) generic
// signature descriptors, grounded on the constant-pool Utf8 payloads a
// class file or an assembled method descriptor carries.
package descriptor

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a field descriptor.
type Kind byte

const (
	KindByte    Kind = 'B'
	KindChar    Kind = 'C'
	KindDouble  Kind = 'D'
	KindFloat   Kind = 'F'
	KindInt     Kind = 'I'
	KindLong    Kind = 'J'
	KindShort   Kind = 'S'
	KindBoolean Kind = 'Z'
	KindObject  Kind = 'L'
	KindArray   Kind = '['
)

// Type is a fully-parsed field descriptor: a primitive, an object
// reference, or an array of some element Type.
type Type struct {
	Kind      Kind
	ClassName string // set when Kind == KindObject, internal form e.g. "java/lang/String"
	Elem      *Type  // set when Kind == KindArray
}

func (t Type) String() string {
	switch t.Kind {
	case KindObject:
		return "L" + t.ClassName + ";"
	case KindArray:
		return "[" + t.Elem.String()
	default:
		return string(byte(t.Kind))
	}
}

// ReturnType is a method's return descriptor: either void or a Type.
type ReturnType struct {
	Void bool
	Type Type
}

func (r ReturnType) String() string {
	if r.Void {
		return "V"
	}
	return r.Type.String()
}

// MethodType is a fully-parsed method descriptor.
type MethodType struct {
	Params []Type
	Return ReturnType
}

// UnexpectedEndError reports a descriptor that ended mid-type.
type UnexpectedEndError struct{ Descriptor string }

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("type descriptor %q ended unexpectedly", e.Descriptor)
}

// InvalidTypeError reports an unrecognised leading character.
type InvalidTypeError struct {
	Descriptor string
	Char       byte
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type character %q in descriptor %q", e.Char, e.Descriptor)
}

// InvalidObjectRefError reports an object type ("L...") missing its
// terminating semicolon.
type InvalidObjectRefError struct{ Descriptor string }

func (e *InvalidObjectRefError) Error() string {
	return fmt.Sprintf("object type in descriptor %q is missing a terminating ';'", e.Descriptor)
}

// ParseType parses s as a single field descriptor, requiring it to consume
// the entire string.
func ParseType(s string) (Type, error) {
	t, rest, err := parseOne(s)
	if err != nil {
		return Type{}, err
	}
	if rest != "" {
		return Type{}, &InvalidTypeError{Descriptor: s, Char: rest[0]}
	}
	return t, nil
}

// parseOne parses one field descriptor from the front of s and returns the
// unconsumed remainder.
func parseOne(s string) (Type, string, error) {
	if s == "" {
		return Type{}, "", &UnexpectedEndError{Descriptor: s}
	}
	switch Kind(s[0]) {
	case KindByte, KindChar, KindDouble, KindFloat, KindInt, KindLong, KindShort, KindBoolean:
		return Type{Kind: Kind(s[0])}, s[1:], nil
	case KindObject:
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return Type{}, "", &InvalidObjectRefError{Descriptor: s}
		}
		return Type{Kind: KindObject, ClassName: s[1:end]}, s[end+1:], nil
	case KindArray:
		elem, rest, err := parseOne(s[1:])
		if err != nil {
			return Type{}, "", err
		}
		e := elem
		return Type{Kind: KindArray, Elem: &e}, rest, nil
	default:
		return Type{}, "", &InvalidTypeError{Descriptor: s, Char: s[0]}
	}
}

// ShouldStartWithParenthesesError reports a method descriptor not opening
// with '('.
type ShouldStartWithParenthesesError struct{ Descriptor string }

func (e *ShouldStartWithParenthesesError) Error() string {
	return fmt.Sprintf("method descriptor %q must start with '('", e.Descriptor)
}

// MissingClosingParenthesisError reports a method descriptor whose
// parameter list never closes.
type MissingClosingParenthesisError struct{ Descriptor string }

func (e *MissingClosingParenthesisError) Error() string {
	return fmt.Sprintf("method descriptor %q is missing a closing ')'", e.Descriptor)
}

// TrailingCharactersError reports leftover bytes after parsing a complete
// return type.
type TrailingCharactersError struct {
	Descriptor string
	Remainder  string
}

func (e *TrailingCharactersError) Error() string {
	return fmt.Sprintf("method descriptor %q has trailing characters %q", e.Descriptor, e.Remainder)
}

// ParseMethod parses s as a method descriptor "(<params>)<return>".
func ParseMethod(s string) (MethodType, error) {
	if !strings.HasPrefix(s, "(") {
		return MethodType{}, &ShouldStartWithParenthesesError{Descriptor: s}
	}
	rest := s[1:]
	var params []Type
	for {
		if rest == "" {
			return MethodType{}, &MissingClosingParenthesisError{Descriptor: s}
		}
		if rest[0] == ')' {
			rest = rest[1:]
			break
		}
		t, r, err := parseOne(rest)
		if err != nil {
			return MethodType{}, err
		}
		params = append(params, t)
		rest = r
	}

	if rest != "" && rest[0] == 'V' {
		if len(rest) > 1 {
			return MethodType{}, &TrailingCharactersError{Descriptor: s, Remainder: rest[1:]}
		}
		return MethodType{Params: params, Return: ReturnType{Void: true}}, nil
	}
	ret, rest2, err := parseOne(rest)
	if err != nil {
		return MethodType{}, err
	}
	if rest2 != "" {
		return MethodType{}, &TrailingCharactersError{Descriptor: s, Remainder: rest2}
	}
	return MethodType{Params: params, Return: ReturnType{Type: ret}}, nil
}
