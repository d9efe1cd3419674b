/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package token defines the lexical token model produced by the JASM
// lexer and consumed by the JASM parser.
package token

import "github.com/obito-git/lagertha/diagnostic"

// Span is a byte-offset range into the original source text — the
// primary correlation key for diagnostics.
type Span = diagnostic.Span

// Kind classifies a Token.
type Kind int

const (
	KindEOF Kind = iota
	KindNewline

	// directives
	KindDotClass
	KindDotSuper
	KindDotMethod
	KindDotCode
	KindDotEnd
	KindDotLimit

	// access-flag / modifier keywords
	KindPublic
	KindPrivate
	KindProtected
	KindStatic
	KindFinal
	KindSuperFlag // the `super` class access flag, distinct from the `.super` directive
	KindInterface
	KindAbstract
	KindSynthetic
	KindAnnotation
	KindEnum
	KindModule
	KindNative
	KindBridge
	KindVarargs
	KindStrict

	KindIdentifier
	KindInteger
	KindStringLiteral
	KindMethodDescriptor

	KindLParen
	KindRParen
	KindLBracket
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	KindEOF:              "Eof",
	KindNewline:          "Newline",
	KindDotClass:         ".class",
	KindDotSuper:         ".super",
	KindDotMethod:        ".method",
	KindDotCode:          ".code",
	KindDotEnd:           ".end",
	KindDotLimit:         ".limit",
	KindPublic:           "public",
	KindPrivate:          "private",
	KindProtected:        "protected",
	KindStatic:           "static",
	KindFinal:            "final",
	KindSuperFlag:        "super",
	KindInterface:        "interface",
	KindAbstract:         "abstract",
	KindSynthetic:        "synthetic",
	KindAnnotation:       "annotation",
	KindEnum:             "enum",
	KindModule:           "module",
	KindNative:           "native",
	KindBridge:           "bridge",
	KindVarargs:          "varargs",
	KindStrict:           "strict",
	KindIdentifier:       "Identifier",
	KindInteger:          "Integer",
	KindStringLiteral:    "StringLiteral",
	KindMethodDescriptor: "MethodDescriptor",
	KindLParen:           "(",
	KindRParen:           ")",
	KindLBracket:         "[",
}

// Directives maps a directive name (without the leading '.') to its Kind.
var Directives = map[string]Kind{
	"class":  KindDotClass,
	"super":  KindDotSuper,
	"method": KindDotMethod,
	"code":   KindDotCode,
	"end":    KindDotEnd,
	"limit":  KindDotLimit,
}

// DirectiveNames lists every recognised directive, '.'-prefixed, in a
// stable order. The lexer's "did you mean" suggestions are built from the
// keys of Directives instead, so they carry no leading '.'.
var DirectiveNames = []string{".class", ".super", ".method", ".code", ".end", ".limit"}

// Keywords maps a reserved identifier to its Kind.
var Keywords = map[string]Kind{
	"public":     KindPublic,
	"private":    KindPrivate,
	"protected":  KindProtected,
	"static":     KindStatic,
	"final":      KindFinal,
	"super":      KindSuperFlag,
	"interface":  KindInterface,
	"abstract":   KindAbstract,
	"synthetic":  KindSynthetic,
	"annotation": KindAnnotation,
	"enum":       KindEnum,
	"module":     KindModule,
	"native":     KindNative,
	"bridge":     KindBridge,
	"varargs":    KindVarargs,
	"strict":     KindStrict,
}

// Token is one lexical unit: a kind, its source span, and — for kinds that
// carry a value — the decoded Text/Value.
type Token struct {
	Kind Kind
	Span Span
	Text string // raw text for Identifier/Integer/MethodDescriptor; unescaped contents for StringLiteral; directive/keyword spelling otherwise
	Int  int32  // valid when Kind == KindInteger
}
