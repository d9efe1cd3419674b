/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package lexer tokenises JASM source text into a stream of token.Token
// values, char by char, tracking byte offsets for diagnostics.
package lexer

import (
	"strconv"
	"strings"

	"github.com/obito-git/lagertha/jasm/token"
)

// Lexer scans UTF-8 source text into tokens. It holds exclusive mutable
// state (byte position) for the duration of one tokenisation; it performs
// no I/O.
type Lexer struct {
	src []byte
	pos int
}

// New wraps src for tokenisation starting at byte 0.
func New(src string) *Lexer {
	return &Lexer{src: []byte(src)}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	return b
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '/' || b == ';' || b == '$'
}

func isDelimiter(b byte) bool {
	return isSpace(b) || b == '\n' || b == '(' || b == ')' || b == '[' || b == 0
}

// skipWhitespaceAndComments consumes spaces/tabs/CR and ';'-to-end-of-line
// comments. It never consumes the newline itself, since Newline is a
// significant token.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch {
		case isSpace(l.peek()):
			l.advance()
		case l.peek() == ';':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// Next returns the next token, ending with an unbounded run of KindEOF
// tokens once the input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	start := l.pos
	if l.atEnd() {
		return token.Token{Kind: token.KindEOF, Span: token.Span{Start: start, End: start}}, nil
	}

	b := l.peek()
	switch {
	case b == '\n':
		l.advance()
		return token.Token{Kind: token.KindNewline, Span: token.Span{Start: start, End: l.pos}}, nil

	case b == '.':
		return l.lexDirective()

	case b == '(':
		return l.lexMethodDescriptor()

	case b == ')':
		l.advance()
		return token.Token{Kind: token.KindRParen, Span: token.Span{Start: start, End: l.pos}}, nil

	case b == '[':
		l.advance()
		return token.Token{Kind: token.KindLBracket, Span: token.Span{Start: start, End: l.pos}}, nil

	case b == '"':
		return l.lexString()

	case b == '<':
		return l.lexAngleIdentifier()

	case isIdentStart(b):
		return l.lexIdentifierOrKeyword()

	case isDigit(b) || (b == '-' && isDigit(l.peekAt(1))):
		return l.lexNumber()

	default:
		l.advance()
		return token.Token{}, &UnexpectedCharError{
			Span: token.Span{Start: start, End: l.pos},
			Char: rune(b),
			Hint: "unexpected character",
		}
	}
}

func (l *Lexer) readToDelimiter() string {
	start := l.pos
	for !l.atEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

func (l *Lexer) lexDirective() (token.Token, error) {
	start := l.pos
	l.advance() // '.'
	nameStart := l.pos
	for !l.atEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	name := string(l.src[nameStart:l.pos])
	span := token.Span{Start: start, End: l.pos}

	if name == "" {
		if l.atEnd() {
			return token.Token{}, &UnexpectedEofError{Span: span}
		}
		return token.Token{}, &UnexpectedCharError{Span: span, Char: rune(l.peek()), Hint: "expected a directive name after '.'"}
	}

	kind, ok := token.Directives[name]
	if !ok {
		return token.Token{}, newUnknownDirectiveError(span, name)
	}
	return token.Token{Kind: kind, Span: span, Text: "." + name}, nil
}

func (l *Lexer) lexIdentifierOrKeyword() (token.Token, error) {
	start := l.pos
	text := l.readToDelimiter()
	span := token.Span{Start: start, End: l.pos}
	if kind, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kind, Span: span, Text: text}, nil
	}
	return token.Token{Kind: token.KindIdentifier, Span: span, Text: text}, nil
}

// lexAngleIdentifier handles `<init>` and `<clinit>`, the only identifiers
// permitted to start with '<'.
func (l *Lexer) lexAngleIdentifier() (token.Token, error) {
	start := l.pos
	text := l.readToDelimiter()
	span := token.Span{Start: start, End: l.pos}
	if text == "<init>" || text == "<clinit>" {
		return token.Token{Kind: token.KindIdentifier, Span: span, Text: text}, nil
	}
	return token.Token{}, &UnexpectedCharError{Span: span, Char: '<', Hint: "'<' may only begin <init> or <clinit>"}
}

func (l *Lexer) lexNumber() (token.Token, error) {
	start := l.pos
	if l.peek() == '-' {
		l.advance()
	}
	for !l.atEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	span := token.Span{Start: start, End: l.pos}

	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		ne, ok := err.(*strconv.NumError)
		overflow := ok && ne.Err == strconv.ErrRange
		return token.Token{}, &InvalidNumberError{Span: span, Text: text, Overflow: overflow}
	}
	return token.Token{Kind: token.KindInteger, Span: span, Text: text, Int: int32(v)}, nil
}

func (l *Lexer) lexString() (token.Token, error) {
	start := l.pos
	l.advance() // opening '"'
	var sb strings.Builder
	for {
		if l.atEnd() {
			return token.Token{}, &UnterminatedStringError{Span: token.Span{Start: start, End: l.pos}}
		}
		c := l.advance()
		switch c {
		case '"':
			span := token.Span{Start: start, End: l.pos}
			return token.Token{Kind: token.KindStringLiteral, Span: span, Text: sb.String()}, nil
		case '\n':
			return token.Token{}, &UnterminatedStringError{Span: token.Span{Start: start, End: l.pos}}
		case '\\':
			if l.atEnd() || l.peek() == '\n' {
				return token.Token{}, &UnterminatedStringError{Span: token.Span{Start: start, End: l.pos}}
			}
			esc := l.advance()
			mapped, ok := escapeChar(esc)
			if !ok {
				return token.Token{}, &InvalidEscapeError{Span: token.Span{Start: l.pos - 2, End: l.pos}, Char: rune(esc)}
			}
			sb.WriteByte(mapped)
		default:
			sb.WriteByte(c)
		}
	}
}

func escapeChar(c byte) (byte, bool) {
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	default:
		return 0, false
	}
}

// lexMethodDescriptor reads a full "(<params>)<return>" lexeme as a single
// token, starting at '('. The parameter section is read up to its matching
// ')'; the return-type section is then read to the next delimiter.
func (l *Lexer) lexMethodDescriptor() (token.Token, error) {
	start := l.pos
	l.advance() // '('
	for !l.atEnd() && l.peek() != ')' {
		l.advance()
	}
	if l.atEnd() {
		return token.Token{}, &UnexpectedEofError{Span: token.Span{Start: start, End: l.pos}}
	}
	l.advance() // ')'
	for !l.atEnd() && !isDelimiter(l.peek()) {
		l.advance()
	}
	span := token.Span{Start: start, End: l.pos}
	return token.Token{Kind: token.KindMethodDescriptor, Span: span, Text: string(l.src[start:l.pos])}, nil
}

// Tokenize runs the lexer to completion, returning every token up to and
// including the first Eof, or the first error encountered.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.KindEOF {
			return out, nil
		}
	}
}
