/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"github.com/obito-git/lagertha/classfile"
	"github.com/obito-git/lagertha/descriptor"
	"github.com/obito-git/lagertha/jasm/lexer"
	"github.com/obito-git/lagertha/jasm/token"
	"github.com/obito-git/lagertha/levenshtein"
)

// flagBits maps an access-flag keyword token to its bit value, borrowed
// directly from classfile's AccessFlags so an assembled class carries the
// same bit positions a decoded one would.
var flagBits = map[token.Kind]uint16{
	token.KindPublic:     uint16(classfile.AccPublic),
	token.KindPrivate:    uint16(classfile.AccPrivate),
	token.KindProtected:  uint16(classfile.AccProtected),
	token.KindStatic:     uint16(classfile.AccStatic),
	token.KindFinal:      uint16(classfile.AccFinal),
	token.KindSuperFlag:  uint16(classfile.AccSuper),
	token.KindInterface:  uint16(classfile.AccInterface),
	token.KindAbstract:   uint16(classfile.AccAbstract),
	token.KindSynthetic:  uint16(classfile.AccSynthetic),
	token.KindAnnotation: uint16(classfile.AccAnnotation),
	token.KindEnum:       uint16(classfile.AccEnum),
	token.KindModule:     uint16(classfile.AccModule),
	token.KindNative:     uint16(classfile.AccNative),
	token.KindBridge:     uint16(classfile.AccBridge),
	token.KindVarargs:    uint16(classfile.AccVarargs),
	token.KindStrict:     uint16(classfile.AccStrict),
}

// Parser walks a JASM token stream with one-token lookahead.
type Parser struct {
	tokens   []token.Token
	pos      int
	lastSpan token.Span
}

// New wraps an already-lexed token stream (including its trailing Eof) for
// parsing.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses a complete JASM source file.
func Parse(src string) (*File, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(toks).parseFile()
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.KindEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.lastSpan = t.Span
	return t
}

// endHereSpan is a zero-width span at the end of the last consumed token,
// for "expected here" diagnostics on a missing (not wrong) element.
func (p *Parser) endHereSpan() token.Span {
	return token.Span{Start: p.lastSpan.End, End: p.lastSpan.End}
}

func (p *Parser) skipNewlines() {
	for p.at(token.KindNewline) {
		p.advance()
	}
}

// collectTrailing gathers tokens up to (not including) the next Newline or
// Eof, advancing past them.
func (p *Parser) collectTrailing() []token.Token {
	var out []token.Token
	for !p.at(token.KindNewline) && !p.at(token.KindEOF) {
		out = append(out, p.advance())
	}
	return out
}

// finishLine enforces the trailing-tokens policy and consumes the EOL
// (Newline+ or Eof) ending the current directive.
func (p *Parser) finishLine(context Context) error {
	trailing := p.collectTrailing()
	if len(trailing) > 0 {
		return &TrailingTokensError{Span: trailing[0].Span, Context: context, Tokens: trailing}
	}
	p.skipNewlines()
	return nil
}

func (p *Parser) expectIdentifier(context Context) (string, token.Span, error) {
	tok := p.peek()
	if tok.Kind != token.KindIdentifier {
		return "", p.endHereSpan(), &IdentifierExpectedError{Span: tok.Span, Context: context, Got: tok.Kind}
	}
	p.advance()
	return tok.Text, tok.Span, nil
}

func (p *Parser) parseAccessFlags() uint16 {
	var flags uint16
	for {
		bit, ok := flagBits[p.peek().Kind]
		if !ok {
			return flags
		}
		flags |= bit
		p.advance()
	}
}

func (p *Parser) parseFile() (*File, error) {
	p.skipNewlines()
	if p.at(token.KindEOF) {
		return nil, &EmptyFileError{Span: p.peek().Span}
	}
	if !p.at(token.KindDotClass) {
		return nil, &ClassDirectiveExpectedError{Span: p.peek().Span}
	}
	p.advance()

	flags := p.parseAccessFlags()
	name, nameSpan, err := p.expectIdentifier(ContextClass)
	if err != nil {
		return nil, err
	}
	if err := p.finishLine(ContextClass); err != nil {
		return nil, err
	}

	class := Class{AccessFlags: flags, Name: name, NameSpan: nameSpan}

	for {
		p.skipNewlines()
		if p.at(token.KindEOF) {
			break
		}
		if p.at(token.KindDotEnd) {
			p.advance()
			closer, _, err := p.expectIdentifier(ContextClass)
			if err != nil {
				return nil, err
			}
			if closer != "class" {
				return nil, &UnexpectedEndCloserError{Span: p.lastSpan, Want: "class", Got: closer}
			}
			if err := p.finishLine(ContextClass); err != nil {
				return nil, err
			}
			break
		}

		switch {
		case p.at(token.KindDotSuper):
			p.advance()
			superName, superSpan, err := p.expectIdentifier(ContextSuper)
			if err != nil {
				return nil, err
			}
			if err := p.finishLine(ContextSuper); err != nil {
				return nil, err
			}
			class.Super = superName
			class.SuperSpan = superSpan

		case p.at(token.KindDotMethod):
			method, err := p.parseMethod()
			if err != nil {
				return nil, err
			}
			class.Methods = append(class.Methods, method)

		default:
			return nil, &UnexpectedTokenError{Span: p.peek().Span, Context: ContextClass, Got: p.peek().Kind}
		}
	}

	return &File{Class: class}, nil
}

func (p *Parser) parseMethod() (Method, error) {
	p.advance() // `.method`

	flags := p.parseAccessFlags()
	name, nameSpan, err := p.expectIdentifier(ContextMethod)
	if err != nil {
		return Method{}, err
	}

	descTok := p.peek()
	if descTok.Kind != token.KindMethodDescriptor {
		return Method{}, &MethodDescriptorExpectedError{Span: p.endHereSpan(), Context: ContextMethod, Got: descTok.Kind}
	}
	p.advance()
	desc, err := descriptor.ParseMethod(descTok.Text)
	if err != nil {
		return Method{}, &InvalidDescriptorError{Span: descTok.Span, Err: err}
	}

	if err := p.finishLine(ContextMethod); err != nil {
		return Method{}, err
	}

	code, err := p.parseCodeBlock()
	if err != nil {
		return Method{}, err
	}

	p.skipNewlines()
	if !p.at(token.KindDotEnd) {
		return Method{}, &MissingEndError{Span: p.peek().Span, Want: "method"}
	}
	p.advance()
	closer, _, err := p.expectIdentifier(ContextMethod)
	if err != nil {
		return Method{}, err
	}
	if closer != "method" {
		return Method{}, &UnexpectedEndCloserError{Span: p.lastSpan, Want: "method", Got: closer}
	}
	if err := p.finishLine(ContextMethod); err != nil {
		return Method{}, err
	}

	return Method{
		AccessFlags:    flags,
		Name:           name,
		NameSpan:       nameSpan,
		DescriptorRaw:  descTok.Text,
		Descriptor:     desc,
		DescriptorSpan: descTok.Span,
		Code:           code,
	}, nil
}

func (p *Parser) parseCodeBlock() (CodeBlock, error) {
	if !p.at(token.KindDotCode) {
		return CodeBlock{}, &UnexpectedTokenError{Span: p.peek().Span, Context: ContextCode, Got: p.peek().Kind}
	}
	p.advance()

	var block CodeBlock
	for p.at(token.KindIdentifier) {
		opt := p.advance()
		switch opt.Text {
		case "stack":
			if !p.at(token.KindInteger) || p.peek().Int < 0 {
				return CodeBlock{}, &NonNegativeIntegerExpectedError{Span: p.peek().Span, Opt: CodeOptStack, Got: p.peek().Kind}
			}
			block.MaxStack = int(p.advance().Int)
		case "locals":
			if !p.at(token.KindInteger) || p.peek().Int < 0 {
				return CodeBlock{}, &NonNegativeIntegerExpectedError{Span: p.peek().Span, Opt: CodeOptLocals, Got: p.peek().Kind}
			}
			block.MaxLocals = int(p.advance().Int)
		default:
			return CodeBlock{}, &UnexpectedCodeDirectiveArgError{Span: opt.Span, Text: opt.Text}
		}
	}

	if err := p.finishLine(ContextCode); err != nil {
		return CodeBlock{}, err
	}

	for {
		p.skipNewlines()
		if p.at(token.KindDotEnd) || p.at(token.KindEOF) {
			break
		}
		if p.at(token.KindDotLimit) {
			p.advance()
			p.collectTrailing()
			p.skipNewlines()
			continue
		}
		instr, err := p.parseInstruction()
		if err != nil {
			return CodeBlock{}, err
		}
		block.Instructions = append(block.Instructions, instr)
	}

	return block, nil
}

func (p *Parser) parseInstruction() (Instruction, error) {
	mnemonicTok := p.peek()
	if mnemonicTok.Kind != token.KindIdentifier {
		return Instruction{}, &UnexpectedTokenError{Span: mnemonicTok.Span, Context: ContextCode, Got: mnemonicTok.Kind}
	}
	p.advance()

	argKinds, ok := instructionArgs[mnemonicTok.Text]
	if !ok {
		suggestion, found := levenshtein.Closest(mnemonicTok.Text, instructionNames, 2)
		return Instruction{}, &UnknownInstructionError{
			Span: mnemonicTok.Span, Name: mnemonicTok.Text,
			Suggestion: suggestion, HasSuggestion: found,
		}
	}

	args := make([]Arg, 0, len(argKinds))
	for i, kind := range argKinds {
		arg, err := p.parseArg(mnemonicTok.Text, i, kind)
		if err != nil {
			return Instruction{}, err
		}
		args = append(args, arg)
	}

	if err := p.finishLine(ContextCode); err != nil {
		return Instruction{}, err
	}

	return Instruction{Span: mnemonicTok.Span, Mnemonic: mnemonicTok.Text, Args: args}, nil
}

func (p *Parser) parseArg(mnemonic string, index int, kind ArgKind) (Arg, error) {
	tok := p.peek()
	switch kind {
	case ArgClassName, ArgMethodName, ArgFieldName:
		if tok.Kind != token.KindIdentifier {
			return Arg{}, &ArgumentMismatchError{Span: tok.Span, Mnemonic: mnemonic, Index: index, Expected: kind, Got: tok.Kind}
		}
		p.advance()
		return Arg{Kind: kind, Span: tok.Span, Text: tok.Text}, nil

	case ArgFieldDescriptor:
		if tok.Kind != token.KindIdentifier {
			return Arg{}, &ArgumentMismatchError{Span: tok.Span, Mnemonic: mnemonic, Index: index, Expected: kind, Got: tok.Kind}
		}
		p.advance()
		if _, err := descriptor.ParseType(tok.Text); err != nil {
			return Arg{}, &InvalidDescriptorError{Span: tok.Span, Err: err}
		}
		return Arg{Kind: kind, Span: tok.Span, Text: tok.Text}, nil

	case ArgMethodDescriptor:
		if tok.Kind != token.KindMethodDescriptor {
			return Arg{}, &MethodDescriptorExpectedError{Span: tok.Span, Context: ContextCode, Got: tok.Kind}
		}
		p.advance()
		if _, err := descriptor.ParseMethod(tok.Text); err != nil {
			return Arg{}, &InvalidDescriptorError{Span: tok.Span, Err: err}
		}
		return Arg{Kind: kind, Span: tok.Span, Text: tok.Text}, nil

	case ArgStringLiteral:
		if tok.Kind != token.KindStringLiteral {
			return Arg{}, &ArgumentMismatchError{Span: tok.Span, Mnemonic: mnemonic, Index: index, Expected: kind, Got: tok.Kind}
		}
		p.advance()
		return Arg{Kind: kind, Span: tok.Span, Text: tok.Text}, nil

	default: // ArgInteger
		if tok.Kind != token.KindInteger {
			return Arg{}, &ArgumentMismatchError{Span: tok.Span, Mnemonic: mnemonic, Index: index, Expected: kind, Got: tok.Kind}
		}
		p.advance()
		return Arg{Kind: kind, Span: tok.Span, Int: tok.Int}, nil
	}
}
