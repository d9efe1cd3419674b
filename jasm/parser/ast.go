/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package parser turns a JASM token stream into an assembled-class AST, by
// recursive descent with one-token lookahead.
package parser

import (
	"github.com/obito-git/lagertha/descriptor"
	"github.com/obito-git/lagertha/jasm/token"
)

// File is the top-level parse result: exactly one class declaration.
type File struct {
	Class Class
}

// Class is a parsed `.class` declaration and its members.
type Class struct {
	AccessFlags uint16
	Name        string
	NameSpan    token.Span

	Super     string // "" if no `.super` member was present
	SuperSpan token.Span

	Methods []Method
}

// Method is a parsed `.method` member.
type Method struct {
	AccessFlags uint16
	Name        string
	NameSpan    token.Span

	DescriptorRaw string
	Descriptor    descriptor.MethodType
	DescriptorSpan token.Span

	Code CodeBlock
}

// CodeBlock is a parsed `.code` member: its declared operand-stack/local
// bounds (0 if the corresponding CodeOpt was absent) and its instructions.
type CodeBlock struct {
	MaxStack  int
	MaxLocals int

	Instructions []Instruction
}

// ArgKind discriminates an instruction argument's syntactic shape. The
// grammar's table names six kinds (ClassName, MethodName, MethodDescriptor,
// FieldName, FieldDescriptor, StringLiteral); ArgInteger is added to cover
// the local-index and immediate-value operands (`aload`, `bipush`) that a
// representative instruction spread needs and that the six named kinds
// don't reach.
type ArgKind int

const (
	ArgClassName ArgKind = iota
	ArgMethodName
	ArgMethodDescriptor
	ArgFieldName
	ArgFieldDescriptor
	ArgStringLiteral
	ArgInteger
)

// Arg is one decoded instruction argument.
type Arg struct {
	Kind ArgKind
	Span token.Span

	Text string // ClassName, MethodName, FieldName, MethodDescriptor, FieldDescriptor, StringLiteral
	Int  int32  // Integer
}

// Instruction is one assembled bytecode instruction: a mnemonic plus its
// arguments, not yet resolved against a constant pool.
type Instruction struct {
	Span     token.Span
	Mnemonic string
	Args     []Arg
}
