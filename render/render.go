/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package render prints a decoded classfile.ClassFile as javap-like text.
// It is off the core's critical path (§5/§6): nothing in classfile, jasm,
// or diagnostic depends on it, and it never participates in decoding or
// assembling — only in displaying an already-decoded result.
package render

import (
	"fmt"
	"strings"

	"github.com/obito-git/lagertha/classfile"
	"github.com/obito-git/lagertha/classfile/bytecode"
)

// flagOrder lists the access-flag bits in javap's conventional print order,
// paired with their keyword text. Not every bit applies to every location
// (ACC_SUPER/ACC_SYNCHRONIZED share a bit, for instance); ClassFile renders
// the class-level flags, renderMethod the method-level ones.
var flagOrder = []struct {
	bit  classfile.AccessFlags
	name string
}{
	{classfile.AccPublic, "public"},
	{classfile.AccPrivate, "private"},
	{classfile.AccProtected, "protected"},
	{classfile.AccStatic, "static"},
	{classfile.AccFinal, "final"},
	{classfile.AccSynchronized, "synchronized"},
	{classfile.AccNative, "native"},
	{classfile.AccAbstract, "abstract"},
	{classfile.AccStrict, "strictfp"},
	{classfile.AccInterface, "interface"},
	{classfile.AccEnum, "enum"},
}

func flagWords(flags classfile.AccessFlags, eligible ...classfile.AccessFlags) string {
	var words []string
	allowed := make(map[classfile.AccessFlags]bool, len(eligible))
	for _, bit := range eligible {
		allowed[bit] = true
	}
	for _, f := range flagOrder {
		if allowed[f.bit] && flags.Has(f.bit) {
			words = append(words, f.name)
		}
	}
	return strings.Join(words, " ")
}

var classFlagBits = []classfile.AccessFlags{
	classfile.AccPublic, classfile.AccFinal, classfile.AccInterface,
	classfile.AccAbstract, classfile.AccSynthetic, classfile.AccAnnotation, classfile.AccEnum,
}

var methodFlagBits = []classfile.AccessFlags{
	classfile.AccPublic, classfile.AccPrivate, classfile.AccProtected, classfile.AccStatic,
	classfile.AccFinal, classfile.AccSynchronized, classfile.AccNative, classfile.AccAbstract, classfile.AccStrict,
}

var fieldFlagBits = []classfile.AccessFlags{
	classfile.AccPublic, classfile.AccPrivate, classfile.AccProtected, classfile.AccStatic, classfile.AccFinal,
}

// ClassFile renders cf in a compact javap-like form: the class header,
// then each field and method with its descriptor and, for methods carrying
// a Code attribute, a disassembly of its instructions.
func ClassFile(cf *classfile.ClassFile) (string, error) {
	var b strings.Builder

	name, err := cf.ConstantPool.GetClassName(cf.ThisClass)
	if err != nil {
		return "", err
	}
	super, err := cf.ConstantPool.GetClassName(cf.SuperClass)
	if err != nil {
		return "", err
	}

	kind := "class"
	if cf.AccessFlags.Has(classfile.AccInterface) {
		kind = "interface"
	}
	words := flagWords(cf.AccessFlags, classFlagBits...)
	if words != "" {
		words += " "
	}
	fmt.Fprintf(&b, "%s%s %s extends %s\n", words, kind, name, super)
	fmt.Fprintf(&b, "  minor version: %d\n", cf.MinorVersion)
	fmt.Fprintf(&b, "  major version: %d\n", cf.MajorVersion)

	for _, field := range cf.Fields {
		if err := renderField(&b, cf, field); err != nil {
			return "", err
		}
	}
	for _, method := range cf.Methods {
		if err := renderMethod(&b, cf, method); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func renderField(b *strings.Builder, cf *classfile.ClassFile, f classfile.FieldInfo) error {
	name, err := cf.ConstantPool.GetUtf8(f.NameIndex)
	if err != nil {
		return err
	}
	desc, err := cf.ConstantPool.GetUtf8(f.DescriptorIndex)
	if err != nil {
		return err
	}
	words := flagWords(f.AccessFlags, fieldFlagBits...)
	if words != "" {
		words += " "
	}
	fmt.Fprintf(b, "\n  %s%s %s;\n", words, desc, name)
	return nil
}

func renderMethod(b *strings.Builder, cf *classfile.ClassFile, m classfile.MethodInfo) error {
	name, err := cf.ConstantPool.GetUtf8(m.NameIndex)
	if err != nil {
		return err
	}
	desc, err := cf.ConstantPool.GetUtf8(m.DescriptorIndex)
	if err != nil {
		return err
	}
	words := flagWords(m.AccessFlags, methodFlagBits...)
	if words != "" {
		words += " "
	}
	fmt.Fprintf(b, "\n  %s%s%s;\n", words, name, desc)

	for _, attr := range m.Attributes {
		code, ok := attr.(*classfile.CodeAttribute)
		if !ok {
			continue
		}
		fmt.Fprintf(b, "    Code:\n")
		fmt.Fprintf(b, "      stack=%d, locals=%d\n", code.MaxStack, code.MaxLocals)
		for _, instr := range code.Instructions {
			fmt.Fprintf(b, "      %4d: %s\n", instr.PC, disassemble(instr))
		}
	}
	return nil
}

// disassemble renders one instruction's mnemonic and operand, javap-style.
func disassemble(instr bytecode.Instruction) string {
	switch op := instr.Operand.(type) {
	case bytecode.NoOperand:
		return instr.Mnemonic
	case bytecode.U8Operand:
		return fmt.Sprintf("%-14s %d", instr.Mnemonic, op.Value)
	case bytecode.I8Operand:
		return fmt.Sprintf("%-14s %d", instr.Mnemonic, op.Value)
	case bytecode.LocalIndexOperand:
		return fmt.Sprintf("%-14s %d", instr.Mnemonic, op.Value)
	case bytecode.U16Operand:
		return fmt.Sprintf("%-14s #%d", instr.Mnemonic, op.Value)
	case bytecode.I16Operand:
		return fmt.Sprintf("%-14s %d", instr.Mnemonic, instr.PC+int(op.Value))
	case bytecode.I32Operand:
		return fmt.Sprintf("%-14s %d", instr.Mnemonic, instr.PC+int(op.Value))
	case bytecode.IincOperand:
		return fmt.Sprintf("%-14s %d, %d", instr.Mnemonic, op.Index, op.Const)
	case bytecode.NewArrayOperand:
		return fmt.Sprintf("%-14s %s", instr.Mnemonic, op.Type)
	case bytecode.MultiANewArrayOperand:
		return fmt.Sprintf("%-14s #%d, %d", instr.Mnemonic, op.Index, op.Dimensions)
	case bytecode.InvokeDynamicOperand:
		return fmt.Sprintf("%-14s #%d", instr.Mnemonic, op.Index)
	case bytecode.TableSwitchOperand:
		return fmt.Sprintf("%-14s %d to %d, default: %d", instr.Mnemonic, op.Data.Low, op.Data.High, instr.PC+int(op.Data.DefaultOffset))
	case bytecode.LookupSwitchOperand:
		return fmt.Sprintf("%-14s %d pairs, default: %d", instr.Mnemonic, len(op.Data.Pairs), instr.PC+int(op.Data.DefaultOffset))
	default:
		return instr.Mnemonic
	}
}
