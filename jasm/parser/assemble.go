/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package parser

import (
	"fmt"

	"github.com/obito-git/lagertha/classfile"
	"github.com/obito-git/lagertha/classfile/bytecode"
	"github.com/obito-git/lagertha/classfile/cpool"
)

// defaultMajorVersion/defaultMinorVersion are the class-file format version
// an assembled class declares; chosen to match a widely-supported JVM
// release rather than the very latest one.
const (
	defaultMajorVersion uint16 = 52
	defaultMinorVersion uint16 = 0
)

// mnemonicOpcodes maps each mnemonic this package's grammar recognises to
// its JVM opcode byte, the other half of instructionArgs: one table drives
// parsing argument shapes, this one drives encoding them back to bytes.
var mnemonicOpcodes = map[string]byte{
	"aload_0": 0x2A,
	"aload":   0x19,
	"return":  0xB1,
	"ireturn": 0xAC,
	"areturn": 0xB0,

	"getstatic": 0xB2,
	"putstatic": 0xB3,
	"getfield":  0xB4,
	"putfield":  0xB5,

	"invokespecial": 0xB7,
	"invokevirtual": 0xB6,
	"invokestatic":  0xB8,

	"new": 0xBB,
	"ldc": 0x12,

	"iconst_0": 0x03,
	"iconst_1": 0x04,
	"iconst_2": 0x05,
	"iconst_3": 0x06,
	"iconst_4": 0x07,
	"iconst_5": 0x08,

	"bipush": 0x10,
}

// UnassemblableInstructionError reports a mnemonic accepted by the grammar
// (it has an instructionArgs entry) but missing from mnemonicOpcodes — an
// internal inconsistency between the two tables, not a user input error.
type UnassemblableInstructionError struct{ Mnemonic string }

func (e *UnassemblableInstructionError) Error() string {
	return fmt.Sprintf("internal error: no opcode registered for mnemonic %q", e.Mnemonic)
}

// Assemble resolves a parsed File against a fresh constant pool, producing
// the ClassFile it describes: every class/method/field name and descriptor
// an instruction references is interned, and each instruction is encoded
// to its opcode bytes and paired with a decoded bytecode.Instruction the
// way classfile.Decode would have produced it from the resulting Code
// attribute.
func Assemble(f *File) (*classfile.ClassFile, error) {
	b := cpool.NewBuilder()
	class := f.Class

	thisClassIdx := b.AddClass(b.AddUtf8(class.Name))

	super := class.Super
	if super == "" {
		super = "java/lang/Object"
	}
	superClassIdx := b.AddClass(b.AddUtf8(super))

	methods := make([]classfile.MethodInfo, 0, len(class.Methods))
	for _, m := range class.Methods {
		method, err := assembleMethod(b, m)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	return &classfile.ClassFile{
		MinorVersion: defaultMinorVersion,
		MajorVersion: defaultMajorVersion,
		ConstantPool: b.Build(),
		AccessFlags:  classfile.AccessFlags(class.AccessFlags),
		ThisClass:    thisClassIdx,
		SuperClass:   superClassIdx,
		Methods:      methods,
	}, nil
}

func assembleMethod(b *cpool.Builder, m Method) (classfile.MethodInfo, error) {
	nameIdx := b.AddUtf8(m.Name)
	descIdx := b.AddUtf8(m.DescriptorRaw)

	code, instrs, err := assembleCode(b, m.Code.Instructions)
	if err != nil {
		return classfile.MethodInfo{}, err
	}

	return classfile.MethodInfo{
		AccessFlags:     classfile.AccessFlags(m.AccessFlags),
		NameIndex:       nameIdx,
		DescriptorIndex: descIdx,
		Attributes: []classfile.MethodAttribute{
			&classfile.CodeAttribute{
				MaxStack:     uint16(m.Code.MaxStack),
				MaxLocals:    uint16(m.Code.MaxLocals),
				Code:         code,
				Instructions: instrs,
			},
		},
	}, nil
}

// assembleCode encodes ins to its raw Code bytes and, in the same pass,
// builds the decoded bytecode.Instruction list that would result from
// running classfile/bytecode.Decode over those bytes — so an assembled
// method's Instructions field matches decode output exactly rather than
// diverging from it.
func assembleCode(b *cpool.Builder, ins []Instruction) ([]byte, []bytecode.Instruction, error) {
	var code []byte
	decoded := make([]bytecode.Instruction, 0, len(ins))

	for _, instr := range ins {
		opByte, ok := mnemonicOpcodes[instr.Mnemonic]
		if !ok {
			return nil, nil, &UnassemblableInstructionError{Mnemonic: instr.Mnemonic}
		}
		pc := len(code)
		op := bytecode.Opcode(opByte)
		code = append(code, opByte)

		var operand bytecode.Operand = bytecode.NoOperand{}

		switch instr.Mnemonic {
		case "aload":
			idx := uint16(instr.Args[0].Int)
			code = append(code, byte(idx))
			operand = bytecode.LocalIndexOperand{Value: idx}

		case "bipush":
			v := int8(instr.Args[0].Int)
			code = append(code, byte(v))
			operand = bytecode.I8Operand{Value: v}

		case "ldc":
			idx := b.AddString(b.AddUtf8(instr.Args[0].Text))
			code = append(code, byte(idx))
			operand = bytecode.U8Operand{Value: uint8(idx)}

		case "getstatic", "putstatic", "getfield", "putfield":
			classIdx := b.AddClass(b.AddUtf8(instr.Args[0].Text))
			natIdx := b.AddNameAndType(b.AddUtf8(instr.Args[1].Text), b.AddUtf8(instr.Args[2].Text))
			idx := b.AddFieldRef(classIdx, natIdx)
			code = append(code, byte(idx>>8), byte(idx))
			operand = bytecode.U16Operand{Value: idx}

		case "invokespecial", "invokevirtual", "invokestatic":
			classIdx := b.AddClass(b.AddUtf8(instr.Args[0].Text))
			natIdx := b.AddNameAndType(b.AddUtf8(instr.Args[1].Text), b.AddUtf8(instr.Args[2].Text))
			idx := b.AddMethodRef(classIdx, natIdx)
			code = append(code, byte(idx>>8), byte(idx))
			operand = bytecode.U16Operand{Value: idx}

		case "new":
			idx := b.AddClass(b.AddUtf8(instr.Args[0].Text))
			code = append(code, byte(idx>>8), byte(idx))
			operand = bytecode.U16Operand{Value: idx}
		}

		decoded = append(decoded, bytecode.Instruction{
			PC: pc, Opcode: op, Mnemonic: instr.Mnemonic, Operand: operand,
		})
	}

	return code, decoded, nil
}
