/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import "fmt"

// Opcode is a single JVM instruction opcode byte.
type Opcode uint8

// Shape classifies how an opcode's operand bytes are laid out, driving the
// decode path in Decode. It does not appear in the decoded Instruction
// itself; Operand does.
type shape uint8

const (
	shapeNone           shape = iota // no operand
	shapeU8                          // one unsigned byte (e.g. ldc)
	shapeI8                          // one signed byte (e.g. bipush is actually signed)
	shapeLocalU8                     // one unsigned byte local-variable index
	shapeU16                         // two bytes, unsigned (pool index)
	shapeI16                         // two bytes, signed (branch offset)
	shapeI32                         // four bytes, signed (goto_w, jsr_w)
	shapeIinc                        // u8 index, i8 const (widened under `wide`: u16, i16)
	shapeWidePrefix                  // `wide`: next opcode is widened
	shapeNewArray                    // u8 array-type code
	shapeMultiANewArray              // u16 class index, u8 dimensions
	shapeInvokeDynamic               // u16 index, 2 zero bytes
	shapeInvokeInterface             // u16 index, u8 count, 1 zero byte
	shapeTableSwitch
	shapeLookupSwitch
)

type spec struct {
	mnemonic string
	shape    shape
}

// opcodeTable is the immutable static table mapping an opcode byte to its
// mnemonic and operand shape. It is shared freely across concurrent
// Decode calls and never mutated after init.
var opcodeTable = map[Opcode]spec{
	0x00: {"nop", shapeNone},
	0x01: {"aconst_null", shapeNone},
	0x02: {"iconst_m1", shapeNone},
	0x03: {"iconst_0", shapeNone},
	0x04: {"iconst_1", shapeNone},
	0x05: {"iconst_2", shapeNone},
	0x06: {"iconst_3", shapeNone},
	0x07: {"iconst_4", shapeNone},
	0x08: {"iconst_5", shapeNone},
	0x09: {"lconst_0", shapeNone},
	0x0A: {"lconst_1", shapeNone},
	0x0B: {"fconst_0", shapeNone},
	0x0C: {"fconst_1", shapeNone},
	0x0D: {"fconst_2", shapeNone},
	0x0E: {"dconst_0", shapeNone},
	0x0F: {"dconst_1", shapeNone},
	0x10: {"bipush", shapeI8},
	0x11: {"sipush", shapeI16},
	0x12: {"ldc", shapeU8},
	0x13: {"ldc_w", shapeU16},
	0x14: {"ldc2_w", shapeU16},
	0x15: {"iload", shapeLocalU8},
	0x16: {"lload", shapeLocalU8},
	0x17: {"fload", shapeLocalU8},
	0x18: {"dload", shapeLocalU8},
	0x19: {"aload", shapeLocalU8},
	0x1A: {"iload_0", shapeNone},
	0x1B: {"iload_1", shapeNone},
	0x1C: {"iload_2", shapeNone},
	0x1D: {"iload_3", shapeNone},
	0x1E: {"lload_0", shapeNone},
	0x1F: {"lload_1", shapeNone},
	0x20: {"lload_2", shapeNone},
	0x21: {"lload_3", shapeNone},
	0x22: {"fload_0", shapeNone},
	0x23: {"fload_1", shapeNone},
	0x24: {"fload_2", shapeNone},
	0x25: {"fload_3", shapeNone},
	0x26: {"dload_0", shapeNone},
	0x27: {"dload_1", shapeNone},
	0x28: {"dload_2", shapeNone},
	0x29: {"dload_3", shapeNone},
	0x2A: {"aload_0", shapeNone},
	0x2B: {"aload_1", shapeNone},
	0x2C: {"aload_2", shapeNone},
	0x2D: {"aload_3", shapeNone},
	0x2E: {"iaload", shapeNone},
	0x2F: {"laload", shapeNone},
	0x30: {"faload", shapeNone},
	0x31: {"daload", shapeNone},
	0x32: {"aaload", shapeNone},
	0x33: {"baload", shapeNone},
	0x34: {"caload", shapeNone},
	0x35: {"saload", shapeNone},
	0x36: {"istore", shapeLocalU8},
	0x37: {"lstore", shapeLocalU8},
	0x38: {"fstore", shapeLocalU8},
	0x39: {"dstore", shapeLocalU8},
	0x3A: {"astore", shapeLocalU8},
	0x3B: {"istore_0", shapeNone},
	0x3C: {"istore_1", shapeNone},
	0x3D: {"istore_2", shapeNone},
	0x3E: {"istore_3", shapeNone},
	0x3F: {"lstore_0", shapeNone},
	0x40: {"lstore_1", shapeNone},
	0x41: {"lstore_2", shapeNone},
	0x42: {"lstore_3", shapeNone},
	0x43: {"fstore_0", shapeNone},
	0x44: {"fstore_1", shapeNone},
	0x45: {"fstore_2", shapeNone},
	0x46: {"fstore_3", shapeNone},
	0x47: {"dstore_0", shapeNone},
	0x48: {"dstore_1", shapeNone},
	0x49: {"dstore_2", shapeNone},
	0x4A: {"dstore_3", shapeNone},
	0x4B: {"astore_0", shapeNone},
	0x4C: {"astore_1", shapeNone},
	0x4D: {"astore_2", shapeNone},
	0x4E: {"astore_3", shapeNone},
	0x4F: {"iastore", shapeNone},
	0x50: {"lastore", shapeNone},
	0x51: {"fastore", shapeNone},
	0x52: {"dastore", shapeNone},
	0x53: {"aastore", shapeNone},
	0x54: {"bastore", shapeNone},
	0x55: {"castore", shapeNone},
	0x56: {"sastore", shapeNone},
	0x57: {"pop", shapeNone},
	0x58: {"pop2", shapeNone},
	0x59: {"dup", shapeNone},
	0x5A: {"dup_x1", shapeNone},
	0x5B: {"dup_x2", shapeNone},
	0x5C: {"dup2", shapeNone},
	0x5D: {"dup2_x1", shapeNone},
	0x5E: {"dup2_x2", shapeNone},
	0x5F: {"swap", shapeNone},
	0x60: {"iadd", shapeNone},
	0x61: {"ladd", shapeNone},
	0x62: {"fadd", shapeNone},
	0x63: {"dadd", shapeNone},
	0x64: {"isub", shapeNone},
	0x65: {"lsub", shapeNone},
	0x66: {"fsub", shapeNone},
	0x67: {"dsub", shapeNone},
	0x68: {"imul", shapeNone},
	0x69: {"lmul", shapeNone},
	0x6A: {"fmul", shapeNone},
	0x6B: {"dmul", shapeNone},
	0x6C: {"idiv", shapeNone},
	0x6D: {"ldiv", shapeNone},
	0x6E: {"fdiv", shapeNone},
	0x6F: {"ddiv", shapeNone},
	0x70: {"irem", shapeNone},
	0x71: {"lrem", shapeNone},
	0x72: {"frem", shapeNone},
	0x73: {"drem", shapeNone},
	0x74: {"ineg", shapeNone},
	0x75: {"lneg", shapeNone},
	0x76: {"fneg", shapeNone},
	0x77: {"dneg", shapeNone},
	0x78: {"ishl", shapeNone},
	0x79: {"lshl", shapeNone},
	0x7A: {"ishr", shapeNone},
	0x7B: {"lshr", shapeNone},
	0x7C: {"iushr", shapeNone},
	0x7D: {"lushr", shapeNone},
	0x7E: {"iand", shapeNone},
	0x7F: {"land", shapeNone},
	0x80: {"ior", shapeNone},
	0x81: {"lor", shapeNone},
	0x82: {"ixor", shapeNone},
	0x83: {"lxor", shapeNone},
	0x84: {"iinc", shapeIinc},
	0x85: {"i2l", shapeNone},
	0x86: {"i2f", shapeNone},
	0x87: {"i2d", shapeNone},
	0x88: {"l2i", shapeNone},
	0x89: {"l2f", shapeNone},
	0x8A: {"l2d", shapeNone},
	0x8B: {"f2i", shapeNone},
	0x8C: {"f2l", shapeNone},
	0x8D: {"f2d", shapeNone},
	0x8E: {"d2i", shapeNone},
	0x8F: {"d2l", shapeNone},
	0x90: {"d2f", shapeNone},
	0x91: {"i2b", shapeNone},
	0x92: {"i2c", shapeNone},
	0x93: {"i2s", shapeNone},
	0x94: {"lcmp", shapeNone},
	0x95: {"fcmpl", shapeNone},
	0x96: {"fcmpg", shapeNone},
	0x97: {"dcmpl", shapeNone},
	0x98: {"dcmpg", shapeNone},
	0x99: {"ifeq", shapeI16},
	0x9A: {"ifne", shapeI16},
	0x9B: {"iflt", shapeI16},
	0x9C: {"ifge", shapeI16},
	0x9D: {"ifgt", shapeI16},
	0x9E: {"ifle", shapeI16},
	0x9F: {"if_icmpeq", shapeI16},
	0xA0: {"if_icmpne", shapeI16},
	0xA1: {"if_icmplt", shapeI16},
	0xA2: {"if_icmpge", shapeI16},
	0xA3: {"if_icmpgt", shapeI16},
	0xA4: {"if_icmple", shapeI16},
	0xA5: {"if_acmpeq", shapeI16},
	0xA6: {"if_acmpne", shapeI16},
	0xA7: {"goto", shapeI16},
	0xA8: {"jsr", shapeI16},
	0xA9: {"ret", shapeLocalU8},
	0xAA: {"tableswitch", shapeTableSwitch},
	0xAB: {"lookupswitch", shapeLookupSwitch},
	0xAC: {"ireturn", shapeNone},
	0xAD: {"lreturn", shapeNone},
	0xAE: {"freturn", shapeNone},
	0xAF: {"dreturn", shapeNone},
	0xB0: {"areturn", shapeNone},
	0xB1: {"return", shapeNone},
	0xB2: {"getstatic", shapeU16},
	0xB3: {"putstatic", shapeU16},
	0xB4: {"getfield", shapeU16},
	0xB5: {"putfield", shapeU16},
	0xB6: {"invokevirtual", shapeU16},
	0xB7: {"invokespecial", shapeU16},
	0xB8: {"invokestatic", shapeU16},
	0xB9: {"invokeinterface", shapeInvokeInterface},
	0xBA: {"invokedynamic", shapeInvokeDynamic},
	0xBB: {"new", shapeU16},
	0xBC: {"newarray", shapeNewArray},
	0xBD: {"anewarray", shapeU16},
	0xBE: {"arraylength", shapeNone},
	0xBF: {"athrow", shapeNone},
	0xC0: {"checkcast", shapeU16},
	0xC1: {"instanceof", shapeU16},
	0xC2: {"monitorenter", shapeNone},
	0xC3: {"monitorexit", shapeNone},
	0xC4: {"wide", shapeWidePrefix},
	0xC5: {"multianewarray", shapeMultiANewArray},
	0xC6: {"ifnull", shapeI16},
	0xC7: {"ifnonnull", shapeI16},
	0xC8: {"goto_w", shapeI32},
	0xC9: {"jsr_w", shapeI32},
}

// widenable is the set of opcodes that `wide` may prefix besides iinc; all
// take a single u16 local-variable index once widened.
var widenable = map[Opcode]bool{
	0x15: true, // iload
	0x16: true, // lload
	0x17: true, // fload
	0x18: true, // dload
	0x19: true, // aload
	0x36: true, // istore
	0x37: true, // lstore
	0x38: true, // fstore
	0x39: true, // dstore
	0x3A: true, // astore
	0xA9: true, // ret
}

// UnsupportedOpCodeError reports an opcode byte with no entry in
// opcodeTable.
type UnsupportedOpCodeError struct {
	Opcode uint8
	PC     int
}

func (e *UnsupportedOpCodeError) Error() string {
	return fmt.Sprintf("unsupported opcode 0x%02X at pc %d", e.Opcode, e.PC)
}
