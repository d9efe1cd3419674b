/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package bytecode decodes a method's Code attribute body — a flat byte
// array — into a program-counter-indexed list of Instructions.
package bytecode

import (
	"github.com/obito-git/lagertha/cursor"
)

// Decode reads code (sized exactly to code_length) into an ordered list of
// instructions with their program-counter offsets. base is the absolute pc
// at which code[0] sits; it is 0 for a code attribute's own bytecode, and is
// added into each Instruction's reported PC. tableswitch/lookupswitch
// padding is always computed relative to the start of code (offset 0), per
// the JVM specification's "padding aligns to the start of the code array"
// rule, never relative to base.
func Decode(code []byte, base int) ([]Instruction, error) {
	c := cursor.New(code)
	var out []Instruction
	for c.Remaining() > 0 {
		pc := c.Position()
		opByte, err := c.U8()
		if err != nil {
			return nil, err
		}
		op := Opcode(opByte)
		sp, ok := opcodeTable[op]
		if !ok {
			return nil, &UnsupportedOpCodeError{Opcode: opByte, PC: base + pc}
		}
		instr, err := decodeOperand(c, base, pc, op, sp)
		if err != nil {
			return nil, err
		}
		out = append(out, instr)
	}
	return out, nil
}

func decodeOperand(c *cursor.Cursor, base, pc int, op Opcode, sp spec) (Instruction, error) {
	mk := func(mnem string, o Operand) Instruction {
		return Instruction{PC: base + pc, Opcode: op, Mnemonic: mnem, Operand: o}
	}

	switch sp.shape {
	case shapeNone:
		return mk(sp.mnemonic, NoOperand{}), nil

	case shapeU8:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, U8Operand{Value: v}), nil

	case shapeI8:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, I8Operand{Value: int8(v)}), nil

	case shapeLocalU8:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, LocalIndexOperand{Value: uint16(v)}), nil

	case shapeU16:
		v, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, U16Operand{Value: v}), nil

	case shapeI16:
		v, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, I16Operand{Value: int16(v)}), nil

	case shapeI32:
		v, err := c.I32()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, I32Operand{Value: v}), nil

	case shapeIinc:
		idx, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		delta, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, IincOperand{Index: uint16(idx), Const: int16(int8(delta))}), nil

	case shapeWidePrefix:
		return decodeWide(c, base, pc)

	case shapeNewArray:
		code, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		at, err := ParseArrayType(code)
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, NewArrayOperand{Type: at}), nil

	case shapeMultiANewArray:
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		dims, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, MultiANewArrayOperand{Index: idx, Dimensions: dims}), nil

	case shapeInvokeDynamic:
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		if err := c.Skip(2); err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, InvokeDynamicOperand{Index: idx}), nil

	case shapeInvokeInterface:
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		count, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		if err := c.Skip(1); err != nil {
			return Instruction{}, err
		}
		return mk(sp.mnemonic, InvokeInterfaceOperand{Index: idx, Count: count}), nil

	case shapeTableSwitch:
		return decodeTableSwitch(c, base, pc, op)

	case shapeLookupSwitch:
		return decodeLookupSwitch(c, base, pc, op)

	default:
		return mk(sp.mnemonic, NoOperand{}), nil
	}
}

func decodeWide(c *cursor.Cursor, base, pc int) (Instruction, error) {
	nextByte, err := c.U8()
	if err != nil {
		return Instruction{}, err
	}
	next := Opcode(nextByte)

	if next == 0x84 { // iinc
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		delta, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{
			PC: base + pc, Opcode: next, Mnemonic: "iinc",
			Operand: IincOperand{Index: idx, Const: int16(delta), Wide: true},
		}, nil
	}

	if !widenable[next] {
		return Instruction{}, &InvalidWideTargetError{Opcode: nextByte, PC: base + pc}
	}
	idx, err := c.U16()
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		PC: base + pc, Opcode: next, Mnemonic: opcodeTable[next].mnemonic,
		Operand: LocalIndexOperand{Value: idx, Wide: true},
	}, nil
}

func decodeTableSwitch(c *cursor.Cursor, base, pc int, op Opcode) (Instruction, error) {
	beforePad := c.Position()
	if err := c.AlignTo(4, 0); err != nil {
		return Instruction{}, err
	}
	padding := c.Position() - beforePad

	def, err := c.I32()
	if err != nil {
		return Instruction{}, err
	}
	low, err := c.I32()
	if err != nil {
		return Instruction{}, err
	}
	high, err := c.I32()
	if err != nil {
		return Instruction{}, err
	}
	if low > high {
		return Instruction{}, &TableSwitchRangeError{PC: base + pc, Low: low, High: high}
	}
	n := int(high-low) + 1
	offsets := make([]int32, n)
	for i := 0; i < n; i++ {
		offsets[i], err = c.I32()
		if err != nil {
			return Instruction{}, err
		}
	}
	return Instruction{
		PC: base + pc, Opcode: op, Mnemonic: "tableswitch",
		Operand: TableSwitchOperand{Data: TableSwitchData{
			Padding: padding, DefaultOffset: def, Low: low, High: high, Offsets: offsets,
		}},
	}, nil
}

func decodeLookupSwitch(c *cursor.Cursor, base, pc int, op Opcode) (Instruction, error) {
	beforePad := c.Position()
	if err := c.AlignTo(4, 0); err != nil {
		return Instruction{}, err
	}
	padding := c.Position() - beforePad

	def, err := c.I32()
	if err != nil {
		return Instruction{}, err
	}
	npairs, err := c.I32()
	if err != nil {
		return Instruction{}, err
	}
	if npairs < 0 {
		return Instruction{}, &NegativePairCountError{PC: base + pc, Count: npairs}
	}
	pairs := make([]LookupPair, npairs)
	var prev int32
	hasPrev := false
	for i := int32(0); i < npairs; i++ {
		match, err := c.I32()
		if err != nil {
			return Instruction{}, err
		}
		if hasPrev && match <= prev {
			return Instruction{}, &LookupSwitchOrderError{PC: base + pc, Previous: prev, Match: match}
		}
		offset, err := c.I32()
		if err != nil {
			return Instruction{}, err
		}
		pairs[i] = LookupPair{Match: match, Offset: offset}
		prev = match
		hasPrev = true
	}
	return Instruction{
		PC: base + pc, Opcode: op, Mnemonic: "lookupswitch",
		Operand: LookupSwitchOperand{Data: LookupSwitchData{
			Padding: padding, DefaultOffset: def, Pairs: pairs,
		}},
	}, nil
}
