/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import "fmt"

// ArrayType is the element-type operand of newarray.
//
// https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-6.html#jvms-6.5.newarray
type ArrayType uint8

const (
	ArrayBoolean ArrayType = 4
	ArrayChar    ArrayType = 5
	ArrayFloat   ArrayType = 6
	ArrayDouble  ArrayType = 7
	ArrayByte    ArrayType = 8
	ArrayShort   ArrayType = 9
	ArrayInt     ArrayType = 10
	ArrayLong    ArrayType = 11
)

// UnknownArrayTypeError reports a newarray element-type byte outside 4..=11.
type UnknownArrayTypeError struct{ Code uint8 }

func (e *UnknownArrayTypeError) Error() string {
	return fmt.Sprintf("unknown newarray element type %d", e.Code)
}

// ParseArrayType validates code as a newarray element-type byte.
func ParseArrayType(code uint8) (ArrayType, error) {
	t := ArrayType(code)
	if t < ArrayBoolean || t > ArrayLong {
		return 0, &UnknownArrayTypeError{Code: code}
	}
	return t, nil
}

// ByteSize returns the size in bytes of one array element of this type.
func (t ArrayType) ByteSize() int {
	switch t {
	case ArrayBoolean, ArrayByte:
		return 1
	case ArrayChar, ArrayShort:
		return 2
	case ArrayFloat, ArrayInt:
		return 4
	case ArrayDouble, ArrayLong:
		return 8
	default:
		return 0
	}
}

// Descriptor returns the JVM field-descriptor character sequence for an
// array of this element type, e.g. "[Z" for boolean.
func (t ArrayType) Descriptor() string {
	switch t {
	case ArrayBoolean:
		return "[Z"
	case ArrayChar:
		return "[C"
	case ArrayFloat:
		return "[F"
	case ArrayDouble:
		return "[D"
	case ArrayByte:
		return "[B"
	case ArrayShort:
		return "[S"
	case ArrayInt:
		return "[I"
	case ArrayLong:
		return "[J"
	default:
		return "[?"
	}
}

func (t ArrayType) String() string {
	switch t {
	case ArrayBoolean:
		return "boolean"
	case ArrayChar:
		return "char"
	case ArrayFloat:
		return "float"
	case ArrayDouble:
		return "double"
	case ArrayByte:
		return "byte"
	case ArrayShort:
		return "short"
	case ArrayInt:
		return "int"
	case ArrayLong:
		return "long"
	default:
		return fmt.Sprintf("ArrayType(%d)", uint8(t))
	}
}
