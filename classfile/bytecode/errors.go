/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package bytecode

import "fmt"

// InvalidWideTargetError reports a `wide` prefix followed by an opcode that
// cannot be widened.
type InvalidWideTargetError struct {
	Opcode uint8
	PC     int
}

func (e *InvalidWideTargetError) Error() string {
	return fmt.Sprintf("opcode 0x%02X at pc %d cannot follow wide", e.Opcode, e.PC)
}

// TableSwitchRangeError reports a tableswitch whose low bound exceeds its
// high bound.
type TableSwitchRangeError struct {
	PC       int
	Low      int32
	High     int32
}

func (e *TableSwitchRangeError) Error() string {
	return fmt.Sprintf("tableswitch at pc %d has low(%d) > high(%d)", e.PC, e.Low, e.High)
}

// LookupSwitchOrderError reports a lookupswitch whose match values are not
// strictly increasing.
type LookupSwitchOrderError struct {
	PC       int
	Previous int32
	Match    int32
}

func (e *LookupSwitchOrderError) Error() string {
	return fmt.Sprintf("lookupswitch at pc %d: match %d does not strictly increase from %d", e.PC, e.Match, e.Previous)
}

// NegativePairCountError reports a lookupswitch with a negative npairs.
type NegativePairCountError struct {
	PC    int
	Count int32
}

func (e *NegativePairCountError) Error() string {
	return fmt.Sprintf("lookupswitch at pc %d has negative npairs %d", e.PC, e.Count)
}
