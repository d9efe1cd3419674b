/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package cursor provides a big-endian byte-slice reader with precise
// offsets and EOF errors, used by the class-file decoder and the bytecode
// decoder to walk binary data without copying it.
package cursor

import (
	"fmt"
	"math"
)

// Error is returned when a read runs past the end of the underlying slice.
type Error struct {
	Op       string // which read was attempted, e.g. "u16", "bytes(4)"
	Position int    // cursor position when the read was attempted
	Len      int    // length of the underlying data
	Wanted   int    // number of bytes the read needed
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected EOF: %s at position %d (len=%d, wanted %d bytes)",
		e.Op, e.Position, e.Len, e.Wanted)
}

// Cursor reads big-endian primitives from an immutable byte slice, advancing
// its position on every successful read. It never copies the underlying
// slice; Bytes returns a borrowed sub-slice.
type Cursor struct {
	data []byte
	pos  int
}

// New wraps data for sequential big-endian reads starting at position 0.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Position returns the current byte offset into the underlying data.
func (c *Cursor) Position() int { return c.pos }

// SetPosition moves the cursor to an absolute offset. It does not validate
// the offset against the slice length; the next read will fail if it does.
func (c *Cursor) SetPosition(n int) { c.pos = n }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

func (c *Cursor) need(op string, n int) error {
	if c.pos+n > len(c.data) {
		return &Error{Op: op, Position: c.pos, Len: len(c.data), Wanted: n}
	}
	return nil
}

// U8 reads one unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need("u8", 1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// U16 reads a big-endian unsigned 16-bit integer.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need("u16", 2); err != nil {
		return 0, err
	}
	v := uint16(c.data[c.pos])<<8 | uint16(c.data[c.pos+1])
	c.pos += 2
	return v, nil
}

// U32 reads a big-endian unsigned 32-bit integer.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need("u32", 4); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos])<<24 | uint32(c.data[c.pos+1])<<16 |
		uint32(c.data[c.pos+2])<<8 | uint32(c.data[c.pos+3])
	c.pos += 4
	return v, nil
}

// I32 reads a big-endian signed 32-bit integer.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// I64 reads a big-endian signed 64-bit integer.
func (c *Cursor) I64() (int64, error) {
	if err := c.need("i64", 8); err != nil {
		return 0, err
	}
	hi := uint64(c.data[c.pos])<<24 | uint64(c.data[c.pos+1])<<16 |
		uint64(c.data[c.pos+2])<<8 | uint64(c.data[c.pos+3])
	lo := uint64(c.data[c.pos+4])<<24 | uint64(c.data[c.pos+5])<<16 |
		uint64(c.data[c.pos+6])<<8 | uint64(c.data[c.pos+7])
	c.pos += 8
	return int64(hi<<32 | lo), nil
}

// F32 reads an IEEE-754 big-endian 32-bit float.
func (c *Cursor) F32() (float32, error) {
	v, err := c.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64 reads an IEEE-754 big-endian 64-bit float.
func (c *Cursor) F64() (float64, error) {
	v, err := c.I64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// Bytes returns a borrowed sub-slice of the next n bytes and advances past
// them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &Error{Op: "bytes(negative)", Position: c.pos, Len: len(c.data), Wanted: n}
	}
	if err := c.need(fmt.Sprintf("bytes(%d)", n), n); err != nil {
		return nil, err
	}
	v := c.data[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// Skip advances the cursor by n bytes without returning them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(fmt.Sprintf("skip(%d)", n), n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// AlignTo advances the cursor to the next offset, relative to base, that is
// a multiple of k. Used for tableswitch/lookupswitch padding, where base is
// the start of the code array (0), not the instruction's pc — switch
// padding aligns to the method's code array, independent of where within it
// the instruction happens to sit.
func (c *Cursor) AlignTo(k int, base int) error {
	rel := c.pos - base
	pad := (k - rel%k) % k
	if pad == 0 {
		return nil
	}
	return c.Skip(pad)
}
