package smf

// This file contains the bounds-checked reader every decoding step works
// through, along with MIDI variable-length integer handling.

import (
	"encoding/binary"
	"fmt"
)

// The largest value a MIDI variable-length integer may hold.
const MaxVariableInt = 0x0fffffff

// Reads big-endian values from an immutable buffer. A cursor is owned by a
// single decode; it never reads past the end of its buffer, returning an
// UnexpectedEndOfFile error instead.
type cursor struct {
	data []byte
	pos  int
	// The offset of data[0] within the original input, so that errors from
	// sub-cursors report absolute positions.
	base int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// Returns the absolute offset of the next byte to be read.
func (c *cursor) offset() int {
	return c.base + c.pos
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// Returns an error if fewer than n bytes remain.
func (c *cursor) need(n int) error {
	if n < 0 || c.remaining() < n {
		return newParseError(UnexpectedEndOfFile, c.offset(),
			"need %d bytes, have %d", n, c.remaining())
	}
	return nil
}

func (c *cursor) readU8() (uint8, error) {
	if e := c.need(1); e != nil {
		return 0, e
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readU16() (uint16, error) {
	if e := c.need(2); e != nil {
		return 0, e
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *cursor) readU32() (uint32, error) {
	if e := c.need(4); e != nil {
		return 0, e
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// Returns the next n bytes. The returned slice aliases the input buffer and
// must not be modified.
func (c *cursor) readBytes(n int) ([]byte, error) {
	if e := c.need(n); e != nil {
		return nil, e
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// Reads n bytes as a raw string, without any character-set conversion.
func (c *cursor) readString(n int) (string, error) {
	b, e := c.readBytes(n)
	if e != nil {
		return "", e
	}
	return string(b), nil
}

// Steps back over the byte that was just read. Used when a byte read as a
// possible status turns out to be data under running status.
func (c *cursor) unreadByte() {
	if c.pos > 0 {
		c.pos--
	}
}

// Splits off the next n bytes into their own cursor and advances past them.
// Reads through the returned cursor can never reach beyond those n bytes.
func (c *cursor) sub(n int) (*cursor, error) {
	start := c.offset()
	b, e := c.readBytes(n)
	if e != nil {
		return nil, e
	}
	return &cursor{data: b, base: start}, nil
}

// Reads a MIDI-format variable int (up to 0x0fffffff). Fails with
// VariableLengthTooLong if the fourth byte still has its high bit set.
func (c *cursor) readVariableInt() (uint32, error) {
	start := c.offset()
	toReturn := uint32(0)
	for i := 0; i < 4; i++ {
		b, e := c.readU8()
		if e != nil {
			return 0, e
		}
		toReturn = (toReturn << 7) | uint32(b&0x7f)
		if (b & 0x80) == 0 {
			return toReturn, nil
		}
	}
	return 0, newParseError(VariableLengthTooLong, start,
		"highest bit not clear on byte 4")
}

// Decodes the variable-length integer at the start of b, returning its value
// and the number of bytes it occupied.
func ReadVariableInt(b []byte) (uint32, int, error) {
	c := newCursor(b)
	v, e := c.readVariableInt()
	if e != nil {
		return 0, 0, e
	}
	return v, c.pos, nil
}

// Appends the MIDI variable-length encoding of n to dst. Returns an error if n
// is larger than MaxVariableInt.
func AppendVariableInt(dst []byte, n uint32) ([]byte, error) {
	if n > MaxVariableInt {
		return dst, fmt.Errorf("integer 0x%08x is too large for a MIDI int",
			n)
	}
	// Break the number up into 7-bit chunks, lowest first, then emit them in
	// reverse with the continuation bit set on all but the last.
	var chunks [4]byte
	count := 0
	for {
		chunks[count] = byte(n & 0x7f)
		count++
		n >>= 7
		if n == 0 {
			break
		}
	}
	for i := count - 1; i >= 0; i-- {
		b := chunks[i]
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst, nil
}
