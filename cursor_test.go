package smf

import (
	"errors"
	"testing"
)

func TestVariableIntRead(t *testing.T) {
	expected := []uint32{
		0x00000000,
		0x00000040,
		0x0000007F,
		0x00000080,
		0x00002000,
		0x00003FFF,
		0x00004000,
		0x00100000,
		0x001FFFFF,
		0x00200000,
		0x08000000,
		0x0FFFFFFF,
	}
	// This should contain the variable-length integers equivalent to those in
	// the "expected" slice, followed by an invalid integer that's too long,
	// and an invalid integer that hits the end of the data too soon.
	data := []byte{
		0x00,
		0x40,
		0x7F,
		0x81, 0x00,
		0xC0, 0x00,
		0xFF, 0x7F,
		0x81, 0x80, 0x00,
		0xC0, 0x80, 0x00,
		0xFF, 0xFF, 0x7F,
		0x81, 0x80, 0x80, 0x00,
		0xC0, 0x80, 0x80, 0x00,
		0xFF, 0xFF, 0xFF, 0x7F,
		0xff, 0xff, 0xff, 0x80, 0xff,
	}
	c := newCursor(data)
	for _, v := range expected {
		valueRead, e := c.readVariableInt()
		if e != nil {
			t.Logf("Failed reading variable-length int 0x%08x: %s\n", v, e)
			t.FailNow()
		}
		if valueRead != v {
			t.Logf("Read wrong value for variable-length int. Expected "+
				"0x%08x, got 0x%08x.\n", v, valueRead)
			t.FailNow()
		}
	}
	_, e := c.readVariableInt()
	if !errors.Is(e, ErrVariableLengthTooLong) {
		t.Logf("Didn't get expected error for reading an invalid int: %v\n", e)
		t.FailNow()
	}
	t.Logf("Got expected error for invalid variable-length int: %s\n", e)
	_, e = c.readVariableInt()
	if !errors.Is(e, ErrUnexpectedEndOfFile) {
		t.Logf("Didn't get expected error for an incomplete int: %v\n", e)
		t.FailNow()
	}
	t.Logf("Got expected error for incomplete int: %s\n", e)
	_, e = c.readVariableInt()
	if !errors.Is(e, ErrUnexpectedEndOfFile) {
		t.Logf("Didn't get an end-of-file error at the end of the data: "+
			"%v\n", e)
		t.FailNow()
	}
}

func TestVariableIntWrite(t *testing.T) {
	// This will basically be the TestVariableIntRead test, except in reverse.
	data := []uint32{
		0x00000000,
		0x00000040,
		0x0000007F,
		0x00000080,
		0x00002000,
		0x00003FFF,
		0x00004000,
		0x00100000,
		0x001FFFFF,
		0x00200000,
		0x08000000,
		0x0FFFFFFF,
	}
	expected := []byte{
		0x00,
		0x40,
		0x7F,
		0x81, 0x00,
		0xC0, 0x00,
		0xFF, 0x7F,
		0x81, 0x80, 0x00,
		0xC0, 0x80, 0x00,
		0xFF, 0xFF, 0x7F,
		0x81, 0x80, 0x80, 0x00,
		0xC0, 0x80, 0x80, 0x00,
		0xFF, 0xFF, 0xFF, 0x7F,
	}
	var output []byte
	var e error
	for _, v := range data {
		output, e = AppendVariableInt(output, v)
		if e != nil {
			t.Logf("Failed writing variable int 0x%08x: %s\n", v, e)
			t.FailNow()
		}
	}
	if len(output) != len(expected) {
		t.Logf("Wrote %d bytes, expected %d\n", len(output), len(expected))
		t.FailNow()
	}
	for i, b := range output {
		if b != expected[i] {
			t.Logf("Got different output byte at offset %d: wanted 0x%02x, "+
				"got 0x%02x\n", i, expected[i], b)
			t.FailNow()
		}
	}
	_, e = AppendVariableInt(nil, 0x10000000)
	if e == nil {
		t.Logf("Didn't get expected error for writing int that's too big.\n")
		t.FailNow()
	}
	t.Logf("Got expected error when writing int that's too big: %s\n", e)
}

func TestVariableIntRoundTrip(t *testing.T) {
	check := func(v uint32) {
		encoded, e := AppendVariableInt(nil, v)
		if e != nil {
			t.Fatalf("encoding 0x%08x: %s", v, e)
		}
		decoded, n, e := ReadVariableInt(encoded)
		if e != nil {
			t.Fatalf("decoding 0x%08x (% x): %s", v, encoded, e)
		}
		if (decoded != v) || (n != len(encoded)) {
			t.Fatalf("0x%08x round-tripped to 0x%08x using %d of %d bytes",
				v, decoded, n, len(encoded))
		}
	}
	// Every boundary between encoded lengths, plus a sweep of the range.
	for shift := 0; shift <= 28; shift += 7 {
		edge := uint32(1) << shift
		check(edge - 1)
		if edge <= MaxVariableInt {
			check(edge)
		}
	}
	for v := uint32(0); v <= MaxVariableInt; v += 4099 {
		check(v)
	}
	check(MaxVariableInt)
}

func TestVariableIntTooLong(t *testing.T) {
	// Five-byte encodings, which would be needed for values past 28 bits.
	tests := [][]byte{
		{0x81, 0x80, 0x80, 0x80, 0x00},
		{0xff, 0xff, 0xff, 0xff, 0x7f},
		{0x80, 0x80, 0x80, 0x80, 0x01},
	}
	for _, data := range tests {
		_, _, e := ReadVariableInt(data)
		if KindOf(e) != VariableLengthTooLong {
			t.Errorf("ReadVariableInt(% x) error = %v, want %s", data, e,
				VariableLengthTooLong.Code())
		}
	}
}

func TestCursorBounds(t *testing.T) {
	c := newCursor([]byte{0x12, 0x34, 0x56, 0x78, 0x9a})
	v32, e := c.readU32()
	if (e != nil) || (v32 != 0x12345678) {
		t.Fatalf("readU32 = 0x%08x, %v", v32, e)
	}
	if _, e = c.readU16(); !errors.Is(e, ErrUnexpectedEndOfFile) {
		t.Fatalf("readU16 past the end: got %v", e)
	}
	// A failed read must not move the cursor.
	if c.offset() != 4 {
		t.Fatalf("offset after failed read = %d, want 4", c.offset())
	}
	v8, e := c.readU8()
	if (e != nil) || (v8 != 0x9a) {
		t.Fatalf("readU8 = 0x%02x, %v", v8, e)
	}
	if _, e = c.readBytes(1); !errors.Is(e, ErrUnexpectedEndOfFile) {
		t.Fatalf("readBytes past the end: got %v", e)
	}
	if _, e = c.readBytes(-1); !errors.Is(e, ErrUnexpectedEndOfFile) {
		t.Fatalf("readBytes(-1): got %v", e)
	}
}

func TestSubCursor(t *testing.T) {
	c := newCursor([]byte{'a', 'b', 'c', 'd', 'e', 'f'})
	c.readU8()
	sub, e := c.sub(3)
	if e != nil {
		t.Fatalf("sub: %s", e)
	}
	if c.offset() != 4 {
		t.Fatalf("parent offset = %d, want 4", c.offset())
	}
	s, e := sub.readString(3)
	if (e != nil) || (s != "bcd") {
		t.Fatalf("sub.readString = %q, %v", s, e)
	}
	_, e = sub.readU8()
	var pe *ParseError
	if !errors.As(e, &pe) || (pe.Kind != UnexpectedEndOfFile) {
		t.Fatalf("reading past sub-cursor: got %v", e)
	}
	// Offsets in errors are relative to the original buffer.
	if pe.Offset != 4 {
		t.Fatalf("error offset = %d, want 4", pe.Offset)
	}
	if _, e = c.sub(3); e == nil {
		t.Fatalf("sub past the end of the parent succeeded")
	}
}
