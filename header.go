package smf

import (
	"fmt"
)

// The size of the MThd chunk, including its type and length fields.
const headerSize = 14

// This corresponds to the division field of the MThd chunk.
type TimeDivision uint16

// Returns the number of ticks per quarter note, or 0 if the time division
// doesn't specify a number of ticks per quarter note.
func (d TimeDivision) TicksPerQuarterNote() uint16 {
	if (d & 0x8000) != 0 {
		return 0
	}
	return uint16(d)
}

// Returns the SMPTE time code (indicating the frames per second) followed by
// the number of MIDI ticks per frame, in that order. Returns 0, 0 if the
// TimeDivision value specifies the number of ticks per quarter note instead.
func (d TimeDivision) SMPTETimeCode() (uint8, uint8) {
	if (d & 0x8000) == 0 {
		return 0, 0
	}
	// Since the top bit is set, the frames per second is specified as a 2's
	// complement negative 8-bit integer.
	fps := uint8(-int8(d >> 8))
	ticksPerFrame := uint8(d & 0xff)
	return fps, ticksPerFrame
}

func (d TimeDivision) String() string {
	if (d & 0x7fff) == 0 {
		return fmt.Sprintf("Invalid TimeDivision value: 0x%04x", uint16(d))
	}
	qnTicks := d.TicksPerQuarterNote()
	if qnTicks != 0 {
		return fmt.Sprintf("%d ticks per quarter note", qnTicks)
	}
	fps, ticksPerFrame := d.SMPTETimeCode()
	return fmt.Sprintf("%d frames per second, %d ticks per frame", fps,
		ticksPerFrame)
}

// The validated contents of an MThd chunk.
type header struct {
	format     uint16
	trackCount uint16
	division   TimeDivision
}

// Decodes and validates the header chunk at the start of the file.
func decodeHeader(c *cursor) (header, error) {
	var h header
	if c.remaining() < headerSize {
		return h, newParseError(FileTooSmall, 0, "got %d bytes, need at "+
			"least %d", c.remaining(), headerSize)
	}
	start := c.offset()
	chunkType, e := c.readString(4)
	if e != nil {
		return h, e
	}
	if chunkType != "MThd" {
		return h, newParseError(InvalidSignature, start, "got %q", chunkType)
	}
	lengthOffset := c.offset()
	length, e := c.readU32()
	if e != nil {
		return h, e
	}
	if length != 6 {
		return h, newParseError(InvalidHeaderLength, lengthOffset,
			"got %d, expected 6", length)
	}
	formatOffset := c.offset()
	h.format, e = c.readU16()
	if e != nil {
		return h, e
	}
	if h.format > 2 {
		return h, newParseError(UnsupportedFormat, formatOffset,
			"format %d", h.format)
	}
	countOffset := c.offset()
	h.trackCount, e = c.readU16()
	if e != nil {
		return h, e
	}
	if h.trackCount == 0 {
		return h, newParseError(NoTracks, countOffset, "")
	}
	divisionOffset := c.offset()
	division, e := c.readU16()
	if e != nil {
		return h, e
	}
	h.division = TimeDivision(division)
	// SMPTE divisions don't define ticks per quarter note, so they are
	// rejected along with a zero division.
	if h.division.TicksPerQuarterNote() == 0 {
		return h, newParseError(InvalidTicksPerQuarter, divisionOffset,
			"%s", h.division)
	}
	return h, nil
}
