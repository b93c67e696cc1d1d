package smf

import (
	"errors"
	"fmt"
	"math"
)

// The tempo, meter and key timelines shared by every track of a file.
type timelines struct {
	tempos         []TempoChange
	timeSignatures []TimeSignature
	keySignatures  []KeySignature
}

// Holds the state for decoding one MTrk chunk.
type trackDecoder struct {
	index int
	// Bounded to the chunk's data.
	c         *cursor
	opts      *decodeOptions
	timelines *timelines
	track     Track
	notes     *noteAssembler
	warnings  []Warning
	// The absolute tick of the current event. Never wraps: a delta that would
	// carry it past math.MaxUint32 ends the track.
	now uint32
	// Set once a delta-time would overflow now.
	timeOverflow bool
	// The last channel status byte seen, or 0 if none yet.
	runningStatus byte
	// The offset of the first byte of the current event's delta-time.
	eventStart int
}

// Decodes the track chunk at the cursor. Errors returned from here are
// structural and fatal; problems inside the chunk's events are recovered from
// and reported as warnings.
func decodeTrack(c *cursor, index int, opts *decodeOptions,
	tl *timelines) (Track, []Warning, error) {
	start := c.offset()
	if c.remaining() < 8 {
		return Track{}, nil, trackError(newParseError(UnexpectedEndOfFile,
			start, "track header needs 8 bytes, have %d", c.remaining()),
			index)
	}
	chunkType, e := c.readString(4)
	if e != nil {
		return Track{}, nil, trackError(e, index)
	}
	if chunkType != "MTrk" {
		return Track{}, nil, trackError(newParseError(InvalidTrackSignature,
			start, "got %q", chunkType), index)
	}
	length, e := c.readU32()
	if e != nil {
		return Track{}, nil, trackError(e, index)
	}
	if uint64(length) > uint64(c.remaining()) {
		return Track{}, nil, trackError(newParseError(UnexpectedEndOfFile,
			c.offset(), "track length %d exceeds the %d bytes remaining",
			length, c.remaining()), index)
	}
	body, e := c.sub(int(length))
	if e != nil {
		return Track{}, nil, trackError(e, index)
	}
	d := &trackDecoder{
		index:     index,
		c:         body,
		opts:      opts,
		timelines: tl,
		notes:     newNoteAssembler(),
		track: Track{
			Events: []Event{},
		},
	}
	d.run()
	return d.track, d.warnings, nil
}

// Sets the track index on a *ParseError.
func trackError(e error, index int) error {
	var pe *ParseError
	if errors.As(e, &pe) {
		pe.Track = index
	}
	return e
}

func (d *trackDecoder) run() {
	for d.c.remaining() > 0 {
		e := d.decodeEvent()
		if e == nil {
			continue
		}
		d.warn(BadEvent, "%s", e)
		if errors.Is(e, ErrUnexpectedEndOfFile) {
			// Whatever is left of the chunk can't hold a whole event.
			break
		}
		if d.timeOverflow {
			break
		}
	}
	d.track.EndTime = d.now
	for _, n := range d.notes.closeAll(d.now) {
		d.warn(BadNoteDuration, "dangling %s dropped at track end", n)
	}
	d.track.Notes = d.notes.sortedNotes()
}

// Decodes a single delta-time and event.
func (d *trackDecoder) decodeEvent() error {
	d.eventStart = d.c.offset()
	delta, e := d.c.readVariableInt()
	if e != nil {
		return e
	}
	if uint64(d.now)+uint64(delta) > math.MaxUint32 {
		d.timeOverflow = true
		return fmt.Errorf("delta-time %d at tick %d passes the largest "+
			"representable tick, dropping the rest of the track", delta, d.now)
	}
	d.now += delta
	statusOffset := d.c.offset()
	status, e := d.c.readU8()
	if e != nil {
		return e
	}
	if status < 0x80 {
		if d.runningStatus == 0 {
			return newParseError(InvalidRunningStatus, statusOffset,
				"data byte 0x%02x with no running status", status)
		}
		// The byte is the event's first data byte.
		d.c.unreadByte()
		status = d.runningStatus
	}
	switch {
	case status == 0xff:
		return d.decodeMetaEvent(delta)
	case (status == 0xf0) || (status == 0xf7):
		return d.decodeSysExEvent(status, delta)
	case status >= 0xf0:
		return newParseError(UnsupportedStatus, statusOffset,
			"status 0x%02x", status)
	}
	d.runningStatus = status
	return d.decodeChannelEvent(status, delta)
}

// Skips over a length-prefixed system exclusive message, recording it.
func (d *trackDecoder) decodeSysExEvent(status byte, delta uint32) error {
	length, e := d.c.readVariableInt()
	if e != nil {
		return e
	}
	data, e := d.c.readBytes(int(length))
	if e != nil {
		return e
	}
	d.record(Event{
		Kind:  SysExKind,
		Delta: delta,
		Data1: status,
		Data:  append([]byte{}, data...),
	})
	return nil
}

func (d *trackDecoder) record(event Event) {
	event.Time = d.now
	d.track.Events = append(d.track.Events, event)
}

// Records a recovered anomaly at the current event and logs it.
func (d *trackDecoder) warn(kind WarningKind, format string,
	args ...interface{}) {
	w := Warning{
		Kind:    kind,
		Track:   d.index,
		Offset:  d.eventStart,
		Time:    d.now,
		Message: fmt.Sprintf(format, args...),
	}
	d.warnings = append(d.warnings, w)
	d.opts.logger.Debug("dropped MIDI content", "kind", kind.String(),
		"track", w.Track, "offset", w.Offset, "time", w.Time,
		"detail", w.Message)
}
