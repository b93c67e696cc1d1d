package smf

import (
	"encoding/binary"
	"testing"
)

// Returns the bytes of an MThd chunk.
func buildHeader(format, trackCount, division uint16) []byte {
	h := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6}
	h = binary.BigEndian.AppendUint16(h, format)
	h = binary.BigEndian.AppendUint16(h, trackCount)
	h = binary.BigEndian.AppendUint16(h, division)
	return h
}

// Returns an MTrk chunk containing the given events, back to back.
func buildTrack(events ...[]byte) []byte {
	var body []byte
	for _, e := range events {
		body = append(body, e...)
	}
	t := []byte{'M', 'T', 'r', 'k'}
	t = binary.BigEndian.AppendUint32(t, uint32(len(body)))
	return append(t, body...)
}

// Returns a complete file with one chunk per track.
func buildFile(format, division uint16, tracks ...[]byte) []byte {
	f := buildHeader(format, uint16(len(tracks)), division)
	for _, t := range tracks {
		f = append(f, t...)
	}
	return f
}

// Returns a delta-time followed by the given event bytes.
func ev(delta uint32, b ...byte) []byte {
	out, e := AppendVariableInt(nil, delta)
	if e != nil {
		panic(e)
	}
	return append(out, b...)
}

func endOfTrack(delta uint32) []byte {
	return ev(delta, 0xff, 0x2f, 0)
}

// Decodes a format-0 file built from the given events, plus an end of track.
func decodeEvents(t *testing.T, events ...[]byte) *FileInfo {
	events = append(events, endOfTrack(0))
	data := buildFile(0, 480, buildTrack(events...))
	info, e := Decode(data)
	if e != nil {
		t.Logf("Failed decoding test file: %s\n", e)
		t.FailNow()
	}
	return info
}

// Returns the number of warnings of the given kind.
func countWarnings(info *FileInfo, kind WarningKind) int {
	count := 0
	for _, w := range info.Warnings {
		if w.Kind == kind {
			count++
		}
	}
	return count
}
