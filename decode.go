// Package smf decodes Standard MIDI Files into tempo, meter, key and note
// timelines, and projects the result into simplified melody and multi-part
// sequences. The smf_tool and instrument_stats directories contain
// command-line tools built on the library.
//
// Decoding is strict about the file's structure and lenient about its
// content: a bad header or track chunk fails the whole decode, while bad
// events inside a track are dropped and reported in FileInfo.Warnings.
package smf

import (
	"fmt"
	"io"
	"sort"
)

// Decodes a complete SMF file held in data. On error, no FileInfo is
// returned and the error is a *ParseError. The returned FileInfo doesn't
// reference data, so data may be reused afterwards.
func Decode(data []byte, opts ...Option) (*FileInfo, error) {
	o := newDecodeOptions(opts)
	c := newCursor(data)
	h, e := decodeHeader(c)
	if e != nil {
		return nil, e
	}
	info := &FileInfo{
		Format:          h.format,
		TrackCount:      int(h.trackCount),
		Division:        h.division,
		TicksPerQuarter: h.division.TicksPerQuarterNote(),
		Tracks:          make([]Track, 0, h.trackCount),
	}
	tl := &timelines{}
	for i := 0; i < info.TrackCount; i++ {
		track, warnings, e := decodeTrack(c, i, o, tl)
		if e != nil {
			return nil, e
		}
		info.Tracks = append(info.Tracks, track)
		info.Warnings = append(info.Warnings, warnings...)
	}
	if c.remaining() > 0 {
		o.logger.Debug("ignoring data after the last track",
			"offset", c.offset(), "bytes", c.remaining())
	}
	info.TempoChanges, info.TimeSignatures, info.KeySignatures = tl.finish()
	o.logger.Debug("decoded MIDI file", "format", info.Format,
		"tracks", info.TrackCount, "ticks_per_quarter", info.TicksPerQuarter,
		"warnings", len(info.Warnings))
	return info, nil
}

// Reads r to EOF, then decodes the contents with Decode.
func DecodeReader(r io.Reader, opts ...Option) (*FileInfo, error) {
	data, e := io.ReadAll(r)
	if e != nil {
		return nil, fmt.Errorf("Failed reading SMF data: %w", e)
	}
	return Decode(data, opts...)
}

// Returns the timelines, each starting with its default at tick 0 and then
// the file's entries ordered by time. A file entry at tick 0 follows the
// default and takes effect from the start.
func (tl *timelines) finish() ([]TempoChange, []TimeSignature,
	[]KeySignature) {
	tempos := append([]TempoChange{{
		MicrosecondsPerQuarter: DefaultMicrosecondsPerQuarter,
	}}, tl.tempos...)
	sort.SliceStable(tempos, func(i, j int) bool {
		return tempos[i].Time < tempos[j].Time
	})

	timeSignatures := append([]TimeSignature{{
		Numerator:                   4,
		Denominator:                 4,
		ClocksPerClick:              24,
		ThirtySecondNotesPerQuarter: 8,
	}}, tl.timeSignatures...)
	sort.SliceStable(timeSignatures, func(i, j int) bool {
		return timeSignatures[i].Time < timeSignatures[j].Time
	})

	keySignatures := append([]KeySignature{{Major: true}},
		tl.keySignatures...)
	sort.SliceStable(keySignatures, func(i, j int) bool {
		return keySignatures[i].Time < keySignatures[j].Time
	})
	return tempos, timeSignatures, keySignatures
}

// Returns the tempo in effect at tick 0: the last tempo change at that tick.
func (info *FileInfo) StartTempo() TempoChange {
	var t TempoChange
	for _, c := range info.TempoChanges {
		if c.Time != 0 {
			break
		}
		t = c
	}
	return t
}

func (info *FileInfo) StartTimeSignature() TimeSignature {
	var s TimeSignature
	for _, c := range info.TimeSignatures {
		if c.Time != 0 {
			break
		}
		s = c
	}
	return s
}

func (info *FileInfo) StartKeySignature() KeySignature {
	var k KeySignature
	for _, c := range info.KeySignatures {
		if c.Time != 0 {
			break
		}
		k = c
	}
	return k
}
