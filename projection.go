package smf

// This file contains functions that turn a decoded file into the simplified
// sequences used for display and playback previews.

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// The most notes a projected melody will contain.
const MaxMelodyLength = 32

// The number of parts ToParts produces when given a non-positive limit.
const DefaultMaxParts = 8

// One track reduced to a bounded melody and a parallel rhythm.
type Part struct {
	// The index of the source track in FileInfo.Tracks.
	Track int    `json:"track"`
	Name  string `json:"name,omitempty"`
	// Note numbers in start-time order.
	Melody []uint8 `json:"melody"`
	// Rhythm[i] is the length of Melody[i] in sixteenth notes, at least 1.
	Rhythm []int `json:"rhythm"`
}

// Returns up to MaxMelodyLength notes of the track, ordered by start time.
func firstNotes(t *Track) []NoteEvent {
	notes := append([]NoteEvent{}, t.Notes...)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].StartTime < notes[j].StartTime
	})
	if len(notes) > MaxMelodyLength {
		notes = notes[:MaxMelodyLength]
	}
	return notes
}

// Returns the note numbers of the first MaxMelodyLength notes of the given
// track. Fails with TrackIndexOutOfRange if there's no such track.
func ToMelody(info *FileInfo, trackIndex int) ([]uint8, error) {
	if (trackIndex < 0) || (trackIndex >= len(info.Tracks)) {
		return nil, newParseError(TrackIndexOutOfRange, -1,
			"index %d, file has %d tracks", trackIndex, len(info.Tracks))
	}
	notes := firstNotes(&info.Tracks[trackIndex])
	melody := make([]uint8, len(notes))
	for i, n := range notes {
		melody[i] = n.Note
	}
	return melody, nil
}

// Converts a duration in ticks to whole sixteenth notes, never less than 1.
func sixteenths(duration uint32, ticksPerQuarter uint16) int {
	if ticksPerQuarter == 0 {
		return 1
	}
	units := int(math.Round(float64(duration) / float64(ticksPerQuarter) *
		4))
	if units < 1 {
		return 1
	}
	return units
}

// Returns a Part for each of the first maxTracks tracks that contain notes.
// A maxTracks of 0 or less means DefaultMaxParts.
func ToParts(info *FileInfo, maxTracks int) []Part {
	if maxTracks <= 0 {
		maxTracks = DefaultMaxParts
	}
	parts := []Part{}
	for i := range info.Tracks {
		if len(parts) >= maxTracks {
			break
		}
		t := &info.Tracks[i]
		if len(t.Notes) == 0 {
			continue
		}
		notes := firstNotes(t)
		p := Part{
			Track:  i,
			Name:   t.Name,
			Melody: make([]uint8, len(notes)),
			Rhythm: make([]int, len(notes)),
		}
		for j, n := range notes {
			p.Melody[j] = n.Note
			p.Rhythm[j] = sixteenths(n.Duration, info.TicksPerQuarter)
		}
		parts = append(parts, p)
	}
	return parts
}

// Returns the lowest and highest note numbers in the track. ok is false if
// the track has no notes.
func noteRange(t *Track) (low, high uint8, ok bool) {
	if len(t.Notes) == 0 {
		return 0, 0, false
	}
	low, high = 127, 0
	for _, n := range t.Notes {
		if n.Note < low {
			low = n.Note
		}
		if n.Note > high {
			high = n.Note
		}
	}
	return low, high, true
}

// Returns a human-readable, multi-line description of the file. The output
// only depends on the contents of info.
func Summarize(info *FileInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Format: %d\n", info.Format)
	fmt.Fprintf(&b, "Tracks: %d\n", info.TrackCount)
	fmt.Fprintf(&b, "Ticks per quarter note: %d\n", info.TicksPerQuarter)
	if len(info.TempoChanges) == 1 {
		fmt.Fprintf(&b, "Tempo: %d BPM\n", info.StartTempo().BPM())
	} else {
		fmt.Fprintf(&b, "Tempo: %d tempo changes\n", len(info.TempoChanges))
	}
	if len(info.TimeSignatures) > 0 {
		fmt.Fprintf(&b, "Time signature: %s\n", info.StartTimeSignature())
	}
	if len(info.KeySignatures) > 0 {
		fmt.Fprintf(&b, "Key signature: %s\n", info.StartKeySignature())
	}
	if len(info.Warnings) > 0 {
		fmt.Fprintf(&b, "Warnings: %d\n", len(info.Warnings))
	}
	for i := range info.Tracks {
		t := &info.Tracks[i]
		name := t.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "Track %d: %s", i, name)
		if t.Instrument != "" {
			fmt.Fprintf(&b, " [%s]", t.Instrument)
		}
		fmt.Fprintf(&b, ", %d notes", len(t.Notes))
		if low, high, ok := noteRange(t); ok {
			fmt.Fprintf(&b, " (%s-%s)", NoteName(low), NoteName(high))
		}
		b.WriteString("\n")
	}
	return b.String()
}
