package smf

import (
	"fmt"
	"math"
)

// Notes whose duration, in ticks, isn't strictly below this are treated as
// corrupt and dropped.
const MaxNoteDuration = 100000

// The tempo every file starts with until a set-tempo event says otherwise:
// 500000 microseconds per quarter note, or 120 BPM.
const DefaultMicrosecondsPerQuarter = 500000

// Everything decoded from one SMF file. A FileInfo is never modified after
// Decode returns it.
type FileInfo struct {
	// 0, 1 or 2.
	Format     uint16 `json:"format"`
	TrackCount int    `json:"trackCount"`
	// The raw division word from the header.
	Division        TimeDivision `json:"division"`
	TicksPerQuarter uint16       `json:"ticksPerQuarter"`
	// These three timelines are ordered by time. Each starts with its default
	// at time 0 (120 BPM, 4/4 and C major), followed by the file's entries.
	TempoChanges   []TempoChange   `json:"tempoChanges"`
	TimeSignatures []TimeSignature `json:"timeSignatures"`
	KeySignatures  []KeySignature  `json:"keySignatures"`
	// Has exactly TrackCount entries.
	Tracks []Track `json:"tracks"`
	// Content problems that were recovered from during decoding.
	Warnings []Warning `json:"warnings,omitempty"`
}

type Track struct {
	Name       string `json:"name,omitempty"`
	Instrument string `json:"instrument,omitempty"`
	// Sorted by StartTime; notes starting on the same tick keep the order in
	// which they were completed.
	Notes []NoteEvent `json:"notes"`
	// Every successfully decoded event, in file order.
	Events []Event `json:"events"`
	// The absolute tick reached at the end of the track chunk.
	EndTime uint32 `json:"endTime"`
}

// A single sounded note, built from a note-on and its matching note-off.
type NoteEvent struct {
	Note      uint8  `json:"note"`
	Velocity  uint8  `json:"velocity"`
	StartTime uint32 `json:"startTime"`
	// Always in the range (0, MaxNoteDuration).
	Duration uint32 `json:"duration"`
	Channel  uint8  `json:"channel"`
}

// Returns the tick at which the note stops sounding.
func (n NoteEvent) EndTime() uint32 {
	return n.StartTime + n.Duration
}

func (n NoteEvent) String() string {
	return fmt.Sprintf("%s (ch %d, vel %d) from %d to %d",
		NoteName(n.Note), n.Channel, n.Velocity, n.StartTime, n.EndTime())
}

type TempoChange struct {
	Time                   uint32 `json:"time"`
	MicrosecondsPerQuarter uint32 `json:"microsecondsPerQuarter"`
}

// Returns the tempo rounded to whole beats per minute.
func (t TempoChange) BPM() int {
	if t.MicrosecondsPerQuarter == 0 {
		return 0
	}
	return int(math.Round(60000000.0 / float64(t.MicrosecondsPerQuarter)))
}

func (t TempoChange) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(
		`{"time":%d,"microsecondsPerQuarter":%d,"bpm":%d}`, t.Time,
		t.MicrosecondsPerQuarter, t.BPM())), nil
}

func (t TempoChange) String() string {
	return fmt.Sprintf("%d BPM (%d us/quarter) at %d", t.BPM(),
		t.MicrosecondsPerQuarter, t.Time)
}

type TimeSignature struct {
	Time      uint32 `json:"time"`
	Numerator uint8  `json:"numerator"`
	// The actual denominator, e.g. 8 for 6/8. The file stores it as a power
	// of two.
	Denominator uint32 `json:"denominator"`
	// MIDI clocks (24ths of a quarter note) per metronome click.
	ClocksPerClick              uint8 `json:"clocksPerClick"`
	ThirtySecondNotesPerQuarter uint8 `json:"thirtySecondNotesPerQuarter"`
}

func (s TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", s.Numerator, s.Denominator)
}

type KeySignature struct {
	Time uint32 `json:"time"`
	// Positive counts sharps, negative counts flats. Between -7 and 7.
	SharpsFlats int8 `json:"sharpsFlats"`
	Major       bool `json:"major"`
}

// Tonic names indexed by SharpsFlats+7.
var majorKeyNames = [15]string{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C",
	"G", "D", "A", "E", "B", "F#", "C#"}
var minorKeyNames = [15]string{"Ab", "Eb", "Bb", "F", "C", "G", "D", "A",
	"E", "B", "F#", "C#", "G#", "D#", "A#"}

func (k KeySignature) String() string {
	i := int(k.SharpsFlats) + 7
	if (i < 0) || (i >= len(majorKeyNames)) {
		return fmt.Sprintf("invalid key (%d sharps/flats)", k.SharpsFlats)
	}
	if k.Major {
		return majorKeyNames[i] + " major"
	}
	return minorKeyNames[i] + " minor"
}

// Returns the scientific pitch name of a MIDI note number, where 60 is C4.
func NoteName(n uint8) string {
	if n > 127 {
		return fmt.Sprintf("MIDI note %d", n)
	}
	notes := [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#",
		"A", "A#", "B"}
	return fmt.Sprintf("%s%d", notes[n%12], int(n)/12-1)
}
