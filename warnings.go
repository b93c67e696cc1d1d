package smf

import (
	"fmt"
)

type WarningKind uint8

const (
	// An event couldn't be decoded; decoding resumed after it.
	BadEvent WarningKind = iota + 1
	// A channel event carried a data byte with the high bit set.
	DataOutOfRange
	// A note-on arrived for a note that was already sounding on the same
	// channel, and replaced it.
	NoteSuperseded
	// A note's duration was zero or not below MaxNoteDuration.
	BadNoteDuration
	// A tempo, time signature or key signature meta event had an unusable
	// payload.
	BadMetaEvent
)

func (k WarningKind) String() string {
	switch k {
	case BadEvent:
		return "bad-event"
	case DataOutOfRange:
		return "data-out-of-range"
	case NoteSuperseded:
		return "note-superseded"
	case BadNoteDuration:
		return "bad-note-duration"
	case BadMetaEvent:
		return "bad-meta-event"
	}
	return fmt.Sprintf("unknown warning kind %d", uint8(k))
}

func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Records a piece of content that was dropped during decoding.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Track  int         `json:"track"`
	Offset int         `json:"offset"`
	// The absolute tick in the track where the problem occurred.
	Time    uint32 `json:"time"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("track %d, offset %d, time %d: %s: %s", w.Track,
		w.Offset, w.Time, w.Kind, w.Message)
}
