package smf

import (
	"sort"
)

// Identifies a sounding note: the same note number on different channels is
// tracked separately.
type noteKey struct {
	note    uint8
	channel uint8
}

type activeNote struct {
	velocity uint8
	start    uint32
	// Increases with every note-on, used to close dangling notes in the order
	// they were opened.
	order int
}

type noteCloseResult int

const (
	noteClosed noteCloseResult = iota
	// There was no note-on to match.
	noteOrphan
	// The note was matched but its duration failed the sanity check.
	noteBadDuration
)

// Pairs note-ons with note-offs within a single track.
type noteAssembler struct {
	active map[noteKey]activeNote
	opened int
	notes  []NoteEvent
}

func newNoteAssembler() *noteAssembler {
	return &noteAssembler{
		active: make(map[noteKey]activeNote),
	}
}

// Starts a note. Returns true if an unmatched note-on for the same key was
// replaced; that earlier note is lost.
func (a *noteAssembler) noteOn(key noteKey, velocity uint8, now uint32) bool {
	_, superseded := a.active[key]
	a.active[key] = activeNote{
		velocity: velocity,
		start:    now,
		order:    a.opened,
	}
	a.opened++
	return superseded
}

// Ends the note for key, if one is sounding. The returned NoteEvent is valid
// for noteClosed and noteBadDuration; only noteClosed notes are kept.
func (a *noteAssembler) noteOff(key noteKey, now uint32) (NoteEvent,
	noteCloseResult) {
	n, ok := a.active[key]
	if !ok {
		return NoteEvent{}, noteOrphan
	}
	delete(a.active, key)
	return a.close(key, n, now)
}

func (a *noteAssembler) close(key noteKey, n activeNote, end uint32) (
	NoteEvent, noteCloseResult) {
	var duration uint32
	if end > n.start {
		duration = end - n.start
	}
	event := NoteEvent{
		Note:      key.note,
		Velocity:  n.velocity,
		StartTime: n.start,
		Duration:  duration,
		Channel:   key.channel,
	}
	if (duration == 0) || (duration >= MaxNoteDuration) {
		return event, noteBadDuration
	}
	a.notes = append(a.notes, event)
	return event, noteClosed
}

// Force-closes every note still sounding, using end as the note-off time,
// and returns the ones rejected by the duration check. Afterwards the
// assembler holds no active notes.
func (a *noteAssembler) closeAll(end uint32) []NoteEvent {
	keys := make([]noteKey, 0, len(a.active))
	for k := range a.active {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return a.active[keys[i]].order < a.active[keys[j]].order
	})
	var rejected []NoteEvent
	for _, k := range keys {
		event, result := a.close(k, a.active[k], end)
		if result == noteBadDuration {
			rejected = append(rejected, event)
		}
	}
	a.active = make(map[noteKey]activeNote)
	return rejected
}

// Returns the assembled notes ordered by start time. Notes starting on the
// same tick keep the order in which they were completed.
func (a *noteAssembler) sortedNotes() []NoteEvent {
	notes := a.notes
	if notes == nil {
		notes = []NoteEvent{}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].StartTime < notes[j].StartTime
	})
	return notes
}
