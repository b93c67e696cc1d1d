package smf

import (
	"fmt"
)

type EventKind uint8

const (
	NoteOffKind EventKind = iota + 1
	NoteOnKind
	// Also known as polyphonic key pressure.
	PolyAftertouchKind
	ControlChangeKind
	ProgramChangeKind
	// Also known as channel pressure.
	ChannelAftertouchKind
	PitchBendKind
	SysExKind
	MetaKind
)

func (k EventKind) String() string {
	switch k {
	case NoteOffKind:
		return "note-off"
	case NoteOnKind:
		return "note-on"
	case PolyAftertouchKind:
		return "poly-aftertouch"
	case ControlChangeKind:
		return "control-change"
	case ProgramChangeKind:
		return "program-change"
	case ChannelAftertouchKind:
		return "channel-aftertouch"
	case PitchBendKind:
		return "pitch-bend"
	case SysExKind:
		return "sysex"
	case MetaKind:
		return "meta"
	}
	return fmt.Sprintf("unknown event kind %d", uint8(k))
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Meta event types understood by the decoder. Other types are still recorded
// in the raw event log.
const (
	MetaSequenceNumber uint8 = 0x00
	MetaText           uint8 = 0x01
	MetaCopyright      uint8 = 0x02
	MetaTrackName      uint8 = 0x03
	MetaInstrumentName uint8 = 0x04
	MetaLyric          uint8 = 0x05
	MetaMarker         uint8 = 0x06
	MetaCuePoint       uint8 = 0x07
	MetaChannelPrefix  uint8 = 0x20
	MetaEndOfTrack     uint8 = 0x2f
	MetaTempo          uint8 = 0x51
	MetaSMPTEOffset    uint8 = 0x54
	MetaTimeSignature  uint8 = 0x58
	MetaKeySignature   uint8 = 0x59
	MetaSequencer      uint8 = 0x7f
)

// One decoded event from a track, kept in file order. Which fields are
// meaningful depends on Kind:
//   - channel events use Channel, Data1 and (for two-byte events) Data2;
//   - meta events use MetaType and Data;
//   - sysex events use Data, with Data1 holding the 0xf0 or 0xf7 status.
type Event struct {
	// Absolute time in ticks from the start of the track.
	Time uint32 `json:"time"`
	// Ticks since the previous event.
	Delta    uint32    `json:"delta"`
	Kind     EventKind `json:"kind"`
	Channel  uint8     `json:"channel,omitempty"`
	Data1    uint8     `json:"data1,omitempty"`
	Data2    uint8     `json:"data2,omitempty"`
	MetaType uint8     `json:"metaType,omitempty"`
	Data     []byte    `json:"data,omitempty"`
}

// Returns the 14-bit pitch bend value of a pitch-bend event. The center is
// 0x2000.
func (e *Event) PitchBend() uint16 {
	return uint16(e.Data2)<<7 | uint16(e.Data1)
}

func metaTypeName(t uint8) string {
	switch t {
	case MetaSequenceNumber:
		return "Sequence number"
	case MetaText:
		return "Generic text event"
	case MetaCopyright:
		return "Copyright notice"
	case MetaTrackName:
		return "Track/sequence name"
	case MetaInstrumentName:
		return "Instrument name"
	case MetaLyric:
		return "Lyric"
	case MetaMarker:
		return "Marker"
	case MetaCuePoint:
		return "Cue point"
	case MetaChannelPrefix:
		return "Channel prefix"
	case MetaEndOfTrack:
		return "End of track"
	case MetaTempo:
		return "Set tempo"
	case MetaSMPTEOffset:
		return "SMPTE offset"
	case MetaTimeSignature:
		return "Time signature"
	case MetaKeySignature:
		return "Key signature"
	case MetaSequencer:
		return "Sequencer-specific"
	}
	return fmt.Sprintf("Unknown meta-event type %d", t)
}

func (e *Event) String() string {
	prefix := fmt.Sprintf("Time %d (+%d): ", e.Time, e.Delta)
	switch e.Kind {
	case NoteOffKind:
		return prefix + fmt.Sprintf("Channel %d: %s off, velocity = %d",
			e.Channel, NoteName(e.Data1), e.Data2)
	case NoteOnKind:
		return prefix + fmt.Sprintf("Channel %d: %s on, velocity = %d",
			e.Channel, NoteName(e.Data1), e.Data2)
	case PolyAftertouchKind:
		return prefix + fmt.Sprintf("Channel %d: %s aftertouch, pressure = %d",
			e.Channel, NoteName(e.Data1), e.Data2)
	case ControlChangeKind:
		return prefix + fmt.Sprintf("Channel %d: Controller %d = %d",
			e.Channel, e.Data1, e.Data2)
	case ProgramChangeKind:
		return prefix + fmt.Sprintf("Channel %d: Program change to %d",
			e.Channel, e.Data1)
	case ChannelAftertouchKind:
		return prefix + fmt.Sprintf("Channel %d: Channel pressure %d",
			e.Channel, e.Data1)
	case PitchBendKind:
		return prefix + fmt.Sprintf("Channel %d: Pitch bend value %d",
			e.Channel, e.PitchBend())
	case SysExKind:
		return prefix + fmt.Sprintf("System exclusive (0x%02x), %d bytes",
			e.Data1, len(e.Data))
	case MetaKind:
		name := metaTypeName(e.MetaType)
		if (e.MetaType >= MetaText) && (e.MetaType <= 0x0f) {
			return prefix + fmt.Sprintf("%s: %q", name, e.Data)
		}
		return prefix + fmt.Sprintf("%s, %d bytes: % x", name, len(e.Data),
			e.Data)
	}
	return prefix + e.Kind.String()
}
