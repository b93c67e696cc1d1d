package smf

// Returns the number of data bytes following a channel status byte.
func channelDataLength(status byte) int {
	switch status & 0xf0 {
	case 0xc0, 0xd0:
		return 1
	}
	return 2
}

var channelEventKinds = map[byte]EventKind{
	0x80: NoteOffKind,
	0x90: NoteOnKind,
	0xa0: PolyAftertouchKind,
	0xb0: ControlChangeKind,
	0xc0: ProgramChangeKind,
	0xd0: ChannelAftertouchKind,
	0xe0: PitchBendKind,
}

// Decodes the data bytes of a channel event with the given status, which is
// either the byte just read or the running status. The cursor must be at the
// first data byte. Events with a data byte above 0x7f are dropped after all of
// their bytes are consumed.
func (d *trackDecoder) decodeChannelEvent(status byte, delta uint32) error {
	data, e := d.c.readBytes(channelDataLength(status))
	if e != nil {
		return e
	}
	kind := channelEventKinds[status&0xf0]
	channel := status & 0x0f
	for _, b := range data {
		if b > 0x7f {
			d.warn(DataOutOfRange, "%s on channel %d has data byte 0x%02x",
				kind, channel, b)
			return nil
		}
	}
	event := Event{
		Kind:    kind,
		Delta:   delta,
		Channel: channel,
		Data1:   data[0],
	}
	if len(data) > 1 {
		event.Data2 = data[1]
	}
	d.record(event)
	key := noteKey{note: event.Data1, channel: channel}
	switch kind {
	case NoteOnKind:
		if event.Data2 == 0 {
			// A note-on with velocity 0 is a note-off.
			d.endNote(key)
			return nil
		}
		if d.notes.noteOn(key, event.Data2, d.now) {
			d.warn(NoteSuperseded, "%s on channel %d restarted before its "+
				"note-off", NoteName(key.note), channel)
		}
	case NoteOffKind:
		d.endNote(key)
	}
	return nil
}

func (d *trackDecoder) endNote(key noteKey) {
	n, result := d.notes.noteOff(key, d.now)
	switch result {
	case noteOrphan:
		d.opts.logger.Debug("ignoring note-off without note-on",
			"track", d.index, "offset", d.eventStart, "time", d.now,
			"note", key.note, "channel", key.channel)
	case noteBadDuration:
		d.warn(BadNoteDuration, "%s dropped", n)
	}
}
