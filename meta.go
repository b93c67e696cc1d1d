package smf

// Decodes a meta event. Assumes the 0xff status byte has already been
// consumed. Unusable tempo, time signature or key signature payloads are
// warned about and skipped; they never fail the event.
func (d *trackDecoder) decodeMetaEvent(delta uint32) error {
	metaType, e := d.c.readU8()
	if e != nil {
		return e
	}
	length, e := d.c.readVariableInt()
	if e != nil {
		return e
	}
	data, e := d.c.readBytes(int(length))
	if e != nil {
		return e
	}
	d.record(Event{
		Kind:     MetaKind,
		Delta:    delta,
		MetaType: metaType,
		Data:     append([]byte{}, data...),
	})
	switch metaType {
	case MetaTrackName:
		d.track.Name = d.opts.decodeText(data)
	case MetaInstrumentName:
		d.track.Instrument = d.opts.decodeText(data)
	case MetaTempo:
		d.decodeTempo(data)
	case MetaTimeSignature:
		d.decodeTimeSignature(data)
	case MetaKeySignature:
		d.decodeKeySignature(data)
	}
	return nil
}

func (d *trackDecoder) decodeTempo(data []byte) {
	if len(data) != 3 {
		d.warn(BadMetaEvent, "expected 3 bytes for set tempo event, got %d",
			len(data))
		return
	}
	v := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	if v == 0 {
		d.warn(BadMetaEvent, "set tempo event with 0 us per quarter note")
		return
	}
	d.timelines.tempos = append(d.timelines.tempos, TempoChange{
		Time:                   d.now,
		MicrosecondsPerQuarter: v,
	})
}

func (d *trackDecoder) decodeTimeSignature(data []byte) {
	if len(data) != 4 {
		d.warn(BadMetaEvent, "bad time signature meta-event size: %d",
			len(data))
		return
	}
	// The denominator is stored as a power of 2.
	if data[1] > 31 {
		d.warn(BadMetaEvent, "time signature denominator 2^%d too large",
			data[1])
		return
	}
	d.timelines.timeSignatures = append(d.timelines.timeSignatures,
		TimeSignature{
			Time:                        d.now,
			Numerator:                   data[0],
			Denominator:                 uint32(1) << data[1],
			ClocksPerClick:              data[2],
			ThirtySecondNotesPerQuarter: data[3],
		})
}

func (d *trackDecoder) decodeKeySignature(data []byte) {
	if len(data) != 2 {
		d.warn(BadMetaEvent, "bad key signature meta-event size: %d",
			len(data))
		return
	}
	sf := int8(data[0])
	if (sf < -7) || (sf > 7) {
		d.warn(BadMetaEvent, "bad number of sharps or flats in key "+
			"signature: %d", sf)
		return
	}
	if data[1] > 1 {
		d.warn(BadMetaEvent, "invalid major/minor setting in key "+
			"signature: %d", data[1])
		return
	}
	d.timelines.keySignatures = append(d.timelines.keySignatures,
		KeySignature{
			Time:        d.now,
			SharpsFlats: sf,
			Major:       data[1] == 0,
		})
}
