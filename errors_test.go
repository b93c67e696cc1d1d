package smf

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKindCodes(t *testing.T) {
	seen := make(map[string]ErrorKind)
	for k := FileTooSmall; k <= TrackIndexOutOfRange; k++ {
		code := k.Code()
		if strings.HasPrefix(code, "UNKNOWN") {
			t.Errorf("kind %d (%s) has no code", int(k), k)
		}
		if other, ok := seen[code]; ok {
			t.Errorf("kinds %d and %d share code %s", int(other), int(k), code)
		}
		seen[code] = k
	}
	if ErrorKind(0).Code() != "UNKNOWN_0" {
		t.Errorf("code of kind 0 = %s", ErrorKind(0).Code())
	}
}

func TestParseErrorMatching(t *testing.T) {
	e := newParseError(NoTracks, 10, "header declares %d tracks", 0)
	wrapped := fmt.Errorf("loading song.mid: %w", e)
	if !errors.Is(wrapped, ErrNoTracks) {
		t.Errorf("errors.Is didn't match a wrapped NoTracks error")
	}
	if errors.Is(wrapped, ErrUnsupportedFormat) {
		t.Errorf("NoTracks error matched UnsupportedFormat")
	}
	if KindOf(wrapped) != NoTracks {
		t.Errorf("KindOf = %s", KindOf(wrapped))
	}
	if KindOf(errors.New("other")) != 0 {
		t.Errorf("KindOf of a plain error isn't 0")
	}
	if KindOf(nil) != 0 {
		t.Errorf("KindOf(nil) isn't 0")
	}
}

func TestParseErrorMessage(t *testing.T) {
	e := newParseError(InvalidTrackSignature, 120, "got %q", "RIFF")
	e.Track = 2
	msg := e.Error()
	for _, part := range []string{"INVALID_TRACK_SIGNATURE", "track 2",
		"offset 120", `"RIFF"`} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q doesn't contain %q", msg, part)
		}
	}
	bare := newParseError(TrackIndexOutOfRange, -1, "")
	if bare.Err != nil {
		t.Errorf("empty detail produced a wrapped error: %v", bare.Err)
	}
	if bare.Error() != "TRACK_INDEX_OUT_OF_RANGE: track index out of range" {
		t.Errorf("bare message = %q", bare.Error())
	}
}
