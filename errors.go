package smf

import (
	"errors"
	"fmt"
)

// Identifies the category of a decoding failure. Every kind has a stable code
// that callers may match on or display.
type ErrorKind int

const (
	FileTooSmall ErrorKind = iota + 1
	InvalidSignature
	InvalidHeaderLength
	UnsupportedFormat
	NoTracks
	InvalidTicksPerQuarter
	InvalidTrackSignature
	UnexpectedEndOfFile
	InvalidRunningStatus
	VariableLengthTooLong
	// Status bytes 0xf1 through 0xfe have no meaning inside an SMF track.
	UnsupportedStatus
	// Returned by the projection functions, never by Decode.
	TrackIndexOutOfRange
)

var errorKindCodes = map[ErrorKind]string{
	FileTooSmall:           "FILE_TOO_SMALL",
	InvalidSignature:       "INVALID_SIGNATURE",
	InvalidHeaderLength:    "INVALID_HEADER_LENGTH",
	UnsupportedFormat:      "UNSUPPORTED_FORMAT",
	NoTracks:               "NO_TRACKS",
	InvalidTicksPerQuarter: "INVALID_TICKS_PER_QUARTER",
	InvalidTrackSignature:  "INVALID_TRACK_SIGNATURE",
	UnexpectedEndOfFile:    "UNEXPECTED_END_OF_FILE",
	InvalidRunningStatus:   "INVALID_RUNNING_STATUS",
	VariableLengthTooLong:  "VARIABLE_LENGTH_TOO_LONG",
	UnsupportedStatus:      "UNSUPPORTED_STATUS",
	TrackIndexOutOfRange:   "TRACK_INDEX_OUT_OF_RANGE",
}

var errorKindNames = map[ErrorKind]string{
	FileTooSmall:           "file too small",
	InvalidSignature:       "invalid header signature",
	InvalidHeaderLength:    "invalid header length",
	UnsupportedFormat:      "unsupported format",
	NoTracks:               "no tracks",
	InvalidTicksPerQuarter: "invalid ticks per quarter note",
	InvalidTrackSignature:  "invalid track signature",
	UnexpectedEndOfFile:    "unexpected end of file",
	InvalidRunningStatus:   "invalid running status",
	VariableLengthTooLong:  "variable-length quantity too long",
	UnsupportedStatus:      "unsupported status byte",
	TrackIndexOutOfRange:   "track index out of range",
}

// Returns the stable, upper-case code for the kind, e.g. "NO_TRACKS".
func (k ErrorKind) Code() string {
	code, ok := errorKindCodes[k]
	if !ok {
		return fmt.Sprintf("UNKNOWN_%d", int(k))
	}
	return code
}

func (k ErrorKind) String() string {
	name, ok := errorKindNames[k]
	if !ok {
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
	return name
}

// The error type returned by Decode and the projection functions.
type ParseError struct {
	Kind ErrorKind
	// The byte offset in the input where the problem was found, or -1 if it
	// doesn't relate to a position in the input.
	Offset int
	// The index of the track being decoded, or -1 outside of a track.
	Track int
	// Extra detail, may be nil.
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Kind.Code() + ": " + e.Kind.String()
	if e.Track >= 0 {
		msg += fmt.Sprintf(" in track %d", e.Track)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Makes errors.Is(err, ErrNoTracks) and friends true for any *ParseError of
// the same kind, regardless of offset or track.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrFileTooSmall           = &ParseError{Kind: FileTooSmall, Offset: -1, Track: -1}
	ErrInvalidSignature       = &ParseError{Kind: InvalidSignature, Offset: -1, Track: -1}
	ErrInvalidHeaderLength    = &ParseError{Kind: InvalidHeaderLength, Offset: -1, Track: -1}
	ErrUnsupportedFormat      = &ParseError{Kind: UnsupportedFormat, Offset: -1, Track: -1}
	ErrNoTracks               = &ParseError{Kind: NoTracks, Offset: -1, Track: -1}
	ErrInvalidTicksPerQuarter = &ParseError{Kind: InvalidTicksPerQuarter, Offset: -1, Track: -1}
	ErrInvalidTrackSignature  = &ParseError{Kind: InvalidTrackSignature, Offset: -1, Track: -1}
	ErrUnexpectedEndOfFile    = &ParseError{Kind: UnexpectedEndOfFile, Offset: -1, Track: -1}
	ErrInvalidRunningStatus   = &ParseError{Kind: InvalidRunningStatus, Offset: -1, Track: -1}
	ErrVariableLengthTooLong  = &ParseError{Kind: VariableLengthTooLong, Offset: -1, Track: -1}
	ErrUnsupportedStatus      = &ParseError{Kind: UnsupportedStatus, Offset: -1, Track: -1}
	ErrTrackIndexOutOfRange   = &ParseError{Kind: TrackIndexOutOfRange, Offset: -1, Track: -1}
)

func newParseError(kind ErrorKind, offset int, format string,
	args ...interface{}) *ParseError {
	var detail error
	if format != "" {
		detail = fmt.Errorf(format, args...)
	}
	return &ParseError{
		Kind:   kind,
		Offset: offset,
		Track:  -1,
		Err:    detail,
	}
}

// Returns the ErrorKind carried by err, or 0 if err isn't a *ParseError.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return 0
	}
	return pe.Kind
}
