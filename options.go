package smf

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

type decodeOptions struct {
	logger       *slog.Logger
	textEncoding encoding.Encoding
}

// Configures a call to Decode.
type Option func(*decodeOptions)

// Sets the logger that recovered anomalies are reported to, at debug level.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *decodeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Sets the character set used for text meta events that aren't valid UTF-8.
// The default is Windows-1252, which also covers plain Latin-1 text.
func WithTextEncoding(enc encoding.Encoding) Option {
	return func(o *decodeOptions) {
		if enc != nil {
			o.textEncoding = enc
		}
	}
}

func newDecodeOptions(opts []Option) *decodeOptions {
	o := &decodeOptions{
		logger:       slog.Default(),
		textEncoding: charmap.Windows1252,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Converts the payload of a text meta event to a Go string.
func (o *decodeOptions) decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, e := o.textEncoding.NewDecoder().Bytes(b)
	if e != nil || !utf8.Valid(s) {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(s)
}
