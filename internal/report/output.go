// Package report writes the results of the command-line tools in the format
// the user asked for.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects how a result is encoded.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	// Binary; intended for other programs rather than terminals.
	FormatMsgpack Format = "msgpack"
	// Human-readable, styled when writing to a terminal.
	FormatText Format = "text"
)

// Formats lists every supported format, in the order shown in help text.
var Formats = []Format{FormatText, FormatYAML, FormatJSON, FormatMsgpack}

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (want one of %v)",
		name, Formats)
}

// Options configures where and how Output writes.
type Options struct {
	// The empty format means FormatText.
	Format Format

	// Output file path; empty for stdout.
	File string

	// Overrides File when set.
	Writer io.Writer
}

// Texter is implemented by results that have their own text rendering.
type Texter interface {
	Text(s Styles) string
}

// Output encodes result to the configured destination.
func Output(result any, opts Options) error {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	} else if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch opts.Format {
	case FormatText, "":
		return outputText(w, result)
	case FormatYAML:
		return outputYAML(w, result)
	case FormatJSON:
		return outputJSON(w, result)
	case FormatMsgpack:
		return outputMsgpack(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

func outputJSON(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func outputYAML(w io.Writer, result any) error {
	data, err := yaml.MarshalWithOptions(result, yaml.UseJSONMarshaler())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func outputMsgpack(w io.Writer, result any) error {
	enc := msgpack.NewEncoder(w)
	// Field names match the JSON and YAML output.
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

func outputText(w io.Writer, result any) error {
	var text string
	switch v := result.(type) {
	case Texter:
		text = v.Text(NewStyles(lipgloss.NewRenderer(w), DefaultTheme))
	case string:
		text = v
	case []byte:
		_, err := w.Write(v)
		return err
	case fmt.Stringer:
		text = v.String()
	default:
		return outputYAML(w, result)
	}
	_, err := io.WriteString(w, text)
	return err
}
