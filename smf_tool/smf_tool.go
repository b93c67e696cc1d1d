// This defines a command-line utility for viewing standard MIDI files (SMF,
// usually with a ".mid" extension): a summary, the full decoded timelines,
// the projected melody and parts, or a dump of every event.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/yalue/smf"
	"github.com/yalue/smf/internal/report"
)

// Flags shared by every subcommand.
type globalFlags struct {
	format       string
	outputFile   string
	verbose      bool
	textEncoding string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "smf_tool",
		Short: "Inspect standard MIDI files",
		Long: `smf_tool decodes a standard MIDI file and prints what it contains.

Examples:
  # One-screen overview
  smf_tool summary song.mid

  # Everything that was decoded, as JSON
  smf_tool info song.mid -f json

  # The first notes of track 1, with Shift-JIS track names
  smf_tool melody song.mid --track 1 --text-encoding shift_jis
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.format, "format", "f", string(report.FormatText),
		fmt.Sprintf("output format, one of %v", report.Formats))
	pf.StringVarP(&flags.outputFile, "output", "o", "",
		"output file (default: stdout)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false,
		"log dropped MIDI content to stderr")
	pf.StringVar(&flags.textEncoding, "text-encoding", "",
		"character set of track names that aren't UTF-8 (default: "+
			"windows-1252)")

	root.AddCommand(newSummaryCommand(flags))
	root.AddCommand(newInfoCommand(flags))
	root.AddCommand(newMelodyCommand(flags))
	root.AddCommand(newPartsCommand(flags))
	root.AddCommand(newEventsCommand(flags))
	return root
}

// Returns the decode options selected by the flags.
func (f *globalFlags) decodeOptions(logger *slog.Logger) ([]smf.Option,
	error) {
	opts := []smf.Option{smf.WithLogger(logger)}
	if f.textEncoding != "" {
		enc, e := htmlindex.Get(f.textEncoding)
		if e != nil {
			return nil, fmt.Errorf("Unknown text encoding %q: %w",
				f.textEncoding, e)
		}
		opts = append(opts, smf.WithTextEncoding(enc))
	}
	return opts, nil
}

// Opens and decodes the named file.
func (f *globalFlags) decodeFile(filename string) (*smf.FileInfo, error) {
	logger := report.NewLogger(os.Stderr, f.verbose)
	opts, e := f.decodeOptions(logger)
	if e != nil {
		return nil, e
	}
	inputFile, e := os.Open(filename)
	if e != nil {
		return nil, fmt.Errorf("Couldn't open %s: %w", filename, e)
	}
	defer inputFile.Close()
	info, e := smf.DecodeReader(inputFile, opts...)
	if e != nil {
		return nil, fmt.Errorf("Couldn't parse %s: %w", filename, e)
	}
	logger.Debug("parsed MIDI file", "file", filename,
		"tracks", len(info.Tracks), "division", info.Division.String())
	if (len(info.Warnings) > 0) && !f.verbose {
		report.PrintWarning("%s: dropped %d bad events or notes (use -v to "+
			"list them)", filename, len(info.Warnings))
	}
	return info, nil
}

// Writes result in the format selected by the flags.
func (f *globalFlags) output(result any) error {
	format, e := report.ParseFormat(f.format)
	if e != nil {
		return e
	}
	e = report.Output(result, report.Options{
		Format: format,
		File:   f.outputFile,
	})
	if (e == nil) && (f.outputFile != "") {
		report.PrintSuccess("Wrote %s", f.outputFile)
	}
	return e
}

func run() int {
	e := newRootCommand().Execute()
	if e == nil {
		return 0
	}
	report.PrintError("%s", e)
	if kind := smf.KindOf(e); kind != 0 {
		fmt.Fprintf(os.Stderr, "Error code: %s\n", kind.Code())
	}
	return 1
}

func main() {
	os.Exit(run())
}
