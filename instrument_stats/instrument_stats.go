// This defines a command-line utility for gathering information about
// instruments used by MIDI files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/yalue/smf"
	"github.com/yalue/smf/internal/report"
)

// The zero-based channel that General MIDI reserves for percussion.
const percussionChannel = 9

// Keeps track of our accumulated event count for each instrument.
type instrumentStats struct {
	// One value per MIDI program: the number of note-ons played with that
	// program selected.
	eventCounts [128]uint64
	// One value per percussion key: the number of note-ons on channel 10.
	percussionEventCounts [128]uint64
	filesScanned          int
	failures              []failedFile
}

type failedFile struct {
	File  string `json:"file"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// Counts the note-ons in a decoded file. Each track starts with every
// channel set to program 0.
func countFile(info *smf.FileInfo) *instrumentStats {
	s := &instrumentStats{filesScanned: 1}
	for _, track := range info.Tracks {
		var channelInstruments [16]uint8
		for _, event := range track.Events {
			switch event.Kind {
			case smf.ProgramChangeKind:
				channelInstruments[event.Channel] = event.Data1
			case smf.NoteOnKind:
				if event.Data2 == 0 {
					// Note on with 0 velocity actually turns off the note.
					continue
				}
				if event.Channel == percussionChannel {
					s.percussionEventCounts[event.Data1]++
				} else {
					s.eventCounts[channelInstruments[event.Channel]]++
				}
			}
		}
	}
	return s
}

// Adds the counts from other to s.
func (s *instrumentStats) merge(other *instrumentStats) {
	for i := range s.eventCounts {
		s.eventCounts[i] += other.eventCounts[i]
		s.percussionEventCounts[i] += other.percussionEventCounts[i]
	}
	s.filesScanned += other.filesScanned
	s.failures = append(s.failures, other.failures...)
}

type scanResult struct {
	name  string
	stats *instrumentStats
	err   error
}

// Opens and decodes one file.
func scanFile(name string, logger *slog.Logger) (*instrumentStats, error) {
	f, e := os.Open(name)
	if e != nil {
		return nil, fmt.Errorf("Failed opening %s: %w", name, e)
	}
	defer f.Close()
	info, e := smf.DecodeReader(f, smf.WithLogger(logger.With("file", name)))
	if e != nil {
		return nil, fmt.Errorf("Failed parsing %s: %w", name, e)
	}
	return countFile(info), nil
}

// Decodes the files on up to workers goroutines and merges the counts.
func scanFiles(filenames []string, workers int,
	logger *slog.Logger) *instrumentStats {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	jobs := make(chan string)
	results := make(chan scanResult)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				stats, e := scanFile(name, logger)
				results <- scanResult{name: name, stats: stats, err: e}
			}
		}()
	}
	go func() {
		for _, name := range filenames {
			jobs <- name
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	total := &instrumentStats{}
	done := 0
	for r := range results {
		done++
		if r.err != nil {
			report.PrintWarning("Skipping %s", r.err)
			failure := failedFile{File: r.name, Error: r.err.Error()}
			if kind := smf.KindOf(r.err); kind != 0 {
				failure.Code = kind.Code()
			}
			total.failures = append(total.failures, failure)
			continue
		}
		logger.Debug("scanned file", "file", r.name, "done", done,
			"total", len(filenames))
		total.merge(r.stats)
	}
	sort.Slice(total.failures, func(i, j int) bool {
		return total.failures[i].File < total.failures[j].File
	})
	return total
}

type instrumentCount struct {
	Program uint8  `json:"program"`
	Notes   uint64 `json:"notes"`
}

type percussionCount struct {
	Key   uint8  `json:"key"`
	Name  string `json:"name"`
	Notes uint64 `json:"notes"`
}

// What the tool reports; instruments and keys that were never played are
// left out.
type statsReport struct {
	Directory    string            `json:"directory"`
	FilesScanned int               `json:"filesScanned"`
	Instruments  []instrumentCount `json:"instruments"`
	Percussion   []percussionCount `json:"percussion"`
	Failures     []failedFile      `json:"failures,omitempty"`
}

func (s *instrumentStats) report(dir string) *statsReport {
	r := &statsReport{
		Directory:    dir,
		FilesScanned: s.filesScanned,
		Instruments:  []instrumentCount{},
		Percussion:   []percussionCount{},
		Failures:     s.failures,
	}
	for i := 0; i < 128; i++ {
		if s.eventCounts[i] != 0 {
			r.Instruments = append(r.Instruments, instrumentCount{
				Program: uint8(i),
				Notes:   s.eventCounts[i],
			})
		}
		if s.percussionEventCounts[i] != 0 {
			r.Percussion = append(r.Percussion, percussionCount{
				Key:   uint8(i),
				Name:  smf.NoteName(uint8(i)),
				Notes: s.percussionEventCounts[i],
			})
		}
	}
	return r
}

func (r *statsReport) Text(s report.Styles) string {
	var b strings.Builder
	b.WriteString(s.Heading(fmt.Sprintf("%s: %d files", r.Directory,
		r.FilesScanned)))
	for _, c := range r.Instruments {
		b.WriteString(s.Field(fmt.Sprintf("Instrument %d", c.Program),
			fmt.Sprintf("%d events", c.Notes)))
	}
	for _, c := range r.Percussion {
		b.WriteString(s.Field(fmt.Sprintf("Percussion instrument %d (%s)",
			c.Key, c.Name), fmt.Sprintf("%d events", c.Notes)))
	}
	for _, f := range r.Failures {
		b.WriteString(s.Error.Render(fmt.Sprintf("Failed: %s", f.Error)) +
			"\n")
	}
	return b.String()
}

func newRootCommand() *cobra.Command {
	var baseDir, format, outputFile string
	var workers int
	var verbose bool
	cmd := &cobra.Command{
		Use:   "instrument_stats",
		Short: "Count how often each instrument plays in a directory of MIDI files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, e := report.ParseFormat(format)
			if e != nil {
				return e
			}
			logger := report.NewLogger(os.Stderr, verbose)
			filenames, e := filepath.Glob(filepath.Join(baseDir, "*.mid"))
			if e != nil {
				return fmt.Errorf("Failed looking up MIDI files in dir %s: %w",
					baseDir, e)
			}
			if len(filenames) == 0 {
				return fmt.Errorf("Didn't find any MIDI (.mid) files in dir %s",
					baseDir)
			}
			stats := scanFiles(filenames, workers, logger)
			e = report.Output(stats.report(baseDir), report.Options{
				Format: f,
				File:   outputFile,
			})
			if (e == nil) && (outputFile != "") {
				report.PrintSuccess("Wrote stats for %d files to %s",
					stats.filesScanned, outputFile)
			}
			return e
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.Flags()
	flags.StringVar(&baseDir, "dir", "", "The directory to scan for .mid files")
	flags.IntVar(&workers, "workers", runtime.GOMAXPROCS(0),
		"The number of files to decode at once")
	flags.StringVarP(&format, "format", "f", string(report.FormatText),
		fmt.Sprintf("output format, one of %v", report.Formats))
	flags.StringVarP(&outputFile, "output", "o", "",
		"output file (default: stdout)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log each scanned file")
	cmd.MarkFlagRequired("dir")
	return cmd
}

func main() {
	if e := newRootCommand().Execute(); e != nil {
		report.PrintError("%s", e)
		os.Exit(1)
	}
}
