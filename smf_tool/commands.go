package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yalue/smf"
	"github.com/yalue/smf/internal/report"
)

func newSummaryCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE",
		Short: "Print a short description of the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, e := flags.decodeFile(args[0])
			if e != nil {
				return e
			}
			return flags.output(newSummaryResult(args[0], info))
		},
	}
}

// The structured form of Summarize, for the non-text formats.
type summaryResult struct {
	File            string       `json:"file"`
	Format          uint16       `json:"format"`
	Tracks          int          `json:"tracks"`
	TicksPerQuarter uint16       `json:"ticksPerQuarter"`
	BPM             int          `json:"bpm"`
	TempoChanges    int          `json:"tempoChanges"`
	TimeSignature   string       `json:"timeSignature"`
	KeySignature    string       `json:"keySignature"`
	Warnings        int          `json:"warnings"`
	TrackSummaries  []trackBrief `json:"trackSummaries"`
	text            string
}

type trackBrief struct {
	Name       string `json:"name,omitempty"`
	Instrument string `json:"instrument,omitempty"`
	Notes      int    `json:"notes"`
	EndTime    uint32 `json:"endTime"`
}

func newSummaryResult(filename string, info *smf.FileInfo) *summaryResult {
	r := &summaryResult{
		File:            filename,
		Format:          info.Format,
		Tracks:          info.TrackCount,
		TicksPerQuarter: info.TicksPerQuarter,
		BPM:             info.StartTempo().BPM(),
		TempoChanges:    len(info.TempoChanges),
		TimeSignature:   info.StartTimeSignature().String(),
		KeySignature:    info.StartKeySignature().String(),
		Warnings:        len(info.Warnings),
		TrackSummaries:  make([]trackBrief, len(info.Tracks)),
		text:            smf.Summarize(info),
	}
	for i, t := range info.Tracks {
		r.TrackSummaries[i] = trackBrief{
			Name:       t.Name,
			Instrument: t.Instrument,
			Notes:      len(t.Notes),
			EndTime:    t.EndTime,
		}
	}
	return r
}

func (r *summaryResult) Text(s report.Styles) string {
	return s.Heading(r.File) + r.text
}

func newInfoCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print everything decoded from the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, e := flags.decodeFile(args[0])
			if e != nil {
				return e
			}
			return flags.output((*infoResult)(info))
		},
	}
}

// Adds a text rendering to a FileInfo, which otherwise encodes as is.
type infoResult smf.FileInfo

func (r *infoResult) Text(s report.Styles) string {
	var b strings.Builder
	b.WriteString(s.Heading("Timelines"))
	for _, t := range r.TempoChanges {
		b.WriteString(s.Field(fmt.Sprintf("Tempo at %d", t.Time), t))
	}
	for _, t := range r.TimeSignatures {
		b.WriteString(s.Field(fmt.Sprintf("Time signature at %d", t.Time),
			t))
	}
	for _, k := range r.KeySignatures {
		b.WriteString(s.Field(fmt.Sprintf("Key signature at %d", k.Time), k))
	}
	for i, t := range r.Tracks {
		b.WriteString("\n")
		b.WriteString(s.Heading(fmt.Sprintf("Track %d", i)))
		if t.Name != "" {
			b.WriteString(s.Field("Name", t.Name))
		}
		if t.Instrument != "" {
			b.WriteString(s.Field("Instrument", t.Instrument))
		}
		b.WriteString(s.Field("End time", t.EndTime))
		for _, n := range t.Notes {
			b.WriteString("  " + n.String() + "\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Heading("Warnings"))
		for _, w := range r.Warnings {
			b.WriteString(s.Dim.Render(w.String()) + "\n")
		}
	}
	return b.String()
}

func newMelodyCommand(flags *globalFlags) *cobra.Command {
	var track int
	cmd := &cobra.Command{
		Use:   "melody FILE",
		Short: "Print the first notes of one track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, e := flags.decodeFile(args[0])
			if e != nil {
				return e
			}
			melody, e := smf.ToMelody(info, track)
			if e != nil {
				return e
			}
			return flags.output(&melodyResult{Track: track, Melody: melody})
		},
	}
	cmd.Flags().IntVarP(&track, "track", "t", 0, "index of the track")
	return cmd
}

type melodyResult struct {
	Track  int     `json:"track"`
	Melody []uint8 `json:"melody"`
}

func (r *melodyResult) Text(s report.Styles) string {
	return s.Field(fmt.Sprintf("Track %d", r.Track), noteNames(r.Melody))
}

// Returns the note names of a melody, separated by spaces.
func noteNames(melody []uint8) string {
	names := make([]string, len(melody))
	for i, n := range melody {
		names[i] = smf.NoteName(n)
	}
	return strings.Join(names, " ")
}

func newPartsCommand(flags *globalFlags) *cobra.Command {
	var maxTracks int
	cmd := &cobra.Command{
		Use:   "parts FILE",
		Short: "Print the melody and rhythm of each track with notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, e := flags.decodeFile(args[0])
			if e != nil {
				return e
			}
			return flags.output(partsResult(smf.ToParts(info, maxTracks)))
		},
	}
	cmd.Flags().IntVar(&maxTracks, "max-tracks", smf.DefaultMaxParts,
		"the most parts to print")
	return cmd
}

type partsResult []smf.Part

func (r partsResult) Text(s report.Styles) string {
	var b strings.Builder
	for _, p := range r {
		title := fmt.Sprintf("Track %d", p.Track)
		if p.Name != "" {
			title += ": " + p.Name
		}
		b.WriteString(s.Heading(title))
		b.WriteString(s.Field("Melody", noteNames(p.Melody)))
		b.WriteString(s.Field("Rhythm", fmt.Sprint(p.Rhythm)))
	}
	if len(r) == 0 {
		b.WriteString(s.Dim.Render("No tracks contain notes.") + "\n")
	}
	return b.String()
}

func newEventsCommand(flags *globalFlags) *cobra.Command {
	var track int
	cmd := &cobra.Command{
		Use:   "events FILE",
		Short: "Dump every decoded event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, e := flags.decodeFile(args[0])
			if e != nil {
				return e
			}
			result := eventsResult{}
			for i := range info.Tracks {
				if (track >= 0) && (i != track) {
					continue
				}
				result = append(result, trackEvents{
					Track:  i,
					Events: info.Tracks[i].Events,
				})
			}
			if (track >= 0) && (len(result) == 0) {
				return fmt.Errorf("%w: file has %d tracks",
					smf.ErrTrackIndexOutOfRange, len(info.Tracks))
			}
			return flags.output(result)
		},
	}
	cmd.Flags().IntVarP(&track, "track", "t", -1,
		"only dump this track (default: all tracks)")
	return cmd
}

type trackEvents struct {
	Track  int         `json:"track"`
	Events []smf.Event `json:"events"`
}

type eventsResult []trackEvents

func (r eventsResult) Text(s report.Styles) string {
	var b strings.Builder
	for _, t := range r {
		b.WriteString(s.Heading(fmt.Sprintf("Track %d (%d events)", t.Track,
			len(t.Events))))
		for j := range t.Events {
			fmt.Fprintf(&b, "  %d. %s\n", j+1, &t.Events[j])
		}
	}
	return b.String()
}
