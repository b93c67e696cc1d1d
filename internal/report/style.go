package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used for text output.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
	Error   lipgloss.Color
}

var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Error:   lipgloss.Color("#ff5f5f"),
}

// Styles holds the styles derived from a theme for one output.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Dim   lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates styles bound to r, so colors are only emitted when r's
// output supports them.
func NewStyles(r *lipgloss.Renderer, t Theme) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(t.Primary),
		Label: r.NewStyle().Bold(true),
		Dim:   r.NewStyle().Foreground(t.Dim),
		Error: r.NewStyle().Foreground(t.Error),
	}
}

// Field renders a "label: value" line.
func (s Styles) Field(label string, value any) string {
	return s.Label.Render(label+":") + " " + fmt.Sprint(value) + "\n"
}

// Heading renders a title line followed by a rule of the same width.
func (s Styles) Heading(title string) string {
	return s.Title.Render(title) + "\n" +
		s.Dim.Render(strings.Repeat("─", lipgloss.Width(title))) + "\n"
}

// Print helpers for terminal status messages, all on stderr so they never
// mix with the encoded result.

// StatusOutput receives the status messages. Tests may replace it.
var StatusOutput io.Writer = os.Stderr

var stderrStyles = NewStyles(lipgloss.NewRenderer(os.Stderr), DefaultTheme)

// PrintError prints an error message.
func PrintError(format string, args ...any) {
	fmt.Fprintln(StatusOutput, stderrStyles.Error.Render("Error: "+
		fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message.
func PrintWarning(format string, args ...any) {
	fmt.Fprintln(StatusOutput, stderrStyles.Dim.Render("⚠ "+
		fmt.Sprintf(format, args...)))
}

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(format string, args ...any) {
	fmt.Fprintln(StatusOutput, stderrStyles.Title.Render("✓ "+
		fmt.Sprintf(format, args...)))
}
