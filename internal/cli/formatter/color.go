package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var colorOn = true

// UseColor switches ANSI styling on or off for everything this package
// renders. The CLI turns it off when stdout is not a terminal.
func UseColor(on bool) {
	colorOn = on
}

func paint(style lipgloss.Style, text string) string {
	if !colorOn {
		return text
	}
	return style.Render(text)
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", paint(StyleHeader, upper), paint(StyleDim, line))
}

func Dim(text string) string {
	return paint(StyleDim, text)
}

func Bold(text string) string {
	return paint(StyleBold, text)
}

// CompletionMark renders the completion state of a stage or task.
func CompletionMark(done bool) string {
	if done {
		return paint(StyleGreen, "✔ done")
	}
	return paint(StyleBlue, "○ open")
}
