package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)
	if colorOn {
		box = box.BorderForeground(ColorDim)
	}

	if title != "" {
		content = paint(StyleHeader, strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(strings.TrimRight(content, "\n"))
}

// HumanDate formats a calendar day, or "--" for an unset date.
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Mon Jan 2")
}

// LongDate formats a calendar day with its year.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 2, 2006")
}

// DayCount renders a duration in whole days.
func DayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return Dim(id)
}

// orDash renders an empty value as a dimmed dash.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
