package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth = 3
	emptyCell = "  ·"
	barCell   = "███"
	// overflowCell marks a bar that begins before the first column.
	overflowCell = "◀██"
)

// DateRange returns one entry per calendar day from the project's creation
// day to its deadline day, both included. When the deadline falls before
// the creation day the range is the creation day alone.
func DateRange(p domain.Project) []time.Time {
	start := domain.StartOfDay(p.CreatedAt)
	end := domain.StartOfDay(p.Deadline.In(start.Location()))
	n := domain.DaysInclusive(start, end)
	if n == 0 {
		return []time.Time{start}
	}
	days := make([]time.Time, n)
	for i := range days {
		days[i] = domain.AddDays(start, i)
	}
	return days
}

// FormatChart renders a day grid over DateRange with one row per stage and
// task and a bar over the days each one occupies.
func FormatChart(p domain.Plan) string {
	days := DateRange(p.Project)

	type line struct {
		label      string
		start, end time.Time
		done       bool
	}
	var lines []line
	for i, s := range p.Stages {
		lines = append(lines, line{StageRef(i) + " " + s.Name, s.StartDate, s.EndDate, s.IsCompleted})
		for j, t := range s.Tasks {
			lines = append(lines, line{"  " + TaskRef(j) + " " + t.Name, t.StartDate, t.EndDate, t.IsCompleted})
		}
	}

	labelWidth := lipgloss.Width("DAY")
	for _, l := range lines {
		labelWidth = max(labelWidth, lipgloss.Width(l.label))
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", labelWidth-lipgloss.Width(s)+colGap)
	}

	var b strings.Builder
	b.WriteString(Dim(fmt.Sprintf("%s → %s", LongDate(days[0]), LongDate(days[len(days)-1]))))
	b.WriteString("\n")
	b.WriteString(pad(paint(StyleHeader, "DAY")))
	for _, d := range days {
		b.WriteString(paint(StyleHeader, fmt.Sprintf("%*d", cellWidth, d.Day())))
	}
	b.WriteString("\n")

	for _, l := range lines {
		b.WriteString(pad(l.label))
		b.WriteString(barRow(days, l.start, l.end, l.done))
		b.WriteString("\n")
	}
	return b.String()
}

func barRow(days []time.Time, start, end time.Time, done bool) string {
	if start.IsZero() || end.IsZero() {
		return strings.Repeat(emptyCell, len(days))
	}
	loc := days[0].Location()
	first := domain.StartOfDay(start.In(loc))
	last := domain.StartOfDay(end.In(loc))

	style := StyleBlue
	if done {
		style = StyleGreen
	}

	var b strings.Builder
	for i, d := range days {
		if d.Before(first) || d.After(last) {
			b.WriteString(emptyCell)
			continue
		}
		cell := barCell
		if i == 0 && first.Before(d) {
			cell = overflowCell
		}
		b.WriteString(paint(style, cell))
	}
	return b.String()
}
