package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
)

// FormatProjectList renders projects inside a bordered box. teamNames maps
// team ids to display names; unknown ids fall back to a short id.
func FormatProjectList(projects []*domain.Project, teamNames map[string]string) string {
	headers := []string{"ID", "NAME", "TEAM", "CREATED", "DEADLINE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			teamLabel(p.TeamID, teamNames),
			LongDate(p.CreatedAt),
			deadlineLabel(p),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectCard renders one project's fields and a summary of its plan.
func FormatProjectCard(p domain.Plan, teamName string) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%-9s", label)), value)
	}

	b.WriteString(Bold(p.Project.Name) + "\n\n")
	field("ID", p.Project.ID)
	field("TEAM", orDash(teamName))
	field("CREATED", LongDate(p.Project.CreatedAt))
	field("DEADLINE", deadlineLabel(&p.Project))

	tasks, done := 0, 0
	for _, s := range p.Stages {
		tasks += len(s.Tasks)
		if s.IsCompleted {
			done++
		}
	}
	field("STAGES", fmt.Sprintf("%d (%d done, %d tasks)", len(p.Stages), done, tasks))
	if start, ok := earliestStart(p); ok {
		field("STARTS", LongDate(start))
	}
	if d := strings.TrimSpace(p.Project.Description); d != "" {
		b.WriteString("\n" + d + "\n")
	}
	return RenderBox("", b.String())
}

func teamLabel(id string, names map[string]string) string {
	if id == "" {
		return Dim("--")
	}
	if name, ok := names[id]; ok {
		return name
	}
	return TruncID(id)
}

func deadlineLabel(p *domain.Project) string {
	label := LongDate(p.Deadline)
	if p.Degenerate() {
		return paint(StyleRed, label+" (before creation)")
	}
	return label
}

// earliestStart is the first scheduled day of the plan.
func earliestStart(p domain.Plan) (time.Time, bool) {
	var first time.Time
	for _, s := range p.Stages {
		if s.StartDate.IsZero() {
			continue
		}
		if first.IsZero() || s.StartDate.Before(first) {
			first = s.StartDate
		}
	}
	return first, !first.IsZero()
}
