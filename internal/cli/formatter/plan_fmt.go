package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/scheduler"
)

// StageRef is the positional reference of the stage at index i ("S1").
func StageRef(i int) string {
	return fmt.Sprintf("S%d", i+1)
}

// TaskRef is the positional reference of the task at index j ("T1").
func TaskRef(j int) string {
	return fmt.Sprintf("T%d", j+1)
}

// FormatSchedule renders a scheduled plan as one table: every stage row is
// followed by its tasks, indented. Dependencies are shown as positional
// references; ids that resolve to nothing are shown dimmed.
func FormatSchedule(p domain.Plan) string {
	headers := []string{"REF", "NAME", "DURATION", "START", "END", "STATUS", "AFTER", "RESPONSIBLE"}

	stageRefs := make(map[string]string, len(p.Stages))
	for i, s := range p.Stages {
		if _, dup := stageRefs[s.ID]; !dup {
			stageRefs[s.ID] = StageRef(i)
		}
	}

	var rows [][]string
	for i, s := range p.Stages {
		rows = append(rows, []string{
			StageRef(i),
			Bold(s.Name),
			DayCount(s.Duration),
			HumanDate(s.StartDate),
			HumanDate(s.EndDate),
			CompletionMark(s.IsCompleted),
			refList(s.Dependencies, stageRefs),
			orDash(strings.Join(s.Responsibles, ", ")),
		})

		taskRefs := make(map[string]string, len(s.Tasks))
		for j, t := range s.Tasks {
			if _, dup := taskRefs[t.ID]; !dup {
				taskRefs[t.ID] = TaskRef(j)
			}
		}
		for j, t := range s.Tasks {
			rows = append(rows, []string{
				"  " + TaskRef(j),
				t.Name,
				DayCount(t.Duration),
				HumanDate(t.StartDate),
				HumanDate(t.EndDate),
				CompletionMark(t.IsCompleted),
				refList(t.Dependencies, taskRefs),
				orDash(strings.Join(t.Responsibles, ", ")),
			})
		}
	}

	title := fmt.Sprintf("%s · due %s", p.Project.Name, LongDate(p.Project.Deadline))
	if len(rows) == 0 {
		return RenderBox(title, Dim("No stages yet."))
	}
	return RenderBox(title, RenderTable(headers, rows))
}

func refList(ids []string, refs map[string]string) string {
	if len(ids) == 0 {
		return Dim("--")
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if ref, ok := refs[id]; ok {
			out = append(out, ref)
			continue
		}
		out = append(out, Dim(id))
	}
	return strings.Join(out, ", ")
}

// FormatWarnings lists scheduling warnings, or returns "" when there are none.
func FormatWarnings(warnings []scheduler.Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Warnings"))
	b.WriteString("\n")
	for _, w := range warnings {
		b.WriteString(paint(StyleYellow, "! "))
		b.WriteString(w.String())
		b.WriteString("\n")
	}
	return b.String()
}
