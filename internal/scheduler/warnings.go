package scheduler

import (
	"fmt"

	"github.com/alexanderramin/revgantt/internal/domain"
)

type WarningKind string

const (
	// WarnCycle marks a dependency edge that was skipped because it closes a cycle.
	WarnCycle WarningKind = "cycle"
	// WarnCrossScopeReference marks a task dependency id that names a stage.
	WarnCrossScopeReference WarningKind = "cross_scope_reference"
	// WarnDegenerateRange marks a project whose deadline precedes its creation day.
	WarnDegenerateRange WarningKind = "degenerate_range"
)

type Pass string

const (
	PassSchedule Pass = "schedule"
	PassOrder    Pass = "order"
)

// Warning describes a recoverable problem met during a pass. Warnings never
// stop a pass.
type Warning struct {
	Kind    WarningKind
	Pass    Pass
	Entity  domain.EntityKind
	StageID string
	TaskID  string // set for task warnings
	RefID   string // the other end of the offending edge
}

func (w Warning) String() string {
	subject := "stage " + w.StageID
	if w.Entity == domain.EntityTask {
		subject = fmt.Sprintf("task %s in stage %s", w.TaskID, w.StageID)
	}
	switch w.Kind {
	case WarnCycle:
		return fmt.Sprintf("%s: circular dependency on %s detected, edge from %s skipped", w.Pass, w.RefID, subject)
	case WarnCrossScopeReference:
		return fmt.Sprintf("%s: %s lists stage %s as a task dependency, ignored", w.Pass, subject, w.RefID)
	case WarnDegenerateRange:
		return fmt.Sprintf("%s: deadline is before the creation day, everything placed on the creation day", w.Pass)
	default:
		return fmt.Sprintf("%s: %s: %s", w.Pass, w.Kind, subject)
	}
}
