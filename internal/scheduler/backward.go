package scheduler

import (
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
)

// Schedule derives StartDate and EndDate for every stage and task of p,
// working backward from the project deadline, and returns the scheduled copy.
//
// An item with no dependents ends at the deadline (tasks: at their stage's
// end). An item that others depend on ends the day before the earliest start
// among its dependents. Start is end minus (duration-1) days. Running
// Schedule on its own output yields the same dates.
func Schedule(p domain.Plan) (domain.Plan, []Warning) {
	out := p.Clone()

	if out.Project.Degenerate() {
		placeOnCreationDay(&out)
		return out, []Warning{{Kind: WarnDegenerateRange, Pass: PassSchedule}}
	}

	var warns []Warning
	deadline := out.Project.DeadlineEnd()
	stageIdx := out.StageIndex()
	dependents := stageDependents(out.Stages, stageIdx)

	var w *Walker
	w = NewWalker(
		func(id string) []string { return dependents[id] },
		func(id string) {
			s := &out.Stages[stageIdx[id]]
			end := deadline
			if start, ok := earliestStart(w, dependents[id], func(dep string) time.Time {
				return out.Stages[stageIdx[dep]].StartDate
			}); ok {
				end = dayBefore(start)
			}
			s.EndDate = end
			s.StartDate = startFor(end, s.Duration)
			warns = append(warns, scheduleTasks(s, stageIdx)...)
		},
		func(from, to string) {
			warns = append(warns, Warning{
				Kind: WarnCycle, Pass: PassSchedule, Entity: domain.EntityStage,
				StageID: from, RefID: to,
			})
		},
	)

	for _, s := range out.Stages {
		if len(resolveStageDeps(s, stageIdx)) == 0 {
			w.Visit(s.ID)
		}
	}
	for _, s := range out.Stages {
		w.Visit(s.ID)
	}

	return out, warns
}

// scheduleTasks places the tasks of s inside [.., s.EndDate]. Only sibling
// task ids count as task dependencies.
func scheduleTasks(s *domain.Stage, stageIdx map[string]int) []Warning {
	var warns []Warning
	taskIdx := s.TaskIndex()
	dependents := make(map[string][]string, len(s.Tasks))
	for _, t := range s.Tasks {
		for _, dep := range domain.NormalizeDependencies(t.Dependencies, t.ID) {
			if _, ok := taskIdx[dep]; ok {
				dependents[dep] = append(dependents[dep], t.ID)
				continue
			}
			if _, isStage := stageIdx[dep]; isStage {
				warns = append(warns, Warning{
					Kind: WarnCrossScopeReference, Pass: PassSchedule, Entity: domain.EntityTask,
					StageID: s.ID, TaskID: t.ID, RefID: dep,
				})
			}
		}
	}

	var w *Walker
	w = NewWalker(
		func(id string) []string { return dependents[id] },
		func(id string) {
			t := &s.Tasks[taskIdx[id]]
			end := s.EndDate
			if start, ok := earliestStart(w, dependents[id], func(dep string) time.Time {
				return s.Tasks[taskIdx[dep]].StartDate
			}); ok {
				end = dayBefore(start)
			}
			t.EndDate = end
			t.StartDate = startFor(end, t.Duration)
		},
		func(from, to string) {
			warns = append(warns, Warning{
				Kind: WarnCycle, Pass: PassSchedule, Entity: domain.EntityTask,
				StageID: s.ID, TaskID: from, RefID: to,
			})
		},
	)
	for _, t := range s.Tasks {
		w.Visit(t.ID)
	}
	return warns
}

// stageDependents inverts the stage dependency lists: for each stage id, the
// ids of the stages that depend on it, in plan order.
func stageDependents(stages []domain.Stage, stageIdx map[string]int) map[string][]string {
	dependents := make(map[string][]string, len(stages))
	for _, s := range stages {
		for _, dep := range resolveStageDeps(s, stageIdx) {
			dependents[dep] = append(dependents[dep], s.ID)
		}
	}
	return dependents
}

// resolveStageDeps returns the dependency ids of s that name another stage.
func resolveStageDeps(s domain.Stage, stageIdx map[string]int) []string {
	deps := domain.NormalizeDependencies(s.Dependencies, s.ID)
	out := deps[:0]
	for _, dep := range deps {
		if _, ok := stageIdx[dep]; ok {
			out = append(out, dep)
		}
	}
	return out
}

// earliestStart returns the minimum start among the dependents that the
// walker has already finalized. Dependents still in progress sit on a cycle
// and are left out, which drops exactly the cyclic edge.
func earliestStart(w *Walker, dependents []string, startOf func(id string) time.Time) (time.Time, bool) {
	var minStart time.Time
	found := false
	for _, dep := range dependents {
		if w.State(dep) != Done {
			continue
		}
		start := startOf(dep)
		if !found || start.Before(minStart) {
			minStart = start
			found = true
		}
	}
	return minStart, found
}

func dayBefore(t time.Time) time.Time {
	return domain.EndOfDay(domain.AddDays(t, -1))
}

func startFor(end time.Time, duration int) time.Time {
	if duration < domain.MinDuration {
		duration = domain.MinDuration
	}
	return domain.StartOfDay(domain.AddDays(end, -(duration - 1)))
}

func placeOnCreationDay(p *domain.Plan) {
	start := domain.StartOfDay(p.Project.CreatedAt)
	end := domain.EndOfDay(p.Project.CreatedAt)
	for i := range p.Stages {
		s := &p.Stages[i]
		s.StartDate, s.EndDate = start, end
		for j := range s.Tasks {
			s.Tasks[j].StartDate, s.Tasks[j].EndDate = start, end
		}
	}
}
