package editor

import (
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/scheduler"
)

// Candidate is one entry of a dependency picker.
type Candidate struct {
	ID       string
	Name     string
	Selected bool // already a dependency
	Disabled bool // the item itself, or picking it would close a cycle
}

// AvailableStageDependencies lists every stage of p as a possible dependency
// of stageID.
func AvailableStageDependencies(p domain.Plan, stageID string) ([]Candidate, error) {
	i := p.FindStage(stageID)
	if i < 0 {
		return nil, ErrStageNotFound
	}
	selected := toSet(p.Stages[i].Dependencies)
	out := make([]Candidate, 0, len(p.Stages))
	for _, s := range p.Stages {
		out = append(out, Candidate{
			ID:       s.ID,
			Name:     s.Name,
			Selected: selected[s.ID],
			Disabled: scheduler.WouldCycle(p, stageID, s.ID),
		})
	}
	return out, nil
}

// AvailableTaskDependencies lists the siblings of taskID as possible
// dependencies.
func AvailableTaskDependencies(p domain.Plan, stageID, taskID string) ([]Candidate, error) {
	i := p.FindStage(stageID)
	if i < 0 {
		return nil, ErrStageNotFound
	}
	s := p.Stages[i]
	j := s.FindTask(taskID)
	if j < 0 {
		return nil, ErrTaskNotFound
	}
	selected := toSet(s.Tasks[j].Dependencies)
	out := make([]Candidate, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out = append(out, Candidate{
			ID:       t.ID,
			Name:     t.Name,
			Selected: selected[t.ID],
			Disabled: scheduler.WouldCycleTask(s, taskID, t.ID),
		})
	}
	return out, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
