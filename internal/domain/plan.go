package domain

import "time"

// Task is a leaf item inside exactly one stage. Its ID is only unique within
// that stage, and its Dependencies name sibling tasks.
type Task struct {
	ID           string
	Name         string
	Duration     int // whole days, >= 1
	IsCompleted  bool
	Responsibles []string
	Feedback     string
	Dependencies []string

	// Derived by the scheduler.
	StartDate time.Time
	EndDate   time.Time
}

// Stage is a top-level container. Its Dependencies name other stages.
type Stage struct {
	ID           string
	Name         string
	Duration     int // whole days, >= 1
	IsCompleted  bool
	Responsibles []string
	Feedback     string
	Dependencies []string
	Tasks        []Task

	// Derived by the scheduler.
	StartDate time.Time
	EndDate   time.Time
}

// Plan is one snapshot of a project's stages in display order. Snapshots are
// never edited in place; edits work on a Clone.
type Plan struct {
	Project Project
	Stages  []Stage
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	t.Responsibles = cloneStrings(t.Responsibles)
	t.Dependencies = cloneStrings(t.Dependencies)
	return t
}

// Clone returns a deep copy of the stage, tasks included.
func (s Stage) Clone() Stage {
	s.Responsibles = cloneStrings(s.Responsibles)
	s.Dependencies = cloneStrings(s.Dependencies)
	if s.Tasks != nil {
		tasks := make([]Task, len(s.Tasks))
		for i, t := range s.Tasks {
			tasks[i] = t.Clone()
		}
		s.Tasks = tasks
	}
	return s
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	if p.Stages != nil {
		stages := make([]Stage, len(p.Stages))
		for i, s := range p.Stages {
			stages[i] = s.Clone()
		}
		p.Stages = stages
	}
	return p
}

// StageIndex maps stage ID to position in p.Stages.
func (p Plan) StageIndex() map[string]int {
	idx := make(map[string]int, len(p.Stages))
	for i, s := range p.Stages {
		if _, dup := idx[s.ID]; !dup {
			idx[s.ID] = i
		}
	}
	return idx
}

// TaskIndex maps task ID to position in s.Tasks.
func (s Stage) TaskIndex() map[string]int {
	idx := make(map[string]int, len(s.Tasks))
	for i, t := range s.Tasks {
		if _, dup := idx[t.ID]; !dup {
			idx[t.ID] = i
		}
	}
	return idx
}

// FindStage returns the position of the stage with the given ID, or -1.
func (p Plan) FindStage(id string) int {
	for i := range p.Stages {
		if p.Stages[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the position of the task with the given ID, or -1.
func (s Stage) FindTask(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Scheduled reports whether every stage and task carries derived dates.
func (p Plan) Scheduled() bool {
	for _, s := range p.Stages {
		if s.StartDate.IsZero() || s.EndDate.IsZero() {
			return false
		}
		for _, t := range s.Tasks {
			if t.StartDate.IsZero() || t.EndDate.IsZero() {
				return false
			}
		}
	}
	return true
}

// NormalizeDependencies drops empty and self references and duplicates,
// keeping first-seen order. It always returns a non-nil slice.
func NormalizeDependencies(ids []string, self string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || id == self || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
