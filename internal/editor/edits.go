package editor

import (
	"strings"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/google/uuid"
)

// StageDraft holds the user-entered fields of a new stage. An empty ID gets
// a provisional one.
type StageDraft struct {
	ID           string
	Name         string
	Duration     int
	Responsibles []string
	Feedback     string
	Dependencies []string
}

// TaskDraft holds the user-entered fields of a new task.
type TaskDraft struct {
	ID           string
	Name         string
	Duration     int
	Responsibles []string
	Feedback     string
	Dependencies []string
}

// Patch lists the fields to change on a stage or task; nil fields are left
// alone.
type Patch struct {
	Name         *string
	Duration     *int
	Responsibles *[]string
	Feedback     *string
	Dependencies *[]string
	IsCompleted  *bool
}

// NewID returns a provisional id for an item that has not been saved yet.
func NewID() string {
	return uuid.NewString()
}

// SetStageDependencies replaces the dependency list of a stage. The list is
// deduplicated and self references are dropped; unknown ids are kept and
// treated as absent by the passes.
func SetStageDependencies(stageID string, ids []string) Edit {
	return func(p *domain.Plan) error {
		s, err := stageAt(p, stageID)
		if err != nil {
			return err
		}
		s.Dependencies = domain.NormalizeDependencies(ids, stageID)
		return nil
	}
}

// SetTaskDependencies replaces the dependency list of a task. Ids name
// sibling tasks in the same stage.
func SetTaskDependencies(stageID, taskID string, ids []string) Edit {
	return func(p *domain.Plan) error {
		_, t, err := taskAt(p, stageID, taskID)
		if err != nil {
			return err
		}
		t.Dependencies = domain.NormalizeDependencies(ids, taskID)
		return nil
	}
}

// AddStage appends a new, incomplete stage with no tasks.
func AddStage(d StageDraft) Edit {
	return func(p *domain.Plan) error {
		if strings.TrimSpace(d.Name) == "" {
			return ErrNameRequired
		}
		if err := checkDuration(d.Duration); err != nil {
			return err
		}
		id := d.ID
		if id == "" {
			id = NewID()
		}
		p.Stages = append(p.Stages, domain.Stage{
			ID:           id,
			Name:         d.Name,
			Duration:     d.Duration,
			Responsibles: cloneOrEmpty(d.Responsibles),
			Feedback:     d.Feedback,
			Dependencies: domain.NormalizeDependencies(d.Dependencies, id),
			Tasks:        []domain.Task{},
		})
		return nil
	}
}

// AddTask appends a new, incomplete task to a stage.
func AddTask(stageID string, d TaskDraft) Edit {
	return func(p *domain.Plan) error {
		s, err := stageAt(p, stageID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(d.Name) == "" {
			return ErrNameRequired
		}
		if err := checkDuration(d.Duration); err != nil {
			return err
		}
		id := d.ID
		if id == "" {
			id = NewID()
		}
		s.Tasks = append(s.Tasks, domain.Task{
			ID:           id,
			Name:         d.Name,
			Duration:     d.Duration,
			Responsibles: cloneOrEmpty(d.Responsibles),
			Feedback:     d.Feedback,
			Dependencies: domain.NormalizeDependencies(d.Dependencies, id),
		})
		return nil
	}
}

// DeleteStage removes a stage with its tasks and strips its id from every
// other stage's dependency list.
func DeleteStage(stageID string) Edit {
	return func(p *domain.Plan) error {
		i := p.FindStage(stageID)
		if i < 0 {
			return ErrStageNotFound
		}
		p.Stages = append(p.Stages[:i], p.Stages[i+1:]...)
		for j := range p.Stages {
			p.Stages[j].Dependencies = without(p.Stages[j].Dependencies, stageID)
		}
		return nil
	}
}

// DeleteTask removes a task and strips its id from its siblings' lists.
func DeleteTask(stageID, taskID string) Edit {
	return func(p *domain.Plan) error {
		s, err := stageAt(p, stageID)
		if err != nil {
			return err
		}
		j := s.FindTask(taskID)
		if j < 0 {
			return ErrTaskNotFound
		}
		s.Tasks = append(s.Tasks[:j], s.Tasks[j+1:]...)
		for k := range s.Tasks {
			s.Tasks[k].Dependencies = without(s.Tasks[k].Dependencies, taskID)
		}
		return nil
	}
}

func EditStageDuration(stageID string, days int) Edit {
	return UpdateStage(stageID, Patch{Duration: &days})
}

func EditTaskDuration(stageID, taskID string, days int) Edit {
	return UpdateTask(stageID, taskID, Patch{Duration: &days})
}

// UpdateStage changes the patched fields of a stage.
func UpdateStage(stageID string, patch Patch) Edit {
	return func(p *domain.Plan) error {
		s, err := stageAt(p, stageID)
		if err != nil {
			return err
		}
		if err := patch.validate(); err != nil {
			return err
		}
		if patch.Name != nil {
			s.Name = *patch.Name
		}
		if patch.Duration != nil {
			s.Duration = *patch.Duration
		}
		if patch.Responsibles != nil {
			s.Responsibles = cloneOrEmpty(*patch.Responsibles)
		}
		if patch.Feedback != nil {
			s.Feedback = *patch.Feedback
		}
		if patch.Dependencies != nil {
			s.Dependencies = domain.NormalizeDependencies(*patch.Dependencies, stageID)
		}
		if patch.IsCompleted != nil {
			s.IsCompleted = *patch.IsCompleted
		}
		return nil
	}
}

// UpdateTask changes the patched fields of a task.
func UpdateTask(stageID, taskID string, patch Patch) Edit {
	return func(p *domain.Plan) error {
		_, t, err := taskAt(p, stageID, taskID)
		if err != nil {
			return err
		}
		if err := patch.validate(); err != nil {
			return err
		}
		if patch.Name != nil {
			t.Name = *patch.Name
		}
		if patch.Duration != nil {
			t.Duration = *patch.Duration
		}
		if patch.Responsibles != nil {
			t.Responsibles = cloneOrEmpty(*patch.Responsibles)
		}
		if patch.Feedback != nil {
			t.Feedback = *patch.Feedback
		}
		if patch.Dependencies != nil {
			t.Dependencies = domain.NormalizeDependencies(*patch.Dependencies, taskID)
		}
		if patch.IsCompleted != nil {
			t.IsCompleted = *patch.IsCompleted
		}
		return nil
	}
}

func ToggleStageCompletion(stageID string) Edit {
	return func(p *domain.Plan) error {
		s, err := stageAt(p, stageID)
		if err != nil {
			return err
		}
		s.IsCompleted = !s.IsCompleted
		return nil
	}
}

func ToggleTaskCompletion(stageID, taskID string) Edit {
	return func(p *domain.Plan) error {
		_, t, err := taskAt(p, stageID, taskID)
		if err != nil {
			return err
		}
		t.IsCompleted = !t.IsCompleted
		return nil
	}
}

// LinkStage makes target depend on dragged, moving dragged to the end of
// target's dependency list. Dropping a stage on itself changes nothing.
func LinkStage(draggedID, targetID string) Edit {
	return func(p *domain.Plan) error {
		if _, err := stageAt(p, draggedID); err != nil {
			return err
		}
		target, err := stageAt(p, targetID)
		if err != nil {
			return err
		}
		if draggedID == targetID {
			return nil
		}
		target.Dependencies = append(without(target.Dependencies, draggedID), draggedID)
		return nil
	}
}

// LinkTask is LinkStage for two tasks of the same stage.
func LinkTask(stageID, draggedID, targetID string) Edit {
	return func(p *domain.Plan) error {
		s, err := stageAt(p, stageID)
		if err != nil {
			return err
		}
		if s.FindTask(draggedID) < 0 {
			return ErrTaskNotFound
		}
		j := s.FindTask(targetID)
		if j < 0 {
			return ErrTaskNotFound
		}
		if draggedID == targetID {
			return nil
		}
		target := &s.Tasks[j]
		target.Dependencies = append(without(target.Dependencies, draggedID), draggedID)
		return nil
	}
}

// SetProject replaces the project header, e.g. after a deadline change.
func SetProject(project domain.Project) Edit {
	return func(p *domain.Plan) error {
		p.Project = project
		return nil
	}
}

func (patch Patch) validate() error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrNameRequired
	}
	if patch.Duration != nil {
		return checkDuration(*patch.Duration)
	}
	return nil
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func cloneOrEmpty(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
