// Package editor applies structural and dependency edits to plan snapshots.
// Every edit works on a copy and funnels through ordering and scheduling
// before the new snapshot is handed back, so callers never see dates that
// are stale with respect to the latest edit.
package editor

import (
	"errors"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/scheduler"
)

var (
	ErrStageNotFound   = errors.New("stage not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidDuration = errors.New("duration must be at least 1 day")
	ErrNameRequired    = errors.New("name is required")
)

// Result is a recomputed snapshot and the warnings of the passes that
// produced it.
type Result struct {
	Plan     domain.Plan
	Warnings []scheduler.Warning
}

// Edit mutates a private copy of a plan. Edits return an error only when
// their target does not exist or a field value is unusable.
type Edit func(p *domain.Plan) error

// Apply runs the edits in order against a copy of p and recomputes the
// result. If any edit fails, p is returned untouched alongside the error.
func Apply(p domain.Plan, edits ...Edit) (Result, error) {
	next := p.Clone()
	for _, edit := range edits {
		if err := edit(&next); err != nil {
			return Result{Plan: p}, err
		}
	}
	return Recompute(next), nil
}

// Recompute orders and schedules p without editing it.
func Recompute(p domain.Plan) Result {
	ordered, orderWarns := scheduler.Order(p)
	scheduled, schedWarns := scheduler.Schedule(ordered)
	return Result{
		Plan:     scheduled,
		Warnings: append(orderWarns, schedWarns...),
	}
}

func stageAt(p *domain.Plan, stageID string) (*domain.Stage, error) {
	i := p.FindStage(stageID)
	if i < 0 {
		return nil, ErrStageNotFound
	}
	return &p.Stages[i], nil
}

func taskAt(p *domain.Plan, stageID, taskID string) (*domain.Stage, *domain.Task, error) {
	s, err := stageAt(p, stageID)
	if err != nil {
		return nil, nil, err
	}
	j := s.FindTask(taskID)
	if j < 0 {
		return nil, nil, ErrTaskNotFound
	}
	return s, &s.Tasks[j], nil
}

func checkDuration(d int) error {
	if !domain.ValidDuration(d) {
		return ErrInvalidDuration
	}
	return nil
}
