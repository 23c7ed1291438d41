package testutil

import (
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/google/uuid"
)

// Day returns noon UTC of the given day in March 2025. Fixtures use it so
// scheduled dates read as plain day numbers in assertions.
func Day(n int) time.Time {
	return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

// Project options
type ProjectOption func(*domain.Project)

func WithTeamID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.TeamID = id
	}
}

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Deadline = d
	}
}

func WithCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
		p.UpdatedAt = t
	}
}

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

// NewTestProject returns a project created on Day(1) with its deadline on
// Day(10).
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Deadline:  Day(10),
		CreatedAt: Day(1),
		UpdatedAt: Day(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Team options
type TeamOption func(*domain.Team)

func WithMembers(names ...string) TeamOption {
	return func(t *domain.Team) {
		t.Members = names
	}
}

func NewTestTeam(name string, opts ...TeamOption) *domain.Team {
	t := &domain.Team{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stage options
type StageOption func(*domain.Stage)

func WithStageID(id string) StageOption {
	return func(s *domain.Stage) {
		s.ID = id
	}
}

func WithStageDuration(d int) StageOption {
	return func(s *domain.Stage) {
		s.Duration = d
	}
}

func WithStageDeps(ids ...string) StageOption {
	return func(s *domain.Stage) {
		s.Dependencies = ids
	}
}

func WithTasks(tasks ...domain.Task) StageOption {
	return func(s *domain.Stage) {
		s.Tasks = tasks
	}
}

func WithStageResponsibles(names ...string) StageOption {
	return func(s *domain.Stage) {
		s.Responsibles = names
	}
}

func WithStageCompleted() StageOption {
	return func(s *domain.Stage) {
		s.IsCompleted = true
	}
}

func NewTestStage(name string, opts ...StageOption) domain.Stage {
	s := domain.Stage{
		ID:           uuid.New().String(),
		Name:         name,
		Duration:     1,
		Responsibles: []string{},
		Dependencies: []string{},
		Tasks:        []domain.Task{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithTaskDuration(d int) TaskOption {
	return func(t *domain.Task) {
		t.Duration = d
	}
}

func WithTaskDeps(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = ids
	}
}

func WithFeedback(f string) TaskOption {
	return func(t *domain.Task) {
		t.Feedback = f
	}
}

func NewTestTask(name string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:           uuid.New().String(),
		Name:         name,
		Duration:     1,
		Responsibles: []string{},
		Dependencies: []string{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestPlan bundles a project and its stages into an unscheduled snapshot.
func NewTestPlan(p *domain.Project, stages ...domain.Stage) domain.Plan {
	if stages == nil {
		stages = []domain.Stage{}
	}
	return domain.Plan{Project: *p, Stages: stages}
}
