package wire

import (
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
)

// ProjectDoc is the project as the persistence layer returns it.
type ProjectDoc struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	TeamID      ID         `json:"team_id,omitempty"`
	Deadline    time.Time  `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	Stages      []StageDoc `json:"stages"`
}

type StageDoc struct {
	ID           ID         `json:"id"`
	Name         string     `json:"name"`
	Duration     int        `json:"duration"`
	IsCompleted  bool       `json:"is_completed"`
	Responsibles []string   `json:"responsibles"`
	Feedback     *string    `json:"feedback,omitempty"`
	Dependencies IDList     `json:"dependencies"`
	Tasks        []TaskDoc  `json:"tasks"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

type TaskDoc struct {
	ID           ID         `json:"id"`
	Name         string     `json:"name"`
	Duration     int        `json:"duration"`
	IsCompleted  bool       `json:"is_completed"`
	Responsibles []string   `json:"responsibles"`
	Feedback     *string    `json:"feedback,omitempty"`
	Dependencies IDList     `json:"dependencies"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// ToPlan converts a loaded document into an unscheduled snapshot with
// normalised dependency lists.
func (d ProjectDoc) ToPlan() domain.Plan {
	p := domain.Plan{
		Project: domain.Project{
			ID:          string(d.ID),
			TeamID:      string(d.TeamID),
			Name:        d.Name,
			Description: d.Description,
			Deadline:    d.Deadline,
			CreatedAt:   d.CreatedAt,
		},
		Stages: make([]domain.Stage, 0, len(d.Stages)),
	}
	for _, sd := range d.Stages {
		s := domain.Stage{
			ID:           string(sd.ID),
			Name:         sd.Name,
			Duration:     sd.Duration,
			IsCompleted:  sd.IsCompleted,
			Responsibles: nonNil(sd.Responsibles),
			Feedback:     deref(sd.Feedback),
			Dependencies: domain.NormalizeDependencies(sd.Dependencies.Strings(), string(sd.ID)),
			Tasks:        make([]domain.Task, 0, len(sd.Tasks)),
		}
		for _, td := range sd.Tasks {
			s.Tasks = append(s.Tasks, domain.Task{
				ID:           string(td.ID),
				Name:         td.Name,
				Duration:     td.Duration,
				IsCompleted:  td.IsCompleted,
				Responsibles: nonNil(td.Responsibles),
				Feedback:     deref(td.Feedback),
				Dependencies: domain.NormalizeDependencies(td.Dependencies.Strings(), string(td.ID)),
			})
		}
		p.Stages = append(p.Stages, s)
	}
	return p
}

// FromPlan builds the load document of p, including any scheduled dates.
func FromPlan(p domain.Plan) ProjectDoc {
	d := ProjectDoc{
		ID:          ID(p.Project.ID),
		TeamID:      ID(p.Project.TeamID),
		Name:        p.Project.Name,
		Description: p.Project.Description,
		Deadline:    p.Project.Deadline,
		CreatedAt:   p.Project.CreatedAt,
		Stages:      make([]StageDoc, 0, len(p.Stages)),
	}
	for _, s := range p.Stages {
		sd := StageDoc{
			ID:           ID(s.ID),
			Name:         s.Name,
			Duration:     s.Duration,
			IsCompleted:  s.IsCompleted,
			Responsibles: nonNil(s.Responsibles),
			Feedback:     ref(s.Feedback),
			Dependencies: IDList(nonNil(s.Dependencies)),
			Tasks:        make([]TaskDoc, 0, len(s.Tasks)),
			StartDate:    timeRef(s.StartDate),
			EndDate:      timeRef(s.EndDate),
		}
		for _, t := range s.Tasks {
			sd.Tasks = append(sd.Tasks, TaskDoc{
				ID:           ID(t.ID),
				Name:         t.Name,
				Duration:     t.Duration,
				IsCompleted:  t.IsCompleted,
				Responsibles: nonNil(t.Responsibles),
				Feedback:     ref(t.Feedback),
				Dependencies: IDList(nonNil(t.Dependencies)),
				StartDate:    timeRef(t.StartDate),
				EndDate:      timeRef(t.EndDate),
			})
		}
		d.Stages = append(d.Stages, sd)
	}
	return d
}

func nonNil(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timeRef(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
