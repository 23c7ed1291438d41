package importer

import (
	"cmp"
	"fmt"
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
)

// GeneratedProject is a converted import, ready for persistence.
type GeneratedProject struct {
	Project *domain.Project
	Stages  []domain.Stage
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Every stage and task gets an id from newID. teamID, when not
// empty, overrides the file's team. Call ValidateImportSchema first; Convert
// assumes the schema is valid.
func Convert(schema *ImportSchema, teamID string, newID func() string, now time.Time) (*GeneratedProject, error) {
	deadline, err := time.Parse(dateLayout, schema.Project.Deadline)
	if err != nil {
		return nil, fmt.Errorf("parsing deadline: %w", err)
	}
	created := now.UTC()
	if schema.Project.Created != nil {
		created, err = time.Parse(dateLayout, *schema.Project.Created)
		if err != nil {
			return nil, fmt.Errorf("parsing created: %w", err)
		}
	}

	project := &domain.Project{
		ID:          newID(),
		TeamID:      cmp.Or(teamID, schema.Project.TeamID),
		Name:        schema.Project.Name,
		Description: schema.Project.Description,
		Deadline:    deadline,
		CreatedAt:   created,
		UpdatedAt:   now.UTC(),
	}

	defaults := DefaultsImport{}
	if schema.Defaults != nil {
		defaults = *schema.Defaults
	}

	stageIDs := make(map[string]string, len(schema.Stages)) // ref -> id
	for _, s := range schema.Stages {
		stageIDs[s.Ref] = newID()
	}

	stages := make([]domain.Stage, 0, len(schema.Stages))
	for _, s := range schema.Stages {
		taskIDs := make(map[string]string, len(s.Tasks))
		for _, t := range s.Tasks {
			taskIDs[t.Ref] = newID()
		}

		tasks := make([]domain.Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			tasks = append(tasks, domain.Task{
				ID:           taskIDs[t.Ref],
				Name:         t.Name,
				Duration:     firstSet(1, t.Duration, defaults.Duration),
				IsCompleted:  firstSet(false, t.Completed),
				Responsibles: responsibles(t.Responsibles, defaults.Responsibles),
				Feedback:     t.Feedback,
				Dependencies: mapRefs(t.After, taskIDs),
			})
		}

		stages = append(stages, domain.Stage{
			ID:           stageIDs[s.Ref],
			Name:         s.Name,
			Duration:     firstSet(1, s.Duration, defaults.Duration),
			IsCompleted:  firstSet(false, s.Completed),
			Responsibles: responsibles(s.Responsibles, defaults.Responsibles),
			Feedback:     s.Feedback,
			Dependencies: mapRefs(s.After, stageIDs),
			Tasks:        tasks,
		})
	}

	return &GeneratedProject{Project: project, Stages: stages}, nil
}

func responsibles(own, fallback []string) []string {
	src := own
	if len(src) == 0 {
		src = fallback
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func mapRefs(refs []string, ids map[string]string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id, ok := ids[ref]; ok {
			out = append(out, id)
		}
	}
	return domain.NormalizeDependencies(out, "")
}

// firstSet returns the value of the first non-nil pointer, or fallback.
func firstSet[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
