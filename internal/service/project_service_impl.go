package service

import (
	"context"
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{projects: projects, observer: useCaseObserverOrNoop(observers)}
}

// Create stores a new project. CreatedAt is kept when the caller set it, so
// a plan can be back-dated.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "create-project", map[string]any{"project": p.Name}, &err)()

	if err = p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ListByTeam(ctx context.Context, teamID string) ([]*domain.Project, error) {
	return s.projects.ListByTeam(ctx, teamID)
}

// Update stores changed project fields. Schedules are derived on load, so a
// new deadline takes effect the next time the plan is loaded.
func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "update-project", map[string]any{"project_id": p.ID}, &err)()

	if err = p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-project", map[string]any{"project_id": id}, &err)()
	return s.projects.Delete(ctx, id)
}
