package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/revgantt/internal/domain"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID, name string) error
	RemoveMember(ctx context.Context, teamID, name string) error
	ListMembers(ctx context.Context, teamID string) ([]string, error)
}

// StageRepo stores the stage/task tree of a project. Saves are full
// rewrites: the stored tree is replaced as a whole.
type StageRepo interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error)
	ReplaceAll(ctx context.Context, projectID string, stages []domain.Stage) error
}
