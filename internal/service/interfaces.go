package service

import (
	"context"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/importer"
	"github.com/alexanderramin/revgantt/internal/wire"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TeamService interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID, name string) error
	RemoveMember(ctx context.Context, teamID, name string) error
	// Members returns the display names offered as responsibles.
	Members(ctx context.Context, teamID string) ([]string, error)
}

// Persister stores a full positional rewrite of a project's stages.
type Persister interface {
	SaveStages(ctx context.Context, projectID string, payload []wire.StagePayload) error
}

type PlanService interface {
	Persister
	// Load reads a project with its stages and returns the ordered,
	// scheduled snapshot.
	Load(ctx context.Context, projectID string) (editor.Result, error)
}

// ImportResult summarises a project created from an import file.
type ImportResult struct {
	Project         *domain.Project
	StageCount      int
	TaskCount       int
	DependencyCount int
}

type ImportService interface {
	// ImportProject reads, validates and stores a project import file.
	// teamID, when not empty, overrides the team named in the file.
	ImportProject(ctx context.Context, filePath, teamID string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema, teamID string) (*ImportResult, error)
}
