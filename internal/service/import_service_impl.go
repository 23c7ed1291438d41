package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/alexanderramin/revgantt/internal/importer"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/google/uuid"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	newID    func() string
	now      func() time.Time
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

func (s *importService) ImportProject(ctx context.Context, filePath, teamID string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportProjectFromSchema(ctx, schema, teamID)
}

// ImportProjectFromSchema stores the project and its stage tree in one
// transaction, so a failed import leaves nothing behind.
func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema, teamID string) (result *ImportResult, err error) {
	fields := map[string]any{"project": schema.Project.Name}
	defer observe(ctx, s.observer, "import-project", fields, &err)()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema, teamID, s.newID, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		if err := repository.NewSQLiteStageRepo(tx).ReplaceAll(ctx, generated.Project.ID, generated.Stages); err != nil {
			return fmt.Errorf("creating stages: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{Project: generated.Project, StageCount: len(generated.Stages)}
	for _, st := range generated.Stages {
		result.TaskCount += len(st.Tasks)
		result.DependencyCount += len(st.Dependencies)
		for _, t := range st.Tasks {
			result.DependencyCount += len(t.Dependencies)
		}
	}
	fields["project_id"] = result.Project.ID
	fields["stage_count"] = result.StageCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, b.String())
}
