package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/wire"
	"github.com/google/uuid"
)

type planService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	newID    func() string
}

// NewPlanService reads and writes stage trees through uow so a load sees one
// consistent tree and a save replaces it atomically.
func NewPlanService(uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		newID:    uuid.NewString,
	}
}

func (s *planService) Load(ctx context.Context, projectID string) (result editor.Result, err error) {
	fields := map[string]any{"project_id": projectID}
	defer observe(ctx, s.observer, "load-plan", fields, &err)()

	var plan domain.Plan
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		stages, err := repository.NewSQLiteStageRepo(tx).ListByProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("loading stages: %w", err)
		}
		plan = domain.Plan{Project: *project, Stages: stages}
		return nil
	})
	if err != nil {
		return editor.Result{}, err
	}

	result = editor.Recompute(plan)
	fields["stage_count"] = len(result.Plan.Stages)
	fields["warning_count"] = len(result.Warnings)
	return result, nil
}

// SaveStages decodes payload, assigning durable ids, and replaces the stored
// tree of the project. A failure leaves the stored tree as it was.
func (s *planService) SaveStages(ctx context.Context, projectID string, payload []wire.StagePayload) (err error) {
	fields := map[string]any{"project_id": projectID, "stage_count": len(payload)}
	defer observe(ctx, s.observer, "save-stages", fields, &err)()

	if err = validatePayload(payload); err != nil {
		return err
	}
	stages := wire.DecodeSave(payload, s.newID)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		project, err := projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteStageRepo(tx).ReplaceAll(ctx, projectID, stages); err != nil {
			return fmt.Errorf("replacing stages: %w", err)
		}
		project.UpdatedAt = time.Now().UTC()
		return projects.Update(ctx, project)
	})
}

func validatePayload(payload []wire.StagePayload) error {
	for i, sp := range payload {
		if !domain.ValidDuration(sp.Duration) {
			return fmt.Errorf("%w: stage %d has duration %d", ErrInvalidPayload, i, sp.Duration)
		}
		for j, tp := range sp.Tasks {
			if !domain.ValidDuration(tp.Duration) {
				return fmt.Errorf("%w: task %d of stage %d has duration %d", ErrInvalidPayload, j, i, tp.Duration)
			}
		}
	}
	return nil
}
