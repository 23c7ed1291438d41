package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/alexanderramin/revgantt/internal/domain"
)

// SQLiteStageRepo implements StageRepo. Stage and task order is kept in
// order_index; list-valued fields are JSON arrays.
type SQLiteStageRepo struct {
	db db.DBTX
}

func NewSQLiteStageRepo(conn db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: conn}
}

func (r *SQLiteStageRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Stage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, duration, is_completed, responsibles, feedback, dependencies
		FROM stages WHERE project_id = ? ORDER BY order_index`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	stages := []domain.Stage{}
	pos := make(map[string]int)
	for rows.Next() {
		var s domain.Stage
		var completed int
		var people, deps string
		var feedback sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Duration, &completed, &people, &feedback, &deps); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		s.IsCompleted = intToBool(completed)
		s.Feedback = stringFromNull(feedback)
		if s.Responsibles, err = decodeStrings(people); err != nil {
			rows.Close()
			return nil, fmt.Errorf("stage %s responsibles: %w", s.ID, err)
		}
		if s.Dependencies, err = decodeStrings(deps); err != nil {
			rows.Close()
			return nil, fmt.Errorf("stage %s dependencies: %w", s.ID, err)
		}
		s.Tasks = []domain.Task{}
		pos[s.ID] = len(stages)
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	rows.Close()

	taskRows, err := r.db.QueryContext(ctx, `SELECT t.stage_id, t.id, t.name, t.duration, t.is_completed,
			t.responsibles, t.feedback, t.dependencies
		FROM tasks t JOIN stages s ON s.id = t.stage_id
		WHERE s.project_id = ?
		ORDER BY s.order_index, t.order_index`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var stageID string
		var t domain.Task
		var completed int
		var people, deps string
		var feedback sql.NullString
		if err := taskRows.Scan(&stageID, &t.ID, &t.Name, &t.Duration, &completed, &people, &feedback, &deps); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		t.IsCompleted = intToBool(completed)
		t.Feedback = stringFromNull(feedback)
		if t.Responsibles, err = decodeStrings(people); err != nil {
			return nil, fmt.Errorf("task %s responsibles: %w", t.ID, err)
		}
		if t.Dependencies, err = decodeStrings(deps); err != nil {
			return nil, fmt.Errorf("task %s dependencies: %w", t.ID, err)
		}
		i, ok := pos[stageID]
		if !ok {
			continue
		}
		stages[i].Tasks = append(stages[i].Tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return stages, nil
}

// ReplaceAll deletes the stored tree of projectID and writes stages in
// their slice order. Run it inside a unit of work so a failure leaves the
// previous tree intact.
func (r *SQLiteStageRepo) ReplaceAll(ctx context.Context, projectID string, stages []domain.Stage) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks
		WHERE stage_id IN (SELECT id FROM stages WHERE project_id = ?)`, projectID)
	if err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing stages: %w", err)
	}
	for i, s := range stages {
		people, err := encodeStrings(s.Responsibles)
		if err != nil {
			return err
		}
		deps, err := encodeStrings(s.Dependencies)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, `INSERT INTO stages
			(id, project_id, order_index, name, duration, is_completed, responsibles, feedback, dependencies)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, projectID, i, s.Name, s.Duration, boolToInt(s.IsCompleted), people, nullableString(s.Feedback), deps)
		if err != nil {
			return fmt.Errorf("inserting stage %d: %w", i, err)
		}
		for j, t := range s.Tasks {
			if err := r.insertTask(ctx, s.ID, j, t); err != nil {
				return fmt.Errorf("inserting task %d of stage %d: %w", j, i, err)
			}
		}
	}
	return nil
}

func (r *SQLiteStageRepo) insertTask(ctx context.Context, stageID string, index int, t domain.Task) error {
	people, err := encodeStrings(t.Responsibles)
	if err != nil {
		return err
	}
	deps, err := encodeStrings(t.Dependencies)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO tasks
		(id, stage_id, order_index, name, duration, is_completed, responsibles, feedback, dependencies)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, stageID, index, t.Name, t.Duration, boolToInt(t.IsCompleted), people, nullableString(t.Feedback), deps)
	return err
}
