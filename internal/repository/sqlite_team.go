package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/alexanderramin/revgantt/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo. Members are stored as display names
// in insertion order.
type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(conn db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: conn}
}

func (r *SQLiteTeamRepo) Create(ctx context.Context, t *domain.Team) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)`,
		t.ID, t.Name, formatTimestamp(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}
	for _, name := range t.Members {
		if err := r.AddMember(ctx, t.ID, name); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	var t domain.Team
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM teams WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning team: %w", err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.Members, err = r.ListMembers(ctx, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all teams without their members.
func (r *SQLiteTeamRepo) List(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		var t domain.Team
		var createdAtStr string
		if err := rows.Scan(&t.ID, &t.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

func (r *SQLiteTeamRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}
	return requireAffected(res, "team", id)
}

// AddMember appends a member; adding an existing name is a no-op.
func (r *SQLiteTeamRepo) AddMember(ctx context.Context, teamID, name string) error {
	query := `INSERT OR IGNORE INTO team_members (team_id, name, position)
		SELECT ?, ?, COALESCE(MAX(position), -1) + 1 FROM team_members WHERE team_id = ?`
	if _, err := r.db.ExecContext(ctx, query, teamID, name, teamID); err != nil {
		return fmt.Errorf("adding team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamRepo) RemoveMember(ctx context.Context, teamID, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE team_id = ? AND name = ?`, teamID, name)
	if err != nil {
		return fmt.Errorf("removing team member: %w", err)
	}
	return requireAffected(res, "team member", name)
}

func (r *SQLiteTeamRepo) ListMembers(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM team_members WHERE team_id = ? ORDER BY position`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		members = append(members, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return members, nil
}
