package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		team_id  TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		name     TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (team_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		team_id    TEXT REFERENCES teams(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		deadline   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_team ON projects(team_id)`,

	`CREATE TABLE IF NOT EXISTS stages (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		order_index  INTEGER NOT NULL DEFAULT 0,
		name         TEXT NOT NULL,
		duration     INTEGER NOT NULL CHECK(duration >= 1),
		is_completed INTEGER NOT NULL DEFAULT 0,
		responsibles TEXT NOT NULL DEFAULT '[]',
		feedback     TEXT,
		dependencies TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stages_project ON stages(project_id, order_index)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT NOT NULL,
		stage_id     TEXT NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		order_index  INTEGER NOT NULL DEFAULT 0,
		name         TEXT NOT NULL,
		duration     INTEGER NOT NULL CHECK(duration >= 1),
		is_completed INTEGER NOT NULL DEFAULT 0,
		responsibles TEXT NOT NULL DEFAULT '[]',
		feedback     TEXT,
		dependencies TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (stage_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_stage ON tasks(stage_id, order_index)`,

	// Description was added after the first release.
	`ALTER TABLE projects ADD COLUMN description TEXT NOT NULL DEFAULT ''`,
}
