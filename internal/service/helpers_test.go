package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db       *sql.DB
	projects *repository.SQLiteProjectRepo
	teams    *repository.SQLiteTeamRepo
	stages   *repository.SQLiteStageRepo
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		teams:    repository.NewSQLiteTeamRepo(database),
		stages:   repository.NewSQLiteStageRepo(database),
	}
}

// seedPlan stores a project with two stages: Build (s2, 2 days) depends on
// Design (s1, 3 days), and Design holds Review (t2) depending on Sketch (t1).
func seedPlan(t *testing.T, r repos) *domain.Project {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Launch")
	require.NoError(t, r.projects.Create(ctx, proj))

	t1 := testutil.NewTestTask("Sketch", testutil.WithTaskID("t1"))
	t2 := testutil.NewTestTask("Review", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1"))
	design := testutil.NewTestStage("Design", testutil.WithStageID("s1"),
		testutil.WithStageDuration(3), testutil.WithTasks(t1, t2))
	build := testutil.NewTestStage("Build", testutil.WithStageID("s2"),
		testutil.WithStageDuration(2), testutil.WithStageDeps("s1"))
	require.NoError(t, r.stages.ReplaceAll(ctx, proj.ID, []domain.Stage{build, design}))
	return proj
}
