package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func TestProjectService_Create_AssignsIDAndTimestamps(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)
	ctx := context.Background()

	proj := &domain.Project{Name: "Launch", Deadline: testutil.Day(20)}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.False(t, proj.CreatedAt.IsZero())

	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", fetched.Name)
}

func TestProjectService_Create_KeepsBackdatedCreation(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)

	proj := &domain.Project{Name: "Backdated", Deadline: testutil.Day(20), CreatedAt: testutil.Day(2)}
	require.NoError(t, svc.Create(context.Background(), proj))
	assert.True(t, proj.CreatedAt.Equal(testutil.Day(2)))
}

func TestProjectService_Create_Invalid(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)

	tests := []struct {
		name string
		proj *domain.Project
	}{
		{"no name", &domain.Project{Deadline: testutil.Day(3)}},
		{"blank name", &domain.Project{Name: "  ", Deadline: testutil.Day(3)}},
		{"no deadline", &domain.Project{Name: "Launch"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tc.proj)
			assert.ErrorIs(t, err, domain.ErrInvalidProject)
		})
	}
}

func TestProjectService_UpdateAndDelete(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)
	ctx := context.Background()

	proj := testutil.NewTestProject("Draft")
	require.NoError(t, svc.Create(ctx, proj))

	proj.Deadline = testutil.Day(12)
	require.NoError(t, svc.Update(ctx, proj))
	fetched, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, fetched.Deadline.Day())

	require.NoError(t, svc.Delete(ctx, proj.ID))
	_, err = svc.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_DeadlineChangeReschedulesOnLoad(t *testing.T) {
	r := setupRepos(t)
	proj := seedPlan(t, r)
	projects := NewProjectService(r.projects)
	plans := NewPlanService(testutil.NewTestUoW(r.db))
	ctx := context.Background()

	proj.Deadline = testutil.Day(20)
	require.NoError(t, projects.Update(ctx, proj))

	result, err := plans.Load(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Plan.Stages[1].EndDate.Day())
	assert.Equal(t, 18, result.Plan.Stages[0].EndDate.Day())
}

func TestProjectService_ListByTeam(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	team := testutil.NewTestTeam("Core")
	require.NoError(t, r.teams.Create(ctx, team))

	svc := NewProjectService(r.projects)
	require.NoError(t, svc.Create(ctx, testutil.NewTestProject("A", testutil.WithTeamID(team.ID))))
	require.NoError(t, svc.Create(ctx, testutil.NewTestProject("B")))

	got, err := svc.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectService_ObservesUseCases(t *testing.T) {
	r := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewProjectService(r.projects, obs)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testutil.NewTestProject("Seen")))
	require.Error(t, svc.Create(ctx, &domain.Project{}))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "create-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, domain.ErrInvalidProject)
}

func TestLogUseCaseObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "save-stages",
		Success: true,
		Fields:  map[string]any{"project_id": "p1"},
	})

	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=save-stages")
	assert.Contains(t, out, "project_id=p1")
}

func TestNewLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
