package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/alexanderramin/revgantt/internal/testutil"
	"github.com/alexanderramin/revgantt/internal/wire"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router   *gin.Engine
	project  *domain.Project
	team     *domain.Team
	stages   *repository.SQLiteStageRepo
	sessions *service.SessionManager
}

// failingPlans loads through the real service but fails every save.
type failingPlans struct {
	service.PlanService
	err error
}

func (f failingPlans) SaveStages(context.Context, string, []wire.StagePayload) error {
	return f.err
}

func setup(t *testing.T, wrap ...func(service.PlanService) service.PlanService) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	teams := repository.NewSQLiteTeamRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	stages := repository.NewSQLiteStageRepo(database)

	team := testutil.NewTestTeam("Core", testutil.WithMembers("Ann", "Bo"))
	require.NoError(t, teams.Create(ctx, team))
	proj := testutil.NewTestProject("Launch", testutil.WithTeamID(team.ID))
	require.NoError(t, projects.Create(ctx, proj))

	t1 := testutil.NewTestTask("Sketch", testutil.WithTaskID("t1"))
	t2 := testutil.NewTestTask("Review", testutil.WithTaskID("t2"), testutil.WithTaskDeps("t1"))
	design := testutil.NewTestStage("Design", testutil.WithStageID("s1"),
		testutil.WithStageDuration(3), testutil.WithTasks(t1, t2))
	build := testutil.NewTestStage("Build", testutil.WithStageID("s2"),
		testutil.WithStageDuration(2), testutil.WithStageDeps("s1"))
	require.NoError(t, stages.ReplaceAll(ctx, proj.ID, []domain.Stage{design, build}))

	var plans service.PlanService = service.NewPlanService(testutil.NewTestUoW(database))
	for _, w := range wrap {
		plans = w(plans)
	}
	sessions := service.NewSessionManager(plans, 0, logger)
	router := NewRouter(StartOpts{
		Sessions: sessions,
		Teams:    service.NewTeamService(teams, testutil.NewTestUoW(database)),
		Logger:   logger,
	})
	return fixture{router: router, project: proj, team: team, stages: stages, sessions: sessions}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodePlan(t *testing.T, w *httptest.ResponseRecorder) planResponse {
	t.Helper()
	var resp planResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// stageDoc finds a stage by id. Edits reorder stages, so tests never rely
// on positions after a dependency change.
func stageDoc(t *testing.T, stages []wire.StageDoc, id string) wire.StageDoc {
	t.Helper()
	for _, s := range stages {
		if string(s.ID) == id {
			return s
		}
	}
	require.Failf(t, "stage not found", "no stage %q", id)
	return wire.StageDoc{}
}

func taskDoc(t *testing.T, s wire.StageDoc, id string) wire.TaskDoc {
	t.Helper()
	for _, task := range s.Tasks {
		if string(task.ID) == id {
			return task
		}
	}
	require.Failf(t, "task not found", "no task %q in stage %q", id, s.ID)
	return wire.TaskDoc{}
}

func (f fixture) projectPath(suffix string) string {
	return "/api/v1/projects/" + f.project.ID + suffix
}

func TestTeamMembers(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/api/v1/teams/"+f.team.ID+"/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"members":["Ann","Bo"]}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/v1/teams/nope/members", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProject_ReturnsScheduledLoadShape(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, f.projectPath(""), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc wire.ProjectDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, f.project.ID, string(doc.ID))
	require.Len(t, doc.Stages, 2)
	assert.Equal(t, wire.IDList{"s1"}, doc.Stages[1].Dependencies)
	require.NotNil(t, doc.Stages[1].EndDate)
	assert.Equal(t, 10, doc.Stages[1].EndDate.Day())
	assert.Equal(t, 6, doc.Stages[0].StartDate.Day())
}

func TestGetProject_Unknown(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodGet, "/api/v1/projects/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddStage_ReschedulesDependencies(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, f.projectPath("/stages"), map[string]any{
		"id": "s3", "name": "Ship", "duration": 1, "dependencies": "s2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodePlan(t, w)
	stages := resp.Project.Stages
	require.Len(t, stages, 3)
	assert.Equal(t, "s3", string(stages[2].ID))
	assert.Equal(t, 10, stageDoc(t, stages, "s3").EndDate.Day())
	assert.Equal(t, 9, stageDoc(t, stages, "s2").EndDate.Day(), "Build now finishes before Ship starts")
	assert.Empty(t, resp.Warnings)
}

func TestAddStage_BadInput(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, f.projectPath("/stages"), map[string]any{"name": "Zero", "duration": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, f.projectPath("/stages"), "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStageDependencies_CycleIsWarningNotError(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPut, f.projectPath("/stages/s1/dependencies"), map[string]any{"dependencies": []any{"s2", "s1", "ghost"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodePlan(t, w)
	assert.Equal(t, wire.IDList{"s2", "ghost"}, stageDoc(t, resp.Project.Stages, "s1").Dependencies)
	var kinds []string
	for _, w := range resp.Warnings {
		kinds = append(kinds, w.Kind)
		assert.NotEmpty(t, w.Message)
	}
	assert.Contains(t, kinds, "cycle")
}

func TestPatchAndDeleteStage(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPatch, f.projectPath("/stages/s2"), map[string]any{"duration": 4, "is_completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodePlan(t, w)
	build := stageDoc(t, resp.Project.Stages, "s2")
	assert.Equal(t, 7, build.StartDate.Day())
	assert.True(t, build.IsCompleted)

	w = f.do(t, http.MethodDelete, f.projectPath("/stages/s1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodePlan(t, w)
	require.Len(t, resp.Project.Stages, 1)
	assert.Equal(t, wire.IDList{}, resp.Project.Stages[0].Dependencies)

	w = f.do(t, http.MethodDelete, f.projectPath("/stages/s1"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaskEndpoints(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, f.projectPath("/stages/s1/tasks"), map[string]any{
		"id": "t3", "name": "Polish", "duration": 1, "dependencies": []any{"t2"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	design := stageDoc(t, decodePlan(t, w).Project.Stages, "s1")
	require.Len(t, design.Tasks, 3)
	assert.Equal(t, 8, taskDoc(t, design, "t3").EndDate.Day())
	assert.Equal(t, 7, taskDoc(t, design, "t2").EndDate.Day())

	w = f.do(t, http.MethodPut, f.projectPath("/stages/s1/tasks/t3/dependencies"), map[string]any{"dependencies": nil})
	require.Equal(t, http.StatusOK, w.Code)
	design = stageDoc(t, decodePlan(t, w).Project.Stages, "s1")
	assert.Equal(t, wire.IDList{}, taskDoc(t, design, "t3").Dependencies)

	w = f.do(t, http.MethodPatch, f.projectPath("/stages/s1/tasks/t1"), map[string]any{"name": "Sketches"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, f.projectPath("/stages/s1/tasks/t1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	design = stageDoc(t, decodePlan(t, w).Project.Stages, "s1")
	require.Len(t, design.Tasks, 2)
	assert.Equal(t, wire.IDList{}, taskDoc(t, design, "t2").Dependencies, "t2 no longer names t1")

	w = f.do(t, http.MethodPatch, f.projectPath("/stages/s1/tasks/ghost"), map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLinkAndCandidates(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, f.projectPath("/stages/s2/tasks"), map[string]any{"id": "b1", "name": "Code", "duration": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, f.projectPath("/stages/s1/candidates"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cands struct {
		Candidates []candidateDoc `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cands))
	require.Len(t, cands.Candidates, 2)
	for _, c := range cands.Candidates {
		assert.True(t, c.Disabled, "%s: self or would close a cycle", c.ID)
	}

	w = f.do(t, http.MethodPost, f.projectPath("/stages/s1/tasks/t1/link"), map[string]any{"dragged": "t2"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodePlan(t, w)
	design := stageDoc(t, resp.Project.Stages, "s1")
	assert.Equal(t, wire.IDList{"t2"}, taskDoc(t, design, "t1").Dependencies)
	assert.NotEmpty(t, resp.Warnings, "t1 and t2 now form a cycle")

	w = f.do(t, http.MethodGet, f.projectPath("/stages/s1/tasks/t1/candidates"), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSave_FlushesSessionToStore(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPatch, f.projectPath("/stages/s1"), map[string]any{"name": "Discovery"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, f.projectPath("/save"), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err := f.stages.ListByProject(context.Background(), f.project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Discovery", stored[0].Name)
}

func TestSave_FailureIsBadGatewayAndKeepsEdits(t *testing.T) {
	f := setup(t, func(p service.PlanService) service.PlanService {
		return failingPlans{PlanService: p, err: errors.New("database is locked")}
	})

	w := f.do(t, http.MethodPatch, f.projectPath("/stages/s1"), map[string]any{"name": "Discovery"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, f.projectPath("/save"), nil)
	require.Equal(t, http.StatusBadGateway, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(service.SaveErrStorage), body.Code)
	assert.Contains(t, body.Error, "database is locked")

	w = f.do(t, http.MethodGet, f.projectPath("/schedule"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Discovery", stageDoc(t, decodePlan(t, w).Project.Stages, "s1").Name)
}

func TestReplaceStages_PositionalPayload(t *testing.T) {
	f := setup(t)

	// Open a session first so the replace has something to invalidate.
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, f.projectPath("/schedule"), nil).Code)

	payload := `[
		{"name": "Plan", "duration": 1, "dependencies": null, "tasks": []},
		{"name": "Do", "duration": 2, "dependencies": 0,
		 "tasks": [{"name": "A", "duration": 1}, {"name": "B", "duration": 1, "dependencies": [10000]}]}
	]`
	w := f.do(t, http.MethodPut, f.projectPath("/stages"), payload)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, f.projectPath("/schedule"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	stages := decodePlan(t, w).Project.Stages
	require.Len(t, stages, 2)
	assert.Equal(t, "Plan", stages[0].Name)
	assert.Equal(t, wire.IDList{string(stages[0].ID)}, stages[1].Dependencies)
	assert.Equal(t, wire.IDList{string(stages[1].Tasks[0].ID)}, stages[1].Tasks[1].Dependencies)
}

func TestReplaceStages_Errors(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPut, f.projectPath("/stages"), `[{"name": "Zero", "duration": 0}]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/projects/nope/stages", `[]`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, f.projectPath("/stages"), `{"not": "a list"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{editor.ErrTaskNotFound, http.StatusNotFound},
		{editor.ErrInvalidDuration, http.StatusBadRequest},
		{domain.ErrInvalidProject, http.StatusBadRequest},
		{service.NewSaveError("p", errors.New("io")), http.StatusBadGateway},
		{service.ErrSessionClosed, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestStart_RequiresServices(t *testing.T) {
	err := Start(context.Background(), StartOpts{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
