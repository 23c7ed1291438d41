package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/scheduler"
	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/alexanderramin/revgantt/internal/wire"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	sessions *service.SessionManager
	teams    service.TeamService
}

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, h *handlers) {
	v1 := router.Group("/api/v1")

	v1.GET("/teams/:id/members", h.teamMembers)

	// Persistence.
	v1.GET("/projects/:id", h.project)
	v1.PUT("/projects/:id/stages", h.replaceStages)
	v1.POST("/projects/:id/save", h.save)

	// Editing session.
	v1.GET("/projects/:id/schedule", h.schedule)
	v1.POST("/projects/:id/stages", h.edit(http.StatusCreated, addStage))
	v1.PATCH("/projects/:id/stages/:stage", h.edit(http.StatusOK, patchStage))
	v1.DELETE("/projects/:id/stages/:stage", h.edit(http.StatusOK, deleteStage))
	v1.PUT("/projects/:id/stages/:stage/dependencies", h.edit(http.StatusOK, stageDependencies))
	v1.POST("/projects/:id/stages/:stage/link", h.edit(http.StatusOK, linkStage))
	v1.GET("/projects/:id/stages/:stage/candidates", h.stageCandidates)

	v1.POST("/projects/:id/stages/:stage/tasks", h.edit(http.StatusCreated, addTask))
	v1.PATCH("/projects/:id/stages/:stage/tasks/:task", h.edit(http.StatusOK, patchTask))
	v1.DELETE("/projects/:id/stages/:stage/tasks/:task", h.edit(http.StatusOK, deleteTask))
	v1.PUT("/projects/:id/stages/:stage/tasks/:task/dependencies", h.edit(http.StatusOK, taskDependencies))
	v1.POST("/projects/:id/stages/:stage/tasks/:task/link", h.edit(http.StatusOK, linkTask))
	v1.GET("/projects/:id/stages/:stage/tasks/:task/candidates", h.taskCandidates)
}

type itemRequest struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Duration     int         `json:"duration"`
	Responsibles []string    `json:"responsibles"`
	Feedback     string      `json:"feedback"`
	Dependencies wire.IDList `json:"dependencies"`
}

type patchRequest struct {
	Name         *string      `json:"name"`
	Duration     *int         `json:"duration"`
	Responsibles *[]string    `json:"responsibles"`
	Feedback     *string      `json:"feedback"`
	Dependencies *wire.IDList `json:"dependencies"`
	IsCompleted  *bool        `json:"is_completed"`
}

func (r patchRequest) patch() editor.Patch {
	p := editor.Patch{
		Name:         r.Name,
		Duration:     r.Duration,
		Responsibles: r.Responsibles,
		Feedback:     r.Feedback,
		IsCompleted:  r.IsCompleted,
	}
	if r.Dependencies != nil {
		deps := r.Dependencies.Strings()
		p.Dependencies = &deps
	}
	return p
}

type dependenciesRequest struct {
	Dependencies wire.IDList `json:"dependencies"`
}

type linkRequest struct {
	Dragged wire.ID `json:"dragged"`
}

type warningDoc struct {
	Kind    string `json:"kind"`
	Pass    string `json:"pass"`
	Entity  string `json:"entity"`
	StageID string `json:"stage_id,omitempty"`
	TaskID  string `json:"task_id,omitempty"`
	RefID   string `json:"ref_id,omitempty"`
	Message string `json:"message"`
}

type planResponse struct {
	Project  wire.ProjectDoc `json:"project"`
	Warnings []warningDoc    `json:"warnings"`
}

type candidateDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
}

func toResponse(res editor.Result) planResponse {
	return planResponse{
		Project:  wire.FromPlan(res.Plan),
		Warnings: toWarningDocs(res.Warnings),
	}
}

func toWarningDocs(warnings []scheduler.Warning) []warningDoc {
	out := make([]warningDoc, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, warningDoc{
			Kind:    string(w.Kind),
			Pass:    string(w.Pass),
			Entity:  string(w.Entity),
			StageID: w.StageID,
			TaskID:  w.TaskID,
			RefID:   w.RefID,
			Message: w.String(),
		})
	}
	return out
}

func toCandidateDocs(cands []editor.Candidate) []candidateDoc {
	out := make([]candidateDoc, 0, len(cands))
	for _, c := range cands {
		out = append(out, candidateDoc{ID: c.ID, Name: c.Name, Selected: c.Selected, Disabled: c.Disabled})
	}
	return out
}

func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (h *handlers) teamMembers(c *gin.Context) {
	members, err := h.teams.Members(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *handlers) session(c *gin.Context) (*service.EditSession, bool) {
	s, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return s, true
}

func (h *handlers) project(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wire.FromPlan(s.Snapshot().Plan))
}

func (h *handlers) schedule(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(s.Snapshot()))
}

// replaceStages stores a positional payload as the project's new tree. The
// open session is discarded before the write, so the next request reloads
// the stored tree.
func (h *handlers) replaceStages(c *gin.Context) {
	var payload []wire.StagePayload
	if err := bind(c, &payload); err != nil {
		writeError(c, err)
		return
	}
	projectID := c.Param("id")
	if err := h.sessions.ReplaceStages(c.Request.Context(), projectID, payload); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			err = service.NewSaveError(projectID, err)
		}
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) save(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Flush(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// edit binds the request into an edit, applies it to the project's session
// and replies with the recomputed plan.
func (h *handlers) edit(status int, build func(c *gin.Context) (editor.Edit, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := build(c)
		if err != nil {
			writeError(c, err)
			return
		}
		s, ok := h.session(c)
		if !ok {
			return
		}
		res, err := s.Apply(c.Request.Context(), e)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(status, toResponse(res))
	}
}

func (h *handlers) stageCandidates(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	cands, err := editor.AvailableStageDependencies(s.Snapshot().Plan, c.Param("stage"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": toCandidateDocs(cands)})
}

func (h *handlers) taskCandidates(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	cands, err := editor.AvailableTaskDependencies(s.Snapshot().Plan, c.Param("stage"), c.Param("task"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": toCandidateDocs(cands)})
}

func addStage(c *gin.Context) (editor.Edit, error) {
	var req itemRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.AddStage(editor.StageDraft{
		ID:           req.ID,
		Name:         req.Name,
		Duration:     req.Duration,
		Responsibles: req.Responsibles,
		Feedback:     req.Feedback,
		Dependencies: req.Dependencies.Strings(),
	}), nil
}

func patchStage(c *gin.Context) (editor.Edit, error) {
	var req patchRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.UpdateStage(c.Param("stage"), req.patch()), nil
}

func deleteStage(c *gin.Context) (editor.Edit, error) {
	return editor.DeleteStage(c.Param("stage")), nil
}

func stageDependencies(c *gin.Context) (editor.Edit, error) {
	var req dependenciesRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.SetStageDependencies(c.Param("stage"), req.Dependencies.Strings()), nil
}

func linkStage(c *gin.Context) (editor.Edit, error) {
	var req linkRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.LinkStage(string(req.Dragged), c.Param("stage")), nil
}

func addTask(c *gin.Context) (editor.Edit, error) {
	var req itemRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.AddTask(c.Param("stage"), editor.TaskDraft{
		ID:           req.ID,
		Name:         req.Name,
		Duration:     req.Duration,
		Responsibles: req.Responsibles,
		Feedback:     req.Feedback,
		Dependencies: req.Dependencies.Strings(),
	}), nil
}

func patchTask(c *gin.Context) (editor.Edit, error) {
	var req patchRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.UpdateTask(c.Param("stage"), c.Param("task"), req.patch()), nil
}

func deleteTask(c *gin.Context) (editor.Edit, error) {
	return editor.DeleteTask(c.Param("stage"), c.Param("task")), nil
}

func taskDependencies(c *gin.Context) (editor.Edit, error) {
	var req dependenciesRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.SetTaskDependencies(c.Param("stage"), c.Param("task"), req.Dependencies.Strings()), nil
}

func linkTask(c *gin.Context) (editor.Edit, error) {
	var req linkRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return editor.LinkTask(c.Param("stage"), string(req.Dragged), c.Param("task")), nil
}
