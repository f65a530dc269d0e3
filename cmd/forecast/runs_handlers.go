package main

import (
	"errors"
	"io"
	"net/http"

	"datapoint-forecast/internal/pipeline"
	"datapoint-forecast/internal/storage/sqlite"

	"github.com/gin-gonic/gin"
)

// CreateRunRequest overrides the configured run settings. An empty body runs
// with configuration defaults.
type CreateRunRequest struct {
	Locations      []string `json:"locations" example:"London,Manchester"`
	LocationIDs    []string `json:"location_ids" example:"99005"`
	Mode           string   `json:"mode" binding:"omitempty,oneof=lenient strict" example:"strict"`
	Categories     string   `json:"categories" binding:"omitempty,oneof=grouped detailed" example:"grouped"`
	SkipUnresolved *bool    `json:"skip_unresolved"`
}

// RunErrorResponse describes a failed run
type RunErrorResponse struct {
	Error      string   `json:"error"`
	RunID      string   `json:"run_id,omitempty"`
	Stage      string   `json:"stage,omitempty" example:"fetch"`
	Kind       string   `json:"kind,omitempty" example:"transport"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// ListRunsInput defines the query parameters for the run listing
type ListRunsInput struct {
	Limit int `form:"limit,default=20" binding:"min=1,max=500"`
}

// handleCreateRun godoc
// @Summary Run the forecast pipeline
// @Description Resolve locations, fetch their 3-hourly forecasts and write the raw and processed CSV snapshots. Runs execute one at a time.
// @Tags runs
// @Accept json
// @Produce json
// @Param request body CreateRunRequest false "Run overrides"
// @Success 201 {object} pipeline.Result
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} RunErrorResponse
// @Failure 502 {object} RunErrorResponse
// @Failure 500 {object} RunErrorResponse
// @Router /runs [post]
func (app *App) handleCreateRun(c *gin.Context) {
	var req CreateRunRequest

	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := pipelineOptions(app.cfg, app.mappings, runOverrides{
		names:          req.Locations,
		ids:            req.LocationIDs,
		mode:           req.Mode,
		categories:     req.Categories,
		skipUnresolved: req.SkipUnresolved,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !app.runMu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a pipeline run is already in progress"})
		return
	}
	defer app.runMu.Unlock()

	result, err := app.pipeline.Run(c.Request.Context(), opts)
	if err != nil {
		resp := RunErrorResponse{Error: err.Error()}
		if result != nil {
			resp.RunID = result.RunID
			resp.Unresolved = result.Unresolved
		}

		status := http.StatusInternalServerError
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			resp.Stage = string(stageErr.Stage)
			resp.Kind = string(stageErr.Kind)
			status = stageStatus(stageErr.Kind)
		}

		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// stageStatus maps a failure kind to an HTTP status
func stageStatus(kind pipeline.Kind) int {
	switch kind {
	case pipeline.KindInvalidInput, pipeline.KindNotFound, pipeline.KindUnknownCategory, pipeline.KindColumnNotFound:
		return http.StatusUnprocessableEntity
	case pipeline.KindTransport, pipeline.KindParse:
		return http.StatusBadGateway
	case pipeline.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleListRuns godoc
// @Summary List recorded runs
// @Description Return the most recent pipeline runs from the run ledger, newest first
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs" minimum(1) maximum(500) default(20)
// @Success 200 {array} sqlite.RunRecord
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /runs [get]
func (app *App) handleListRuns(c *gin.Context) {
	if app.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run ledger is disabled"})
		return
	}

	var input ListRunsInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, err := app.runs.ListRuns(c.Request.Context(), input.Limit)
	if err != nil {
		app.logger.Error("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	if runs == nil {
		runs = []*sqlite.RunRecord{}
	}

	c.JSON(http.StatusOK, runs)
}

// handleGetRun godoc
// @Summary Get a recorded run
// @Description Return a single pipeline run from the run ledger
// @Tags runs
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} sqlite.RunRecord
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /runs/{id} [get]
func (app *App) handleGetRun(c *gin.Context) {
	if app.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run ledger is disabled"})
		return
	}

	run, err := app.runs.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sqlite.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		app.logger.Error("failed to get run", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get run"})
		return
	}

	c.JSON(http.StatusOK, run)
}
