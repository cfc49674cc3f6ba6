package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"trendforge/internal/adapter/storage"
	"trendforge/internal/domain/script"
)

// ContentPipeline starts content generation runs
type ContentPipeline interface {
	ProcessVideo(ctx context.Context, videoID string, contentType script.ContentType) (script.Run, error)
	GenerateFromTrends(ctx context.Context, contentType script.ContentType) (script.Run, error)
}

// RunReader reads persisted pipeline runs
type RunReader interface {
	GetRun(ctx context.Context, id string) (*script.Run, error)
	ListRuns(ctx context.Context, status script.RunStatus, limit int) ([]script.Run, error)
}

// RunHandler handles pipeline run HTTP requests
type RunHandler struct {
	pipeline ContentPipeline
	runs     RunReader
}

// NewRunHandler creates a new run handler
func NewRunHandler(pipeline ContentPipeline, runs RunReader) *RunHandler {
	return &RunHandler{
		pipeline: pipeline,
		runs:     runs,
	}
}

// CreateRun starts a new content generation run. With a source video ID the
// pipeline remixes that video; without one it generates from the current
// top trend.
func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SourceVideoID string `json:"source_video_id"`
		ContentType   string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contentType := script.ContentType(body.ContentType)
	if contentType == "" {
		contentType = script.ContentTutorial
	}

	var run script.Run
	var err error
	if body.SourceVideoID != "" {
		run, err = h.pipeline.ProcessVideo(r.Context(), body.SourceVideoID, contentType)
	} else {
		run, err = h.pipeline.GenerateFromTrends(r.Context(), contentType)
	}
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Pipeline run failed")
		return
	}

	respondWithJSON(w, http.StatusCreated, run)
}

// GetRun returns a specific run by ID
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing run ID")
		return
	}

	run, err := h.runs.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Run not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get run")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, run)
}

// ListRuns returns recent runs, optionally filtered by status
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	status := script.RunStatus(r.URL.Query().Get("status"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := h.runs.ListRuns(r.Context(), status, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	respondWithJSON(w, http.StatusOK, runs)
}
