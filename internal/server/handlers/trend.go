package handlers

import (
	"encoding/json"
	"net/http"

	"trendforge/internal/service/aggregate"
)

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	aggregator *aggregate.Aggregator
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(aggregator *aggregate.Aggregator) *TrendHandler {
	return &TrendHandler{
		aggregator: aggregator,
	}
}

// GetHashtags returns the current merged trending hashtags
func (h *TrendHandler) GetHashtags(w http.ResponseWriter, r *http.Request) {
	hashtags, outcome := h.aggregator.Hashtags(r.Context())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcome": outcome,
		"data":    hashtags,
	})
}

// GetSounds returns the current merged trending sounds
func (h *TrendHandler) GetSounds(w http.ResponseWriter, r *http.Request) {
	sounds, outcome := h.aggregator.Sounds(r.Context())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcome": outcome,
		"data":    sounds,
	})
}

// GetVideos returns the current merged trending videos
func (h *TrendHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	videos, outcome := h.aggregator.Videos(r.Context())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcome": outcome,
		"data":    videos,
	})
}

// GetAnalysis returns aggregate metrics over a full trend snapshot
func (h *TrendHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	snapshot := h.aggregator.Snapshot(r.Context())
	analysis := aggregate.Analyze(snapshot)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"outcome":  snapshot.Outcome,
		"analysis": analysis,
	})
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string) {
	response := map[string]string{"error": message}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
