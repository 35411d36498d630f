package handlers

import (
	"context"
	"net/http"
	"time"

	"VOYAGEAI_BACK-END/internal/dto"
	"VOYAGEAI_BACK-END/internal/utils"
)

// pinger is the connectivity probe the readiness check runs. pgxpool.Pool
// provides the production implementation.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db pinger
}

// NewHealthHandler creates a HealthHandler probing the given database
func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck reports the process is serving; no dependency is touched
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Details: map[string]any{"service": "voyageai-backend"},
	})
}

// LivenessCheck answers as long as the process can handle a request
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck verifies the database answers within a short deadline;
// a failed ping degrades the service to 503 so the trip and itinerary
// endpoints stop receiving traffic
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"database": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"database": "ok"},
	})
}
