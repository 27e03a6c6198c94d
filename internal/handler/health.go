package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/KnightlyTreasures_Go/internal/database"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// Store modes reported by the readiness probe
const (
	ModePostgres = "postgres"
	ModeLocal    = "local"
)

const readinessTimeout = 2 * time.Second

// HealthResponse is the body of both probes
type HealthResponse struct {
	Status  string `json:"status"`
	Mode    string `json:"mode,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz reports that the process is up
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// readiness pings the pool. A nil pool is the in-memory store, which is always ready.
func readiness(ctx context.Context, pool database.Pool) (int, HealthResponse) {
	if pool == nil {
		return http.StatusOK, HealthResponse{Status: "ok", Mode: ModeLocal}
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.FromContext(ctx).Error("Readiness check failed", "error", err)
		return http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Mode:    ModePostgres,
			Message: "database connection failed",
		}
	}
	return http.StatusOK, HealthResponse{Status: "ok", Mode: ModePostgres}
}

// HandleReadyz reports the store mode and whether the database answers
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(pool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := readiness(r.Context(), pool)
		respondJSON(w, status, body)
	}
}
