package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// statsSource supplies the live figures embedded in /api/health.
type statsSource interface {
	Stats(ctx context.Context) (*domain.EstimateStats, error)
}

const healthCheckTimeout = 3 * time.Second

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db          dbPinger
	stats       statsSource
	environment string
	version     string
	log         *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, stats statsSource, environment, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		stats:       stats,
		environment: environment,
		version:     version,
		log:         logger.With("handler", "health"),
	}
}

// HealthResponse is the JSON body of /api/health.
type HealthResponse struct {
	Status      string         `json:"status"`
	Database    string         `json:"database"`
	Environment string         `json:"environment,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Stats       *statsResponse `json:"stats,omitempty"`
	Version     string         `json:"version,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// ProbeResponse is the JSON body of /live and /ready.
type ProbeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ProbeResponse{Status: "down", Timestamp: time.Now().UTC()})
		return
	}
	writeJSON(w, http.StatusOK, ProbeResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// Health reports database connectivity together with live estimate stats.
// A failed ping alone reports "disconnected"; failing to read stats makes the
// whole check unhealthy with 500.
// GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	database := "connected"
	if err := h.db.Ping(ctx); err != nil {
		h.log.WarnContext(ctx, "database ping failed", slog.String("error", err.Error()))
		database = "disconnected"
	}

	stats, err := h.stats.Stats(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "health stats", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, HealthResponse{
			Status:    "unhealthy",
			Database:  "error",
			Timestamp: time.Now().UTC(),
			Error:     err.Error(),
		})
		return
	}

	s := toStatsResponse(stats)
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Database:    database,
		Environment: h.environment,
		Timestamp:   time.Now().UTC(),
		Stats:       &s,
		Version:     h.version,
	})
}
