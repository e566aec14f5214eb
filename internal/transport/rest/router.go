package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/hvac-estimate/internal/config"
	"github.com/heartmarshall/hvac-estimate/internal/transport/middleware"
)

// RouterDeps collects everything NewRouter mounts.
type RouterDeps struct {
	Estimates *EstimateHandler
	Health    *HealthHandler
	CORS      config.CORSConfig
	Logger    *slog.Logger

	// Limiter throttles downloads when non-nil and DownloadsPerMinute > 0.
	Limiter            *middleware.RateLimiter
	DownloadsPerMinute int
}

// NewRouter builds the HTTP routing tree.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS, d.Logger),
	)

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", d.Health.Health)
		r.Get("/stats", d.Estimates.Stats)

		r.Get("/estimates", d.Estimates.List)
		r.Get("/estimates/search", d.Estimates.Search)

		r.Post("/estimate/save", d.Estimates.Save)
		r.Get("/estimate/{id}", d.Estimates.Get)
		r.Delete("/estimate/{id}", d.Estimates.Delete)

		download := http.HandlerFunc(d.Estimates.Download)
		if d.Limiter != nil {
			r.With(d.Limiter.Limit(d.DownloadsPerMinute)).Post("/estimate/download", download)
		} else {
			r.Post("/estimate/download", download)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
