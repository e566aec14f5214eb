//go:build e2e

package e2e_test

import (
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	estimaterepo "github.com/heartmarshall/hvac-estimate/internal/adapter/postgres/estimate"
	"github.com/heartmarshall/hvac-estimate/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/hvac-estimate/internal/client"
	"github.com/heartmarshall/hvac-estimate/internal/config"
	"github.com/heartmarshall/hvac-estimate/internal/form"
	"github.com/heartmarshall/hvac-estimate/internal/render"
	estimatesvc "github.com/heartmarshall/hvac-estimate/internal/service/estimate"
	"github.com/heartmarshall/hvac-estimate/internal/transport/middleware"
	"github.com/heartmarshall/hvac-estimate/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *client.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

type serverOption func(*rest.RouterDeps)

func withDownloadLimit(perMinute int) serverOption {
	return func(d *rest.RouterDeps) {
		d.DownloadsPerMinute = perMinute
	}
}

// setupTestServer bootstraps the application stack against the shared
// PostgreSQL container with an empty estimates table.
func setupTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	estimateCfg := config.EstimateConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		RecentWindow:    7 * 24 * time.Hour,
		MaxBodyBytes:    1 << 20,
	}
	svc := estimatesvc.NewService(logger, estimaterepo.New(pool), render.Renderers(), estimateCfg)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	deps := rest.RouterDeps{
		Estimates: rest.NewEstimateHandler(svc, estimateCfg.MaxBodyBytes, logger),
		Health:    rest.NewHealthHandler(pool, svc, "test", "1.0.0", logger),
		CORS: config.CORSConfig{
			AllowedOrigins: "http://localhost:5173",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type",
			ExposedHeaders: "Content-Disposition",
			MaxAge:         600,
		},
		Logger:  logger,
		Limiter: limiter,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	srv := httptest.NewServer(rest.NewRouter(deps))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: client.New(srv.URL, client.WithLogger(logger)),
		Pool:   pool,
	}
}

// fillForm drives a form controller through every field and requires the
// result to be valid.
func fillForm(t *testing.T, values map[form.Field]string) form.Draft {
	t.Helper()

	c := form.NewController()
	for _, f := range form.Fields {
		require.NoError(t, c.OnBlur(f, values[f]))
	}
	require.True(t, c.ValidateAll(), "form errors: %v", c.Errors())
	return c.Draft()
}

func sampleForm() map[form.Field]string {
	return map[form.Field]string{
		form.FieldUnitNumber:  "AC-001",
		form.FieldModelNumber: "XYZ-123",
		form.FieldLocation:    "Building A - Floor 1",
		form.FieldIssue:       "Air conditioner not cooling properly",
		form.FieldLaborCost:   "150",
		form.FieldPartsCost:   "75",
		form.FieldServiceFee:  "50",
	}
}
