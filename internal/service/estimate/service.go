package estimate

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/hvac-estimate/internal/config"
	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
	"github.com/heartmarshall/hvac-estimate/internal/render"
)

type estimateRepo interface {
	Create(ctx context.Context, data domain.EstimateData) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Estimate, error)
	List(ctx context.Context, page, limit int) (*domain.EstimatePage, error)
	Search(ctx context.Context, q string) ([]domain.Estimate, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context, since time.Time) (*domain.EstimateStats, error)
}

type documentRenderer interface {
	Render(e domain.FinalEstimate) ([]byte, error)
}

// Service orchestrates estimate persistence and document generation.
type Service struct {
	repo      estimateRepo
	renderers map[docformat.Format]documentRenderer
	cfg       config.EstimateConfig
	now       func() time.Time
	log       *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for issue dates and the stats
// window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new estimate service.
func NewService(
	log *slog.Logger,
	repo estimateRepo,
	renderers map[docformat.Format]render.Renderer,
	cfg config.EstimateConfig,
	opts ...Option,
) *Service {
	rs := make(map[docformat.Format]documentRenderer, len(renderers))
	for f, r := range renderers {
		rs[f] = r
	}
	s := &Service{
		repo:      repo,
		renderers: rs,
		cfg:       cfg,
		now:       time.Now,
		log:       log.With("service", "estimate"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
