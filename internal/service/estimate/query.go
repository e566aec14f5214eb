package estimate

import (
	"context"
	"fmt"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// Get returns a single estimate by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Estimate, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get estimate: %w", err)
	}
	return e, nil
}

// List returns one page of estimates, newest first.
func (s *Service) List(ctx context.Context, input ListInput) (*domain.EstimatePage, error) {
	page, limit := input.normalize(s.cfg.DefaultPageSize, s.cfg.MaxPageSize)

	result, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	return result, nil
}

// Search returns every estimate matching the query. The result is never nil.
func (s *Service) Search(ctx context.Context, input SearchInput) ([]domain.Estimate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	found, err := s.repo.Search(ctx, input.Query)
	if err != nil {
		return nil, fmt.Errorf("search estimates: %w", err)
	}
	if found == nil {
		found = []domain.Estimate{}
	}
	return found, nil
}

// Delete removes an estimate. It returns domain.ErrNotFound when nothing was
// deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	if !deleted {
		return fmt.Errorf("delete estimate %d: %w", id, domain.ErrNotFound)
	}
	s.log.InfoContext(ctx, "estimate deleted", "id", id)
	return nil
}

// Stats aggregates over all estimates; "recent" means created within the
// configured window before now.
func (s *Service) Stats(ctx context.Context) (*domain.EstimateStats, error) {
	since := s.now().Add(-s.cfg.RecentWindow)

	stats, err := s.repo.Stats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("estimate stats: %w", err)
	}
	return stats, nil
}
