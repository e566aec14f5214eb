package estimate

import (
	"context"
	"fmt"
	"log/slog"
)

// Save persists an estimate after checking the required text fields. The
// stored total is recomputed from the costs, never taken from the caller.
func (s *Service) Save(ctx context.Context, input SaveInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	data := input.data()
	id, err := s.repo.Create(ctx, data)
	if err != nil {
		return 0, fmt.Errorf("save estimate: %w", err)
	}

	s.log.InfoContext(ctx, "estimate saved",
		slog.Int64("id", id),
		slog.String("unit_number", data.UnitNumber),
		slog.Float64("total_cost", data.TotalCost),
	)
	return id, nil
}
