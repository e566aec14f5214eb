package estimate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// Document is a rendered estimate ready to be served as an attachment.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
	// SavedID is the id of the persisted copy, or 0 when saving failed.
	SavedID int64
}

// Download stores the estimate and renders it in the requested format.
//
// Costs that do not add up to a finite total are rejected before anything is
// stored. Past that, persistence is best-effort: a blank required field or a
// database failure is logged and the document is still produced. The
// rendered total is the caller's TotalCost when provided, the computed one
// otherwise. The issue date is the current UTC date.
func (s *Service) Download(ctx context.Context, format docformat.Format, input DownloadInput) (*Document, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("download estimate: %w", docformat.ErrUnknownFormat)
	}

	fe, mismatch, err := input.final()
	if err != nil {
		return nil, fmt.Errorf("download estimate: %w", err)
	}

	savedID := s.persistBestEffort(ctx, input.SaveInput)

	fe.Date = s.now().UTC()
	if mismatch {
		s.log.WarnContext(ctx, "provided total differs from computed total",
			slog.Float64("provided", fe.TotalCost),
			slog.Float64("computed", input.data().TotalCost),
		)
	}

	data, err := r.Render(fe)
	if err != nil {
		s.log.ErrorContext(ctx, "render estimate",
			slog.String("format", string(format)),
			slog.String("error", err.Error()),
		)
		var re *domain.RenderError
		if !errors.As(err, &re) {
			err = &domain.RenderError{Format: string(format), Err: err}
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "estimate rendered",
		slog.String("format", string(format)),
		slog.Int("bytes", len(data)),
		slog.Int64("saved_id", savedID),
	)
	return &Document{
		Filename:    docformat.Filename(fe.Date, format),
		ContentType: format.ContentType(),
		Data:        data,
		SavedID:     savedID,
	}, nil
}

func (s *Service) persistBestEffort(ctx context.Context, input SaveInput) int64 {
	if err := input.Validate(); err != nil {
		s.log.WarnContext(ctx, "estimate not saved before download",
			slog.String("error", err.Error()),
		)
		return 0
	}
	id, err := s.repo.Create(ctx, input.data())
	if err != nil {
		s.log.ErrorContext(ctx, "estimate save failed before download",
			slog.String("error", err.Error()),
		)
		return 0
	}
	return id
}
