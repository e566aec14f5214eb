package estimate

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hvac-estimate/internal/config"
	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
	"github.com/heartmarshall/hvac-estimate/internal/render"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func testConfig() config.EstimateConfig {
	return config.EstimateConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		RecentWindow:    7 * 24 * time.Hour,
		MaxBodyBytes:    1 << 20,
	}
}

// newTestService wires a Service with a fixed clock and a PDF mock renderer.
func newTestService(t *testing.T, repo *estimateRepoMock, pdf *documentRendererMock) *Service {
	t.Helper()
	renderers := map[docformat.Format]render.Renderer{}
	if pdf != nil {
		renderers[docformat.PDF] = pdf
	}
	return NewService(slog.Default(), repo, renderers, testConfig(), WithClock(func() time.Time { return fixedNow }))
}

func validSaveInput() SaveInput {
	return SaveInput{
		UnitNumber:  "AC-001",
		ModelNumber: "XYZ-123",
		Location:    "Building A - Floor 1",
		Issue:       "Air conditioner not cooling properly",
		LaborCost:   domain.NewAmount(150),
		PartsCost:   domain.NewAmount(75),
		ServiceFee:  domain.NewAmount(50),
	}
}

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

func TestSave_Success(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 42, nil
		},
	}
	svc := newTestService(t, repo, nil)

	id, err := svc.Save(context.Background(), validSaveInput())
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	calls := repo.CreateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, 275.0, calls[0].Data.TotalCost)
	assert.Equal(t, "AC-001", calls[0].Data.UnitNumber)
}

func TestSave_EmptyCostsCountAsZero(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 1, nil
		},
	}
	svc := newTestService(t, repo, nil)

	in := validSaveInput()
	in.LaborCost, in.PartsCost, in.ServiceFee = domain.Amount{}, domain.Amount{}, domain.NewAmount(12.5)

	_, err := svc.Save(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 12.5, repo.CreateCalls()[0].Data.TotalCost)
}

func TestSave_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{}
	svc := newTestService(t, repo, nil)

	in := validSaveInput()
	in.ModelNumber = "   "
	in.Issue = ""

	_, err := svc.Save(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrValidation)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 2)
	assert.Equal(t, "modelNumber", ve.Errors[0].Field)
	assert.Equal(t, "issue", ve.Errors[1].Field)
	assert.Empty(t, repo.CreateCalls())
}

func TestSave_NonFiniteTotal(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{}
	svc := newTestService(t, repo, nil)

	in := validSaveInput()
	in.LaborCost = domain.NewAmount(math.MaxFloat64)
	in.PartsCost = domain.NewAmount(math.MaxFloat64)

	_, err := svc.Save(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrValidation)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, FieldTotalCost, ve.Errors[0].Field)
	assert.Empty(t, repo.CreateCalls())
}

func TestSave_RepoError(t *testing.T) {
	t.Parallel()

	dbErr := &domain.PersistenceError{Op: "estimate create", Err: errors.New("connection refused")}
	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 0, dbErr
		},
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Save(context.Background(), validSaveInput())
	require.ErrorIs(t, err, domain.ErrPersist)
}

// ---------------------------------------------------------------------------
// Download
// ---------------------------------------------------------------------------

func okPDF() *documentRendererMock {
	return &documentRendererMock{
		RenderFunc: func(e domain.FinalEstimate) ([]byte, error) {
			return []byte("%PDF-1.3 fake"), nil
		},
	}
}

func TestDownload_PersistsAndRenders(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 7, nil
		},
	}
	pdf := okPDF()
	svc := newTestService(t, repo, pdf)

	doc, err := svc.Download(context.Background(), docformat.PDF, DownloadInput{SaveInput: validSaveInput()})
	require.NoError(t, err)

	assert.Equal(t, "hvac-estimate-2026-10-14.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, int64(7), doc.SavedID)
	assert.NotEmpty(t, doc.Data)

	require.Len(t, repo.CreateCalls(), 1)
	require.Len(t, pdf.RenderCalls(), 1)
	got := pdf.RenderCalls()[0].E
	assert.Equal(t, 275.0, got.TotalCost)
	assert.Equal(t, fixedNow, got.Date)
	assert.Equal(t, 75.0, got.PartsCost)
}

func TestDownload_ProvidedTotalIsRendered(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 1, nil
		},
	}
	pdf := okPDF()
	svc := newTestService(t, repo, pdf)

	in := DownloadInput{SaveInput: validSaveInput(), TotalCost: domain.NewAmount(300)}
	_, err := svc.Download(context.Background(), docformat.PDF, in)
	require.NoError(t, err)

	assert.Equal(t, 300.0, pdf.RenderCalls()[0].E.TotalCost, "document shows the provided total")
	assert.Equal(t, 275.0, repo.CreateCalls()[0].Data.TotalCost, "store keeps the computed total")
}

func TestDownload_PersistFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 0, &domain.PersistenceError{Op: "estimate create", Err: errors.New("db down")}
		},
	}
	svc := newTestService(t, repo, okPDF())

	doc, err := svc.Download(context.Background(), docformat.PDF, DownloadInput{SaveInput: validSaveInput()})
	require.NoError(t, err)
	assert.Zero(t, doc.SavedID)
	assert.NotEmpty(t, doc.Data)
}

func TestDownload_IncompleteEstimateSkipsSave(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{}
	pdf := okPDF()
	svc := newTestService(t, repo, pdf)

	in := DownloadInput{SaveInput: SaveInput{UnitNumber: "AC-1", LaborCost: domain.NewAmount(10)}}
	doc, err := svc.Download(context.Background(), docformat.PDF, in)
	require.NoError(t, err)

	assert.Empty(t, repo.CreateCalls())
	assert.Zero(t, doc.SavedID)
	assert.Equal(t, 10.0, pdf.RenderCalls()[0].E.TotalCost)
}

func TestDownload_NonFiniteTotalIsRejected(t *testing.T) {
	t.Parallel()

	overflow := validSaveInput()
	overflow.LaborCost = domain.NewAmount(1e308)
	overflow.PartsCost = domain.NewAmount(1e308)

	tests := map[string]DownloadInput{
		"computed total overflows": {SaveInput: overflow},
		"provided total infinite":  {SaveInput: validSaveInput(), TotalCost: domain.NewAmount(math.Inf(1))},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo := &estimateRepoMock{}
			pdf := okPDF()
			svc := newTestService(t, repo, pdf)

			_, err := svc.Download(context.Background(), docformat.PDF, in)
			require.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, FieldTotalCost, ve.Errors[0].Field)
			assert.Empty(t, repo.CreateCalls(), "nothing is persisted")
			assert.Empty(t, pdf.RenderCalls(), "nothing is rendered")
		})
	}
}

func TestDownload_IssueDateIsUTC(t *testing.T) {
	t.Parallel()

	// 23:30 on the 14th in UTC-5 is 04:30 on the 15th in UTC.
	local := time.Date(2026, 10, 14, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 1, nil
		},
	}
	pdf := okPDF()
	svc := NewService(slog.Default(), repo, map[docformat.Format]render.Renderer{docformat.PDF: pdf}, testConfig(),
		WithClock(func() time.Time { return local }))

	doc, err := svc.Download(context.Background(), docformat.PDF, DownloadInput{SaveInput: validSaveInput()})
	require.NoError(t, err)

	assert.Equal(t, "hvac-estimate-2026-10-15.pdf", doc.Filename)
	got := pdf.RenderCalls()[0].E.Date
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
}

func TestDownload_NoRendererForFormat(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{}
	svc := newTestService(t, repo, okPDF())

	_, err := svc.Download(context.Background(), docformat.Excel, DownloadInput{SaveInput: validSaveInput()})
	require.ErrorIs(t, err, docformat.ErrUnknownFormat)
	assert.Empty(t, repo.CreateCalls(), "nothing is persisted for an unsupported format")
}

func TestDownload_RenderFailure(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		CreateFunc: func(ctx context.Context, data domain.EstimateData) (int64, error) {
			return 1, nil
		},
	}
	pdf := &documentRendererMock{
		RenderFunc: func(e domain.FinalEstimate) ([]byte, error) {
			return nil, errors.New("font missing")
		},
	}
	svc := newTestService(t, repo, pdf)

	_, err := svc.Download(context.Background(), docformat.PDF, DownloadInput{SaveInput: validSaveInput()})
	require.ErrorIs(t, err, domain.ErrRender)

	var re *domain.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "pdf", re.Format)
	assert.Contains(t, re.Error(), "font missing")
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestList_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        ListInput
		wantPage  int
		wantLimit int
	}{
		{"defaults", ListInput{}, 1, 20},
		{"explicit", ListInput{Page: 3, Limit: 5}, 3, 5},
		{"negative page", ListInput{Page: -2, Limit: 10}, 1, 10},
		{"capped limit", ListInput{Page: 1, Limit: 1000}, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &estimateRepoMock{
				ListFunc: func(ctx context.Context, page, limit int) (*domain.EstimatePage, error) {
					return &domain.EstimatePage{Page: page}, nil
				},
			}
			svc := newTestService(t, repo, nil)

			_, err := svc.List(context.Background(), tt.in)
			require.NoError(t, err)
			call := repo.ListCalls()[0]
			assert.Equal(t, tt.wantPage, call.Page)
			assert.Equal(t, tt.wantLimit, call.Limit)
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Estimate, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch_RequiresQuery(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{}
	svc := newTestService(t, repo, nil)

	for _, q := range []string{"", "   "} {
		_, err := svc.Search(context.Background(), SearchInput{Query: q})
		require.ErrorIs(t, err, domain.ErrValidation, "query %q", q)
	}
	assert.Empty(t, repo.SearchCalls())
}

func TestSearch_NeverNil(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		SearchFunc: func(ctx context.Context, q string) ([]domain.Estimate, error) {
			return nil, nil
		},
	}
	svc := newTestService(t, repo, nil)

	got, err := svc.Search(context.Background(), SearchInput{Query: "Building A"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, "Building A", repo.SearchCalls()[0].Q)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := &estimateRepoMock{
		DeleteFunc: func(ctx context.Context, id int64) (bool, error) {
			return id == 1, nil
		},
	}
	svc := newTestService(t, repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	require.ErrorIs(t, svc.Delete(context.Background(), 2), domain.ErrNotFound)
}

func TestStats_UsesRecentWindow(t *testing.T) {
	t.Parallel()

	want := &domain.EstimateStats{TotalEstimates: 3, TotalRevenue: 600, AvgEstimate: 200, RecentEstimates: 1}
	repo := &estimateRepoMock{
		StatsFunc: func(ctx context.Context, since time.Time) (*domain.EstimateStats, error) {
			return want, nil
		},
	}
	svc := newTestService(t, repo, nil)

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, fixedNow.Add(-7*24*time.Hour), repo.StatsCalls()[0].Since)
}
