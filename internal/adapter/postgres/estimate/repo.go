// Package estimate implements the estimate repository using PostgreSQL.
// Queries are built with squirrel and scanned with scany.
package estimate

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/hvac-estimate/internal/adapter/postgres"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

const table = "estimates"

var columns = []string{
	"id", "unit_number", "model_number", "location", "issue",
	"labor_cost", "parts_cost", "service_fee", "total_cost",
	"created_at", "updated_at",
}

var searchColumns = []string{"unit_number", "model_number", "location", "issue"}

// Repo provides estimate persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
	sb sq.StatementBuilderType
}

// New creates a new estimate repository.
func New(db postgres.Querier) *Repo {
	return &Repo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type row struct {
	ID          int64     `db:"id"`
	UnitNumber  string    `db:"unit_number"`
	ModelNumber string    `db:"model_number"`
	Location    string    `db:"location"`
	Issue       string    `db:"issue"`
	LaborCost   float64   `db:"labor_cost"`
	PartsCost   float64   `db:"parts_cost"`
	ServiceFee  float64   `db:"service_fee"`
	TotalCost   float64   `db:"total_cost"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Estimate {
	return domain.Estimate{
		ID:          r.ID,
		UnitNumber:  r.UnitNumber,
		ModelNumber: r.ModelNumber,
		Location:    r.Location,
		Issue:       r.Issue,
		LaborCost:   r.LaborCost,
		PartsCost:   r.PartsCost,
		ServiceFee:  r.ServiceFee,
		TotalCost:   r.TotalCost,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.Estimate {
	out := make([]domain.Estimate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new estimate and returns its id. Empty costs are stored as
// 0. TotalCost is stored as given and is not derived from the costs.
func (r *Repo) Create(ctx context.Context, data domain.EstimateData) (int64, error) {
	query, args, err := r.sb.
		Insert(table).
		Columns("unit_number", "model_number", "location", "issue",
			"labor_cost", "parts_cost", "service_fee", "total_cost").
		Values(data.UnitNumber, data.ModelNumber, data.Location, data.Issue,
			data.LaborCost.Float(), data.PartsCost.Float(), data.ServiceFee.Float(), data.TotalCost).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert estimate: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "estimate create")
	}
	return id, nil
}

// Delete removes the estimate with the given id. It reports whether a row
// was removed.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete estimate: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, fmt.Sprintf("estimate delete %d", id))
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns the estimate with the given id.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	query, args, err := r.sb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get estimate: %w", err)
	}

	var got row
	if err := pgxscan.Get(ctx, r.db, &got, query, args...); err != nil {
		return nil, postgres.MapError(err, fmt.Sprintf("estimate get %d", id))
	}

	e := got.toDomain()
	return &e, nil
}

// List returns one page of estimates, newest first. page is 1-based; both
// page and limit must be positive.
func (r *Repo) List(ctx context.Context, page, limit int) (*domain.EstimatePage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("estimate list: page %d limit %d: %w", page, limit, domain.ErrValidation)
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count estimates: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, postgres.MapError(err, "estimate count")
	}

	query, args, err := r.sb.
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list estimates: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "estimate list")
	}

	return &domain.EstimatePage{
		Data:       toDomainList(rows),
		Total:      int(total),
		Page:       page,
		TotalPages: totalPages(int(total), limit),
	}, nil
}

// Search returns every estimate whose unit number, model number, location or
// issue contains q, ignoring case, newest first. LIKE wildcards in q are
// matched literally.
func (r *Repo) Search(ctx context.Context, q string) ([]domain.Estimate, error) {
	pattern := "%" + escapeLike(q) + "%"

	match := make(sq.Or, 0, len(searchColumns))
	for _, col := range searchColumns {
		match = append(match, sq.ILike{col: pattern})
	}

	query, args, err := r.sb.
		Select(columns...).
		From(table).
		Where(match).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search estimates: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "estimate search")
	}
	return toDomainList(rows), nil
}

// Stats aggregates over all estimates. RecentEstimates counts rows created at
// or after since. Revenue and average are 0 on an empty table.
func (r *Repo) Stats(ctx context.Context, since time.Time) (*domain.EstimateStats, error) {
	query, args, err := r.sb.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(total_cost), 0)",
			"COALESCE(AVG(total_cost), 0)",
		).
		Column(sq.Expr("COUNT(*) FILTER (WHERE created_at >= ?)", since)).
		From(table).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build estimate stats: %w", err)
	}

	var (
		count, recent int64
		revenue, avg  float64
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count, &revenue, &avg, &recent); err != nil {
		return nil, postgres.MapError(err, "estimate stats")
	}

	return &domain.EstimateStats{
		TotalEstimates:  int(count),
		TotalRevenue:    revenue,
		AvgEstimate:     avg,
		RecentEstimates: int(recent),
	}, nil
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
