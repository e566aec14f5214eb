package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// SeedEstimate inserts an estimate with an explicit created_at and returns
// its id. Costs are stored as-is; total is their sum.
func SeedEstimate(t *testing.T, pool *pgxpool.Pool, unit, location, issue string, labor float64, createdAt time.Time) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO estimates (unit_number, model_number, location, issue, labor_cost, total_cost, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5, $6, $6)
		 RETURNING id`,
		unit, "MODEL-"+unit, location, issue, labor, createdAt,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedEstimate: %v", err)
	}
	return id
}

// MustGet fetches an estimate straight from the table, failing the test if
// it is missing.
func MustGet(t *testing.T, pool *pgxpool.Pool, id int64) domain.Estimate {
	t.Helper()

	var e domain.Estimate
	err := pool.QueryRow(context.Background(),
		`SELECT id, unit_number, model_number, location, issue,
		        labor_cost, parts_cost, service_fee, total_cost, created_at, updated_at
		 FROM estimates WHERE id = $1`, id,
	).Scan(&e.ID, &e.UnitNumber, &e.ModelNumber, &e.Location, &e.Issue,
		&e.LaborCost, &e.PartsCost, &e.ServiceFee, &e.TotalCost, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: MustGet %d: %v", id, err)
	}
	return e
}
