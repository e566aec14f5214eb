package estimate

import (
	"math"
	"strings"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// totalTolerance is the largest difference between a client-supplied total
// and the computed one that still counts as equal.
const totalTolerance = 0.005

// SaveInput holds the parameters for persisting an estimate.
type SaveInput struct {
	UnitNumber  string
	ModelNumber string
	Location    string
	Issue       string
	LaborCost   domain.Amount
	PartsCost   domain.Amount
	ServiceFee  domain.Amount
}

// FieldTotalCost names the total in validation errors.
const FieldTotalCost = "totalCost"

// msgNotFinite is the field message for a total that overflows a float64.
const msgNotFinite = "must be a finite number"

// Validate reports every blank required text field. Costs whose sum is not a
// finite number are rejected before the text fields are looked at.
func (i SaveInput) Validate() error {
	d := i.data()
	if !isFinite(d.TotalCost) {
		return domain.NewValidationError(FieldTotalCost, msgNotFinite)
	}
	missing := d.MissingRequired()
	if len(missing) == 0 {
		return nil
	}
	errs := make([]domain.FieldError, 0, len(missing))
	for _, f := range missing {
		errs = append(errs, domain.FieldError{Field: f, Message: "required"})
	}
	return domain.NewValidationErrors(errs)
}

// data converts the input to repository form with a server-computed total.
func (i SaveInput) data() domain.EstimateData {
	d := domain.EstimateData{
		UnitNumber:  i.UnitNumber,
		ModelNumber: i.ModelNumber,
		Location:    i.Location,
		Issue:       i.Issue,
		LaborCost:   i.LaborCost,
		PartsCost:   i.PartsCost,
		ServiceFee:  i.ServiceFee,
	}
	d.TotalCost = d.ComputedTotal()
	return d
}

// DownloadInput is a full estimate as submitted for document generation.
// TotalCost is optional; when empty the computed total is rendered.
type DownloadInput struct {
	SaveInput
	TotalCost domain.Amount
}

// final resolves the document content. mismatch reports whether a provided
// total disagrees with the sum of the costs. A computed or provided total
// that is not finite is a validation error.
func (i DownloadInput) final() (fe domain.FinalEstimate, mismatch bool, err error) {
	computed := i.data().TotalCost
	if !isFinite(computed) {
		return domain.FinalEstimate{}, false, domain.NewValidationError(FieldTotalCost, msgNotFinite)
	}
	total := computed
	if !i.TotalCost.IsEmpty() {
		total = i.TotalCost.Float()
		if !isFinite(total) {
			return domain.FinalEstimate{}, false, domain.NewValidationError(FieldTotalCost, msgNotFinite)
		}
		mismatch = math.Abs(total-computed) > totalTolerance
	}
	return domain.FinalEstimate{
		UnitNumber:  i.UnitNumber,
		ModelNumber: i.ModelNumber,
		Location:    i.Location,
		Issue:       i.Issue,
		LaborCost:   i.LaborCost.Float(),
		PartsCost:   i.PartsCost.Float(),
		ServiceFee:  i.ServiceFee.Float(),
		TotalCost:   total,
	}, mismatch, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ListInput holds pagination parameters. Zero or negative values select the
// defaults.
type ListInput struct {
	Page  int
	Limit int
}

// normalize applies defaults and caps the page size at maxLimit.
func (i ListInput) normalize(defaultLimit, maxLimit int) (page, limit int) {
	page, limit = i.Page, i.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// SearchInput holds the free-text query.
type SearchInput struct {
	Query string
}

// Validate checks all fields and collects all errors.
func (i SearchInput) Validate() error {
	if strings.TrimSpace(i.Query) == "" {
		return domain.NewValidationError("q", "required")
	}
	return nil
}
