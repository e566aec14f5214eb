package domain

import (
	"strings"
	"time"
)

// Estimate is a persisted service estimate. Costs are already coerced to
// numbers; TotalCost is whatever the caller stored.
type Estimate struct {
	ID          int64
	UnitNumber  string
	ModelNumber string
	Location    string
	Issue       string
	LaborCost   float64
	PartsCost   float64
	ServiceFee  float64
	TotalCost   float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EstimateData is the input for creating an estimate.
type EstimateData struct {
	UnitNumber  string
	ModelNumber string
	Location    string
	Issue       string
	LaborCost   Amount
	PartsCost   Amount
	ServiceFee  Amount
	TotalCost   float64
}

// SumCosts returns labor + parts + fee with empty values counted as 0.
func SumCosts(labor, parts, fee Amount) float64 {
	return labor.Float() + parts.Float() + fee.Float()
}

// ComputedTotal derives the total from the three cost fields.
func (d EstimateData) ComputedTotal() float64 {
	return SumCosts(d.LaborCost, d.PartsCost, d.ServiceFee)
}

// MissingRequired returns the names of required text fields that are blank.
func (d EstimateData) MissingRequired() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"unitNumber", d.UnitNumber},
		{"modelNumber", d.ModelNumber},
		{"location", d.Location},
		{"issue", d.Issue},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// EstimatePage is one page of estimates, newest first.
type EstimatePage struct {
	Data       []Estimate
	Total      int
	Page       int
	TotalPages int
}

// EstimateStats aggregates over every stored estimate.
type EstimateStats struct {
	TotalEstimates  int
	TotalRevenue    float64
	AvgEstimate     float64
	RecentEstimates int
}

// FinalEstimate is a fully resolved estimate ready for rendering.
type FinalEstimate struct {
	UnitNumber  string
	ModelNumber string
	Location    string
	Issue       string
	LaborCost   float64
	PartsCost   float64
	ServiceFee  float64
	TotalCost   float64
	Date        time.Time
}
