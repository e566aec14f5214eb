package render

import (
	"fmt"
	"math"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// Document text shared by all formats.
const (
	TitlePDF     = "HVAC Service Estimate"
	TitleSheet   = "HVAC SERVICE ESTIMATE"
	DateLabel    = "Estimate Date:"
	TotalLabel   = "Total Estimate:"
	FooterValid  = "This estimate is valid for 30 days from the date of issue."
	FooterThanks = "Thank you for your business!"
)

// SectionKind drives per-format styling of a section.
type SectionKind int

const (
	SectionUnit SectionKind = iota
	SectionService
	SectionCost
)

// Row is one label/value line inside a section.
type Row struct {
	Label string
	Value string
}

// Section is a titled group of rows.
type Section struct {
	Kind  SectionKind
	Title string
	Rows  []Row
}

// Layout returns the ordered sections of an estimate document. The total is
// not part of any section; renderers draw it separately with TotalLabel.
func Layout(e domain.FinalEstimate) []Section {
	return []Section{
		{
			Kind:  SectionUnit,
			Title: "Unit Information",
			Rows: []Row{
				{"Unit Number:", e.UnitNumber},
				{"Model Number:", e.ModelNumber},
				{"Location:", e.Location},
			},
		},
		{
			Kind:  SectionService,
			Title: "Service Details",
			Rows:  []Row{{"Issue Description:", e.Issue}},
		},
		{
			Kind:  SectionCost,
			Title: "Cost Breakdown",
			Rows: []Row{
				{"Labor Cost:", docformat.Currency(e.LaborCost)},
				{"Parts Cost:", docformat.Currency(e.PartsCost)},
				{"Service Fee:", docformat.Currency(e.ServiceFee)},
			},
		},
	}
}

// checkAmounts rejects costs that cannot be printed as currency.
func checkAmounts(e domain.FinalEstimate) error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"labor cost", e.LaborCost},
		{"parts cost", e.PartsCost},
		{"service fee", e.ServiceFee},
		{"total cost", e.TotalCost},
	} {
		if math.IsInf(c.v, 0) || math.IsNaN(c.v) {
			return fmt.Errorf("%s: %w", c.name, domain.ErrInvalidAmount)
		}
	}
	return nil
}
