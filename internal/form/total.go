package form

import "github.com/heartmarshall/hvac-estimate/internal/domain"

// ComputeTotal sums the three raw cost values. Blank or unparsable values
// count as 0. No rounding is applied.
func ComputeTotal(laborCost, partsCost, serviceFee string) float64 {
	return coerce(laborCost) + coerce(partsCost) + coerce(serviceFee)
}

func coerce(raw string) float64 {
	a, err := domain.ParseAmount(raw)
	if err != nil {
		return 0
	}
	return a.Float()
}
