package form

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// MaxCost is the largest accepted value for a single cost field.
const MaxCost = 999999.99

// MsgCostRequired is attached to laborCost when no cost is above zero.
const MsgCostRequired = "At least one cost field must have a value greater than 0"

// FieldErrors maps a field to its current error message. A missing key means
// the field is valid.
type FieldErrors map[Field]string

type textRule struct {
	label    string
	min, max int
}

var textRules = map[Field]textRule{
	FieldUnitNumber:  {label: "Unit number", min: 2, max: 50},
	FieldModelNumber: {label: "Model number", min: 2, max: 50},
	FieldLocation:    {label: "Location", min: 3, max: 100},
	FieldIssue:       {label: "Issue description", min: 10, max: 500},
}

var costLabels = map[Field]string{
	FieldLaborCost:  "Labor cost",
	FieldPartsCost:  "Parts cost",
	FieldServiceFee: "Service fee",
}

// ValidateField checks a single raw value and returns the error message, or
// "" when the value is acceptable. Unknown fields are always valid.
func ValidateField(f Field, raw string) string {
	if rule, ok := textRules[f]; ok {
		return validateText(rule, raw)
	}
	if label, ok := costLabels[f]; ok {
		return validateCost(label, raw)
	}
	return ""
}

// Required checks the trimmed value; length limits count characters of the
// value as entered.
func validateText(rule textRule, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return rule.label + " is required"
	}
	n := utf8.RuneCountInString(raw)
	if n < rule.min {
		return fmt.Sprintf("%s must be at least %d characters", rule.label, rule.min)
	}
	if n > rule.max {
		return fmt.Sprintf("%s must not exceed %d characters", rule.label, rule.max)
	}
	return ""
}

// Blank and zero skip every numeric check.
func validateCost(label, raw string) string {
	a, err := domain.ParseAmount(raw)
	if err != nil {
		return label + " must be a valid number"
	}
	v := a.Float()
	switch {
	case v == 0:
		return ""
	case v < 0:
		return label + " cannot be negative"
	case v > MaxCost:
		return label + " is too high"
	}
	return ""
}

// ValidateForm validates every field of d and applies the cross-field rule
// that at least one cost must be greater than zero. That error is always
// reported on laborCost.
func ValidateForm(d Draft) FieldErrors {
	errs := make(FieldErrors)
	for _, f := range Fields {
		v, _ := d.Value(f)
		if msg := ValidateField(f, v); msg != "" {
			errs[f] = msg
		}
	}

	if coerce(d.LaborCost) <= 0 && coerce(d.PartsCost) <= 0 && coerce(d.ServiceFee) <= 0 {
		errs[FieldLaborCost] = MsgCostRequired
	}
	return errs
}
