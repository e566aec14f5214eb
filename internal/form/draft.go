// Package form holds the client-side estimate form: the draft being edited,
// field validation rules, the total calculator and the state controller that
// ties them together.
package form

import "errors"

// ErrUnknownField is returned when a caller addresses a field the form does
// not have. The total is derived and is not an addressable field.
var ErrUnknownField = errors.New("unknown form field")

// Field names a user-editable form field. Values match the JSON wire names.
type Field string

const (
	FieldUnitNumber  Field = "unitNumber"
	FieldModelNumber Field = "modelNumber"
	FieldLocation    Field = "location"
	FieldIssue       Field = "issue"
	FieldLaborCost   Field = "laborCost"
	FieldPartsCost   Field = "partsCost"
	FieldServiceFee  Field = "serviceFee"
)

// Fields lists every editable field in display order.
var Fields = []Field{
	FieldUnitNumber,
	FieldModelNumber,
	FieldLocation,
	FieldIssue,
	FieldLaborCost,
	FieldPartsCost,
	FieldServiceFee,
}

// IsValid reports whether f is one of the editable fields.
func (f Field) IsValid() bool {
	switch f {
	case FieldUnitNumber, FieldModelNumber, FieldLocation, FieldIssue,
		FieldLaborCost, FieldPartsCost, FieldServiceFee:
		return true
	}
	return false
}

// IsCost reports whether f is one of the three cost fields.
func (f Field) IsCost() bool {
	return f == FieldLaborCost || f == FieldPartsCost || f == FieldServiceFee
}

func (f Field) String() string { return string(f) }

// Draft is the in-progress estimate. Cost fields keep the raw text the user
// typed so that a blank field stays distinct from "0".
type Draft struct {
	UnitNumber  string
	ModelNumber string
	Location    string
	Issue       string
	LaborCost   string
	PartsCost   string
	ServiceFee  string
	TotalCost   float64
}

// Value returns the raw value of f.
func (d Draft) Value(f Field) (string, error) {
	switch f {
	case FieldUnitNumber:
		return d.UnitNumber, nil
	case FieldModelNumber:
		return d.ModelNumber, nil
	case FieldLocation:
		return d.Location, nil
	case FieldIssue:
		return d.Issue, nil
	case FieldLaborCost:
		return d.LaborCost, nil
	case FieldPartsCost:
		return d.PartsCost, nil
	case FieldServiceFee:
		return d.ServiceFee, nil
	}
	return "", ErrUnknownField
}

// set assigns a raw value and keeps TotalCost in sync.
func (d *Draft) set(f Field, value string) error {
	switch f {
	case FieldUnitNumber:
		d.UnitNumber = value
	case FieldModelNumber:
		d.ModelNumber = value
	case FieldLocation:
		d.Location = value
	case FieldIssue:
		d.Issue = value
	case FieldLaborCost:
		d.LaborCost = value
	case FieldPartsCost:
		d.PartsCost = value
	case FieldServiceFee:
		d.ServiceFee = value
	default:
		return ErrUnknownField
	}
	d.TotalCost = ComputeTotal(d.LaborCost, d.PartsCost, d.ServiceFee)
	return nil
}
