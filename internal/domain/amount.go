package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a cost value is neither empty nor a number.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a numeric-or-empty cost value. The zero value is empty, which is
// distinct from an explicit 0 until it is coerced with Float.
type Amount struct {
	value float64
	set   bool
}

// NewAmount returns a non-empty Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{value: v, set: true}
}

// ParseAmount parses user-entered text. Blank input yields an empty Amount.
// Only finite numbers are accepted: "NaN", "Inf" and values that overflow a
// float64 (such as "1e400") fail.
func ParseAmount(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Amount{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return NewAmount(v), nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// IsEmpty reports whether no value was entered.
func (a Amount) IsEmpty() bool { return !a.set }

// Float returns the value with empty coerced to 0.
func (a Amount) Float() float64 {
	if !a.set {
		return 0
	}
	return a.value
}

func (a Amount) String() string {
	if !a.set {
		return ""
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil || !isFinite(v) {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
	}
	*a = NewAmount(v)
	return nil
}

// MarshalJSON writes empty as "" and everything else as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte(`""`), nil
	}
	if !isFinite(a.value) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, a.value)
	}
	return json.Marshal(a.value)
}
