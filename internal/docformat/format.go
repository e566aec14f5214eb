// Package docformat names the downloadable document formats and the text
// conventions shared by the server renderers and the API client. It carries
// no rendering code, so clients can import it without the PDF and
// spreadsheet libraries.
package docformat

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownFormat is returned by Parse for anything but pdf or excel.
var ErrUnknownFormat = errors.New("unknown document format")

// Format identifies a document type as it appears in ?format=.
type Format string

const (
	PDF   Format = "pdf"
	Excel Format = "excel"
)

// Parse validates a raw format string. Matching is exact.
func Parse(raw string) (Format, error) {
	switch f := Format(raw); f {
	case PDF, Excel:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Extension is the file extension without the dot.
func (f Format) Extension() string {
	if f == Excel {
		return "xlsx"
	}
	return "pdf"
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == Excel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Label is the human name used in error messages ("PDF", "Excel").
func (f Format) Label() string {
	if f == Excel {
		return "Excel"
	}
	return "PDF"
}

// Filename returns hvac-estimate-YYYY-MM-DD.<ext> for the given issue date.
// The date is taken in UTC.
func Filename(date time.Time, f Format) string {
	return fmt.Sprintf("hvac-estimate-%s.%s", Date(date), f.Extension())
}

// Date renders an issue date as YYYY-MM-DD in UTC.
func Date(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// Currency renders v as dollars with exactly two decimals, e.g. $275.00.
// Negative values keep their sign after the dollar sign. Non-finite values
// are printed as-is instead of being rounded.
func Currency(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "$" + strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
