// Package render turns a resolved estimate into a downloadable document.
// PDF output uses go-pdf/fpdf and spreadsheet output uses excelize; both
// share the section layout defined in layout.go.
package render

import (
	"errors"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// Renderer produces a complete document for one estimate.
type Renderer interface {
	Render(e domain.FinalEstimate) ([]byte, error)
}

// Renderers returns the built-in renderer for every supported format.
func Renderers() map[docformat.Format]Renderer {
	return map[docformat.Format]Renderer{
		docformat.PDF:   NewPDFRenderer(),
		docformat.Excel: NewExcelRenderer(),
	}
}

func wrap(f docformat.Format, err error) error {
	var re *domain.RenderError
	if errors.As(err, &re) {
		return err
	}
	return &domain.RenderError{Format: string(f), Err: err}
}
