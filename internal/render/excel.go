package render

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

// SheetName is the single worksheet in an exported estimate.
const SheetName = "HVAC Estimate"

// ExcelRenderer builds an .xlsx workbook with one worksheet.
type ExcelRenderer struct{}

// NewExcelRenderer returns a spreadsheet renderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

type sheetStyles struct {
	title, dateLabel, dateValue    int
	section, label, value, wrapped int
	costLabel, costValue           int
	totalLabel, totalValue         int
	footer, thanks                 int
}

// Render implements Renderer.
func (r *ExcelRenderer) Render(e domain.FinalEstimate) (_ []byte, err error) {
	if err := checkAmounts(e); err != nil {
		return nil, wrap(docformat.Excel, err)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = wrap(docformat.Excel, cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, wrap(docformat.Excel, err)
	}
	st, err := newSheetStyles(f)
	if err != nil {
		return nil, wrap(docformat.Excel, err)
	}

	w := &sheetWriter{f: f}
	w.colWidth("A", 30)
	w.colWidth("B", 35)

	// Title.
	w.merged(1, TitleSheet, st.title, 35)

	// Row 2 stays blank; the bordered block starts at row 3.
	w.pair(3, DateLabel, docformat.Date(e.Date), st.dateLabel, st.dateValue, 0)

	row := 5
	for _, s := range Layout(e) {
		w.merged(row, strings.ToUpper(s.Title), st.section, 25)
		row++
		for _, line := range s.Rows {
			switch s.Kind {
			case SectionService:
				w.pair(row, line.Label, line.Value, st.label, st.wrapped, 30)
			case SectionCost:
				w.pair(row, line.Label, line.Value, st.costLabel, st.costValue, 20)
			default:
				w.pair(row, line.Label, line.Value, st.label, st.value, 20)
			}
			row++
		}
		row++ // spacer
	}
	totalRow := row
	w.pair(totalRow, "TOTAL ESTIMATE", docformat.Currency(e.TotalCost), st.totalLabel, st.totalValue, 30)

	if err := w.borders(3, totalRow); err != nil {
		return nil, wrap(docformat.Excel, err)
	}

	footer := totalRow + 3
	w.merged(footer, FooterValid, st.footer, 0)
	w.merged(footer+1, FooterThanks, st.thanks, 0)

	if w.err != nil {
		return nil, wrap(docformat.Excel, w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, wrap(docformat.Excel, fmt.Errorf("write xlsx: %w", err))
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Sheet helpers
// ---------------------------------------------------------------------------

// sheetWriter keeps the first error so the layout reads top to bottom.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) do(fn func() error) {
	if w.err == nil {
		w.err = fn()
	}
}

func (w *sheetWriter) colWidth(col string, width float64) {
	w.do(func() error { return w.f.SetColWidth(SheetName, col, col, width) })
}

func (w *sheetWriter) height(row int, h float64) {
	if h > 0 {
		w.do(func() error { return w.f.SetRowHeight(SheetName, row, h) })
	}
}

func (w *sheetWriter) merged(row int, value string, style int, h float64) {
	a, b := cell("A", row), cell("B", row)
	w.do(func() error { return w.f.MergeCell(SheetName, a, b) })
	w.do(func() error { return w.f.SetCellStr(SheetName, a, value) })
	w.do(func() error { return w.f.SetCellStyle(SheetName, a, b, style) })
	w.height(row, h)
}

func (w *sheetWriter) pair(row int, label, value string, labelStyle, valueStyle int, h float64) {
	a, b := cell("A", row), cell("B", row)
	w.do(func() error { return w.f.SetCellStr(SheetName, a, label) })
	w.do(func() error { return w.f.SetCellStr(SheetName, b, value) })
	w.do(func() error { return w.f.SetCellStyle(SheetName, a, a, labelStyle) })
	w.do(func() error { return w.f.SetCellStyle(SheetName, b, b, valueStyle) })
	w.height(row, h)
}

// borders adds a thin black outline to every A/B cell in [from, to], keeping
// each cell's existing style.
func (w *sheetWriter) borders(from, to int) error {
	if w.err != nil {
		return w.err
	}
	for row := from; row <= to; row++ {
		for _, col := range []string{"A", "B"} {
			ref := cell(col, row)
			id, err := w.f.GetCellStyle(SheetName, ref)
			if err != nil {
				return err
			}
			style, err := w.f.GetStyle(id)
			if err != nil {
				return err
			}
			style.Border = thinBorder
			bordered, err := w.f.NewStyle(style)
			if err != nil {
				return err
			}
			if err := w.f.SetCellStyle(SheetName, ref, ref, bordered); err != nil {
				return err
			}
		}
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

var thinBorder = []excelize.Border{
	{Type: "top", Color: "000000", Style: 1},
	{Type: "left", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var (
		st  sheetStyles
		err error
	)
	def := func(dst *int, s *excelize.Style) {
		if err == nil {
			*dst, err = f.NewStyle(s)
		}
	}

	middle := &excelize.Alignment{Vertical: "center"}

	def(&st.title, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2563EB"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	def(&st.dateLabel, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})
	def(&st.dateValue, &excelize.Style{Font: &excelize.Font{Size: 11}})
	def(&st.section, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	def(&st.label, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, Alignment: middle})
	def(&st.value, &excelize.Style{Font: &excelize.Font{Size: 11}, Alignment: middle})
	def(&st.wrapped, &excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	def(&st.costLabel, &excelize.Style{Font: &excelize.Font{Size: 11}})
	def(&st.costValue, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	def(&st.totalLabel, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FEF3C7"}},
		Alignment: middle,
	})
	def(&st.totalValue, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FEF3C7"}},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	def(&st.footer, &excelize.Style{
		Font:      &excelize.Font{Size: 9, Italic: true, Color: "6B7280"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	def(&st.thanks, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return st, err
}
