package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/domain"
)

type rgb struct{ r, g, b int }

var (
	colorHeader   = rgb{0x25, 0x63, 0xeb}
	colorWhite    = rgb{0xff, 0xff, 0xff}
	colorBlack    = rgb{0x00, 0x00, 0x00}
	colorMuted    = rgb{0x66, 0x66, 0x66}
	colorLabel    = rgb{0x37, 0x41, 0x51}
	colorRule     = rgb{0xd1, 0xd5, 0xdb}
	colorTotalBg  = rgb{0xfe, 0xf3, 0xc7}
	colorTotalLbl = rgb{0x92, 0x40, 0x0e}
	colorTotalVal = rgb{0x78, 0x35, 0x0f}
	colorFooter   = rgb{0x9c, 0xa3, 0xaf}

	sectionColors = map[SectionKind]rgb{
		SectionUnit:    {0x10, 0xb9, 0x81},
		SectionService: {0xf5, 0x9e, 0x0b},
		SectionCost:    {0x8b, 0x5c, 0xf6},
	}
)

// Page geometry in millimetres (A4, portrait).
const (
	pdfMargin      = 18.0
	pdfHeaderH     = 28.0
	pdfSectionH    = 9.0
	pdfLineH       = 7.0
	pdfLabelW      = 42.0
	pdfCostValueW  = 36.0
	pdfTotalBoxH   = 13.0
	pdfFooterSpace = 28.0
)

// PDFRenderer draws a single-page A4 estimate.
type PDFRenderer struct{}

// NewPDFRenderer returns a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render implements Renderer.
func (r *PDFRenderer) Render(e domain.FinalEstimate) ([]byte, error) {
	if err := checkAmounts(e); err != nil {
		return nil, wrap(docformat.PDF, err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(TitlePDF, true)
	pdf.SetCreationDate(e.Date)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented input survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	// Header band.
	fill(pdf, colorHeader)
	pdf.Rect(0, 0, pageW, pdfHeaderH, "F")
	text(pdf, colorWhite)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(pdfMargin, 9)
	pdf.CellFormat(contentW, 10, tr(TitlePDF), "", 1, "C", false, 0, "")

	text(pdf, colorMuted)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(pdfMargin, pdfHeaderH+6)
	pdf.CellFormat(contentW, 6, tr(DateLabel+" "+docformat.Date(e.Date)), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	for _, s := range Layout(e) {
		drawSection(pdf, s, contentW, tr)
	}

	// Rule, then the highlighted total.
	y := pdf.GetY() + 2
	pdf.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	pdf.SetLineWidth(0.3)
	pdf.Line(pdfMargin+6, y, pageW-pdfMargin, y)

	y += 4
	fill(pdf, colorTotalBg)
	pdf.Rect(pdfMargin, y, contentW, pdfTotalBoxH, "F")
	pdf.SetXY(pdfMargin+4, y+2)
	text(pdf, colorTotalLbl)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW/2, pdfTotalBoxH-4, tr(TotalLabel), "", 0, "L", false, 0, "")
	text(pdf, colorTotalVal)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW/2-8, pdfTotalBoxH-4, docformat.Currency(e.TotalCost), "", 1, "R", false, 0, "")

	// Footer, pinned near the bottom edge.
	text(pdf, colorFooter)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(pdfMargin, pageH-pdfFooterSpace)
	pdf.CellFormat(contentW, 5, tr(FooterValid), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, tr(FooterThanks), "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, wrap(docformat.PDF, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, wrap(docformat.PDF, fmt.Errorf("write pdf: %w", err))
	}
	return buf.Bytes(), nil
}

func drawSection(pdf *fpdf.Fpdf, s Section, contentW float64, tr func(string) string) {
	y := pdf.GetY()
	fill(pdf, sectionColors[s.Kind])
	pdf.Rect(pdfMargin, y, contentW, pdfSectionH, "F")
	text(pdf, colorWhite)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(pdfMargin+4, y+1.5)
	pdf.CellFormat(contentW-8, pdfSectionH-3, tr(s.Title), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	indent := pdfMargin + 6
	for _, row := range s.Rows {
		pdf.SetX(indent)
		text(pdf, colorLabel)
		pdf.SetFont("Helvetica", "B", 11)

		switch s.Kind {
		case SectionService:
			// Issue text wraps under its label.
			pdf.CellFormat(contentW-6, pdfLineH, tr(row.Label), "", 1, "L", false, 0, "")
			pdf.SetX(indent)
			text(pdf, colorBlack)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(contentW-12, pdfLineH-1, tr(row.Value), "", "L", false)
		case SectionCost:
			pdf.SetFont("Helvetica", "", 11)
			pdf.CellFormat(contentW-6-pdfCostValueW, pdfLineH, tr(row.Label), "", 0, "L", false, 0, "")
			text(pdf, colorBlack)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(pdfCostValueW, pdfLineH, row.Value, "", 1, "R", false, 0, "")
		default:
			// Long values wrap in the value column instead of running off
			// the page.
			pdf.CellFormat(pdfLabelW, pdfLineH, tr(row.Label), "", 0, "L", false, 0, "")
			text(pdf, colorBlack)
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(contentW-6-pdfLabelW, pdfLineH, tr(row.Value), "", "L", false)
		}
	}
	pdf.Ln(5)
}

func fill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func text(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
