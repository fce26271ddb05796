package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"naija-tax/domain"
)

// pdfWriter wraps the document with a translator into the core fonts'
// cp1252 encoding. The naira sign has no cp1252 glyph, so it becomes NGN.
type pdfWriter struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (w pdfWriter) text(s string) string {
	return w.tr(strings.ReplaceAll(s, "₦", "NGN "))
}

func (w pdfWriter) row(label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	w.SetFont("Helvetica", style, 11)
	w.CellFormat(110, 8, w.text(label), "B", 0, "L", false, 0, "")
	w.CellFormat(70, 8, w.text(value), "B", 1, "R", false, 0, "")
}

// RenderReportPDF renders the tax report as a single-page A4 PDF.
func RenderReportPDF(data domain.TaxReportData, generatedAt time.Time) ([]byte, error) {
	p := projectedSummary(data)
	label := PeriodLabel(data.Period)

	doc := fpdf.New("P", "mm", "A4", "")
	pdf := pdfWriter{Fpdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle("Nigeria Tax Report", false)
	pdf.SetAuthor("Oduko Tax Calculator", false)
	pdf.AddPage()

	pdf.SetFillColor(186, 240, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(180, 14, "Your Tax Report", "", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(180, 7, "Nigeria Personal Income Tax Calculator", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if data.FirstName != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(180, 7, pdf.text(fmt.Sprintf("Prepared for %s", data.FirstName)), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(180, 9, fmt.Sprintf("Tax Summary (%s)", label), "", 1, "L", false, 0, "")
	pdf.row("Gross Income", FormatNGN(p.GrossIncome), false)
	pdf.row("Total Deductions", FormatNGN(p.TotalDeductions), false)
	pdf.row("Taxable Income", FormatNGN(p.TaxableIncome), false)
	pdf.row("Total Tax", FormatNGN(p.TotalTax), true)
	pdf.row("Net Income", FormatNGN(p.NetIncome), true)
	pdf.row("Effective Tax Rate", FormatPercent(data.EffectiveRate), false)
	pdf.Ln(6)

	if len(p.Breakdown) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(180, 9, fmt.Sprintf("Tax by Bracket (%s)", label), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 7, "Bracket", "B", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, "Amount", "B", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, "Tax", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, b := range p.Breakdown {
			pdf.CellFormat(80, 7, pdf.text(b.Bracket), "", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, FormatNGN(b.Amount), "", 0, "R", false, 0, "")
			pdf.CellFormat(50, 7, FormatNGN(b.Tax), "", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(180, 9, "Deduction Breakdown (Annual)", "", 1, "L", false, 0, "")
	for _, row := range deductionRows(data) {
		pdf.row(row.Label, row.Value, false)
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(180, 4,
		"This is an automated tax calculation based on Nigerian tax laws. "+
			"Please consult with a tax professional for personalized advice.", "", "L", false)
	pdf.CellFormat(180, 5, "Generated "+generatedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
