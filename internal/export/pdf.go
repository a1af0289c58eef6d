package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/VedoCalc/internal/engine"
	"github.com/piwi3910/VedoCalc/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
)

// tableSpec describes a bordered table: column widths and header titles.
type tableSpec struct {
	widths  []float64
	headers []string
}

var cutoffTable = tableSpec{
	widths:  []float64{18, 16, 22, 16, 20, 20, 20, 28, 32, 75},
	headers: []string{"Cutoff", "Form", "Width", "Items", "Quantity", "Capacity", "Fill", "Total Area", "Projection Area", "Reference"},
}

var itemTable = tableSpec{
	widths:  []float64{55, 16, 16, 18, 18, 22, 22, 20, 26, 16, 16, 22},
	headers: []string{"Item", "Unit", "Qty", "Width", "Length", "Unroll m2", "Total m2", "Projection", "Projection m2", "Form", "Cutoff", "Type"},
}

// ExportPDF generates a PDF report of the processed cutoffs: a summary page
// with overall statistics and a per-cutoff table, followed by the full item
// list grouped by cutoff.
func ExportPDF(path string, report model.Report) error {
	if len(report.Cutoffs) == 0 {
		return fmt.Errorf("no cutoffs to export")
	}

	pdf := newReportPDF()
	renderReport(pdf, report)
	return pdf.OutputFileAndClose(path)
}

// newReportPDF creates the landscape document. The footer is drawn by fpdf
// whenever a page is closed.
func newReportPDF() *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetFooterFunc(func() { drawFooter(pdf) })
	return pdf
}

func renderReport(pdf *fpdf.Fpdf, report model.Report) {
	tr := textEncoder(pdf)

	pdf.AddPage()
	renderSummaryPage(pdf, tr, engine.Summarize(report))

	pdf.AddPage()
	renderItemPages(pdf, tr, report)
}

// renderSummaryPage draws the overall statistics and the cutoff breakdown.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, summary engine.ReportSummary) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutoff Report", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Cutoffs", fmt.Sprintf("%d", len(summary.Cutoffs))},
		{"Items", fmt.Sprintf("%d", summary.Items)},
		{"Total Pieces", fmt.Sprintf("%d", summary.Quantity)},
		{"Total Area", fmt.Sprintf("%.2f m2", summary.TotalArea)},
		{"Projection Area", fmt.Sprintf("%.2f m2", summary.ProjectionArea)},
		{"Over Capacity", fmt.Sprintf("%d", summary.OverCapacity)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cutoff Breakdown", "", 0, "L", false, 0, "")
	y += 9

	y = drawTableHeader(pdf, cutoffTable, y)
	for i, c := range summary.Cutoffs {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = drawTableHeader(pdf, cutoffTable, marginTop)
		}
		row := []string{
			fmt.Sprintf("%d", c.ID),
			fmt.Sprintf("%d", c.FormType),
			fmt.Sprintf("%d mm", c.WidthMM),
			fmt.Sprintf("%d", c.Items),
			fmt.Sprintf("%d", c.Quantity),
			fmt.Sprintf("%d", c.Capacity),
			fmt.Sprintf("%.0f%%", c.FillPercent),
			fmt.Sprintf("%.2f", c.TotalArea),
			fmt.Sprintf("%.2f", c.ProjectionArea),
			tr(c.Reference),
		}
		if c.OverCapacity {
			pdf.SetTextColor(200, 0, 0)
		}
		y = drawTableRow(pdf, cutoffTable, row, i, y)
		pdf.SetTextColor(0, 0, 0)
	}

	if summary.OverCapacity > 0 {
		y += 6
		if y+6 <= pageHeight-marginBottom {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(200, 0, 0)
			pdf.SetXY(marginLeft, y)
			msg := fmt.Sprintf("WARNING: %d cutoff(s) exceed their form capacity", summary.OverCapacity)
			pdf.CellFormat(200, 6, msg, "", 0, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	}
}

// renderItemPages lists every output row, cutoff by cutoff.
func renderItemPages(pdf *fpdf.Fpdf, tr func(string) string, report model.Report) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, "Items by Cutoff", "", 0, "L", false, 0, "")

	y := drawTableHeader(pdf, itemTable, marginTop+12)
	for _, c := range report.Cutoffs {
		for _, r := range c.Items {
			if y+rowHeight > pageHeight-marginBottom {
				pdf.AddPage()
				y = drawTableHeader(pdf, itemTable, marginTop)
			}
			row := []string{
				tr(r.Name),
				tr(r.Unit),
				fmt.Sprintf("%d", r.Quantity),
				fmt.Sprintf("%.2f", r.WidthM),
				fmt.Sprintf("%.2f", r.LengthM),
				fmt.Sprintf("%.2f", r.UnrollArea),
				fmt.Sprintf("%.2f", r.TotalArea),
				fmt.Sprintf("%.2f", r.ProjectionM),
				fmt.Sprintf("%.2f", r.ProjectionArea),
				fmt.Sprintf("%d", r.FormType),
				fmt.Sprintf("%d", r.CutoffID),
				fmt.Sprintf("%d", r.CutoffType),
			}
			if r.CutoffType == 0 {
				pdf.SetFont("Helvetica", "B", 9)
			}
			y = drawTableRow(pdf, itemTable, row, c.ID, y)
		}
	}
}

func drawTableHeader(pdf *fpdf.Fpdf, t tableSpec, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range t.headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(t.widths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += t.widths[i]
	}
	pdf.SetFont("Helvetica", "", 9)
	return y + rowHeight
}

// drawTableRow draws one row with alternating background and resets the font.
func drawTableRow(pdf *fpdf.Fpdf, t tableSpec, cells []string, stripe int, y float64) float64 {
	if stripe%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(t.widths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
		xPos += t.widths[j]
	}
	pdf.SetFont("Helvetica", "", 9)
	return y + rowHeight
}

func drawFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("VedoCalc cutoff report - page %d", pdf.PageNo())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
}
