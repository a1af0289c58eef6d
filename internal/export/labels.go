package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/VedoCalc/internal/model"
)

// LabelInfo holds the data encoded into each label's QR code.
type LabelInfo struct {
	Item       string  `json:"item"`
	Quantity   int     `json:"quantity"`
	WidthM     float64 `json:"width_m"`
	LengthM    float64 `json:"length_m"`
	FormType   int     `json:"form_type"`
	CutoffID   int     `json:"cutoff"`
	CutoffType int     `json:"cutoff_type"`
}

// Reference reports whether the label belongs to the reference row of its cutoff.
func (l LabelInfo) Reference() bool {
	return l.CutoffType == 0
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per output row.
// Each label shows the item, its cutoff and marker, plus a QR code encoding
// the same data as JSON.
func ExportLabels(path string, report model.Report) error {
	labels := CollectLabelInfos(report)
	if len(labels) == 0 {
		return fmt.Errorf("no items to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := textEncoder(pdf)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Item, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, idx int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.CutoffID, idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate long names
	name := tr(info.Item)
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.2f x %.2f m, qty %d", info.WidthM, info.LengthM, info.Quantity)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Cutoff %d | form %d", info.CutoffID, info.FormType), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	if info.Reference() {
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(0, 120, 0)
		pdf.CellFormat(textW, 3, "REFERENCE", "", 0, "L", false, 0, "")
	} else {
		pdf.CellFormat(textW, 3, fmt.Sprintf("Cutoff type %d", info.CutoffType), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a report, one entry per
// output row in cutoff order.
func CollectLabelInfos(report model.Report) []LabelInfo {
	var labels []LabelInfo
	for _, r := range report.Rows() {
		labels = append(labels, LabelInfo{
			Item:       r.Name,
			Quantity:   r.Quantity,
			WidthM:     r.WidthM,
			LengthM:    r.LengthM,
			FormType:   r.FormType,
			CutoffID:   r.CutoffID,
			CutoffType: r.CutoffType,
		})
	}
	return labels
}
