// Package export writes processed cutoff reports to spreadsheets, PDF
// reports and QR-coded label sheets.
package export

import "github.com/piwi3910/VedoCalc/internal/model"

// Columns is the fixed header of the output table. Downstream consumers
// rely on both the names and the order.
var Columns = []string{
	"item name",
	"unit",
	"quantity",
	"width (m)",
	"length (m)",
	"unroll area (m²)",
	"total area (m²)",
	"projection (m)",
	"projection area (m²)",
	"form type",
	"cutoff id",
	"cutoff type",
}

// Row projects one record onto the output columns. The millimeter grouping
// keys and the source identifier are not part of the output.
func Row(r model.ItemRecord) []any {
	return []any{
		r.Name,
		r.Unit,
		r.Quantity,
		r.WidthM,
		r.LengthM,
		r.UnrollArea,
		r.TotalArea,
		r.ProjectionM,
		r.ProjectionArea,
		r.FormType,
		r.CutoffID,
		r.CutoffType,
	}
}

// Rows projects records in order.
func Rows(records []model.ItemRecord) [][]any {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r))
	}
	return rows
}
