package engine

import "github.com/piwi3910/VedoCalc/internal/model"

// WithMetrics returns a copy of r with unroll, total and projection areas set.
// All values are rounded to two decimals.
func WithMetrics(r model.ItemRecord) model.ItemRecord {
	qty := float64(r.Quantity)
	r.UnrollArea = model.Round2(r.WidthM * r.LengthM)
	r.TotalArea = model.Round2(r.UnrollArea * qty)
	r.ProjectionArea = model.Round2(r.LengthM * r.ProjectionM * qty)
	return r
}
