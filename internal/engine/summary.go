package engine

import (
	"github.com/piwi3910/VedoCalc/internal/model"
)

// CutoffSummary holds the computed statistics for a single cutoff.
type CutoffSummary struct {
	ID             int
	FormType       int
	WidthMM        int
	Items          int
	Quantity       int
	Capacity       int
	FillPercent    float64
	OverCapacity   bool
	Reference      string
	TotalArea      float64
	ProjectionArea float64
}

// ReportSummary aggregates the cutoff summaries of one report.
type ReportSummary struct {
	Cutoffs        []CutoffSummary
	Items          int
	Quantity       int
	TotalArea      float64
	ProjectionArea float64
	OverCapacity   int
}

// Summarize computes per-cutoff statistics and totals for a report,
// in cutoff id order.
func Summarize(report model.Report) ReportSummary {
	summary := ReportSummary{
		Cutoffs: make([]CutoffSummary, 0, len(report.Cutoffs)),
	}

	for _, c := range report.Cutoffs {
		cs := CutoffSummary{
			ID:           c.ID,
			FormType:     c.FormType,
			WidthMM:      c.WidthMM,
			Items:        len(c.Items),
			Quantity:     c.TotalQuantity(),
			Capacity:     c.Capacity,
			OverCapacity: c.OverCapacity(),
		}
		if c.Capacity > 0 {
			cs.FillPercent = float64(cs.Quantity) / float64(c.Capacity) * 100.0
		}
		if ref, ok := c.Reference(); ok {
			cs.Reference = ref.Name
		}
		for _, it := range c.Items {
			cs.TotalArea += it.TotalArea
			cs.ProjectionArea += it.ProjectionArea
		}
		cs.TotalArea = model.Round2(cs.TotalArea)
		cs.ProjectionArea = model.Round2(cs.ProjectionArea)

		summary.Items += cs.Items
		summary.Quantity += cs.Quantity
		summary.TotalArea += cs.TotalArea
		summary.ProjectionArea += cs.ProjectionArea
		if cs.OverCapacity {
			summary.OverCapacity++
		}
		summary.Cutoffs = append(summary.Cutoffs, cs)
	}

	summary.TotalArea = model.Round2(summary.TotalArea)
	summary.ProjectionArea = model.Round2(summary.ProjectionArea)
	return summary
}
