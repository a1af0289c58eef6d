// Package engine groups item records into cutoffs: capacity-bounded
// manufacturing batches of a single form type and width.
package engine

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/piwi3910/VedoCalc/internal/model"
)

// Engine assigns cutoffs. It keeps no state between calls; the form
// configuration is read-only, so one Engine may serve concurrent callers.
type Engine struct {
	Forms  model.FormConfig
	Logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress messages.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.Logger = l
		}
	}
}

func New(forms model.FormConfig, opts ...Option) *Engine {
	e := &Engine{Forms: forms, Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process runs the full pipeline on ingested records: cutoff assignment
// followed by derived metrics. No partial report is returned on error.
func (e *Engine) Process(records []model.ItemRecord) (model.Report, error) {
	cutoffs, err := e.AssignCutoffs(records)
	if err != nil {
		e.Logger.Error("cutoff assignment failed", zap.Error(err))
		return model.Report{}, err
	}

	for i, c := range cutoffs {
		items := make([]model.ItemRecord, len(c.Items))
		for j, it := range c.Items {
			items[j] = WithMetrics(it)
		}
		cutoffs[i].Items = items
	}

	return model.Report{Cutoffs: cutoffs}, nil
}

// Validate checks every record before packing: quantities must be positive
// and every form type must be configured.
func (e *Engine) Validate(records []model.ItemRecord) error {
	for _, r := range records {
		if r.Quantity <= 0 {
			return &model.QuantityError{Item: r.Label(), Value: strconv.Itoa(r.Quantity)}
		}
		if _, ok := e.Forms.Form(r.FormType); !ok {
			return &model.FormTypeError{FormType: r.FormType, Item: r.Label()}
		}
	}
	return nil
}

// AssignCutoffs sorts the records by (form type, width, length descending),
// packs each (form type, width) group into cutoffs with a sequential first-fit
// pass and marks the longest record of every cutoff as its reference.
// Cutoff ids start at 1 and increase across all groups.
func (e *Engine) AssignCutoffs(records []model.ItemRecord) ([]model.Cutoff, error) {
	if len(records) == 0 {
		return nil, model.ErrNoItems
	}
	if err := e.Validate(records); err != nil {
		return nil, err
	}

	var cutoffs []model.Cutoff
	nextID := 1
	for _, g := range groupByFormWidth(sortRecords(records)) {
		form, _ := e.Forms.Form(g.formType)
		for _, bin := range packGroup(g.items, form.Capacity) {
			c := buildCutoff(nextID, g, form, bin)
			if c.OverCapacity() {
				e.Logger.Warn("single item exceeds form capacity",
					zap.Int("cutoff", c.ID),
					zap.String("item", bin[0].Label()),
					zap.Int("quantity", c.TotalQuantity()),
					zap.Int("capacity", form.Capacity))
			}
			cutoffs = append(cutoffs, c)
			nextID++
		}
	}

	e.Logger.Info("cutoffs assigned",
		zap.Int("records", len(records)),
		zap.Int("cutoffs", len(cutoffs)))
	return cutoffs, nil
}

// sortRecords returns a sorted copy. The sort is stable, so records with equal
// keys keep their input order.
func sortRecords(records []model.ItemRecord) []model.ItemRecord {
	sorted := make([]model.ItemRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.FormType != b.FormType {
			return a.FormType < b.FormType
		}
		if a.WidthMM != b.WidthMM {
			return a.WidthMM < b.WidthMM
		}
		return a.LengthM > b.LengthM
	})
	return sorted
}

// formWidthGroup holds the records sharing one form type and width.
type formWidthGroup struct {
	formType int
	widthMM  int
	items    []model.ItemRecord
}

// groupByFormWidth splits sorted records into runs of equal (form type, width).
// Order inside each run is preserved.
func groupByFormWidth(sorted []model.ItemRecord) []formWidthGroup {
	var groups []formWidthGroup
	for _, r := range sorted {
		n := len(groups)
		if n > 0 && groups[n-1].formType == r.FormType && groups[n-1].widthMM == r.WidthMM {
			groups[n-1].items = append(groups[n-1].items, r)
			continue
		}
		groups = append(groups, formWidthGroup{
			formType: r.FormType,
			widthMM:  r.WidthMM,
			items:    []model.ItemRecord{r},
		})
	}
	return groups
}

// packGroup walks the records in order and opens a new bin whenever the next
// record would push the open bin past capacity. A record that alone exceeds
// capacity still gets a bin of its own.
func packGroup(items []model.ItemRecord, capacity int) [][]model.ItemRecord {
	var bins [][]model.ItemRecord
	var current []model.ItemRecord
	total := 0

	for _, it := range items {
		if total+it.Quantity > capacity {
			if len(current) > 0 {
				bins = append(bins, current)
			}
			current = []model.ItemRecord{it}
			total = it.Quantity
			continue
		}
		current = append(current, it)
		total += it.Quantity
	}
	if len(current) > 0 {
		bins = append(bins, current)
	}
	return bins
}

// buildCutoff assigns the id and cutoff types for one bin. The first record
// with the greatest length is the reference and gets type 0.
func buildCutoff(id int, g formWidthGroup, form model.FormSpec, bin []model.ItemRecord) model.Cutoff {
	ref := 0
	for i, it := range bin {
		if it.LengthM > bin[ref].LengthM {
			ref = i
		}
	}

	items := make([]model.ItemRecord, len(bin))
	for i, it := range bin {
		cutoffType := form.CutoffType
		if i == ref {
			cutoffType = 0
		}
		items[i] = it.WithCutoff(id, cutoffType)
	}

	return model.Cutoff{
		ID:       id,
		FormType: g.formType,
		WidthMM:  g.widthMM,
		Capacity: form.Capacity,
		Items:    items,
	}
}
