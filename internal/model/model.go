package model

// DefaultUnit is the unit label written for every output row.
const DefaultUnit = "pieces"

// ItemSpec holds the fields decoded from an item identifier
// of the form name_WIDTHxLENGTHxPROJECTION_FORMTYPE.
type ItemSpec struct {
	Name         string `json:"name"`
	WidthMM      int    `json:"width_mm"`
	LengthMM     int    `json:"length_mm"`
	ProjectionMM int    `json:"projection_mm"`
	FormType     int    `json:"form_type"`
}

// DisplayName returns the output name of the item: the original name plus
// the width x length suffix.
func (s ItemSpec) DisplayName() string {
	return s.Name + "_" + itoa(s.WidthMM) + "x" + itoa(s.LengthMM)
}

// ItemRecord is the working unit of the pipeline. Records are values: every
// stage returns new records instead of modifying the ones it was given.
type ItemRecord struct {
	Identifier string `json:"identifier,omitempty"` // Source identifier (token input only)
	Name       string `json:"name"`                 // Display name
	Unit       string `json:"unit"`
	Quantity   int    `json:"quantity"`

	// Grouping keys, in whole millimeters
	WidthMM  int `json:"width_mm"`
	LengthMM int `json:"length_mm"`

	WidthM      float64 `json:"width_m"`
	LengthM     float64 `json:"length_m"`
	ProjectionM float64 `json:"projection_m"`
	FormType    int     `json:"form_type"`

	// Derived metrics, filled after cutoff assignment
	UnrollArea     float64 `json:"unroll_area_m2"`
	TotalArea      float64 `json:"total_area_m2"`
	ProjectionArea float64 `json:"projection_area_m2"`

	CutoffID   int `json:"cutoff_id"`
	CutoffType int `json:"cutoff_type"`
}

// NewItemRecord builds a record from a parsed identifier and its occurrence count.
func NewItemRecord(identifier string, spec ItemSpec, qty int) ItemRecord {
	return ItemRecord{
		Identifier:  identifier,
		Name:        spec.DisplayName(),
		Unit:        DefaultUnit,
		Quantity:    qty,
		WidthMM:     spec.WidthMM,
		LengthMM:    spec.LengthMM,
		WidthM:      Round2(float64(spec.WidthMM) / 1000),
		LengthM:     Round2(float64(spec.LengthMM) / 1000),
		ProjectionM: Round2(float64(spec.ProjectionMM) / 1000),
		FormType:    spec.FormType,
	}
}

// WithCutoff returns a copy of the record assigned to the given cutoff.
func (r ItemRecord) WithCutoff(id, cutoffType int) ItemRecord {
	r.CutoffID = id
	r.CutoffType = cutoffType
	return r
}

// Label returns the identifier when known, otherwise the display name.
// It is used to name the record in error messages.
func (r ItemRecord) Label() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Name
}

// Cutoff is one manufacturing batch: records of a single
// (form type, width) group whose quantities share one form.
type Cutoff struct {
	ID       int          `json:"id"`
	FormType int          `json:"form_type"`
	WidthMM  int          `json:"width_mm"`
	Capacity int          `json:"capacity"`
	Items    []ItemRecord `json:"items"`
}

// TotalQuantity returns the summed quantity of all records in the cutoff.
func (c Cutoff) TotalQuantity() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// OverCapacity reports whether the cutoff holds more than its form allows.
// This only happens for a single record whose own quantity exceeds capacity.
func (c Cutoff) OverCapacity() bool {
	return c.TotalQuantity() > c.Capacity
}

// Reference returns the record marked with cutoff type 0.
func (c Cutoff) Reference() (ItemRecord, bool) {
	for _, it := range c.Items {
		if it.CutoffType == 0 {
			return it, true
		}
	}
	return ItemRecord{}, false
}

// Report is the full result of one run of the pipeline.
type Report struct {
	Cutoffs []Cutoff `json:"cutoffs"`
}

// Rows returns all records flattened in cutoff id order.
func (r Report) Rows() []ItemRecord {
	var rows []ItemRecord
	for _, c := range r.Cutoffs {
		rows = append(rows, c.Items...)
	}
	return rows
}

// TotalQuantity returns the number of pieces across all cutoffs.
func (r Report) TotalQuantity() int {
	total := 0
	for _, c := range r.Cutoffs {
		total += c.TotalQuantity()
	}
	return total
}
