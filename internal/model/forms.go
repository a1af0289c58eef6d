package model

import (
	"fmt"
	"sort"
)

// FormSpec describes one form type: how many pieces a single cutoff may hold
// and the marker written on the non-reference rows of its cutoffs.
type FormSpec struct {
	FormType   int `json:"form_type"`
	Capacity   int `json:"capacity"`
	CutoffType int `json:"cutoff_type"`
}

// FormConfig is the read-only form configuration consumed by the engine.
// It is built once and never changed, so it can be shared between goroutines.
type FormConfig struct {
	forms map[int]FormSpec
}

// NewFormConfig validates the given forms and returns the configuration.
func NewFormConfig(specs ...FormSpec) (FormConfig, error) {
	forms := make(map[int]FormSpec, len(specs))
	for _, s := range specs {
		if s.Capacity <= 0 {
			return FormConfig{}, fmt.Errorf("form type %d: capacity must be positive, got %d", s.FormType, s.Capacity)
		}
		if s.CutoffType <= 0 {
			return FormConfig{}, fmt.Errorf("form type %d: cutoff type must be positive, got %d", s.FormType, s.CutoffType)
		}
		if _, dup := forms[s.FormType]; dup {
			return FormConfig{}, fmt.Errorf("form type %d configured twice", s.FormType)
		}
		forms[s.FormType] = s
	}
	return FormConfig{forms: forms}, nil
}

// Form returns the specification for a form type.
func (c FormConfig) Form(formType int) (FormSpec, bool) {
	s, ok := c.forms[formType]
	return s, ok
}

// Capacity returns the capacity configured for a form type.
func (c FormConfig) Capacity(formType int) (int, bool) {
	s, ok := c.forms[formType]
	return s.Capacity, ok
}

// CutoffType returns the cutoff-type marker configured for a form type.
func (c FormConfig) CutoffType(formType int) (int, bool) {
	s, ok := c.forms[formType]
	return s.CutoffType, ok
}

// FormTypes returns the configured form types in ascending order.
func (c FormConfig) FormTypes() []int {
	types := make([]int, 0, len(c.forms))
	for t := range c.forms {
		types = append(types, t)
	}
	sort.Ints(types)
	return types
}
