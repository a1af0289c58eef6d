package model

import (
	"errors"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.FormCapacity1 != 15 || cfg.FormCapacity2 != 20 || cfg.FormCapacity3 != 10 {
		t.Errorf("unexpected capacities: %d/%d/%d", cfg.FormCapacity1, cfg.FormCapacity2, cfg.FormCapacity3)
	}
	if cfg.CutoffType1 != 8 || cfg.CutoffType2 != 9 || cfg.CutoffType3 != 10 {
		t.Errorf("unexpected cutoff types: %d/%d/%d", cfg.CutoffType1, cfg.CutoffType2, cfg.CutoffType3)
	}
	if cfg.MaxFileSize != 20*1024*1024 {
		t.Errorf("expected 20 MiB limit, got %d", cfg.MaxFileSize)
	}
	if cfg.Owner == "" {
		t.Error("Owner should not be empty")
	}
}

func TestAppConfigFormConfig(t *testing.T) {
	forms, err := DefaultAppConfig().FormConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types := forms.FormTypes()
	if len(types) != 3 || types[0] != 1 || types[1] != 2 || types[2] != 3 {
		t.Errorf("expected form types [1 2 3], got %v", types)
	}
	if c, ok := forms.Capacity(2); !ok || c != 20 {
		t.Errorf("expected capacity 20 for form 2, got %d (ok=%v)", c, ok)
	}
	if ct, ok := forms.CutoffType(3); !ok || ct != 10 {
		t.Errorf("expected cutoff type 10 for form 3, got %d (ok=%v)", ct, ok)
	}
	if _, ok := forms.Capacity(4); ok {
		t.Error("form 4 should not be configured")
	}
}

func TestAppConfigFormConfigRejectsNonPositive(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.FormCapacity2 = 0
	if _, err := cfg.FormConfig(); err == nil {
		t.Error("expected error for zero capacity")
	}

	cfg = DefaultAppConfig()
	cfg.CutoffType1 = -1
	if _, err := cfg.FormConfig(); err == nil {
		t.Error("expected error for negative cutoff type")
	}
}

func TestNewFormConfigRejectsDuplicate(t *testing.T) {
	_, err := NewFormConfig(
		FormSpec{FormType: 1, Capacity: 5, CutoffType: 1},
		FormSpec{FormType: 1, Capacity: 6, CutoffType: 2},
	)
	if err == nil {
		t.Error("expected error for duplicate form type")
	}
}

func TestErrorKindsUnwrap(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{&IdentifierError{Identifier: "x"}, ErrMalformedIdentifier},
		{&FormTypeError{FormType: 4, Item: "x"}, ErrUnknownFormType},
		{&QuantityError{Item: "x", Value: "0"}, ErrInvalidQuantity},
		{&ColumnsError{Missing: []string{"quantity"}}, ErrMissingColumns},
		{&ValueError{Row: "Row 2", Column: "width (m)", Value: "abc"}, ErrInvalidValue},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.kind) {
			t.Errorf("%v does not unwrap to %v", c.err, c.kind)
		}
	}
}
