package export

import (
	"testing"

	"github.com/piwi3910/VedoCalc/internal/engine"
	"github.com/piwi3910/VedoCalc/internal/model"
)

// buildTestReport runs a realistic token list through the engine:
// cutoff 1 holds two form-1 trays, cutoff 2 one form-2 panel.
func buildTestReport(t *testing.T) model.Report {
	t.Helper()
	forms, err := model.DefaultAppConfig().FormConfig()
	if err != nil {
		t.Fatalf("FormConfig: %v", err)
	}

	var records []model.ItemRecord
	for _, in := range []struct {
		id  string
		qty int
	}{
		{"tray_500x300x50_1", 2},
		{"tray_500x250x50_1", 1},
		{"panel_600x1200x40_2", 5},
	} {
		spec, err := model.ParseIdentifier(in.id)
		if err != nil {
			t.Fatalf("ParseIdentifier(%q): %v", in.id, err)
		}
		records = append(records, model.NewItemRecord(in.id, spec, in.qty))
	}

	report, err := engine.New(forms).Process(records)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return report
}
