package export

import (
	"strings"
	"testing"

	"github.com/piwi3910/VedoCalc/internal/model"
)

func TestColumns_FixedOrder(t *testing.T) {
	want := "item name|unit|quantity|width (m)|length (m)|unroll area (m²)|total area (m²)|" +
		"projection (m)|projection area (m²)|form type|cutoff id|cutoff type"
	if got := strings.Join(Columns, "|"); got != want {
		t.Errorf("unexpected columns:\n got %s\nwant %s", got, want)
	}
}

func TestRow_ProjectsRecord(t *testing.T) {
	r := model.ItemRecord{
		Identifier:     "tray_500x300x50_1",
		Name:           "tray_500x300",
		Unit:           "pieces",
		Quantity:       2,
		WidthMM:        500,
		LengthMM:       300,
		WidthM:         0.5,
		LengthM:        0.3,
		ProjectionM:    0.05,
		FormType:       1,
		UnrollArea:     0.15,
		TotalArea:      0.3,
		ProjectionArea: 0.03,
		CutoffID:       1,
		CutoffType:     8,
	}

	row := Row(r)
	if len(row) != len(Columns) {
		t.Fatalf("expected %d cells, got %d", len(Columns), len(row))
	}

	want := []any{"tray_500x300", "pieces", 2, 0.5, 0.3, 0.15, 0.3, 0.05, 0.03, 1, 1, 8}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %q: got %v, want %v", Columns[i], row[i], want[i])
		}
	}
}

func TestRows_KeepsOrder(t *testing.T) {
	report := buildTestReport(t)
	rows := Rows(report.Rows())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "tray_500x300" || rows[1][0] != "tray_500x250" || rows[2][0] != "panel_600x1200" {
		t.Errorf("unexpected row order: %v, %v, %v", rows[0][0], rows[1][0], rows[2][0])
	}
	if rows[2][10] != 2 {
		t.Errorf("expected panel in cutoff 2, got %v", rows[2][10])
	}
}
