package export

import "testing"

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Лоток_500x300", "Lotok_500x300"},
		{"шт.", "sht."},
		{"Жёлоб", "Zhyolob"},
		{"подъезд", "podezd"},
		{"tray_500x300", "tray_500x300"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := transliterate(tt.in); got != tt.want {
			t.Errorf("transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextEncoder_CyrillicReadable(t *testing.T) {
	enc := textEncoder(newReportPDF())
	if got := enc("Лоток_500x300"); got != "Lotok_500x300" {
		t.Errorf("expected transliterated name, got %q", got)
	}
}
