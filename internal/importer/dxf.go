package importer

import (
	"fmt"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXF reads item identifiers from the TEXT annotations of a DXF
// drawing. Each annotation may hold one or more whitespace-separated
// identifiers; they are counted exactly like a plain-text token list.
// Geometry entities are ignored.
func ImportDXF(path string) (ImportResult, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open DXF file: %w", err)
	}

	var tokens []string
	skipped := 0
	for _, ent := range drawing.Entities() {
		t, ok := ent.(*entity.Text)
		if !ok {
			skipped++
			continue
		}
		tokens = append(tokens, strings.Fields(t.Value)...)
	}

	result, err := recordsFromTokens(tokens)
	if err != nil {
		return ImportResult{}, err
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d non-text entities", skipped))
	}
	return result, nil
}
