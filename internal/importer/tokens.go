package importer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/VedoCalc/internal/model"
)

// ImportText imports a plain-text token list from a file.
func ImportText(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()
	return ImportTokens(f)
}

// ImportTokens reads whitespace-separated item identifiers. Every token is
// one piece; repeated identifiers are counted into a single record.
func ImportTokens(r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read text: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	return recordsFromTokens(strings.Fields(text))
}

// recordsFromTokens counts tokens per identifier and parses each distinct
// identifier once. Records come out in order of first occurrence. A single
// malformed identifier fails the whole list.
func recordsFromTokens(tokens []string) (ImportResult, error) {
	if len(tokens) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no identifiers in input", model.ErrNoItems)
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	result := ImportResult{Records: make([]model.ItemRecord, 0, len(order))}
	for _, id := range order {
		spec, err := model.ParseIdentifier(id)
		if err != nil {
			return ImportResult{}, err
		}
		result.Records = append(result.Records, model.NewItemRecord(id, spec, counts[id]))
	}
	return result, nil
}
