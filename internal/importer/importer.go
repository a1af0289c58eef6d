// Package importer turns uploaded files into item records. Plain text and
// DXF annotations are read as lists of item identifiers; Excel and CSV files
// are read as tables with one row per item.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/piwi3910/VedoCalc/internal/model"
)

// ImportResult holds the records read from one source.
type ImportResult struct {
	Records  []model.ItemRecord
	Warnings []string
}

// Options controls ImportFile.
type Options struct {
	MaxFileSize int64 // bytes, 0 = unlimited
	Logger      *zap.Logger
}

// ImportFile reads the file at path, choosing the input mode by extension:
// .txt and .dxf are token lists, .xlsx and .csv are tables.
func ImportFile(path string, opts Options) (ImportResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	info, err := os.Stat(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open file: %w", err)
	}
	if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
		return ImportResult{}, fmt.Errorf("%w: %s is %d bytes, limit is %d", model.ErrFileTooLarge, filepath.Base(path), info.Size(), opts.MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var result ImportResult
	switch ext {
	case ".txt":
		result, err = ImportText(path)
	case ".xlsx":
		result, err = ImportExcel(path)
	case ".csv":
		result, err = ImportCSV(path)
	case ".dxf":
		result, err = ImportDXF(path)
	default:
		return ImportResult{}, fmt.Errorf("%w: %q (supported: .txt, .xlsx, .csv, .dxf)", model.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		log.Error("import failed", zap.String("file", path), zap.Error(err))
		return ImportResult{}, err
	}

	log.Info("items loaded",
		zap.String("file", filepath.Base(path)),
		zap.String("format", strings.TrimPrefix(ext, ".")),
		zap.Int("records", len(result.Records)))
	for _, w := range result.Warnings {
		log.Warn(w, zap.String("file", filepath.Base(path)))
	}
	return result, nil
}

// Column roles of tabular input.
const (
	colName       = "item name"
	colUnit       = "unit"
	colQuantity   = "quantity"
	colWidth      = "width (m)"
	colLength     = "length (m)"
	colProjection = "projection (m)"
	colFormType   = "form type"
)

// requiredColumns lists the roles that must be present in a header.
var requiredColumns = []string{colQuantity, colWidth, colLength, colProjection, colFormType}

// headerAliases maps column roles to their accepted header names (lowercase).
// Besides the English names the Russian headers of the legacy spreadsheets
// are accepted.
var headerAliases = []struct {
	role    string
	aliases []string
}{
	{colName, []string{"item name", "наименование изделия"}},
	{colUnit, []string{"unit", "ед. изм."}},
	{colQuantity, []string{"quantity", "количество", "кол-во"}},
	{colWidth, []string{"width (m)", "ширина, м"}},
	{colLength, []string{"length (m)", "длина, м"}},
	{colProjection, []string{"projection (m)", "проекция, м"}},
	{colFormType, []string{"form type", "тип формы"}},
}

// ColumnMapping maps column roles to their indices in the header.
// Roles that are absent are not in the map.
type ColumnMapping map[string]int

// DetectColumns maps a header row to column roles. Matching ignores case and
// surrounding whitespace; unknown columns are ignored. The first column
// matching a role wins.
func DetectColumns(header []string) ColumnMapping {
	mapping := ColumnMapping{}
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		for _, h := range headerAliases {
			if _, seen := mapping[h.role]; seen {
				continue
			}
			for _, alias := range h.aliases {
				if normalized == alias {
					mapping[h.role] = i
					break
				}
			}
		}
	}
	return mapping
}

// Missing returns the required roles absent from the mapping, in column order.
func (m ColumnMapping) Missing() []string {
	var missing []string
	for _, role := range requiredColumns {
		if _, ok := m[role]; !ok {
			missing = append(missing, role)
		}
	}
	return missing
}

// cell safely retrieves a trimmed cell value for a role.
func (m ColumnMapping) cell(row []string, role string) string {
	idx, ok := m[role]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber reads a decimal number, accepting a comma as decimal separator.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// parseWhole reads an integer, also accepting integral decimals such as "3.0"
// that spreadsheets produce.
func parseWhole(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := parseNumber(s)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// toMillimeters converts meters to whole millimeters, truncating.
func toMillimeters(m float64) int {
	return int(math.Trunc(m * 1000))
}

// parseRow builds a record from one data row.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, recordCount int) (model.ItemRecord, error) {
	name := mapping.cell(row, colName)
	if name == "" {
		name = fmt.Sprintf("Item %d", recordCount+1)
	}
	unit := mapping.cell(row, colUnit)
	if unit == "" {
		unit = model.DefaultUnit
	}

	qtyStr := mapping.cell(row, colQuantity)
	qty, ok := parseWhole(qtyStr)
	if !ok || qty <= 0 {
		return model.ItemRecord{}, fmt.Errorf("%s: %w", rowLabel, &model.QuantityError{Item: name, Value: qtyStr})
	}

	dims := make(map[string]float64, 3)
	for _, role := range []string{colWidth, colLength, colProjection} {
		s := mapping.cell(row, role)
		v, err := parseNumber(s)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.ItemRecord{}, &model.ValueError{Row: rowLabel, Column: role, Value: s}
		}
		dims[role] = v
	}

	formStr := mapping.cell(row, colFormType)
	formType, ok := parseWhole(formStr)
	if !ok {
		return model.ItemRecord{}, &model.ValueError{Row: rowLabel, Column: colFormType, Value: formStr}
	}

	return model.ItemRecord{
		Name:        name,
		Unit:        unit,
		Quantity:    qty,
		WidthMM:     toMillimeters(dims[colWidth]),
		LengthMM:    toMillimeters(dims[colLength]),
		WidthM:      dims[colWidth],
		LengthM:     dims[colLength],
		ProjectionM: dims[colProjection],
		FormType:    formType,
	}, nil
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// importFromRows is the shared tabular logic for CSV and Excel data. The first
// row must be a header naming the required columns. Any bad row aborts the
// import.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) (ImportResult, error) {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: file is empty", model.ErrNoItems)
	}

	mapping := DetectColumns(rows[0])
	if missing := mapping.Missing(); len(missing) > 0 {
		return ImportResult{}, &model.ColumnsError{Missing: missing}
	}

	skipped := 0
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			skipped++
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		rec, err := parseRow(row, mapping, rowLabel, len(result.Records))
		if err != nil {
			return ImportResult{}, err
		}
		result.Records = append(result.Records, rec)
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d empty rows", skipped))
	}
	if len(result.Records) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no data rows", model.ErrNoItems)
	}
	return result, nil
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// ImportCSV imports records from a CSV file, detecting the delimiter.
func ImportCSV(path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{}, fmt.Errorf("%w: file is empty", model.ErrNoItems)
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	rows, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return ImportResult{}, err
	}
	return importFromRows(rows, "Line", warnings)
}

// ImportCSVFromReader imports records from a CSV reader with a known delimiter.
func ImportCSVFromReader(r io.Reader, delimiter rune) (ImportResult, error) {
	rows, err := readCSV(r, delimiter)
	if err != nil {
		return ImportResult{}, err
	}
	return importFromRows(rows, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV: %w", err)
	}
	return rows, nil
}

// ImportExcel imports records from the first sheet of an .xlsx file.
func ImportExcel(path string) (ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()
	return importWorkbook(f)
}

// ImportExcelFromReader imports records from an .xlsx stream.
func ImportExcelFromReader(r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot open Excel file: %w", err)
	}
	defer f.Close()
	return importWorkbook(f)
}

func importWorkbook(f *excelize.File) (ImportResult, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{}, fmt.Errorf("%w: workbook has no sheets", model.ErrNoItems)
	}

	// Raw values: number formats must not round the dimensions.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return ImportResult{}, fmt.Errorf("cannot read Excel data: %w", err)
	}

	var warnings []string
	if len(sheets) > 1 {
		warnings = append(warnings, fmt.Sprintf("Workbook has %d sheets, reading only %q", len(sheets), sheets[0]))
	}
	return importFromRows(rows, "Row", warnings)
}
