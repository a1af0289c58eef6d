package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/VedoCalc/internal/model"
)

// outputTag marks generated spreadsheets in their file name.
const outputTag = "AutoCalc"

// FileInfo describes a spreadsheet written to storage.
type FileInfo struct {
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	Owner        string    `json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
}

// SaveOptions controls SaveReport.
type SaveOptions struct {
	StoragePath  string
	OriginalName string // Name of the uploaded file
	Owner        string
	Now          time.Time // Zero means time.Now()
}

// OutputFileName builds the name of a generated spreadsheet:
// <timestamp>_AutoCalc_<original stem>_<8 hex chars>.xlsx
func OutputFileName(original string, now time.Time) string {
	base := filepath.Base(original)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s_%s_%s.xlsx",
		now.Format("2006-01-02_15-04-05"), outputTag, stem, uuid.NewString()[:8])
}

// buildWorkbook lays out records as a single sheet: the header row followed
// by one row per record.
func buildWorkbook(records []model.ItemRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range Rows(records) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := styleHeader(f, sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	return f, nil
}

// styleHeader bolds the header row and widens the name column.
func styleHeader(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 32)
}

// WriteExcel writes records as an .xlsx workbook to w.
func WriteExcel(w io.Writer, records []model.ItemRecord) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// ExportExcel writes records as an .xlsx workbook at path.
func ExportExcel(path string, records []model.ItemRecord) error {
	f, err := buildWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// SaveReport writes the report rows into a newly named spreadsheet inside
// the storage directory and returns the file's metadata.
func SaveReport(report model.Report, opts SaveOptions) (FileInfo, error) {
	rows := report.Rows()
	if len(rows) == 0 {
		return FileInfo{}, fmt.Errorf("%w: nothing to write", model.ErrNoItems)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := os.MkdirAll(opts.StoragePath, 0755); err != nil {
		return FileInfo{}, fmt.Errorf("failed to create storage directory: %w", err)
	}

	name := OutputFileName(opts.OriginalName, now)
	path := filepath.Join(opts.StoragePath, name)
	if err := ExportExcel(path, rows); err != nil {
		return FileInfo{}, fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Name:         name,
		OriginalName: opts.OriginalName,
		Path:         path,
		Size:         st.Size(),
		Owner:        opts.Owner,
		CreatedAt:    now,
	}, nil
}
