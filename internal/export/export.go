package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ecomorph/instar/internal/dataset"
)

// Writer persists an enriched specimen table.
type Writer interface {
	Write(f *dataset.Frame) error
}

// NewWriter returns the appropriate Writer for the given output path,
// keyed by extension. sheet names the worksheet for .xlsx output and is
// ignored for CSV.
func NewWriter(path, sheet string) (Writer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &csvWriter{path: path}, nil
	case ".xlsx":
		return &xlsxWriter{path: path, sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("export: unsupported table format %q", path)
	}
}

type csvWriter struct {
	path string
}

func (w *csvWriter) Write(f *dataset.Frame) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("export: create csv: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(f.Columns); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for i, row := range f.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return file.Close()
}

type xlsxWriter struct {
	path  string
	sheet string
}

// Write serializes the frame to a single-sheet workbook. Cells that parse
// as plain numbers are written as numbers so the scores stay usable in
// spreadsheet formulas; everything else is written as text.
func (w *xlsxWriter) Write(f *dataset.Frame) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := w.sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := book.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("export: name sheet: %w", err)
		}
	}

	if err := setRow(book, sheet, 1, headerCells(f.Columns)); err != nil {
		return err
	}
	for i, row := range f.Rows {
		if err := setRow(book, sheet, i+2, typedCells(row)); err != nil {
			return err
		}
	}

	if err := book.SaveAs(w.path); err != nil {
		return fmt.Errorf("export: save workbook: %w", err)
	}
	return nil
}

func setRow(book *excelize.File, sheet string, row int, cells []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: row %d: %w", row, err)
	}
	if err := book.SetSheetRow(sheet, ref, &cells); err != nil {
		return fmt.Errorf("export: write row %d: %w", row, err)
	}
	return nil
}

func headerCells(cols []string) []interface{} {
	out := make([]interface{}, len(cols))
	for i, c := range cols {
		out[i] = c
	}
	return out
}

// typedCells converts a string row to typed cells, keeping numbers numeric.
func typedCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, s := range row {
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = v
			continue
		}
		out[i] = s
	}
	return out
}
