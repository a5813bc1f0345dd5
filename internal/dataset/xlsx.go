package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct {
	path string
}

// Read loads the first worksheet of an .xlsx workbook. The first row is
// the header; remaining rows become data rows. excelize trims trailing
// empty cells per row, which Frame's accessors already tolerate.
func (r *xlsxReader) Read() (*Frame, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset: %q has no worksheets", r.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("dataset: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: %q has no header row", r.path)
	}

	return &Frame{Columns: rows[0], Rows: rows[1:]}, nil
}
