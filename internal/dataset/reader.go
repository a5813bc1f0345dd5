package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Reader loads a specimen table from some tabular source.
type Reader interface {
	Read() (*Frame, error)
}

// NewReader returns the appropriate Reader for the given file path,
// keyed by extension.
func NewReader(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &csvReader{path: path}, nil
	case ".xlsx":
		return &xlsxReader{path: path}, nil
	default:
		return nil, fmt.Errorf("dataset: unsupported table format %q", path)
	}
}

type csvReader struct {
	path string
}

// Read parses the CSV file. The delimiter is auto-detected from the
// header line among comma, semicolon and tab, since field spreadsheets
// exported on European locales commonly use semicolons.
func (r *csvReader) Read() (*Frame, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read csv: %w", err)
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.Comma = detectDelimiter(string(data))
	cr.FieldsPerRecord = -1 // tolerate ragged rows
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse csv %q: %w", r.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %q has no header row", r.path)
	}

	return &Frame{Columns: records[0], Rows: records[1:]}, nil
}

// detectDelimiter picks the separator that splits the header line into
// the most fields.
func detectDelimiter(data string) rune {
	header := data
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	best, bestCount := ',', strings.Count(header, ",")
	for _, c := range []rune{';', '\t'} {
		if n := strings.Count(header, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
