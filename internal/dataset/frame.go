package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Frame is an immutable in-memory table: a header and string-valued rows.
// Rows may be ragged (shorter than the header) when the source file has
// trailing empty cells; accessors treat out-of-range cells as missing.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Col returns the index of the named column and whether it exists.
func (f *Frame) Col(name string) (int, bool) {
	for i, c := range f.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the raw string at (row, col), "" for out-of-range cells.
func (f *Frame) Cell(row, col int) string {
	if row < 0 || row >= len(f.Rows) {
		return ""
	}
	r := f.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Float parses the cell at (row, col) as a number. Field measurements come
// from hand-filled spreadsheets, so parsing is lenient: surrounding
// whitespace is ignored and a decimal comma is accepted. Anything that
// still does not parse — including empty cells and placeholders like "NA" —
// is reported as missing (ok = false), never as an error.
func (f *Frame) Float(row, col int) (float64, bool) {
	s := strings.TrimSpace(f.Cell(row, col))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
