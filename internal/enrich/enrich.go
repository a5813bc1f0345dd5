package enrich

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ecomorph/instar/internal/classify"
	"github.com/ecomorph/instar/internal/dataset"
)

// labelSuffix is appended to a measurement code to name its derived column.
const labelSuffix = "_instar"

// Enricher appends instar columns to a specimen table: one label column
// per configured measurement code, plus the per-specimen mean score and
// its banded aggregate label.
//
// All fields are read-only during Enrich, so one Enricher may be reused
// across runs.
type Enricher struct {
	Table   classify.Table
	Banding classify.Banding

	// Codes is the ordered list of measurement columns to classify.
	Codes []string

	// ScoreColumn and LabelColumn name the two aggregate output columns.
	ScoreColumn string
	LabelColumn string
}

// Stats summarises one enrichment run for logging and the metrics file.
type Stats struct {
	// Rows is the number of specimen rows processed.
	Rows int

	// Classified counts cells that received a stage or pair label.
	Classified int

	// Intermediate counts the subset of Classified cells that fell in the
	// gap between two published stages.
	Intermediate int

	// MissingCells counts cells that were absent or unparseable.
	MissingCells int

	// MissingCodes lists configured codes with no matching input column.
	MissingCodes []string
}

// Enrich classifies every configured measurement of every row and returns
// a new frame with the derived columns appended. The input frame is not
// modified; row order and original columns are preserved.
//
// A configured code with no matching column is logged once and its label
// column is emitted uniformly missing. Unparseable measurement values
// become missing labels silently. The only error condition is a reference
// table that is missing a configured code, which config validation
// normally rules out before data is read.
func (e *Enricher) Enrich(f *dataset.Frame) (*dataset.Frame, *Stats, error) {
	stats := &Stats{Rows: len(f.Rows)}

	// Pass 1: per-cell classification, one label column per code.
	labels := make([][]classify.Label, len(e.Codes))
	for ci, code := range e.Codes {
		col, ok := f.Col(code)
		if !ok {
			slog.Warn("enrich: measurement column not in input — stage column will be empty",
				"code", code)
			stats.MissingCodes = append(stats.MissingCodes, code)
			labels[ci] = make([]classify.Label, len(f.Rows))
			stats.MissingCells += len(f.Rows)
			continue
		}

		out := make([]classify.Label, len(f.Rows))
		for ri := range f.Rows {
			v, ok := f.Float(ri, col)
			if !ok {
				stats.MissingCells++
				continue
			}
			l, err := classify.Classify(v, code, e.Table)
			if err != nil {
				return nil, nil, err
			}
			out[ri] = l
			if l.IsMissing() {
				stats.MissingCells++
				continue
			}
			stats.Classified++
			if strings.ContainsRune(string(l), '-') {
				stats.Intermediate++
			}
		}
		labels[ci] = out
	}

	// Pass 2: per-row reduction to the mean score and its banded label.
	scoreCol, labelCol := e.ScoreColumn, e.LabelColumn
	if scoreCol == "" {
		scoreCol = "instar_score"
	}
	if labelCol == "" {
		labelCol = "instar"
	}

	columns := make([]string, 0, len(f.Columns)+len(e.Codes)+2)
	columns = append(columns, f.Columns...)
	for _, code := range e.Codes {
		columns = append(columns, code+labelSuffix)
	}
	columns = append(columns, scoreCol, labelCol)

	rows := make([][]string, len(f.Rows))
	for ri, src := range f.Rows {
		row := make([]string, len(f.Columns), len(columns))
		copy(row, src) // pads ragged source rows with empty cells

		sum, n := 0.0, 0
		for ci := range e.Codes {
			l := labels[ci][ri]
			row = append(row, string(l))
			if s, ok := classify.ToScore(l); ok {
				sum += s
				n++
			}
		}

		if n == 0 {
			// All measurements missing: aggregate stays missing, not zero.
			row = append(row, "", "")
			rows[ri] = row
			continue
		}

		score := roundScore(sum / float64(n))
		row = append(row, strconv.FormatFloat(score, 'f', -1, 64))

		agg, err := e.Banding.ToLabel(score)
		if err != nil {
			// Unreachable with rank-based scores (always ≥ 1); degrade to
			// missing rather than abort a whole run over one row.
			slog.Warn("enrich: aggregate score outside banding", "row", ri, "score", score, "err", err)
			agg = classify.Missing
		}
		row = append(row, string(agg))
		rows[ri] = row
	}

	return &dataset.Frame{Columns: columns, Rows: rows}, stats, nil
}

// roundScore removes float noise from the mean. Scores are means of
// half-integer ranks, so real values are multiples of 0.1 for the
// five-measurement protocol; rounding keeps exact band edges like 1.3
// from drifting past their boundary.
func roundScore(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
