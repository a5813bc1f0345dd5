package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"

	"github.com/ecomorph/instar/internal/enrich"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instar_run.prom")
	stats := &enrich.Stats{
		Rows:         120,
		Classified:   570,
		Intermediate: 14,
		MissingCells: 30,
		MissingCodes: []string{"LVP"},
	}

	if err := Write(path, stats); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	// Parse back with the same exposition-format machinery a scraper uses.
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(f)
	if err != nil {
		t.Fatalf("parse report: %v", err)
	}

	tests := []struct {
		name string
		want float64
	}{
		{"instar_rows_processed", 120},
		{"instar_cells_classified", 570},
		{"instar_cells_intermediate", 14},
		{"instar_cells_missing", 30},
	}
	for _, tc := range tests {
		mf, ok := mfs[tc.name]
		if !ok {
			t.Errorf("metric %s missing from report", tc.name)
			continue
		}
		if got := mf.GetMetric()[0].GetGauge().GetValue(); got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, got, tc.want)
		}
	}

	mf, ok := mfs["instar_missing_column"]
	if !ok {
		t.Fatal("instar_missing_column missing from report")
	}
	m := mf.GetMetric()[0]
	if got := m.GetLabel()[0].GetValue(); got != "LVP" {
		t.Errorf("missing column label = %q, want %q", got, "LVP")
	}
}

func TestWrite_NoMissingCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instar_run.prom")
	if err := Write(path, &enrich.Stats{Rows: 1, Classified: 5}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(data), "instar_missing_column") {
		t.Error("instar_missing_column emitted with no missing codes")
	}
}

func TestWrite_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "instar_run.prom")
	if err := Write(path, &enrich.Stats{}); err == nil {
		t.Error("want error for unwritable directory")
	}
}
