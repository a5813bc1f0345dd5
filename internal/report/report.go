package report

import (
	"fmt"
	"os"
	"path/filepath"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/ecomorph/instar/internal/enrich"
)

// Write serializes the run counters to path in Prometheus text exposition
// format, the convention consumed by node_exporter's textfile collector.
// The file is written to a temp sibling and renamed so a collector never
// reads a half-written report.
func Write(path string, stats *enrich.Stats) error {
	families := build(stats)

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".instar-metrics-*")
	if err != nil {
		return fmt.Errorf("report: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			tmp.Close()
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("report: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("report: rename into place: %w", err)
	}
	return nil
}

// build assembles the metric families for one run.
func build(stats *enrich.Stats) []*dto.MetricFamily {
	families := []*dto.MetricFamily{
		gauge("instar_rows_processed",
			"Specimen rows read from the input table.",
			float64(stats.Rows)),
		gauge("instar_cells_classified",
			"Measurement cells that received an instar label.",
			float64(stats.Classified)),
		gauge("instar_cells_intermediate",
			"Classified cells that fell between two published stages.",
			float64(stats.Intermediate)),
		gauge("instar_cells_missing",
			"Measurement cells that were absent or unparseable.",
			float64(stats.MissingCells)),
	}

	if len(stats.MissingCodes) > 0 {
		mf := &dto.MetricFamily{
			Name: proto.String("instar_missing_column"),
			Help: proto.String("Configured measurement codes with no matching input column."),
			Type: dto.MetricType_GAUGE.Enum(),
		}
		for _, code := range stats.MissingCodes {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Label: []*dto.LabelPair{{
					Name:  proto.String("code"),
					Value: proto.String(code),
				}},
				Gauge: &dto.Gauge{Value: proto.Float64(1)},
			})
		}
		families = append(families, mf)
	}

	return families
}

// gauge builds a single-sample unlabeled gauge family.
func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(value)}}},
	}
}
