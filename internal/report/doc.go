// Package report writes per-run counters (rows processed, cells
// classified, cells missing, schema warnings) as a Prometheus text
// exposition file, suitable for node_exporter's textfile collector.
// The write is atomic: temp file plus rename.
package report
