// Package enrich orchestrates instar classification over a whole
// specimen table: a per-cell pass that classifies every configured
// measurement column, then a per-row pass that averages the resulting
// stage scores and bands the mean back into an aggregate label.
//
// The enricher never mutates its input frame and degrades gracefully:
// absent columns and unparseable values become missing labels, and every
// configured code always yields its derived column.
package enrich
