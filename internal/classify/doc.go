// Package classify assigns larval instar stages to morphological
// measurements using published per-stage size ranges.
//
// classify.go provides the pure Classify function: value + measurement
// code + reference Table → Label. Values inside a published range get
// that stage; values beyond the extremes saturate to the youngest or
// oldest stage; values in the gap between two stages get a pair label
// such as "II-III". ToScore converts labels to ordinal scores for
// averaging (pair labels score rank+0.5).
//
// banding.go provides Banding.ToLabel, the separate tolerance-band
// function that renders a per-specimen mean score back into a label.
// Band edges for the four-instar series: 1.3/1.6/2.3/2.6/3.3/3.6.
package classify
