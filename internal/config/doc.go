// Package config loads and validates the YAML configuration for a
// staging run: input/output paths, the ordered measurement codes, and
// the published reference table of per-stage size ranges.
//
// Load applies defaults and validates the reference table eagerly
// (known stage numerals, ascending ranks, min ≤ max, no overlaps) so a
// malformed table is a startup error, never a silent misclassification.
// Watch provides fsnotify-based hot-reload for watch mode.
package config
