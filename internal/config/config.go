package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ecomorph/instar/internal/classify"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultOutput      = "instars.xlsx"
	DefaultSheet       = "Specimens"
	DefaultScoreColumn = "instar_score"
	DefaultLabelColumn = "instar"
)

// tableFormats are the file extensions the reader and writer factories accept.
var tableFormats = map[string]bool{".csv": true, ".xlsx": true}

// Config is the top-level configuration for one staging run.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	// Input is the path of the specimen measurement table (.csv or .xlsx).
	Input string `yaml:"input"`

	// Output is the path the enriched table is written to (.csv or .xlsx).
	Output string `yaml:"output"`

	// Sheet is the worksheet name used when Output is an .xlsx file.
	Sheet string `yaml:"sheet"`

	// MetricsFile, when non-empty, is where per-run counters are written
	// in Prometheus text exposition format (textfile-collector style).
	MetricsFile string `yaml:"metrics_file"`

	// Codes is the ordered list of measurement columns to classify.
	Codes []string `yaml:"codes"`

	// ScoreColumn and LabelColumn name the two aggregate output columns.
	ScoreColumn string `yaml:"score_column"`
	LabelColumn string `yaml:"label_column"`

	// Reference holds the published instar size ranges per measurement
	// code, youngest stage first. This is domain data from the literature,
	// supplied by the caller, never baked into the classifier.
	Reference map[string][]Band `yaml:"reference"`
}

// Band is one published size range for one instar stage.
type Band struct {
	// Stage is the instar numeral: I, II, III, ...
	Stage string `yaml:"stage"`

	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults, and the
// reference table is validated eagerly so a malformed table aborts the
// run before any specimen is touched.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Output:      DefaultOutput,
		Sheet:       DefaultSheet,
		ScoreColumn: DefaultScoreColumn,
		LabelColumn: DefaultLabelColumn,
	}
}

// validate checks required fields and the structural invariants of the
// reference table: known stage numerals, ascending ranks starting at I,
// min ≤ max, and no overlap or shared order violation between stages.
func validate(cfg *Config) error {
	if cfg.Input == "" {
		return fmt.Errorf("input is required")
	}
	if err := cfg.CheckPaths(); err != nil {
		return err
	}
	if len(cfg.Codes) == 0 {
		return fmt.Errorf("codes must list at least one measurement column")
	}
	seen := map[string]bool{}
	for i, c := range cfg.Codes {
		if c == "" {
			return fmt.Errorf("codes[%d]: empty code", i)
		}
		if seen[c] {
			return fmt.Errorf("codes[%d]: duplicate code %q", i, c)
		}
		seen[c] = true
		if len(cfg.Reference[c]) == 0 {
			return fmt.Errorf("reference: no size ranges for code %q", c)
		}
	}

	for code, bands := range cfg.Reference {
		stages := 0
		for i, b := range bands {
			rank := classify.RankOf(b.Stage)
			if rank == 0 {
				return fmt.Errorf("reference %q[%d]: unknown stage %q", code, i, b.Stage)
			}
			if rank != i+1 {
				return fmt.Errorf("reference %q[%d]: stage %s out of order (want rank %d)", code, i, b.Stage, i+1)
			}
			if b.Min > b.Max {
				return fmt.Errorf("reference %q stage %s: min %g > max %g", code, b.Stage, b.Min, b.Max)
			}
			if i > 0 && b.Min < bands[i-1].Max {
				return fmt.Errorf("reference %q stage %s: overlaps stage %s (min %g < previous max %g)",
					code, b.Stage, bands[i-1].Stage, b.Min, bands[i-1].Max)
			}
			stages = rank
		}
		if stages == 0 {
			return fmt.Errorf("reference %q: empty stage list", code)
		}
	}
	return nil
}

// CheckPaths verifies that the input and output table formats are
// supported. It is re-run by callers that override the configured paths.
func (c *Config) CheckPaths() error {
	if err := checkFormat("input", c.Input); err != nil {
		return err
	}
	return checkFormat("output", c.Output)
}

// checkFormat rejects paths whose extension has no reader/writer.
func checkFormat(field, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !tableFormats[ext] {
		return fmt.Errorf("%s: unsupported table format %q (want .csv or .xlsx)", field, path)
	}
	return nil
}

// Table converts the YAML reference block into the classifier's table.
func (c *Config) Table() classify.Table {
	t := make(classify.Table, len(c.Reference))
	for code, bands := range c.Reference {
		ivs := make([]classify.Interval, len(bands))
		for i, b := range bands {
			ivs[i] = classify.Interval{Rank: i + 1, Min: b.Min, Max: b.Max}
		}
		t[code] = ivs
	}
	return t
}

// Banding returns the score banding sized to the longest stage series in
// the reference table.
func (c *Config) Banding() classify.Banding {
	stages := 0
	for _, bands := range c.Reference {
		if len(bands) > stages {
			stages = len(bands)
		}
	}
	return classify.Banding{Stages: stages}
}
