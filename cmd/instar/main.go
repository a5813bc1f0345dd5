package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecomorph/instar/internal/config"
	"github.com/ecomorph/instar/internal/dataset"
	"github.com/ecomorph/instar/internal/enrich"
	"github.com/ecomorph/instar/internal/export"
	"github.com/ecomorph/instar/internal/report"
)

func main() {
	configPath := flag.String("config", "instar.yaml", "path to config file")
	input := flag.String("input", "", "input table path (overrides config)")
	output := flag.String("output", "", "output table path (overrides config)")
	watch := flag.Bool("watch", false, "keep running and re-stage whenever the input or config changes")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("instar starting", "config", *configPath)

	cfg, err := loadConfig(*configPath, *input, *output)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"input", cfg.Input,
		"output", cfg.Output,
		"codes", len(cfg.Codes),
	)

	if !*watch {
		if err := run(cfg); err != nil {
			slog.Error("staging run failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(cfg); err != nil {
		// In watch mode a failed run is not fatal: the next file change
		// gets another attempt.
		slog.Error("staging run failed", "err", err)
	}

	// The watcher is built from the initial input path; pointing the config
	// at a different input file takes effect on restart.
	err = config.Watch(ctx, *configPath, []string{cfg.Input}, func(updated *config.Config) {
		updated, err := applyOverrides(updated, *input, *output)
		if err != nil {
			slog.Error("override invalid after reload", "err", err)
			return
		}
		if err := run(updated); err != nil {
			slog.Error("staging run failed", "err", err)
		}
	})
	if err != nil {
		slog.Error("watcher stopped", "err", err)
		os.Exit(1)
	}

	slog.Info("instar shutting down")
}

// loadConfig loads the YAML config and applies CLI path overrides.
func loadConfig(path, input, output string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return applyOverrides(cfg, input, output)
}

// applyOverrides replaces the configured input/output paths with the CLI
// flags, when given, and re-checks that their formats are supported.
func applyOverrides(cfg *config.Config, input, output string) (*config.Config, error) {
	if input != "" {
		cfg.Input = input
	}
	if output != "" {
		cfg.Output = output
	}
	if err := cfg.CheckPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run performs one full staging pass: read, classify, aggregate, write.
//
// Only a failure to obtain the specimen table (or a reference table that
// contradicts the configured codes) is fatal. Export and metrics-file
// failures are logged as warnings — the enriched result was still
// computed and the caller may retry the write.
func run(cfg *config.Config) error {
	r, err := dataset.NewReader(cfg.Input)
	if err != nil {
		return err
	}
	frame, err := r.Read()
	if err != nil {
		return err
	}
	slog.Info("specimen table loaded", "path", cfg.Input, "rows", len(frame.Rows), "columns", len(frame.Columns))

	e := &enrich.Enricher{
		Table:       cfg.Table(),
		Banding:     cfg.Banding(),
		Codes:       cfg.Codes,
		ScoreColumn: cfg.ScoreColumn,
		LabelColumn: cfg.LabelColumn,
	}
	out, stats, err := e.Enrich(frame)
	if err != nil {
		return err
	}
	slog.Info("specimens staged",
		"rows", stats.Rows,
		"classified", stats.Classified,
		"intermediate", stats.Intermediate,
		"missing_cells", stats.MissingCells,
		"missing_columns", len(stats.MissingCodes),
	)

	w, err := export.NewWriter(cfg.Output, cfg.Sheet)
	if err != nil {
		slog.Warn("output not written", "path", cfg.Output, "err", err)
	} else if err := w.Write(out); err != nil {
		slog.Warn("output not written", "path", cfg.Output, "err", err)
	} else {
		slog.Info("enriched table written", "path", cfg.Output)
	}

	if cfg.MetricsFile != "" {
		if err := report.Write(cfg.MetricsFile, stats); err != nil {
			slog.Warn("metrics file not written", "path", cfg.MetricsFile, "err", err)
		}
	}

	return nil
}
