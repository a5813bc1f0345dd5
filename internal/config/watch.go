package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file at path, plus any extra files (typically
// the input table), and calls onChange with a freshly loaded Config each
// time one of them is written. It runs until ctx is cancelled.
//
// If a reload fails (e.g., invalid YAML or a broken reference table), the
// error is logged and the previous config remains active — Watch does not
// call onChange.
func Watch(ctx context.Context, path string, extra []string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	paths := append([]string{path}, extra...)
	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return err
		}
	}

	slog.Info("config: watching for changes", "paths", paths)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only reload on write or create events. Editors often write via
			// rename (atomic save), so also catch fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed — keeping previous config",
					"path", path, "err", err)
				continue
			}

			slog.Info("config: change detected", "file", event.Name)
			onChange(cfg)

			// Re-add the files in case an atomic save replaced an inode.
			for _, p := range paths {
				_ = watcher.Add(p)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
