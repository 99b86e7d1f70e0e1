// Package presetwatch reloads an equalizer preset file into a live
// parameter set whenever the file changes on disk.
package presetwatch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// Watch applies the preset at path to params on every write, until ctx is
// done. The parent directory is watched so that editors which replace the
// file on save are handled. Invalid presets are logged and skipped; the
// parameters keep their previous values.
func Watch(ctx context.Context, path string, params *eq.Params, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("presetwatch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("presetwatch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("presetwatch: watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching preset", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			Apply(abs, params, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("preset watcher error", "err", err)
		}
	}
}

// Apply loads the preset at path into params. It reports whether the load
// succeeded.
func Apply(path string, params *eq.Params, logger *slog.Logger) bool {
	s, err := eq.LoadPreset(path)
	if err != nil {
		logger.Warn("preset not applied", "path", path, "err", err)
		return false
	}

	params.Restore(s)
	logger.Info("preset applied", "path", path,
		"low_cut", s.LowCutFreq, "peak_freq", s.PeakFreq, "peak_gain", s.PeakGainDB, "high_cut", s.HighCutFreq)
	return true
}
