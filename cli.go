package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/config"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// runMode is the output the command was asked for.
type runMode int

const (
	modeUsage runMode = iota
	modeTUI
	modeOnce
	modeJSON
)

// selectMode resolves the mode flags. -json wins over -once, and either
// wins over -tui, since a one-shot dump is what scripts pass.
func selectMode(tuiFlag, onceFlag, jsonFlag bool) runMode {
	switch {
	case jsonFlag:
		return modeJSON
	case onceFlag:
		return modeOnce
	case tuiFlag:
		return modeTUI
	default:
		return modeUsage
	}
}

// flagOverrides holds command-line values that replace config settings.
// Zero values leave the config unchanged.
type flagOverrides struct {
	interval float64
	capacity int
	theme    string
	verbose  bool
}

func applyFlagOverrides(cfg *config.Config, o flagOverrides) {
	if o.interval > 0 {
		cfg.Sampler.IntervalSeconds = o.interval
	}
	if o.capacity > 0 {
		cfg.Sampler.HistoryCapacity = o.capacity
	}
	if o.theme != "" {
		cfg.Display.Theme = strings.ToLower(o.theme)
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
}

// writeConfigFile saves cfg as YAML at path and reports where it went.
func writeConfigFile(w io.Writer, cfg *config.Config, path string) error {
	if err := config.SaveConfig(cfg, path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "config written to %s\n", path)
	return err
}

// newLogger builds the process logger. In TUI mode records go to the
// configured log file so they do not tear the alternate screen; otherwise
// they go to stderr. The returned func closes the file, if any.
func newLogger(cfg *config.Config, toFile bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if !toFile {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}

	path := cfg.LogFilePath()
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}

// sampleTwice takes a probe sample, waits interval and samples again so
// the CPU percentage has a tick delta to work from.
func sampleTwice(ctx context.Context, s *sampler.Sampler, interval time.Duration) (*sampler.Snapshot, error) {
	first := s.Sample(ctx)
	if first.Sample.Present == 0 && len(first.Failures) > 0 {
		return nil, fmt.Errorf("host counters unavailable: %s: %s", first.Failures[0].Probe, first.Failures[0].Err)
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return s.Sample(ctx), nil
}
