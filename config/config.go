// Package config provides configuration parsing for hostpulse.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/hostpulse/breaker"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
	"gitlab.com/tinyland/lab/hostpulse/sampler/host"
)

// Config represents the hostpulse configuration.
type Config struct {
	// Sampler holds sampling loop settings.
	Sampler SamplerConfig `yaml:"sampler" toml:"sampler"`

	// Display holds TUI rendering settings.
	Display DisplayConfig `yaml:"display" toml:"display"`

	// Log holds logging settings.
	Log LogConfig `yaml:"log" toml:"log"`
}

// SamplerConfig holds sampling loop settings.
type SamplerConfig struct {
	// IntervalSeconds is the delay between samples, in seconds.
	IntervalSeconds float64 `yaml:"interval_seconds" toml:"interval_seconds"`
	// HistoryCapacity is the number of points kept per series.
	HistoryCapacity int `yaml:"history_capacity" toml:"history_capacity"`
	// DiskPath is the filesystem whose usage is sampled.
	DiskPath string `yaml:"disk_path" toml:"disk_path"`
	// QueryTimeoutSeconds bounds each host query, in seconds.
	QueryTimeoutSeconds float64 `yaml:"query_timeout_seconds" toml:"query_timeout_seconds"`
	// Breaker holds the per-probe circuit breaker settings.
	Breaker BreakerConfig `yaml:"breaker" toml:"breaker"`
}

// BreakerConfig holds per-probe circuit breaker settings.
type BreakerConfig struct {
	MaxFailures       int      `yaml:"max_failures" toml:"max_failures"`
	ResetTimeout      Duration `yaml:"reset_timeout" toml:"reset_timeout"`
	MaxResetTimeout   Duration `yaml:"max_reset_timeout" toml:"max_reset_timeout"`
	BackoffMultiplier float64  `yaml:"backoff_multiplier" toml:"backoff_multiplier"`
}

// DisplayConfig holds TUI rendering settings.
type DisplayConfig struct {
	// Theme selects the color scheme: "dark" or "light".
	Theme string `yaml:"theme" toml:"theme"`
	// RefreshInterval is how often the dashboard re-reads the latest snapshot.
	RefreshInterval Duration `yaml:"refresh_interval" toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`
	// File receives log output in TUI mode. A leading ~ is expanded.
	File string `yaml:"file" toml:"file"`
}

// Duration is a time.Duration that reads and writes as a string like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML writes the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	bc := breaker.DefaultConfig()

	return &Config{
		Sampler: SamplerConfig{
			IntervalSeconds:     sampler.DefaultInterval.Seconds(),
			HistoryCapacity:     sampler.DefaultHistoryCapacity,
			DiskPath:            host.DefaultDiskPath(),
			QueryTimeoutSeconds: sampler.DefaultQueryTimeout.Seconds(),
			Breaker: BreakerConfig{
				MaxFailures:       bc.MaxFailures,
				ResetTimeout:      Duration{bc.ResetTimeout},
				MaxResetTimeout:   Duration{bc.MaxResetTimeout},
				BackoffMultiplier: bc.BackoffMultiplier,
			},
		},
		Display: DisplayConfig{
			Theme:           "dark",
			RefreshInterval: Duration{500 * time.Millisecond},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(xdgStateHome(home), "hostpulse", "hostpulse.log"),
		},
	}
}

// Validate reports the first invalid field by its configuration path.
func (c *Config) Validate() error {
	s := c.Sampler
	if s.IntervalSeconds <= 0 {
		return fmt.Errorf("sampler.interval_seconds must be positive, got %g", s.IntervalSeconds)
	}
	if s.HistoryCapacity < 1 {
		return fmt.Errorf("sampler.history_capacity must be at least 1, got %d", s.HistoryCapacity)
	}
	if s.DiskPath == "" {
		return fmt.Errorf("sampler.disk_path is required")
	}
	if s.QueryTimeoutSeconds <= 0 {
		return fmt.Errorf("sampler.query_timeout_seconds must be positive, got %g", s.QueryTimeoutSeconds)
	}
	if s.Breaker.MaxFailures < 1 {
		return fmt.Errorf("sampler.breaker.max_failures must be at least 1, got %d", s.Breaker.MaxFailures)
	}
	if s.Breaker.ResetTimeout.Duration <= 0 {
		return fmt.Errorf("sampler.breaker.reset_timeout must be positive, got %s", s.Breaker.ResetTimeout)
	}
	if s.Breaker.MaxResetTimeout.Duration < s.Breaker.ResetTimeout.Duration {
		return fmt.Errorf("sampler.breaker.max_reset_timeout must not be below reset_timeout, got %s", s.Breaker.MaxResetTimeout)
	}
	if s.Breaker.BackoffMultiplier < 1 {
		return fmt.Errorf("sampler.breaker.backoff_multiplier must be >= 1, got %g", s.Breaker.BackoffMultiplier)
	}

	if c.Display.Theme != "dark" && c.Display.Theme != "light" {
		return fmt.Errorf("display.theme must be 'dark' or 'light', got %q", c.Display.Theme)
	}
	if c.Display.RefreshInterval.Duration <= 0 {
		return fmt.Errorf("display.refresh_interval must be positive, got %s", c.Display.RefreshInterval)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// SamplerConfig converts the file settings into a sampler.Config.
func (c *Config) SamplerConfig(logger *slog.Logger) sampler.Config {
	s := c.Sampler
	return sampler.Config{
		Interval:        secondsToDuration(s.IntervalSeconds),
		HistoryCapacity: s.HistoryCapacity,
		DiskPath:        s.DiskPath,
		QueryTimeout:    secondsToDuration(s.QueryTimeoutSeconds),
		Breaker: breaker.Config{
			MaxFailures:       s.Breaker.MaxFailures,
			ResetTimeout:      s.Breaker.ResetTimeout.Duration,
			MaxResetTimeout:   s.Breaker.MaxResetTimeout.Duration,
			BackoffMultiplier: s.Breaker.BackoffMultiplier,
		},
		Logger: logger,
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q (want debug, info, warn or error)", name)
}

// LogFilePath returns the log file path with a leading ~ expanded.
func (c *Config) LogFilePath() string {
	return expandHome(c.Log.File)
}

// SaveConfig saves configuration to a YAML file. A leading ~ in path is
// expanded.
func SaveConfig(config *Config, path string) error {
	path = expandHome(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
