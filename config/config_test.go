package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sampler.IntervalSeconds != 1.0 {
		t.Errorf("expected IntervalSeconds=1, got %g", cfg.Sampler.IntervalSeconds)
	}
	if cfg.Sampler.HistoryCapacity != 60 {
		t.Errorf("expected HistoryCapacity=60, got %d", cfg.Sampler.HistoryCapacity)
	}
	if cfg.Sampler.DiskPath == "" {
		t.Error("expected DiskPath to be set")
	}
	if cfg.Sampler.QueryTimeoutSeconds != 2.0 {
		t.Errorf("expected QueryTimeoutSeconds=2, got %g", cfg.Sampler.QueryTimeoutSeconds)
	}
	if cfg.Sampler.Breaker.MaxFailures != 5 {
		t.Errorf("expected Breaker.MaxFailures=5, got %d", cfg.Sampler.Breaker.MaxFailures)
	}
	if cfg.Sampler.Breaker.ResetTimeout.Duration != 10*time.Second {
		t.Errorf("expected Breaker.ResetTimeout=10s, got %s", cfg.Sampler.Breaker.ResetTimeout)
	}
	if cfg.Display.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", cfg.Display.Theme)
	}
	if cfg.Display.RefreshInterval.Duration != 500*time.Millisecond {
		t.Errorf("expected RefreshInterval=500ms, got %s", cfg.Display.RefreshInterval)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected Log.Level=info, got %s", cfg.Log.Level)
	}
	if !strings.HasSuffix(cfg.Log.File, filepath.Join("hostpulse", "hostpulse.log")) {
		t.Errorf("unexpected Log.File %s", cfg.Log.File)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero interval", func(c *Config) { c.Sampler.IntervalSeconds = 0 }, "sampler.interval_seconds"},
		{"zero capacity", func(c *Config) { c.Sampler.HistoryCapacity = 0 }, "sampler.history_capacity"},
		{"empty disk path", func(c *Config) { c.Sampler.DiskPath = "" }, "sampler.disk_path"},
		{"negative timeout", func(c *Config) { c.Sampler.QueryTimeoutSeconds = -1 }, "sampler.query_timeout_seconds"},
		{"zero max failures", func(c *Config) { c.Sampler.Breaker.MaxFailures = 0 }, "sampler.breaker.max_failures"},
		{"zero reset timeout", func(c *Config) { c.Sampler.Breaker.ResetTimeout = Duration{} }, "sampler.breaker.reset_timeout"},
		{"max below reset", func(c *Config) { c.Sampler.Breaker.MaxResetTimeout = Duration{time.Second} }, "sampler.breaker.max_reset_timeout"},
		{"shrinking backoff", func(c *Config) { c.Sampler.Breaker.BackoffMultiplier = 0.5 }, "sampler.breaker.backoff_multiplier"},
		{"unknown theme", func(c *Config) { c.Display.Theme = "neon" }, "display.theme"},
		{"zero refresh", func(c *Config) { c.Display.RefreshInterval = Duration{} }, "display.refresh_interval"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `sampler:
  interval_seconds: 0.5
  history_capacity: 120
  disk_path: /data
  breaker:
    max_failures: 3
    reset_timeout: 30s
display:
  theme: light
  refresh_interval: 250ms
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Sampler.IntervalSeconds != 0.5 {
		t.Errorf("IntervalSeconds = %g, want 0.5", cfg.Sampler.IntervalSeconds)
	}
	if cfg.Sampler.HistoryCapacity != 120 {
		t.Errorf("HistoryCapacity = %d, want 120", cfg.Sampler.HistoryCapacity)
	}
	if cfg.Sampler.DiskPath != "/data" {
		t.Errorf("DiskPath = %s, want /data", cfg.Sampler.DiskPath)
	}
	if cfg.Sampler.Breaker.MaxFailures != 3 {
		t.Errorf("MaxFailures = %d, want 3", cfg.Sampler.Breaker.MaxFailures)
	}
	if cfg.Sampler.Breaker.ResetTimeout.Duration != 30*time.Second {
		t.Errorf("ResetTimeout = %s, want 30s", cfg.Sampler.Breaker.ResetTimeout)
	}
	// Unset fields keep their defaults.
	if cfg.Sampler.Breaker.MaxResetTimeout.Duration != 5*time.Minute {
		t.Errorf("MaxResetTimeout = %s, want default 5m", cfg.Sampler.Breaker.MaxResetTimeout)
	}
	if cfg.Sampler.QueryTimeoutSeconds != 2.0 {
		t.Errorf("QueryTimeoutSeconds = %g, want default 2", cfg.Sampler.QueryTimeoutSeconds)
	}
	if cfg.Display.Theme != "light" {
		t.Errorf("Theme = %s, want light", cfg.Display.Theme)
	}
	if cfg.Display.RefreshInterval.Duration != 250*time.Millisecond {
		t.Errorf("RefreshInterval = %s, want 250ms", cfg.Display.RefreshInterval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[sampler]
interval_seconds = 2.0
history_capacity = 30

[sampler.breaker]
max_reset_timeout = "10m"

[display]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Sampler.IntervalSeconds != 2.0 || cfg.Sampler.HistoryCapacity != 30 {
		t.Errorf("sampler = %+v", cfg.Sampler)
	}
	if cfg.Sampler.Breaker.MaxResetTimeout.Duration != 10*time.Minute {
		t.Errorf("MaxResetTimeout = %s, want 10m", cfg.Sampler.Breaker.MaxResetTimeout)
	}
	if cfg.Display.Theme != "light" {
		t.Errorf("Theme = %s, want light", cfg.Display.Theme)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Sampler.HistoryCapacity != 60 {
		t.Errorf("expected defaults, got HistoryCapacity=%d", cfg.Sampler.HistoryCapacity)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "config.yaml", "sampler: [unclosed"},
		{"bad duration", "config.yaml", "display:\n  refresh_interval: soon\n"},
		{"bad toml", "config.toml", "[sampler\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFromFile(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEmptyYAMLUsesDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Sampler.IntervalSeconds != 1.0 {
		t.Errorf("IntervalSeconds = %g, want 1", cfg.Sampler.IntervalSeconds)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOSTPULSE_INTERVAL", "0.25")
	t.Setenv("HOSTPULSE_HISTORY", "15")
	t.Setenv("HOSTPULSE_DISK_PATH", "/srv")
	t.Setenv("HOSTPULSE_THEME", "light")
	t.Setenv("HOSTPULSE_LOG_LEVEL", "warn")

	cfg, err := LoadFromReader(strings.NewReader("sampler:\n  history_capacity: 90\n"), FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Sampler.IntervalSeconds != 0.25 {
		t.Errorf("IntervalSeconds = %g, want 0.25", cfg.Sampler.IntervalSeconds)
	}
	if cfg.Sampler.HistoryCapacity != 15 {
		t.Errorf("HistoryCapacity = %d, want env value 15", cfg.Sampler.HistoryCapacity)
	}
	if cfg.Sampler.DiskPath != "/srv" {
		t.Errorf("DiskPath = %s, want /srv", cfg.Sampler.DiskPath)
	}
	if cfg.Display.Theme != "light" {
		t.Errorf("Theme = %s, want light", cfg.Display.Theme)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("HOSTPULSE_HISTORY", "many")
	if _, err := LoadFromReader(strings.NewReader(""), FormatYAML); err == nil {
		t.Error("expected error for non-numeric HOSTPULSE_HISTORY")
	}
}

func TestLoadSearchPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != "" {
		t.Errorf("used = %q, want defaults", used)
	}
	if cfg.Sampler.HistoryCapacity != 60 {
		t.Errorf("HistoryCapacity = %d, want 60", cfg.Sampler.HistoryCapacity)
	}

	dir := filepath.Join(xdg, "hostpulse")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[sampler]\nhistory_capacity = 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if cfg.Sampler.HistoryCapacity != 7 {
		t.Errorf("HistoryCapacity = %d, want 7", cfg.Sampler.HistoryCapacity)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Sampler.Breaker.ResetTimeout = Duration{45 * time.Second}
	cfg.Display.Theme = "light"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "reset_timeout: 45s") {
		t.Errorf("durations should be written as strings:\n%s", data)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Sampler.Breaker.ResetTimeout.Duration != 45*time.Second {
		t.Errorf("ResetTimeout = %s, want 45s", loaded.Sampler.Breaker.ResetTimeout)
	}
	if loaded.Display.Theme != "light" {
		t.Errorf("Theme = %s, want light", loaded.Display.Theme)
	}
}

func TestSamplerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sampler.IntervalSeconds = 0.5
	cfg.Sampler.QueryTimeoutSeconds = 1.5

	sc := cfg.SamplerConfig(nil)
	if sc.Interval != 500*time.Millisecond {
		t.Errorf("Interval = %s, want 500ms", sc.Interval)
	}
	if sc.QueryTimeout != 1500*time.Millisecond {
		t.Errorf("QueryTimeout = %s, want 1.5s", sc.QueryTimeout)
	}
	if sc.HistoryCapacity != 60 {
		t.Errorf("HistoryCapacity = %d, want 60", sc.HistoryCapacity)
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("converted config invalid: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandHome("~/logs/x.log"); got != filepath.Join(home, "logs", "x.log") {
		t.Errorf("expandHome = %s", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome changed absolute path: %s", got)
	}
}
