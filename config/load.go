package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// formatForPath picks the syntax from the file extension. Anything that is
// not .toml is read as YAML.
func formatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads configuration from explicit when it is non-empty, otherwise
// from the first file found on the standard search path:
//  1. $XDG_CONFIG_HOME/hostpulse/config.yaml (then config.toml)
//  2. ~/.config/hostpulse/config.yaml (then config.toml)
//
// If no file exists, Load returns DefaultConfig() with environment
// overrides applied. The second return value is the file that was read, or
// "" when defaults were used.
func Load(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := LoadFromFile(explicit)
		if err != nil {
			return nil, "", err
		}
		return cfg, explicit, nil
	}
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := LoadFromFile(p)
			if err != nil {
				return nil, "", err
			}
			return cfg, p, nil
		}
	}
	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, "", err
	}
	return cfg, "", nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := applyEnvOverrides(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := LoadFromReader(bytes.NewReader(data), formatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes configuration over the defaults, then applies
// environment overrides.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, err
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("HOSTPULSE_INTERVAL"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: HOSTPULSE_INTERVAL: %w", err)
		}
		cfg.Sampler.IntervalSeconds = f
	}
	if v := os.Getenv("HOSTPULSE_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: HOSTPULSE_HISTORY: %w", err)
		}
		cfg.Sampler.HistoryCapacity = n
	}
	if v := os.Getenv("HOSTPULSE_DISK_PATH"); v != "" {
		cfg.Sampler.DiskPath = v
	}
	if v := os.Getenv("HOSTPULSE_THEME"); v != "" {
		cfg.Display.Theme = v
	}
	if v := os.Getenv("HOSTPULSE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var dirs []string

	xdg := xdgConfigHome(home)
	dirs = append(dirs, filepath.Join(xdg, "hostpulse"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		dirs = append(dirs, filepath.Join(defaultXDG, "hostpulse"))
	}

	var paths []string
	for _, d := range dirs {
		paths = append(paths, filepath.Join(d, "config.yaml"), filepath.Join(d, "config.toml"))
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
