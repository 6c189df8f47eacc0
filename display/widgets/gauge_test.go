package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderGauge_Fill(t *testing.T) {
	tests := []struct {
		name        string
		percent     float64
		wantFilled  int
		wantEmpty   int
		wantPercent string
	}{
		{"half", 50, 10, 10, "50.0%"},
		{"zero", 0, 0, 20, "0.0%"},
		{"full", 100, 20, 0, "100.0%"},
		{"clamped high", 150, 20, 0, "100.0%"},
		{"clamped low", -25, 0, 20, "0.0%"},
		{"one decimal", 66.66, 13, 7, "66.7%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGaugeConfig()
			cfg.Percent = tt.percent

			result := RenderGauge(cfg)

			if got := strings.Count(result, "█"); got != tt.wantFilled {
				t.Errorf("filled = %d, want %d in %q", got, tt.wantFilled, result)
			}
			if got := strings.Count(result, "░"); got != tt.wantEmpty {
				t.Errorf("empty = %d, want %d in %q", got, tt.wantEmpty, result)
			}
			if !strings.Contains(result, tt.wantPercent) {
				t.Errorf("expected %q in output, got %q", tt.wantPercent, result)
			}
		})
	}
}

func TestRenderGauge_WithLabel(t *testing.T) {
	cfg := DefaultGaugeConfig()
	cfg.Percent = 50
	cfg.Label = "CPU"

	result := RenderGauge(cfg)

	if !strings.HasPrefix(result, "CPU ") {
		t.Errorf("expected output to start with 'CPU ', got: %q", result)
	}
}

func TestRenderGauge_NoPercent(t *testing.T) {
	cfg := DefaultGaugeConfig()
	cfg.Percent = 50
	cfg.ShowPercent = false

	result := RenderGauge(cfg)

	if strings.Contains(result, "%") {
		t.Errorf("expected no percentage text when ShowPercent=false, got: %q", result)
	}
}

func TestRenderGauge_ZeroConfigUsesDefaults(t *testing.T) {
	result := RenderGauge(GaugeConfig{Percent: 25})

	if got := strings.Count(result, "█") + strings.Count(result, "░"); got != 20 {
		t.Errorf("expected 20 bar chars with zero config, got %d", got)
	}
}

func TestGaugeColor(t *testing.T) {
	colors := DefaultGaugeColors()
	tests := []struct {
		percent float64
		want    lipgloss.Color
	}{
		{30, "#22C55E"},
		{75, "#EAB308"},
		{95, "#EF4444"},
		{90, "#EF4444"},
	}
	for _, tt := range tests {
		if got := gaugeColor(tt.percent, 70, 90, colors); got != tt.want {
			t.Errorf("gaugeColor(%v) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}

func TestRenderSplitBar(t *testing.T) {
	result := RenderSplitBar(25, 8, "#FF0000", "#00FF00")

	if got := strings.Count(result, "█"); got != 8 {
		t.Errorf("expected 8 blocks, got %d in %q", got, result)
	}
}

func TestDefaultGaugeConfig(t *testing.T) {
	cfg := DefaultGaugeConfig()

	if cfg.Width != 20 {
		t.Errorf("expected default Width=20, got %d", cfg.Width)
	}
	if !cfg.ShowPercent {
		t.Error("expected default ShowPercent=true")
	}
	if cfg.ThresholdWarning != 70 || cfg.ThresholdDanger != 90 {
		t.Errorf("expected thresholds 70/90, got %v/%v", cfg.ThresholdWarning, cfg.ThresholdDanger)
	}
	if cfg.Colors != DefaultGaugeColors() {
		t.Errorf("expected default colors, got %+v", cfg.Colors)
	}
}
