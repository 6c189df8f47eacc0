package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GaugeColors holds the colors a gauge uses for each threshold band.
type GaugeColors struct {
	OK      lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	// Empty colors the unfilled portion. Empty means unstyled.
	Empty lipgloss.Color
}

// DefaultGaugeColors returns the green / yellow / red scheme.
func DefaultGaugeColors() GaugeColors {
	return GaugeColors{
		OK:      lipgloss.Color("#22C55E"),
		Warning: lipgloss.Color("#EAB308"),
		Danger:  lipgloss.Color("#EF4444"),
	}
}

// GaugeConfig controls the appearance and behavior of a horizontal bar gauge.
type GaugeConfig struct {
	// Width is the total character width of the gauge bar.
	Width int
	// Percent is the value from 0 to 100.
	Percent float64
	// Label is optional text shown to the left of the bar.
	Label string
	// ShowPercent controls whether "XX.X%" is shown to the right.
	ShowPercent bool
	// ThresholdWarning is the % at which the warning color is used.
	ThresholdWarning float64
	// ThresholdDanger is the % at which the danger color is used.
	ThresholdDanger float64
	// Colors selects the band colors. Zero value uses DefaultGaugeColors.
	Colors GaugeColors
	// FilledChar is the character for filled portion (default: "█").
	FilledChar string
	// EmptyChar is the character for empty portion (default: "░").
	EmptyChar string
}

// DefaultGaugeConfig returns a GaugeConfig with sensible defaults.
func DefaultGaugeConfig() GaugeConfig {
	return GaugeConfig{
		Width:            20,
		ShowPercent:      true,
		ThresholdWarning: 70,
		ThresholdDanger:  90,
		Colors:           DefaultGaugeColors(),
		FilledChar:       "█",
		EmptyChar:        "░",
	}
}

// gaugeColor returns the color for the given percentage based on thresholds.
func gaugeColor(percent, warning, danger float64, colors GaugeColors) lipgloss.Color {
	switch {
	case percent >= danger:
		return colors.Danger
	case percent >= warning:
		return colors.Warning
	default:
		return colors.OK
	}
}

// RenderGauge renders a horizontal bar gauge with optional label and percentage.
// Format: [Label] [████████░░░░] [XX.X%]
func RenderGauge(cfg GaugeConfig) string {
	percent := cfg.Percent
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(0, math.Min(100, percent))

	filledChar := cfg.FilledChar
	if filledChar == "" {
		filledChar = "█"
	}
	emptyChar := cfg.EmptyChar
	if emptyChar == "" {
		emptyChar = "░"
	}
	width := cfg.Width
	if width <= 0 {
		width = 20
	}
	colors := cfg.Colors
	if colors == (GaugeColors{}) {
		colors = DefaultGaugeColors()
	}
	warning, danger := cfg.ThresholdWarning, cfg.ThresholdDanger
	if warning == 0 && danger == 0 {
		warning, danger = 70, 90
	}

	filledCount := int(math.Round(percent / 100.0 * float64(width)))
	emptyCount := width - filledCount

	filledStr := strings.Repeat(filledChar, filledCount)
	emptyStr := strings.Repeat(emptyChar, emptyCount)

	filledStyle := lipgloss.NewStyle().Foreground(gaugeColor(percent, warning, danger, colors))
	bar := filledStyle.Render(filledStr)
	if colors.Empty != "" {
		bar += lipgloss.NewStyle().Foreground(colors.Empty).Render(emptyStr)
	} else {
		bar += emptyStr
	}

	var sb strings.Builder
	if cfg.Label != "" {
		sb.WriteString(cfg.Label)
		sb.WriteString(" ")
	}
	sb.WriteString(bar)
	if cfg.ShowPercent {
		sb.WriteString(" ")
		sb.WriteString(fmt.Sprintf("%5.1f%%", percent))
	}
	return sb.String()
}

// RenderSplitBar renders a two-part bar, such as used versus free, where
// the first part covers percent of the width.
func RenderSplitBar(percent float64, width int, first, second lipgloss.Color) string {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(0, math.Min(100, percent))
	if width <= 0 {
		width = 20
	}
	n := int(math.Round(percent / 100.0 * float64(width)))
	a := lipgloss.NewStyle().Foreground(first).Render(strings.Repeat("█", n))
	b := lipgloss.NewStyle().Foreground(second).Render(strings.Repeat("█", width-n))
	return a + b
}
