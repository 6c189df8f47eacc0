package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// gapRune marks a tick with no reading.
const gapRune = '·'

// SparklineConfig controls the appearance and behavior of a sparkline chart.
type SparklineConfig struct {
	// Data points to render (most recent last).
	Data []float64
	// Gaps flags points that have no reading. Gaps[i] applies to Data[i];
	// a shorter slice leaves the remaining points as values.
	Gaps []bool
	// Width is the number of characters to render. If 0, uses len(Data).
	Width int
	// Min is the minimum value for scaling. If Min == Max, auto-scale.
	Min float64
	// Max is the maximum value for scaling.
	Max float64
	// Label is optional text shown before the sparkline.
	Label string
	// Color is the lipgloss color for the sparkline characters.
	Color lipgloss.Color
}

// RenderSparkline renders a unicode sparkline chart from the given configuration.
func RenderSparkline(cfg SparklineConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}

	data := cfg.Data
	gaps := make([]bool, len(data))
	copy(gaps, cfg.Gaps)

	width := cfg.Width
	if width <= 0 {
		width = len(data)
	}

	// Keep the most recent Width points.
	if width < len(data) {
		data = data[len(data)-width:]
		gaps = gaps[len(gaps)-width:]
	}

	minVal, maxVal := cfg.Min, cfg.Max
	if minVal == maxVal {
		minVal, maxVal = valueRange(data, gaps)
	}
	allEqual := minVal == maxVal

	runes := make([]rune, 0, width)
	for i, v := range data {
		switch {
		case gaps[i]:
			runes = append(runes, gapRune)
		case allEqual:
			runes = append(runes, sparkBlocks[len(sparkBlocks)/2])
		default:
			normalized := (v - minVal) / (maxVal - minVal)
			normalized = math.Max(0, math.Min(1, normalized))
			idx := int(normalized * float64(len(sparkBlocks)-1))
			runes = append(runes, sparkBlocks[idx])
		}
	}

	// Left-pad with spaces if Width > len(data).
	sparkStr := string(runes)
	if width > len(data) {
		sparkStr = strings.Repeat(" ", width-len(data)) + sparkStr
	}

	if cfg.Color != "" {
		sparkStr = lipgloss.NewStyle().Foreground(cfg.Color).Render(sparkStr)
	}

	if cfg.Label != "" {
		sparkStr = cfg.Label + " " + sparkStr
	}

	return sparkStr
}

// valueRange returns the min and max of the non-gap points. With no
// non-gap points both are zero.
func valueRange(data []float64, gaps []bool) (float64, float64) {
	var minVal, maxVal float64
	seen := false
	for i, v := range data {
		if gaps[i] {
			continue
		}
		if !seen {
			minVal, maxVal = v, v
			seen = true
			continue
		}
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	return minVal, maxVal
}

// RenderPercentSparkline renders a sparkline on a fixed 0-100 scale, so
// heights are comparable across series and over time.
func RenderPercentSparkline(data []float64, gaps []bool, width int, color lipgloss.Color) string {
	return RenderSparkline(SparklineConfig{
		Data:  data,
		Gaps:  gaps,
		Width: width,
		Min:   0,
		Max:   100,
		Color: color,
	})
}
