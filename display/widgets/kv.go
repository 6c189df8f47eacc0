package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Stat is one labelled value in a stat list.
type Stat struct {
	Label string
	Value string
}

// StatListConfig controls RenderStatList.
type StatListConfig struct {
	// Stats are rendered one per line in order.
	Stats []Stat
	// LabelWidth fixes the label column. If 0, the longest label is used.
	LabelWidth int
	// MaxWidth truncates each line. If 0, lines are not truncated.
	MaxWidth int
	// LabelStyle and ValueStyle style the two columns.
	LabelStyle lipgloss.Style
	ValueStyle lipgloss.Style
}

// RenderStatList renders aligned "label  value" lines.
func RenderStatList(cfg StatListConfig) string {
	if len(cfg.Stats) == 0 {
		return ""
	}

	labelWidth := cfg.LabelWidth
	if labelWidth <= 0 {
		for _, s := range cfg.Stats {
			if n := len([]rune(s.Label)); n > labelWidth {
				labelWidth = n
			}
		}
	}

	valueWidth := 0
	if cfg.MaxWidth > 0 {
		valueWidth = cfg.MaxWidth - labelWidth - 2
		if valueWidth < 1 {
			valueWidth = 1
		}
	}

	lines := make([]string, len(cfg.Stats))
	for i, s := range cfg.Stats {
		label := padOrTruncate(s.Label, labelWidth)
		value := s.Value
		if valueWidth > 0 && len([]rune(value)) > valueWidth {
			value = padOrTruncate(value, valueWidth)
		}
		lines[i] = cfg.LabelStyle.Render(label) + "  " + cfg.ValueStyle.Render(value)
	}
	return strings.Join(lines, "\n")
}

// padOrTruncate left-aligns s in width runes, truncating with an ellipsis.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width == 1 {
			return string(runes[:1])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
