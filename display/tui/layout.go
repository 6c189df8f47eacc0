package tui

import (
	"strings"

	"gitlab.com/tinyland/lab/hostpulse/internal/format"
)

// LayoutSize represents a responsive breakpoint for terminal width.
type LayoutSize int

const (
	// LayoutCompact is used for terminals narrower than 60 characters.
	LayoutCompact LayoutSize = iota
	// LayoutNormal is used for terminals between 60 and 120 characters wide.
	LayoutNormal
	// LayoutWide is used for terminals wider than 120 characters.
	LayoutWide
)

// DetectLayout returns the appropriate LayoutSize for the given terminal width.
func DetectLayout(width int) LayoutSize {
	switch {
	case width < 60:
		return LayoutCompact
	case width <= 120:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// LayoutConfig holds responsive layout values that adapt to terminal width.
type LayoutConfig struct {
	// GaugeWidth is the character width for gauge bars.
	GaugeWidth int
	// SparklineWidth is the number of history points drawn.
	SparklineWidth int
	// StatWidth is the maximum width of a stat list line.
	StatWidth int
	// ShowSparklines controls whether history charts are rendered.
	ShowSparklines bool
	// ShowSplitBars controls whether used/free split bars are rendered.
	ShowSplitBars bool
}

// LayoutForSize returns a LayoutConfig appropriate for the given size and width.
func LayoutForSize(size LayoutSize, width int) LayoutConfig {
	switch size {
	case LayoutCompact:
		return LayoutConfig{
			GaugeWidth:     10,
			SparklineWidth: 0,
			StatWidth:      width - 4,
			ShowSparklines: false,
			ShowSplitBars:  false,
		}
	case LayoutWide:
		return LayoutConfig{
			GaugeWidth:     40,
			SparklineWidth: 60,
			StatWidth:      width - 12,
			ShowSparklines: true,
			ShowSplitBars:  true,
		}
	default: // LayoutNormal
		return LayoutConfig{
			GaugeWidth:     24,
			SparklineWidth: 40,
			StatWidth:      width - 8,
			ShowSparklines: true,
			ShowSplitBars:  true,
		}
	}
}

// layoutFor is shorthand for LayoutForSize(DetectLayout(width), width).
func layoutFor(width int) LayoutConfig {
	return LayoutForSize(DetectLayout(width), width)
}

// truncateText is a convenience wrapper for format.TruncateWithEllipsis.
func truncateText(s string, maxWidth int) string {
	return format.TruncateWithEllipsis(s, maxWidth)
}

// horizontalRule returns a horizontal line of the given width using box-drawing
// characters.
func horizontalRule(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}

// sectionTitle renders a centered title with horizontal rules on either side.
// Format: "---- Title ----"
func sectionTitle(title string, width int) string {
	if width <= 0 {
		return title
	}

	titleLen := len([]rune(title))
	// 2 spaces around the title text.
	decorLen := titleLen + 2
	if decorLen >= width {
		return title
	}

	remaining := width - decorLen
	leftLen := remaining / 2
	rightLen := remaining - leftLen

	left := strings.Repeat("─", leftLen)
	right := strings.Repeat("─", rightLen)

	return left + " " + title + " " + right
}
