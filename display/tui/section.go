package tui

import (
	"strings"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

const labelWidth = 14

// historyData splits series points into values and gap markers for a
// sparkline.
func historyData(points []sampler.Point) ([]float64, []bool) {
	data := make([]float64, len(points))
	gaps := make([]bool, len(points))
	for i, p := range points {
		data[i] = p.Value
		gaps[i] = p.Missing
	}
	return data, gaps
}

// renderSeries draws the gauge for a series and, when the layout allows,
// its history beneath it.
func renderSeries(snap *sampler.Snapshot, series sampler.Series, label string, lc LayoutConfig) string {
	gauge := widgets.RenderGauge(widgets.GaugeConfig{
		Width:            lc.GaugeWidth,
		Percent:          snap.Percent(series),
		Label:            styleLabel.Render(padLabel(label)),
		ShowPercent:      true,
		ThresholdWarning: 70,
		ThresholdDanger:  90,
		Colors:           gaugeColors(),
	})
	if !lc.ShowSparklines {
		return gauge
	}

	data, gaps := historyData(snap.History(series))
	spark := widgets.RenderPercentSparkline(data, gaps, lc.SparklineWidth, activeTheme.Secondary)
	if spark == "" {
		return gauge
	}
	return gauge + "\n" + strings.Repeat(" ", labelWidth+1) + spark
}

// renderSplit draws a used/free bar when the layout allows.
func renderSplit(percent float64, lc LayoutConfig) string {
	if !lc.ShowSplitBars {
		return ""
	}
	return strings.Repeat(" ", labelWidth+1) +
		widgets.RenderSplitBar(percent, lc.GaugeWidth, activeTheme.Primary, activeTheme.Free)
}

// renderStats draws an aligned stat list in the active theme.
func renderStats(stats []widgets.Stat, lc LayoutConfig) string {
	return widgets.RenderStatList(widgets.StatListConfig{
		Stats:      stats,
		LabelWidth: labelWidth,
		MaxWidth:   lc.StatWidth,
		LabelStyle: styleLabel,
		ValueStyle: styleValue,
	})
}

// staleNote marks values carried over from an earlier sample.
func staleNote(snap *sampler.Snapshot, f sampler.Field) string {
	if snap.Sample.Carried.Has(f) {
		return styleMuted.Render(" (stale)")
	}
	return ""
}

func padLabel(s string) string {
	return truncateText(s, labelWidth) + strings.Repeat(" ", max(0, labelWidth-len([]rune(s))))
}

// joinSections stacks non-empty blocks with a blank line between them.
func joinSections(blocks ...string) string {
	var kept []string
	for _, b := range blocks {
		if b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}
