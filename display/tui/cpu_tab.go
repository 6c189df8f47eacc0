package tui

import (
	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// renderCPUContent renders the CPU tab: usage history, frequency, core
// counts and load average where reported.
func renderCPUContent(snap *sampler.Snapshot, lc LayoutConfig) string {
	s := snap.Sample

	stats := []widgets.Stat{
		{Label: "Usage", Value: format.Percent(snap.CPUPercent) + staleNote(snap, sampler.FieldCPU)},
		{Label: "Idle", Value: format.Percent(100 - snap.CPUPercent)},
		{Label: "Frequency", Value: format.MHz(s.CPUFrequencyMHz) + staleNote(snap, sampler.FieldFrequency)},
	}
	if s.Present.Has(sampler.FieldCores) {
		stats = append(stats,
			widgets.Stat{Label: "Cores", Value: format.Count(uint64(s.PhysicalCores))},
			widgets.Stat{Label: "Threads", Value: format.Count(uint64(s.LogicalCores))},
		)
	}
	if s.Present.Has(sampler.FieldLoad) {
		stats = append(stats, widgets.Stat{Label: "Load", Value: format.Load(s.Load1, s.Load5, s.Load15)})
	}

	return joinSections(
		styleTitle.Render(sectionTitle("CPU", lc.StatWidth)),
		renderSeries(snap, sampler.SeriesCPU, "Usage", lc),
		renderSplit(snap.CPUPercent, lc),
		renderStats(stats, lc),
	)
}
