package tui

import (
	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// renderDiskContent renders usage of the sampled filesystem.
func renderDiskContent(snap *sampler.Snapshot, lc LayoutConfig) string {
	s := snap.Sample
	stale := staleNote(snap, sampler.FieldDisk)

	stats := []widgets.Stat{
		{Label: "Path", Value: orNA(s.DiskPath)},
		{Label: "Total", Value: format.GiB(s.DiskTotal)},
		{Label: "Used", Value: format.GiB(s.DiskUsed) + stale},
		{Label: "Free", Value: format.GiB(s.DiskFree) + stale},
		{Label: "Usage", Value: format.Percent(snap.DiskPercent)},
	}

	return joinSections(
		styleTitle.Render(sectionTitle("Disk", lc.StatWidth)),
		renderSeries(snap, sampler.SeriesDisk, "Disk", lc),
		renderSplit(snap.DiskPercent, lc),
		renderStats(stats, lc),
	)
}
