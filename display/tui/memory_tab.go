package tui

import (
	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// renderMemoryContent renders physical memory usage.
func renderMemoryContent(snap *sampler.Snapshot, lc LayoutConfig) string {
	s := snap.Sample
	stale := staleNote(snap, sampler.FieldMemory)

	stats := []widgets.Stat{
		{Label: "Total", Value: format.GiB(s.TotalMemory)},
		{Label: "Used", Value: format.GiB(s.UsedMemory) + stale},
		{Label: "Available", Value: format.GiB(s.AvailableMemory) + stale},
		{Label: "Usage", Value: format.Percent(snap.MemoryPercent)},
	}

	return joinSections(
		styleTitle.Render(sectionTitle("Memory", lc.StatWidth)),
		renderSeries(snap, sampler.SeriesMemory, "Memory", lc),
		renderSplit(snap.MemoryPercent, lc),
		renderStats(stats, lc),
	)
}

// renderVirtualMemoryContent renders RAM plus swap, commit accounting and
// the sampling process's own footprint.
func renderVirtualMemoryContent(snap *sampler.Snapshot, lc LayoutConfig) string {
	title := styleTitle.Render(sectionTitle("Virtual Memory", lc.StatWidth))
	if !snap.Supported(sampler.SeriesVirtualMemory) {
		return joinSections(title, styleMuted.Render("Virtual memory is not reported on this platform."))
	}

	s := snap.Sample
	stale := staleNote(snap, sampler.FieldSwap)

	swapUsage := "n/a"
	if s.SwapTotal > 0 {
		swapUsage = format.Percent(float64(s.SwapUsed) / float64(s.SwapTotal) * 100)
	}

	stats := []widgets.Stat{
		{Label: "Total virtual", Value: format.GiB(s.TotalMemory + s.SwapTotal)},
		{Label: "Available", Value: format.GiB(s.AvailableMemory + s.SwapFree) + stale},
		{Label: "Swap used", Value: format.GiB(s.SwapUsed) + stale},
		{Label: "Swap usage", Value: swapUsage},
	}
	if s.HasCommit() {
		stats = append(stats,
			widgets.Stat{Label: "Commit charge", Value: format.GiB(s.CommitCharge)},
			widgets.Stat{Label: "Commit limit", Value: format.GiB(s.CommitLimit)},
		)
	}

	var proc []widgets.Stat
	if s.Present.Has(sampler.FieldProcess) {
		pstale := staleNote(snap, sampler.FieldProcess)
		proc = append(proc, widgets.Stat{Label: "Private", Value: format.Bytes(s.ProcessPrivate) + pstale})
		if s.HasProcessPeak {
			proc = append(proc, widgets.Stat{Label: "Peak", Value: format.Bytes(s.ProcessPeak)})
		}
		if s.HasPageFaults {
			proc = append(proc, widgets.Stat{Label: "Page faults", Value: format.Count(s.PageFaults)})
		}
	}
	procBlock := ""
	if len(proc) > 0 {
		procBlock = styleTitle.Render("This process") + "\n" + renderStats(proc, lc)
	}

	return joinSections(
		title,
		renderSeries(snap, sampler.SeriesVirtualMemory, "Virtual", lc),
		renderSplit(snap.VirtualMemoryPercent, lc),
		renderStats(stats, lc),
		procBlock,
	)
}
