package tui

import (
	"strings"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// renderOverviewContent shows host identification, every supported gauge
// and the failures of the latest sample.
func renderOverviewContent(snap *sampler.Snapshot, lc LayoutConfig) string {
	info := snap.Host
	platform := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)

	stats := []widgets.Stat{
		{Label: "Host", Value: orNA(info.Hostname)},
		{Label: "OS", Value: orNA(info.OS)},
		{Label: "Platform", Value: orNA(platform)},
		{Label: "Kernel", Value: orNA(info.KernelVersion)},
		{Label: "Arch", Value: orNA(info.Arch)},
		{Label: "CPU", Value: orNA(info.CPUModel)},
		{Label: "Uptime", Value: format.FormatUptime(info.BootTime, snap.Sample.At)},
	}
	if snap.Sample.Present.Has(sampler.FieldCores) {
		stats = append(stats, widgets.Stat{
			Label: "Cores",
			Value: format.Count(uint64(snap.Sample.PhysicalCores)) + " physical, " +
				format.Count(uint64(snap.Sample.LogicalCores)) + " logical",
		})
	}

	var gauges []string
	for _, g := range []struct {
		series sampler.Series
		label  string
	}{
		{sampler.SeriesCPU, "CPU"},
		{sampler.SeriesMemory, "Memory"},
		{sampler.SeriesVirtualMemory, "Virtual memory"},
		{sampler.SeriesDisk, "Disk"},
	} {
		if snap.Supported(g.series) {
			gauges = append(gauges, renderSeries(snap, g.series, g.label, lc))
		}
	}

	return joinSections(
		styleTitle.Render(sectionTitle("Host", lc.StatWidth)),
		renderStats(stats, lc),
		strings.Join(gauges, "\n"),
		renderProblems(snap, lc),
	)
}

// renderProblems lists failed and skipped probes.
func renderProblems(snap *sampler.Snapshot, lc LayoutConfig) string {
	if len(snap.Failures) == 0 && len(snap.OpenProbes) == 0 {
		return ""
	}
	var lines []string
	for _, f := range snap.Failures {
		lines = append(lines, truncateText(f.Probe+": "+f.Err, lc.StatWidth))
	}
	if len(snap.OpenProbes) > 0 {
		lines = append(lines, "skipped: "+strings.Join(snap.OpenProbes, ", "))
	}
	return styleMuted.Render(strings.Join(lines, "\n"))
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
