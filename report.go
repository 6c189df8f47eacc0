package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/internal/format"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

const reportLabelWidth = 16

// writeJSON encodes snap as indented JSON.
func writeJSON(w io.Writer, snap *sampler.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// writeReport prints a plain-text summary of snap sized to width columns.
func writeReport(w io.Writer, snap *sampler.Snapshot, width int) error {
	gaugeWidth := width - reportLabelWidth - 40
	if gaugeWidth < 10 {
		gaugeWidth = 10
	}
	if gaugeWidth > 40 {
		gaugeWidth = 40
	}

	s := snap.Sample
	info := snap.Host

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", orDash(info.Hostname), format.FormatTimestamp(s.At))
	if info.OS != "" {
		fmt.Fprintf(&b, "%s %s %s, kernel %s, up %s\n",
			info.OS, info.Platform, info.Arch, orDash(info.KernelVersion), format.FormatUptime(info.BootTime, s.At))
	}
	b.WriteString("\n")

	line := func(label string, percent float64, detail string) {
		b.WriteString(format.PadRight(label, reportLabelWidth))
		b.WriteString(widgets.RenderGauge(widgets.GaugeConfig{
			Width:       gaugeWidth,
			Percent:     percent,
			ShowPercent: true,
		}))
		if detail != "" {
			b.WriteString("  ")
			b.WriteString(detail)
		}
		b.WriteString("\n")
	}

	cpuDetail := format.MHz(s.CPUFrequencyMHz)
	if s.Present.Has(sampler.FieldCores) {
		cpuDetail += fmt.Sprintf(", %d cores / %d threads", s.PhysicalCores, s.LogicalCores)
	}
	line("CPU", snap.CPUPercent, cpuDetail)
	line("Memory", snap.MemoryPercent, format.GiB(s.UsedMemory)+" of "+format.GiB(s.TotalMemory))
	if snap.Supported(sampler.SeriesVirtualMemory) {
		line("Virtual memory", snap.VirtualMemoryPercent,
			format.GiB(s.UsedMemory+s.SwapUsed)+" of "+format.GiB(s.TotalMemory+s.SwapTotal))
	}
	line("Disk "+s.DiskPath, snap.DiskPercent, format.GiB(s.DiskUsed)+" of "+format.GiB(s.DiskTotal))

	if s.Present.Has(sampler.FieldLoad) {
		fmt.Fprintf(&b, "%s%s\n", format.PadRight("Load", reportLabelWidth), format.Load(s.Load1, s.Load5, s.Load15))
	}
	if s.HasCommit() {
		fmt.Fprintf(&b, "%s%s of %s\n", format.PadRight("Commit", reportLabelWidth), format.GiB(s.CommitCharge), format.GiB(s.CommitLimit))
	}
	if s.Present.Has(sampler.FieldProcess) {
		proc := format.Bytes(s.ProcessPrivate) + " private"
		if s.HasProcessPeak {
			proc += ", peak " + format.Bytes(s.ProcessPeak)
		}
		if s.HasPageFaults {
			proc += ", " + format.Count(s.PageFaults) + " page faults"
		}
		fmt.Fprintf(&b, "%s%s\n", format.PadRight("This process", reportLabelWidth), proc)
	}

	if len(snap.Failures) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, f := range snap.Failures {
			fmt.Fprintf(&b, "  %s: %s\n", f.Probe, f.Err)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
