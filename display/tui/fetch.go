package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// SnapshotSource publishes sampler snapshots. *sampler.Sampler satisfies it.
type SnapshotSource interface {
	Latest() *sampler.Snapshot
}

// ProbeResetter is implemented by sources that can retry probes whose
// circuit breakers are open. *sampler.Sampler satisfies it.
type ProbeResetter interface {
	ResetOpenProbes() []string
}

// snapshotMsg carries the snapshot read on a refresh. reset lists probes
// whose breakers were closed by a manual refresh.
type snapshotMsg struct {
	snap  *sampler.Snapshot
	at    time.Time
	reset []string
}

// refreshTickMsg schedules the next read of the source.
type refreshTickMsg time.Time

// readSnapshotCmd returns a tea.Cmd that reads the latest snapshot. Latest
// never blocks, so this is cheap enough to run on every refresh.
func readSnapshotCmd(src SnapshotSource) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: src.Latest(), at: time.Now()}
	}
}

// manualRefreshCmd retries open probes when the source supports it, then
// reads the latest snapshot.
func manualRefreshCmd(src SnapshotSource) tea.Cmd {
	return func() tea.Msg {
		var reset []string
		if r, ok := src.(ProbeResetter); ok {
			reset = r.ResetOpenProbes()
		}
		return snapshotMsg{snap: src.Latest(), at: time.Now(), reset: reset}
	}
}

// refreshTickCmd fires a refreshTickMsg after d.
func refreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}
