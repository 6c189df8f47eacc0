package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
	"gitlab.com/tinyland/lab/hostpulse/sampler"
)

// DefaultRefreshInterval is how often the model re-reads the source when
// Options leaves it unset.
const DefaultRefreshInterval = 500 * time.Millisecond

// Tab identifies which tab is currently active.
type Tab int

const (
	TabOverview Tab = iota
	TabCPU
	TabMemory
	TabVirtualMemory
	TabDisk
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabOverview:      "Overview",
	TabCPU:           "CPU",
	TabMemory:        "Memory",
	TabVirtualMemory: "Virtual Memory",
	TabDisk:          "Disk",
}

// Options configures a Model.
type Options struct {
	// Theme is "dark" or "light".
	Theme string
	// RefreshInterval is how often Latest is read. Zero uses
	// DefaultRefreshInterval.
	RefreshInterval time.Duration
}

// Model is the top-level Bubbletea model for the hostpulse dashboard. It
// never samples; it only reads whatever the source last published.
type Model struct {
	src         SnapshotSource
	refresh     time.Duration
	activeTab   Tab
	width       int
	height      int
	snap        *sampler.Snapshot
	lastRefresh time.Time
	theme       string
	help        help.Model
	ready       bool
	// retrying lists probes reset by the last manual refresh until the next
	// sample is shown.
	retrying []string
}

// NewModel returns an initialized Model with TabOverview active.
func NewModel(src SnapshotSource, opts Options) Model {
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultRefreshInterval
	}
	preset := GetThemePreset(opts.Theme)
	ApplyTheme(preset)

	return Model{
		src:       src,
		refresh:   refresh,
		activeTab: TabOverview,
		theme:     preset.Name,
		help:      help.New(),
	}
}

// Init implements tea.Model. It reads the source once and starts the
// refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(readSnapshotCmd(m.src), refreshTickCmd(m.refresh))
}

// Update implements tea.Model. It handles key presses, window resize
// events and snapshot refreshes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextTab):
			m.activeTab = (m.activeTab + 1) % tabCount
		case key.Matches(msg, keys.PrevTab):
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case key.Matches(msg, keys.Tab1):
			m.activeTab = TabOverview
		case key.Matches(msg, keys.Tab2):
			m.activeTab = TabCPU
		case key.Matches(msg, keys.Tab3):
			m.activeTab = TabMemory
		case key.Matches(msg, keys.Tab4):
			m.activeTab = TabVirtualMemory
		case key.Matches(msg, keys.Tab5):
			m.activeTab = TabDisk
		case key.Matches(msg, keys.Theme):
			m.toggleTheme()
		case key.Matches(msg, keys.Refresh):
			return m, manualRefreshCmd(m.src)
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

	case refreshTickMsg:
		return m, tea.Batch(readSnapshotCmd(m.src), refreshTickCmd(m.refresh))

	case snapshotMsg:
		switch {
		case len(msg.reset) > 0:
			m.retrying = msg.reset
		case m.snap != nil && msg.snap != nil && msg.snap.Seq != m.snap.Seq:
			m.retrying = nil
		}
		m.snap = msg.snap
		m.lastRefresh = msg.at
	}

	return m, nil
}

func (m *Model) toggleTheme() {
	preset := DarkTheme
	if m.theme == DarkTheme.Name {
		preset = LightTheme
	}
	ApplyTheme(preset)
	m.theme = preset.Name
}

// View implements tea.Model. It renders the header, active tab content, and footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.renderTabContent()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderHeader renders the tab bar with the active tab highlighted and the
// sampler status on the right.
func (m Model) renderHeader() string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		if i == m.activeTab {
			tabs = append(tabs, styleActiveTab.Render(name))
		} else {
			tabs = append(tabs, styleInactiveTab.Render(name))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	status := widgets.RenderStatus(widgets.StatusConfig{
		Level:    statusLevel(m.snap),
		ShowIcon: true,
	})

	gap := m.width - lipgloss.Width(tabBar) - lipgloss.Width(status) - 1
	if gap < 1 {
		gap = 1
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabBar, lipgloss.NewStyle().Width(gap).Render(""), status)
	return styleHeader.Width(m.width).Render(bar)
}

// renderTabContent delegates to the appropriate tab renderer based on the active tab.
func (m Model) renderTabContent() string {
	// Reserve space for header and footer (approximate).
	contentHeight := m.height - 6
	if contentHeight < 1 {
		contentHeight = 1
	}

	lc := layoutFor(m.width)

	var content string
	switch {
	case m.snap == nil || m.snap.Seq == 0:
		content = styleMuted.Render("Waiting for the first sample...")
	case m.activeTab == TabOverview:
		content = renderOverviewContent(m.snap, lc)
	case m.activeTab == TabCPU:
		content = renderCPUContent(m.snap, lc)
	case m.activeTab == TabMemory:
		content = renderMemoryContent(m.snap, lc)
	case m.activeTab == TabVirtualMemory:
		content = renderVirtualMemoryContent(m.snap, lc)
	case m.activeTab == TabDisk:
		content = renderDiskContent(m.snap, lc)
	}

	return styleContent.Width(m.width).MaxHeight(contentHeight).Render(content)
}

// renderFooter renders the key help and the time of the displayed sample.
func (m Model) renderFooter() string {
	helpView := m.help.View(keys)

	var timestamp string
	if m.snap != nil && m.snap.Seq > 0 {
		timestamp = fmt.Sprintf("  Sample #%d at %s", m.snap.Seq, m.snap.Sample.At.Local().Format("15:04:05"))
	}

	if len(m.retrying) > 0 {
		timestamp += "  Retrying " + strings.Join(m.retrying, ", ")
	}

	return styleFooter.Width(m.width).Render(helpView + timestamp)
}

// statusLevel summarizes snapshot health for the header indicator.
func statusLevel(snap *sampler.Snapshot) widgets.StatusLevel {
	switch {
	case snap == nil || snap.Seq == 0:
		return widgets.StatusPending
	case len(snap.OpenProbes) > 0:
		return widgets.StatusCritical
	case snap.Partial:
		return widgets.StatusWarning
	default:
		return widgets.StatusOK
	}
}
