package widgets

import (
	"github.com/charmbracelet/lipgloss"
)

// StatusLevel represents the state shown by a status indicator.
type StatusLevel int

const (
	// StatusOK means every reading of the last sample succeeded.
	StatusOK StatusLevel = iota
	// StatusWarning means some values were carried from earlier samples.
	StatusWarning
	// StatusCritical means at least one probe is being skipped.
	StatusCritical
	// StatusPending means no sample has been published yet.
	StatusPending
)

func (l StatusLevel) String() string {
	switch l {
	case StatusOK:
		return "live"
	case StatusWarning:
		return "partial"
	case StatusCritical:
		return "degraded"
	case StatusPending:
		return "waiting"
	}
	return "unknown"
}

// StatusConfig holds the configuration for rendering a status indicator.
type StatusConfig struct {
	// Level determines the color and icon.
	Level StatusLevel
	// Text is the label shown next to the indicator. Empty uses the level name.
	Text string
	// ShowIcon controls whether the colored dot is shown.
	ShowIcon bool
}

var statusIcons = map[StatusLevel]string{
	StatusOK:       "\u25CF", // ● filled dot
	StatusWarning:  "\u25CF",
	StatusCritical: "\u25CF",
	StatusPending:  "\u25CC", // ◌ dotted circle
}

var statusColors = map[StatusLevel]lipgloss.Color{
	StatusOK:       lipgloss.Color("#22C55E"),
	StatusWarning:  lipgloss.Color("#EAB308"),
	StatusCritical: lipgloss.Color("#EF4444"),
	StatusPending:  lipgloss.Color("#3B82F6"),
}

// RenderStatus renders a status indicator with an optional colored icon and text.
func RenderStatus(cfg StatusConfig) string {
	style := lipgloss.NewStyle().Foreground(statusColors[cfg.Level])
	text := cfg.Text
	if text == "" {
		text = cfg.Level.String()
	}

	if cfg.ShowIcon {
		return style.Render(statusIcons[cfg.Level]) + " " + text
	}
	return style.Render(text)
}
