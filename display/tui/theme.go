package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/hostpulse/display/widgets"
)

// ThemePreset defines a complete color scheme that can be applied at
// runtime to change the TUI appearance.
type ThemePreset struct {
	Name string
	// Colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Text       lipgloss.Color
	OnPrimary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Muted      lipgloss.Color
	Free       lipgloss.Color
	Background lipgloss.Color
}

// Predefined theme presets.
var (
	// DarkTheme is the default theme for dark terminals.
	DarkTheme = ThemePreset{
		Name:       "dark",
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#06B6D4"),
		Text:       lipgloss.Color("#F3F4F6"),
		OnPrimary:  lipgloss.Color("#FFFFFF"),
		Success:    lipgloss.Color("#22C55E"),
		Warning:    lipgloss.Color("#EAB308"),
		Danger:     lipgloss.Color("#EF4444"),
		Muted:      lipgloss.Color("#6B7280"),
		Free:       lipgloss.Color("#374151"),
		Background: lipgloss.Color("#1E1B2E"),
	}

	// LightTheme is tuned for light terminal backgrounds.
	LightTheme = ThemePreset{
		Name:       "light",
		Primary:    lipgloss.Color("#6D28D9"),
		Secondary:  lipgloss.Color("#0E7490"),
		Text:       lipgloss.Color("#111827"),
		OnPrimary:  lipgloss.Color("#FFFFFF"),
		Success:    lipgloss.Color("#15803D"),
		Warning:    lipgloss.Color("#A16207"),
		Danger:     lipgloss.Color("#B91C1C"),
		Muted:      lipgloss.Color("#6B7280"),
		Free:       lipgloss.Color("#D1D5DB"),
		Background: lipgloss.Color("#F9FAFB"),
	}
)

// GetThemePreset returns the theme preset matching the given name.
// Unknown names return DarkTheme.
func GetThemePreset(name string) ThemePreset {
	if name == LightTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

// Styles used throughout the TUI. ApplyTheme rebuilds them.
var (
	activeTheme      ThemePreset
	styleActiveTab   lipgloss.Style
	styleInactiveTab lipgloss.Style
	styleHeader      lipgloss.Style
	styleFooter      lipgloss.Style
	styleContent     lipgloss.Style
	styleTitle       lipgloss.Style
	styleLabel       lipgloss.Style
	styleValue       lipgloss.Style
	styleMuted       lipgloss.Style
)

func init() {
	ApplyTheme(DarkTheme)
}

// ApplyTheme updates the package-level style variables to use the given
// preset's colors. This allows runtime theme switching without restarting
// the application.
func ApplyTheme(preset ThemePreset) {
	activeTheme = preset

	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(preset.OnPrimary).
		Background(preset.Primary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(preset.Muted).
		Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(preset.Muted).
		MarginBottom(1)

	styleFooter = lipgloss.NewStyle().
		Foreground(preset.Muted).
		MarginTop(1)

	styleContent = lipgloss.NewStyle().
		Padding(1, 2)

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(preset.Secondary)

	styleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(preset.Primary)

	styleValue = lipgloss.NewStyle().
		Foreground(preset.Text)

	styleMuted = lipgloss.NewStyle().
		Foreground(preset.Muted)
}

// gaugeColors maps the active theme onto gauge bands.
func gaugeColors() widgets.GaugeColors {
	return widgets.GaugeColors{
		OK:      activeTheme.Success,
		Warning: activeTheme.Warning,
		Danger:  activeTheme.Danger,
		Empty:   activeTheme.Muted,
	}
}
