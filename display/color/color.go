// Package color decides whether hostpulse text output is styled.
//
// It honors NO_COLOR (https://no-color.org/) and turns color off when the
// output is piped or redirected. When color is off, lipgloss is set to the
// Ascii profile so all styled renders produce plain text.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ShouldDisableColor reports whether output written to f should be plain.
// Any value of NO_COLOR, including empty, disables color, as does an f that
// is not a terminal.
func ShouldDisableColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	if f == nil {
		return true
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Apply configures the global lipgloss renderer for output to f and
// returns whether color is enabled.
func Apply(f *os.File) bool {
	if ShouldDisableColor(f) {
		ForceDisable()
		return false
	}
	return true
}

// ForceDisable sets the lipgloss color profile to Ascii.
func ForceDisable() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StripANSI removes all ANSI escape sequences from a string.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if inEscape {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') || s[i] == '~' {
				inEscape = false
			}
			continue
		}
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}
