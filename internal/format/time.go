// Package format renders sampler values for display: percentages with one
// decimal, byte counts in GiB, grouped integers and durations.
package format

import (
	"fmt"
	"time"
)

// FormatDuration renders a time.Duration as a concise human-readable string.
// Returns strings like "1s", "5m 30s", "2h 15m", "3d 4h".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatUptime returns the time elapsed since boot relative to now.
// A zero boot time renders as "unknown".
func FormatUptime(boot, now time.Time) string {
	if boot.IsZero() || boot.Unix() <= 0 {
		return "unknown"
	}
	return FormatDuration(now.Sub(boot))
}

// FormatTimestamp renders t as a local wall-clock time with seconds.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
