package format

import (
	"fmt"
	"math"
	"strconv"
)

const gib = 1 << 30

// Percent renders v with one decimal place and a percent sign.
func Percent(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// GiB renders a byte count in binary gigabytes with two decimals.
func GiB(bytes uint64) string {
	return fmt.Sprintf("%.2f GiB", float64(bytes)/gib)
}

// Bytes picks the largest binary unit that keeps the value at or above 1.
func Bytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTP"[exp])
}

// Count renders n with comma thousands separators.
func Count(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+(len(s)-1)/3)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// MHz renders a CPU frequency. Zero renders as "n/a".
func MHz(v float64) string {
	if v <= 0 {
		return "n/a"
	}
	if v >= 1000 {
		return fmt.Sprintf("%.2f GHz", v/1000)
	}
	return fmt.Sprintf("%.0f MHz", v)
}

// Load renders a load average triple.
func Load(l1, l5, l15 float64) string {
	return fmt.Sprintf("%.2f %.2f %.2f", l1, l5, l15)
}
