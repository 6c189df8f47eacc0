package format

import (
	"math"
	"testing"
	"time"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0%"},
		{66.666, "66.7%"},
		{100, "100.0%"},
		{math.NaN(), "0.0%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGiB(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0.00 GiB"},
		{1 << 30, "1.00 GiB"},
		{16 * (1 << 30), "16.00 GiB"},
		{3 * (1 << 29), "1.50 GiB"},
	}
	for _, tt := range tests {
		if got := GiB(tt.in); got != tt.want {
			t.Errorf("GiB(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * (1 << 20), "5.0 MiB"},
		{3 * (1 << 30), "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := Bytes(tt.in); got != tt.want {
			t.Errorf("Bytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Errorf("Count(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMHz(t *testing.T) {
	if got := MHz(0); got != "n/a" {
		t.Errorf("MHz(0) = %q", got)
	}
	if got := MHz(800); got != "800 MHz" {
		t.Errorf("MHz(800) = %q", got)
	}
	if got := MHz(2400); got != "2.40 GHz" {
		t.Errorf("MHz(2400) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Millisecond, "0s"},
		{45 * time.Second, "45s"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{76 * time.Hour, "3d 4h"},
		{-45 * time.Second, "45s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if got := FormatUptime(time.Time{}, now); got != "unknown" {
		t.Errorf("zero boot = %q, want unknown", got)
	}
	if got := FormatUptime(now.Add(-26*time.Hour), now); got != "1d 2h" {
		t.Errorf("uptime = %q, want 1d 2h", got)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"Intel(R) Core(TM) i7", 10, "Intel(R..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.width); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("abcdef", 4); got != "abcdef" {
		t.Errorf("PadRight should not truncate: %q", got)
	}
}
