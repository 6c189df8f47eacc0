package tui

import (
	"strings"
	"testing"
)

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutSize
	}{
		{10, LayoutCompact},
		{59, LayoutCompact},
		{60, LayoutNormal},
		{100, LayoutNormal},
		{120, LayoutNormal},
		{121, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		if got := DetectLayout(tt.width); got != tt.want {
			t.Errorf("DetectLayout(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestLayoutForSize_Compact(t *testing.T) {
	cfg := LayoutForSize(LayoutCompact, 50)

	if cfg.GaugeWidth != 10 {
		t.Errorf("Compact GaugeWidth = %d, want 10", cfg.GaugeWidth)
	}
	if cfg.StatWidth != 46 {
		t.Errorf("Compact StatWidth = %d, want 46", cfg.StatWidth)
	}
	if cfg.ShowSparklines {
		t.Error("Compact ShowSparklines should be false")
	}
	if cfg.ShowSplitBars {
		t.Error("Compact ShowSplitBars should be false")
	}
}

func TestLayoutForSize_Normal(t *testing.T) {
	cfg := LayoutForSize(LayoutNormal, 100)

	if cfg.GaugeWidth != 24 {
		t.Errorf("Normal GaugeWidth = %d, want 24", cfg.GaugeWidth)
	}
	if cfg.SparklineWidth != 40 {
		t.Errorf("Normal SparklineWidth = %d, want 40", cfg.SparklineWidth)
	}
	if cfg.StatWidth != 92 {
		t.Errorf("Normal StatWidth = %d, want 92", cfg.StatWidth)
	}
	if !cfg.ShowSparklines {
		t.Error("Normal ShowSparklines should be true")
	}
}

func TestLayoutForSize_Wide(t *testing.T) {
	cfg := LayoutForSize(LayoutWide, 150)

	if cfg.GaugeWidth != 40 {
		t.Errorf("Wide GaugeWidth = %d, want 40", cfg.GaugeWidth)
	}
	if cfg.SparklineWidth != 60 {
		t.Errorf("Wide SparklineWidth = %d, want 60", cfg.SparklineWidth)
	}
	if cfg.StatWidth != 138 {
		t.Errorf("Wide StatWidth = %d, want 138", cfg.StatWidth)
	}
	if !cfg.ShowSplitBars {
		t.Error("Wide ShowSplitBars should be true")
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateText(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateText(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestHorizontalRule(t *testing.T) {
	got := horizontalRule(10)
	if len([]rune(got)) != 10 {
		t.Errorf("horizontalRule(10) length = %d, want 10", len([]rune(got)))
	}
	for _, r := range got {
		if r != '─' {
			t.Errorf("horizontalRule(10) contains unexpected rune %U", r)
		}
	}

	// Zero width should return empty.
	got = horizontalRule(0)
	if got != "" {
		t.Errorf("horizontalRule(0) = %q, want empty", got)
	}
}

func TestSectionTitle(t *testing.T) {
	got := sectionTitle("Test", 20)

	if !strings.Contains(got, "Test") {
		t.Errorf("sectionTitle(\"Test\", 20) = %q, missing title text", got)
	}
	if !strings.Contains(got, "─") {
		t.Errorf("sectionTitle(\"Test\", 20) = %q, missing horizontal rule chars", got)
	}
	if runeLen := len([]rune(got)); runeLen != 20 {
		t.Errorf("sectionTitle(\"Test\", 20) rune length = %d, want 20", runeLen)
	}

	if got := sectionTitle("A much longer title", 5); got != "A much longer title" {
		t.Errorf("sectionTitle too narrow = %q, want bare title", got)
	}
}
