package widgets

import (
	"strings"
	"testing"
)

func TestRenderStatus(t *testing.T) {
	tests := []struct {
		name     string
		cfg      StatusConfig
		wantText string
		wantIcon string
	}{
		{"ok with icon", StatusConfig{Level: StatusOK, ShowIcon: true}, "live", "●"},
		{"pending icon", StatusConfig{Level: StatusPending, ShowIcon: true}, "waiting", "◌"},
		{"custom text", StatusConfig{Level: StatusWarning, Text: "2 carried"}, "2 carried", ""},
		{"critical", StatusConfig{Level: StatusCritical}, "degraded", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderStatus(tt.cfg)
			if !strings.Contains(result, tt.wantText) {
				t.Errorf("expected %q in %q", tt.wantText, result)
			}
			if tt.wantIcon != "" && !strings.Contains(result, tt.wantIcon) {
				t.Errorf("expected icon %q in %q", tt.wantIcon, result)
			}
			if tt.wantIcon == "" && strings.ContainsAny(result, "●◌") {
				t.Errorf("unexpected icon in %q", result)
			}
		})
	}
}

func TestStatusLevelString(t *testing.T) {
	if got := StatusLevel(42).String(); got != "unknown" {
		t.Errorf("unknown level = %q", got)
	}
}
