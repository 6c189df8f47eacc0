//go:build windows

package host

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// nativeBusyPercent returns the busy percentage since the previous call,
// as tracked by gopsutil from the processor performance counters.
func nativeBusyPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("host: cpu percent: %w", err)
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("host: cpu percent: no aggregate entry")
	}
	return pcts[0], nil
}
