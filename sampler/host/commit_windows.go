//go:build windows

package host

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/mem"
)

// commitStats reads the system commit total and limit from
// GetPerformanceInfo.
func commitStats(context.Context, *mem.VirtualMemoryStat) (charge, limit uint64, err error) {
	ex, err := mem.NewExWindows().VirtualMemory()
	if err != nil {
		return 0, 0, fmt.Errorf("host: performance info: %w", err)
	}
	return ex.CommitTotal, ex.CommitLimit, nil
}
