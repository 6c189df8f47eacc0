//go:build linux

package host

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"
)

// commitStats returns Committed_AS and CommitLimit from /proc/meminfo.
func commitStats(_ context.Context, vm *mem.VirtualMemoryStat) (charge, limit uint64, err error) {
	return vm.CommittedAS, vm.CommitLimit, nil
}
