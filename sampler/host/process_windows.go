//go:build windows

package host

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modpsapi                 = windows.NewLazySystemDLL("psapi.dll")
	procGetProcessMemoryInfo = modpsapi.NewProc("GetProcessMemoryInfo")
)

// processMemoryCounters mirrors PROCESS_MEMORY_COUNTERS_EX. SIZE_T fields
// are uintptr so the layout holds on 32 and 64 bit.
type processMemoryCounters struct {
	CB                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uintptr
	WorkingSetSize             uintptr
	QuotaPeakPagedPoolUsage    uintptr
	QuotaPagedPoolUsage        uintptr
	QuotaPeakNonPagedPoolUsage uintptr
	QuotaNonPagedPoolUsage     uintptr
	PagefileUsage              uintptr
	PeakPagefileUsage          uintptr
	PrivateUsage               uintptr
}

// selfMemoryCounters calls GetProcessMemoryInfo on the current process.
func selfMemoryCounters() (processMemoryCounters, error) {
	var pmc processMemoryCounters
	pmc.CB = uint32(unsafe.Sizeof(pmc))
	if err := procGetProcessMemoryInfo.Find(); err != nil {
		return pmc, err
	}
	r1, _, e1 := procGetProcessMemoryInfo.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&pmc)),
		uintptr(pmc.CB),
	)
	if r1 == 0 {
		return pmc, e1
	}
	return pmc, nil
}

// processStats reports the private commit, the peak working set and the
// page fault count of the current process.
func (r *SystemReader) processStats(ctx context.Context) (Process, error) {
	if err := ctx.Err(); err != nil {
		return Process{}, err
	}
	pmc, err := selfMemoryCounters()
	if err != nil {
		return Process{}, fmt.Errorf("host: process memory info: %w", err)
	}
	return Process{
		PrivateBytes:  uint64(pmc.PrivateUsage),
		PeakBytes:     uint64(pmc.PeakWorkingSetSize),
		HasPeak:       true,
		PageFaults:    uint64(pmc.PageFaultCount),
		HasPageFaults: true,
	}, nil
}
