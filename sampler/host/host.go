// Package host is the platform seam of the sampler: a single Reader
// interface for "read host metrics" with a gopsutil-backed implementation
// and per-platform files for the counters gopsutil does not cover the same
// way everywhere.
//
// Optional counters per platform:
//
//	counter            linux  darwin  windows  other
//	cpu busy percent   -      -       yes      -
//	commit charge      yes    -       yes      -
//	process peak       yes    yes     yes      -
//	page faults        yes    yes     yes      -
//	load average       yes    yes     -        yes
//
// A method returns ErrUnsupported for a counter that will never be
// available on the running platform. Every other error is transient.
package host

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupported marks a counter the running platform does not provide.
var ErrUnsupported = errors.New("host: counter not supported on this platform")

// TicksPerSecond is the resolution CPUTimes are reported in.
const TicksPerSecond = 100

// CPUTimes are cumulative CPU tick counters since boot, summed over all
// CPUs. Kernel includes Idle, matching the Windows GetSystemTimes
// convention, so busy = Kernel + User - Idle on every platform.
type CPUTimes struct {
	Idle   uint64
	Kernel uint64
	User   uint64
}

// CPUCounts holds the physical and logical core counts.
type CPUCounts struct {
	Physical int
	Logical  int
}

// Memory holds physical memory statistics in bytes.
type Memory struct {
	Total     uint64
	Used      uint64
	Available uint64

	// UsedPercent is the OS-reported usage. Zero when the platform has no
	// native figure.
	UsedPercent float64

	// CommitCharge and CommitLimit are zero where the platform does not
	// account committed virtual memory.
	CommitCharge uint64
	CommitLimit  uint64
}

// Swap holds swap / page file statistics in bytes.
type Swap struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// Disk holds usage of the filesystem containing Path, in bytes.
type Disk struct {
	Path  string
	Total uint64
	Used  uint64
	Free  uint64
}

// Process holds memory statistics of the sampling process itself.
type Process struct {
	PrivateBytes uint64

	PeakBytes uint64
	HasPeak   bool

	PageFaults    uint64
	HasPageFaults bool
}

// LoadAverage holds the 1, 5 and 15 minute run-queue averages.
type LoadAverage struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// Info is static host identification shown in the overview.
type Info struct {
	Hostname        string    `json:"hostname"`
	OS              string    `json:"os"`
	Platform        string    `json:"platform"`
	PlatformVersion string    `json:"platform_version"`
	KernelVersion   string    `json:"kernel_version"`
	Arch            string    `json:"arch"`
	CPUModel        string    `json:"cpu_model"`
	BootTime        time.Time `json:"boot_time"`
}

// Reader reads host metrics. Implementations must be safe for concurrent
// use: a query abandoned after its timeout may still be running when the
// next tick issues the same query.
type Reader interface {
	CPUTimes(ctx context.Context) (CPUTimes, error)
	CPUBusyPercent(ctx context.Context) (float64, error)
	CPUFrequency(ctx context.Context) (float64, error)
	CPUCounts(ctx context.Context) (CPUCounts, error)
	Memory(ctx context.Context) (Memory, error)
	Swap(ctx context.Context) (Swap, error)
	Disk(ctx context.Context, path string) (Disk, error)
	Process(ctx context.Context) (Process, error)
	LoadAverage(ctx context.Context) (LoadAverage, error)
	Info(ctx context.Context) (Info, error)
}
