package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	gohost "github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// SystemReader implements Reader on top of gopsutil, with platform files
// filling in frequency, busy percent, commit accounting and process
// statistics.
type SystemReader struct {
	pid int32

	procMu sync.Mutex
	proc   *process.Process

	// Overridable sources for testing.
	sysfsCPUDir    string
	openProcStatus func() (io.ReadCloser, error)
	getrusage      func() (rusage, error)
	virtualMemory  func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	commitMemory   func(ctx context.Context, vm *mem.VirtualMemoryStat) (charge, limit uint64, err error)
	cpuInfo        func(ctx context.Context) ([]cpu.InfoStat, error)
	newProcess     func(ctx context.Context, pid int32) (*process.Process, error)
}

// rusage is the subset of getrusage(2) output the reader uses.
type rusage struct {
	// MaxRSS is the peak resident set size in bytes.
	MaxRSS      uint64
	MinorFaults uint64
	MajorFaults uint64
}

// NewSystemReader returns a Reader for the running host.
func NewSystemReader() *SystemReader {
	return &SystemReader{
		pid:         int32(os.Getpid()),
		sysfsCPUDir: "/sys/devices/system/cpu",
		openProcStatus: func() (io.ReadCloser, error) {
			return os.Open("/proc/self/status")
		},
		getrusage:     selfRusage,
		virtualMemory: mem.VirtualMemoryWithContext,
		commitMemory:  commitStats,
		cpuInfo:       cpu.InfoWithContext,
		newProcess:    process.NewProcessWithContext,
	}
}

// DefaultDiskPath returns the filesystem sampled when none is configured:
// the root on unix, the system drive on Windows.
func DefaultDiskPath() string {
	return defaultDiskPath()
}

// CPUTimes returns aggregate tick counters. gopsutil reports seconds with
// idle separate from system time; idle and iowait are folded into kernel
// so the Windows formula applies unchanged.
func (r *SystemReader) CPUTimes(ctx context.Context) (CPUTimes, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return CPUTimes{}, fmt.Errorf("host: cpu times: %w", err)
	}
	if len(times) == 0 {
		return CPUTimes{}, fmt.Errorf("host: cpu times: no aggregate entry")
	}
	t := times[0]

	idle := t.Idle + t.Iowait
	kernel := t.System + t.Irq + t.Softirq + t.Steal + idle
	user := t.User + t.Nice

	return CPUTimes{
		Idle:   secondsToTicks(idle),
		Kernel: secondsToTicks(kernel),
		User:   secondsToTicks(user),
	}, nil
}

// secondsToTicks converts gopsutil's float seconds to whole ticks.
func secondsToTicks(s float64) uint64 {
	if s <= 0 || math.IsNaN(s) {
		return 0
	}
	return uint64(math.Round(s * TicksPerSecond))
}

// CPUBusyPercent returns the native busy counter where one exists.
func (r *SystemReader) CPUBusyPercent(ctx context.Context) (float64, error) {
	return nativeBusyPercent(ctx)
}

// CPUFrequency returns the current CPU frequency in MHz.
func (r *SystemReader) CPUFrequency(ctx context.Context) (float64, error) {
	return r.currentFrequency(ctx)
}

// errNoFrequency means cpu info was read but carried no clock speed.
var errNoFrequency = errors.New("host: cpu info reports no frequency")

// infoFrequency reads the nominal frequency gopsutil reports for the first
// CPU. A zero figure is transient; the platform files decide when it is
// permanent.
func (r *SystemReader) infoFrequency(ctx context.Context) (float64, error) {
	infos, err := r.cpuInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("host: cpu info: %w", err)
	}
	if len(infos) == 0 || infos[0].Mhz <= 0 {
		return 0, errNoFrequency
	}
	return infos[0].Mhz, nil
}

// CPUCounts returns physical and logical core counts.
func (r *SystemReader) CPUCounts(ctx context.Context) (CPUCounts, error) {
	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return CPUCounts{}, fmt.Errorf("host: logical cpu count: %w", err)
	}
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil || physical == 0 {
		// Some virtualised hosts do not expose core topology.
		physical = logical
	}
	return CPUCounts{Physical: physical, Logical: logical}, nil
}

// Memory returns physical memory statistics.
func (r *SystemReader) Memory(ctx context.Context) (Memory, error) {
	vm, err := r.virtualMemory(ctx)
	if err != nil {
		return Memory{}, fmt.Errorf("host: virtual memory: %w", err)
	}
	m := Memory{
		Total:       vm.Total,
		Used:        vm.Used,
		Available:   vm.Available,
		UsedPercent: vm.UsedPercent,
	}
	// Commit accounting is optional; a failed read leaves it zero.
	if charge, limit, err := r.commitMemory(ctx, vm); err == nil {
		m.CommitCharge, m.CommitLimit = charge, limit
	}
	return m, nil
}

// Swap returns swap or page file statistics.
func (r *SystemReader) Swap(ctx context.Context) (Swap, error) {
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return Swap{}, fmt.Errorf("host: swap memory: %w", err)
	}
	return Swap{Total: sw.Total, Used: sw.Used, Free: sw.Free}, nil
}

// Disk returns usage of the filesystem containing path.
func (r *SystemReader) Disk(ctx context.Context, path string) (Disk, error) {
	du, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return Disk{}, fmt.Errorf("host: disk usage %s: %w", path, err)
	}
	return Disk{Path: path, Total: du.Total, Used: du.Used, Free: du.Free}, nil
}

// Process returns memory statistics of the current process.
func (r *SystemReader) Process(ctx context.Context) (Process, error) {
	return r.processStats(ctx)
}

// self lazily resolves the gopsutil handle for the current process. A
// failed open is retried on the next call.
func (r *SystemReader) self(ctx context.Context) (*process.Process, error) {
	r.procMu.Lock()
	defer r.procMu.Unlock()

	if r.proc != nil {
		return r.proc, nil
	}
	p, err := r.newProcess(ctx, r.pid)
	if err != nil {
		return nil, fmt.Errorf("host: open process %d: %w", r.pid, err)
	}
	r.proc = p
	return p, nil
}

// LoadAverage returns the run-queue averages.
func (r *SystemReader) LoadAverage(ctx context.Context) (LoadAverage, error) {
	if runtime.GOOS == "windows" {
		return LoadAverage{}, ErrUnsupported
	}
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return LoadAverage{}, fmt.Errorf("host: load average: %w", err)
	}
	return LoadAverage{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

// Info returns static host identification.
func (r *SystemReader) Info(ctx context.Context) (Info, error) {
	hi, err := gohost.InfoWithContext(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("host: info: %w", err)
	}
	info := Info{
		Hostname:        hi.Hostname,
		OS:              hi.OS,
		Platform:        hi.Platform,
		PlatformVersion: hi.PlatformVersion,
		KernelVersion:   hi.KernelVersion,
		Arch:            hi.KernelArch,
		BootTime:        time.Unix(int64(hi.BootTime), 0),
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}
	if cpus, err := r.cpuInfo(ctx); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	return info, nil
}

// Compile-time interface compliance check.
var _ Reader = (*SystemReader)(nil)
