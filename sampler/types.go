package sampler

import (
	"encoding/json"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/hostpulse/sampler/host"
)

// Series identifies one rolling history.
type Series int

const (
	SeriesCPU Series = iota
	SeriesMemory
	SeriesVirtualMemory
	SeriesDisk

	numSeries
)

var seriesNames = [numSeries]string{"cpu", "memory", "virtual_memory", "disk"}

func (s Series) String() string {
	if s < 0 || s >= numSeries {
		return "unknown"
	}
	return seriesNames[s]
}

// AllSeries returns every series in display order.
func AllSeries() []Series {
	return []Series{SeriesCPU, SeriesMemory, SeriesVirtualMemory, SeriesDisk}
}

// Point is one history entry. Missing marks a tick on which the metric had
// never been read successfully; Value is zero for such points.
type Point struct {
	At      time.Time `json:"at"`
	Value   float64   `json:"value"`
	Missing bool      `json:"missing,omitempty"`
}

// Field is a set of RawSample field groups.
type Field uint16

const (
	FieldCPU Field = 1 << iota
	FieldFrequency
	FieldCores
	FieldMemory
	FieldSwap
	FieldDisk
	FieldProcess
	FieldLoad
)

var fieldNames = []struct {
	f    Field
	name string
}{
	{FieldCPU, "cpu"},
	{FieldFrequency, "frequency"},
	{FieldCores, "cores"},
	{FieldMemory, "memory"},
	{FieldSwap, "swap"},
	{FieldDisk, "disk"},
	{FieldProcess, "process"},
	{FieldLoad, "load"},
}

// Has reports whether every group in g is set.
func (f Field) Has(g Field) bool {
	return f&g == g
}

func (f Field) String() string {
	var parts []string
	for _, fn := range fieldNames {
		if f.Has(fn.f) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// MarshalJSON encodes the set as a list of group names.
func (f Field) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, fn := range fieldNames {
		if f.Has(fn.f) {
			names = append(names, fn.name)
		}
	}
	return json.Marshal(names)
}

// RawSample is one tick's worth of host counters. Sizes are bytes.
//
// Present lists the groups that hold data; Carried lists the groups whose
// values were copied from an earlier tick because this tick's read failed.
// Optional counters are zero unless their Has flag is set.
type RawSample struct {
	At time.Time `json:"at"`

	CPUPercent      float64 `json:"cpu_percent"`
	CPUFrequencyMHz float64 `json:"cpu_frequency_mhz"`
	PhysicalCores   int     `json:"physical_cores"`
	LogicalCores    int     `json:"logical_cores"`

	TotalMemory     uint64 `json:"total_memory_bytes"`
	UsedMemory      uint64 `json:"used_memory_bytes"`
	AvailableMemory uint64 `json:"available_memory_bytes"`
	CommitCharge    uint64 `json:"commit_charge_bytes,omitempty"`
	CommitLimit     uint64 `json:"commit_limit_bytes,omitempty"`

	SwapTotal uint64 `json:"swap_total_bytes"`
	SwapUsed  uint64 `json:"swap_used_bytes"`
	SwapFree  uint64 `json:"swap_free_bytes"`

	DiskPath  string `json:"disk_path"`
	DiskTotal uint64 `json:"disk_total_bytes"`
	DiskUsed  uint64 `json:"disk_used_bytes"`
	DiskFree  uint64 `json:"disk_free_bytes"`

	ProcessPrivate uint64 `json:"process_private_bytes"`
	ProcessPeak    uint64 `json:"process_peak_bytes,omitempty"`
	HasProcessPeak bool   `json:"-"`
	PageFaults     uint64 `json:"process_page_fault_count,omitempty"`
	HasPageFaults  bool   `json:"-"`

	Load1  float64 `json:"load1,omitempty"`
	Load5  float64 `json:"load5,omitempty"`
	Load15 float64 `json:"load15,omitempty"`

	Present Field `json:"present"`
	Carried Field `json:"carried"`
}

// HasCommit reports whether the platform accounted committed memory.
func (r RawSample) HasCommit() bool {
	return r.CommitLimit > 0
}

// ProbeFailure records one failed read of a sampling tick.
type ProbeFailure struct {
	Probe string `json:"probe"`
	Err   string `json:"error"`
}

// Snapshot is an immutable view of the sampler state after one tick. All
// slices are copies owned by the snapshot; callers must not modify them.
type Snapshot struct {
	// Seq counts samples taken since the sampler was built. The empty
	// snapshot published before the first sample has Seq 0.
	Seq    uint64
	Sample RawSample
	Host   host.Info

	CPUPercent           float64
	MemoryPercent        float64
	VirtualMemoryPercent float64
	DiskPercent          float64

	// Partial is set when at least one probe failed this tick and its
	// previous value was carried forward (or left missing).
	Partial  bool
	Failures []ProbeFailure

	// OpenProbes lists probes whose circuit breaker is open.
	OpenProbes []string

	supported [numSeries]bool
	history   [numSeries][]Point
}

// History returns the points of series s in chronological order.
func (s *Snapshot) History(series Series) []Point {
	if series < 0 || series >= numSeries {
		return nil
	}
	return s.history[series]
}

// Supported reports whether series s is populated on this platform.
func (s *Snapshot) Supported(series Series) bool {
	if series < 0 || series >= numSeries {
		return false
	}
	return s.supported[series]
}

// Percent returns the derived percentage for series s.
func (s *Snapshot) Percent(series Series) float64 {
	switch series {
	case SeriesCPU:
		return s.CPUPercent
	case SeriesMemory:
		return s.MemoryPercent
	case SeriesVirtualMemory:
		return s.VirtualMemoryPercent
	case SeriesDisk:
		return s.DiskPercent
	}
	return 0
}

type snapshotJSON struct {
	Seq                  uint64             `json:"seq"`
	Sample               RawSample          `json:"sample"`
	Host                 host.Info          `json:"host"`
	CPUPercent           float64            `json:"cpu_percent"`
	MemoryPercent        float64            `json:"memory_percent"`
	VirtualMemoryPercent float64            `json:"virtual_memory_percent"`
	DiskPercent          float64            `json:"disk_percent"`
	Partial              bool               `json:"partial"`
	Failures             []ProbeFailure     `json:"failures,omitempty"`
	OpenProbes           []string           `json:"open_probes,omitempty"`
	History              map[string][]Point `json:"history"`
}

// MarshalJSON encodes the snapshot with its supported histories keyed by
// series name.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON{
		Seq:                  s.Seq,
		Sample:               s.Sample,
		Host:                 s.Host,
		CPUPercent:           s.CPUPercent,
		MemoryPercent:        s.MemoryPercent,
		VirtualMemoryPercent: s.VirtualMemoryPercent,
		DiskPercent:          s.DiskPercent,
		Partial:              s.Partial,
		Failures:             s.Failures,
		OpenProbes:           s.OpenProbes,
		History:              make(map[string][]Point, numSeries),
	}
	for _, series := range AllSeries() {
		if s.supported[series] {
			points := s.history[series]
			if points == nil {
				points = []Point{}
			}
			out.History[series.String()] = points
		}
	}
	return json.Marshal(out)
}
