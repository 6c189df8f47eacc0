package host

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

func TestSecondsToTicks(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want uint64
	}{
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"nan", math.NaN(), 0},
		{"whole seconds", 12, 1200},
		{"rounds to nearest tick", 1.236, 124},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := secondsToTicks(tt.in); got != tt.want {
				t.Errorf("secondsToTicks(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestMemoryFromVirtualMemory(t *testing.T) {
	r := NewSystemReader()
	r.virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{
			Total:       16 << 30,
			Used:        4 << 30,
			Available:   12 << 30,
			UsedPercent: 25,
		}, nil
	}

	m, err := r.Memory(context.Background())
	if err != nil {
		t.Fatalf("Memory: %v", err)
	}
	if m.Total != 16<<30 || m.Used != 4<<30 || m.Available != 12<<30 {
		t.Errorf("unexpected sizes: %+v", m)
	}
	if m.UsedPercent != 25 {
		t.Errorf("UsedPercent = %v, want 25", m.UsedPercent)
	}
}

func TestMemoryError(t *testing.T) {
	r := NewSystemReader()
	boom := errors.New("boom")
	r.virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return nil, boom
	}

	if _, err := r.Memory(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Memory error = %v, want wrapped %v", err, boom)
	}
}

func TestDefaultDiskPath(t *testing.T) {
	if DefaultDiskPath() == "" {
		t.Error("DefaultDiskPath returned empty string")
	}
}

func TestMemoryCommitAccounting(t *testing.T) {
	tests := []struct {
		name       string
		charge     uint64
		limit      uint64
		err        error
		wantCharge uint64
		wantLimit  uint64
	}{
		{name: "reported", charge: 6 << 30, limit: 24 << 30, wantCharge: 6 << 30, wantLimit: 24 << 30},
		{name: "not accounted", wantCharge: 0, wantLimit: 0},
		{name: "read fails", charge: 1, limit: 2, err: errors.New("denied"), wantCharge: 0, wantLimit: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSystemReader()
			r.virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) {
				return &mem.VirtualMemoryStat{Total: 16 << 30, Used: 4 << 30}, nil
			}
			r.commitMemory = func(context.Context, *mem.VirtualMemoryStat) (uint64, uint64, error) {
				return tt.charge, tt.limit, tt.err
			}

			m, err := r.Memory(context.Background())
			if err != nil {
				t.Fatalf("Memory: %v", err)
			}
			if m.CommitCharge != tt.wantCharge || m.CommitLimit != tt.wantLimit {
				t.Errorf("commit = %d of %d, want %d of %d", m.CommitCharge, m.CommitLimit, tt.wantCharge, tt.wantLimit)
			}
			if m.Total != 16<<30 {
				t.Errorf("Total = %d, want %d", m.Total, uint64(16<<30))
			}
		})
	}
}

func TestSelfRetriesAfterFailedOpen(t *testing.T) {
	r := NewSystemReader()
	calls := 0
	r.newProcess = func(_ context.Context, pid int32) (*process.Process, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("timed out")
		}
		return &process.Process{Pid: pid}, nil
	}

	if _, err := r.self(context.Background()); err == nil {
		t.Fatal("first self call should fail")
	}
	p, err := r.self(context.Background())
	if err != nil {
		t.Fatalf("second self call: %v", err)
	}
	if p.Pid != r.pid {
		t.Errorf("Pid = %d, want %d", p.Pid, r.pid)
	}
	if _, err := r.self(context.Background()); err != nil {
		t.Fatalf("third self call: %v", err)
	}
	if calls != 2 {
		t.Errorf("newProcess called %d times, want 2", calls)
	}
}

func TestInfoFrequency(t *testing.T) {
	tests := []struct {
		name      string
		infos     []cpu.InfoStat
		err       error
		want      float64
		wantErr   bool
		noReading bool
	}{
		{name: "reported", infos: []cpu.InfoStat{{Mhz: 2400}}, want: 2400},
		{name: "zero is transient", infos: []cpu.InfoStat{{Mhz: 0}}, wantErr: true, noReading: true},
		{name: "no entries is transient", wantErr: true, noReading: true},
		{name: "read fails", err: errors.New("wmi busy"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSystemReader()
			r.cpuInfo = func(context.Context) ([]cpu.InfoStat, error) {
				return tt.infos, tt.err
			}

			got, err := r.infoFrequency(context.Background())
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("infoFrequency: %v", err)
				}
				if got != tt.want {
					t.Errorf("infoFrequency = %v, want %v", got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errors.Is(err, ErrUnsupported) {
				t.Errorf("infoFrequency error = %v, must not be ErrUnsupported", err)
			}
			if tt.noReading != errors.Is(err, errNoFrequency) {
				t.Errorf("infoFrequency error = %v, errNoFrequency match = %v", err, !tt.noReading)
			}
		})
	}
}
