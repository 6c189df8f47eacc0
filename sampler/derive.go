package sampler

import (
	"math"

	"gitlab.com/tinyland/lab/hostpulse/sampler/host"
)

// CPUPercent converts two cumulative tick readings into a utilization
// percentage. Kernel ticks include idle time, so
//
//	busy% = (kernel + user - idle) / (kernel + user) * 100
//
// over the deltas. Each delta is floored at zero: Linux iowait, folded into
// idle, may step backwards between reads without the other counters doing
// so. No elapsed time, or every counter going backwards, gives 0.
func CPUPercent(prev, cur host.CPUTimes) float64 {
	idle := tickDelta(prev.Idle, cur.Idle)
	total := tickDelta(prev.Kernel, cur.Kernel) + tickDelta(prev.User, cur.User)
	if total == 0 || idle >= total {
		return 0
	}
	return clampPercent(float64(total-idle) / float64(total) * 100)
}

// tickDelta is cur - prev, or 0 when the counter went backwards.
func tickDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

// memoryPercent prefers the OS-reported figure and falls back to
// used/total.
func memoryPercent(m host.Memory) float64 {
	if m.UsedPercent > 0 {
		return clampPercent(m.UsedPercent)
	}
	return percentOf(m.Used, m.Total)
}

// virtualMemoryPercent is (used RAM + used swap) over (RAM + swap).
func virtualMemoryPercent(m host.Memory, sw host.Swap) float64 {
	return percentOf(m.Used+sw.Used, m.Total+sw.Total)
}

func percentOf(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return clampPercent(float64(used) / float64(total) * 100)
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
