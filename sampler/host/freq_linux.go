//go:build linux

package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// currentFrequency averages scaling_cur_freq over all CPUs, which tracks
// frequency scaling, and falls back to the nominal /proc/cpuinfo figure
// when cpufreq is not exposed (common in containers and VMs). Only a host
// with neither source is unsupported; unreadable cpufreq files are retried.
func (r *SystemReader) currentFrequency(ctx context.Context) (float64, error) {
	files, _ := filepath.Glob(filepath.Join(r.sysfsCPUDir, "cpu*", "cpufreq", "scaling_cur_freq"))
	var total, count uint64
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		khz, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
		if err != nil || khz == 0 {
			continue
		}
		total += khz
		count++
	}
	if count > 0 {
		return float64(total) / float64(count) / 1000.0, nil
	}

	mhz, err := r.infoFrequency(ctx)
	if errors.Is(err, errNoFrequency) && len(files) == 0 {
		return 0, ErrUnsupported
	}
	return mhz, err
}
