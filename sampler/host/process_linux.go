//go:build linux

package host

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// processStats reads /proc/self/status. Private bytes are the anonymous
// data and stack segments (VmData + VmStk), the closest Linux analogue of a
// Windows process's private commit; peak is the resident high-water mark.
// Page faults come from getrusage.
func (r *SystemReader) processStats(ctx context.Context) (Process, error) {
	if err := ctx.Err(); err != nil {
		return Process{}, err
	}

	f, err := r.openProcStatus()
	if err != nil {
		return Process{}, fmt.Errorf("host: open /proc/self/status: %w", err)
	}
	defer f.Close()

	var p Process
	var vmData, vmStk uint64
	var foundData bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "VmData:"):
			v, err := parseStatusKB(line)
			if err != nil {
				return Process{}, fmt.Errorf("host: parse VmData: %w", err)
			}
			vmData = v
			foundData = true
		case strings.HasPrefix(line, "VmStk:"):
			v, err := parseStatusKB(line)
			if err != nil {
				return Process{}, fmt.Errorf("host: parse VmStk: %w", err)
			}
			vmStk = v
		case strings.HasPrefix(line, "VmHWM:"):
			v, err := parseStatusKB(line)
			if err != nil {
				return Process{}, fmt.Errorf("host: parse VmHWM: %w", err)
			}
			p.PeakBytes = v
			p.HasPeak = true
		}
	}
	if err := scanner.Err(); err != nil {
		return Process{}, fmt.Errorf("host: read /proc/self/status: %w", err)
	}
	if !foundData {
		return Process{}, fmt.Errorf("host: VmData not found in /proc/self/status")
	}
	p.PrivateBytes = vmData + vmStk

	if ru, err := r.getrusage(); err == nil {
		p.PageFaults = ru.MinorFaults + ru.MajorFaults
		p.HasPageFaults = true
	}
	return p, nil
}

// parseStatusKB extracts the byte value from a /proc status line.
// Format: "VmHWM:     12345 kB"
func parseStatusKB(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("too few fields: %q", line)
	}
	v, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, err
	}
	return v * 1024, nil
}
