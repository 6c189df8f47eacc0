//go:build darwin

package host

import (
	"context"
	"fmt"
)

// processStats uses the resident size as private bytes; darwin has no
// cheap per-process private commit figure. Peak and page faults come from
// getrusage.
func (r *SystemReader) processStats(ctx context.Context) (Process, error) {
	proc, err := r.self(ctx)
	if err != nil {
		return Process{}, err
	}
	mi, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return Process{}, fmt.Errorf("host: process memory: %w", err)
	}

	p := Process{PrivateBytes: mi.RSS}
	if ru, err := r.getrusage(); err == nil {
		p.PeakBytes = ru.MaxRSS
		p.HasPeak = true
		p.PageFaults = ru.MinorFaults + ru.MajorFaults
		p.HasPageFaults = true
	}
	return p, nil
}
