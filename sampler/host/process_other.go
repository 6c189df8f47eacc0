//go:build !linux && !darwin && !windows

package host

import (
	"context"
	"fmt"
)

// processStats reports private bytes only, using the resident size as the
// best available figure.
func (r *SystemReader) processStats(ctx context.Context) (Process, error) {
	proc, err := r.self(ctx)
	if err != nil {
		return Process{}, err
	}
	mi, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return Process{}, fmt.Errorf("host: process memory: %w", err)
	}
	return Process{PrivateBytes: mi.RSS}, nil
}
