//go:build !linux

package host

import "context"

// currentFrequency returns the nominal frequency reported by gopsutil.
func (r *SystemReader) currentFrequency(ctx context.Context) (float64, error) {
	return r.infoFrequency(ctx)
}
