//go:build !windows

package host

import "context"

// nativeBusyPercent is unavailable; the sampler derives utilization from
// CPUTimes deltas instead.
func nativeBusyPercent(context.Context) (float64, error) {
	return 0, ErrUnsupported
}
