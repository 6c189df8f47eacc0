//go:build linux || darwin

package host

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// selfRusage reads getrusage(RUSAGE_SELF). Linux reports ru_maxrss in
// kilobytes, darwin in bytes.
func selfRusage() (rusage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return rusage{}, err
	}
	maxRSS := uint64(ru.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return rusage{
		MaxRSS:      maxRSS,
		MinorFaults: uint64(ru.Minflt),
		MajorFaults: uint64(ru.Majflt),
	}, nil
}
