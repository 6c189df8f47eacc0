//go:build !linux && !darwin

package host

func selfRusage() (rusage, error) {
	return rusage{}, ErrUnsupported
}
