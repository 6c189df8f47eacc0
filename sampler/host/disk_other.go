//go:build !windows

package host

func defaultDiskPath() string {
	return "/"
}
