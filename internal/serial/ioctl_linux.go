//go:build linux

package serial

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

// drain blocks until all queued output has been transmitted. TCSBRK with
// a non-zero argument is tcdrain on Linux.
func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCSBRK, 1)
}
