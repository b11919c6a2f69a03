//go:build darwin

package serial

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)

// drain blocks until all queued output has been transmitted.
func drain(fd int) error {
	return unix.IoctlSetInt(fd, unix.TIOCDRAIN, 0)
}
