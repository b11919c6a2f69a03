// Package serial opens the raw serial line to the foam cutter.
//
// The cutter listens on an RS-232 line (usually a USB adapter such as
// /dev/ttyUSB0 on Linux or /dev/cu.usbserial-* on macOS). The port is put
// into raw 8N1 mode with every input and output translation disabled, so
// the instruction stream reaches the machine byte for byte. Closing the
// port waits for pending output to drain and restores the original line
// settings.
//
// Only Linux and macOS are supported; the termios ioctls differ per
// platform and live in the *_linux.go and *_darwin.go files.
package serial
