package serial

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	// ErrClosed is returned by Write after Close.
	ErrClosed = errors.New("serial: port closed")

	// ErrNoDevice is returned by Open when no device path is configured.
	ErrNoDevice = errors.New("serial: device path required")
)

// DefaultBaudRate is the line speed of the CUT 1610S controller.
const DefaultBaudRate = 9600

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., /dev/ttyUSB0, /dev/cu.usbserial-1410)
	Device string

	// Baud rate (default: 9600)
	BaudRate int
}

// Port is an open serial line. It implements io.WriteCloser.
type Port struct {
	mu         sync.Mutex
	fd         int
	device     string
	closed     bool
	oldTermios *unix.Termios
}

// patterns returns the device globs to probe on the current platform.
func patterns() ([]string, error) {
	switch runtime.GOOS {
	case "linux":
		return []string{
			"/dev/ttyUSB*",
			"/dev/ttyACM*",
			"/dev/ttyS*",
			"/dev/serial/by-id/*",
		}, nil
	case "darwin":
		return []string{
			"/dev/tty.usbserial*",
			"/dev/tty.usbmodem*",
			"/dev/cu.usbserial*",
			"/dev/cu.usbmodem*",
		}, nil
	default:
		return nil, fmt.Errorf("serial: unsupported platform %s", runtime.GOOS)
	}
}

// ListPorts returns the available serial device paths, sorted and with
// symlinks resolved.
func ListPorts() ([]string, error) {
	globs, err := patterns()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ports []string
	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			// /dev/serial/by-id entries link to the real tty
			resolved, err := filepath.EvalSymlinks(m)
			if err != nil {
				resolved = m
			}
			if !seen[resolved] {
				seen[resolved] = true
				ports = append(ports, resolved)
			}
		}
	}

	sort.Strings(ports)
	return ports, nil
}

// Open opens the serial port in raw 8N1 mode at cfg.BaudRate.
func Open(cfg Config) (*Port, error) {
	if cfg.Device == "" {
		return nil, ErrNoDevice
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}

	speed, err := baudRateToSpeed(cfg.BaudRate)
	if err != nil {
		return nil, err
	}

	// O_NONBLOCK keeps open from hanging on DCD; cleared below
	fd, err := unix.Open(cfg.Device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Device, err)
	}

	oldTermios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("serial: get termios: %w", err)
	}

	termios := *oldTermios
	makeRaw(&termios)
	setSpeed(&termios, speed)

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termios); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("serial: set termios: %w", err)
	}

	if err := unix.SetNonblock(fd, false); err != nil {
		unix.IoctlSetTermios(fd, ioctlSetTermios, oldTermios)
		unix.Close(fd)
		return nil, fmt.Errorf("serial: set blocking: %w", err)
	}

	return &Port{
		fd:         fd,
		device:     cfg.Device,
		oldTermios: oldTermios,
	}, nil
}

// makeRaw disables all line processing and selects 8N1.
func makeRaw(t *unix.Termios) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON | unix.IXOFF | unix.IXANY
	t.Oflag &^= unix.OPOST
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.PARODD | unix.CSTOPB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
}

// Write writes all of buf to the port. It only returns fewer bytes than
// len(buf) together with an error.
func (p *Port) Write(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrClosed
	}

	written := 0
	for written < len(buf) {
		n, err := unix.Write(p.fd, buf[written:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, fmt.Errorf("serial: write: %w", err)
		}
		written += n
	}
	return written, nil
}

// Close waits for queued output to reach the line, restores the original
// settings and closes the port. Closing twice is a no-op.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	drainErr := drain(p.fd)
	if p.oldTermios != nil {
		_ = unix.IoctlSetTermios(p.fd, ioctlSetTermios, p.oldTermios)
	}
	if err := unix.Close(p.fd); err != nil {
		return fmt.Errorf("serial: close: %w", err)
	}
	if drainErr != nil {
		return fmt.Errorf("serial: drain: %w", drainErr)
	}
	return nil
}

// Device returns the device path.
func (p *Port) Device() string {
	return p.device
}

// baudRateToSpeed converts a baud rate to the termios speed constant.
func baudRateToSpeed(baud int) (uint32, error) {
	speeds := map[int]uint32{
		1200:   unix.B1200,
		2400:   unix.B2400,
		4800:   unix.B4800,
		9600:   unix.B9600,
		19200:  unix.B19200,
		38400:  unix.B38400,
		57600:  unix.B57600,
		115200: unix.B115200,
		230400: unix.B230400,
	}
	for baud, speed := range platformSpeeds {
		speeds[baud] = speed
	}

	if speed, ok := speeds[baud]; ok {
		return speed, nil
	}
	return 0, fmt.Errorf("serial: unsupported baud rate %d", baud)
}
