package serial

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestBaudRateToSpeed(t *testing.T) {
	tests := []struct {
		baud    int
		want    uint32
		wantErr bool
	}{
		{baud: 9600, want: unix.B9600},
		{baud: 115200, want: unix.B115200},
		{baud: 1200, want: unix.B1200},
		{baud: 12345, wantErr: true},
	}

	for _, tt := range tests {
		got, err := baudRateToSpeed(tt.baud)
		if tt.wantErr {
			assert.Error(t, err, "baud %d", tt.baud)
			continue
		}
		require.NoError(t, err, "baud %d", tt.baud)
		assert.Equal(t, tt.want, got, "baud %d", tt.baud)
	}
}

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	require.NoError(t, err)

	for i := 1; i < len(ports); i++ {
		assert.Less(t, ports[i-1], ports[i], "ports are sorted and unique")
	}
}

func TestOpen_NoDevice(t *testing.T) {
	_, err := Open(Config{})
	assert.ErrorIs(t, err, ErrNoDevice)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(Config{Device: filepath.Join(t.TempDir(), "ttyNONE")})
	require.Error(t, err)
	assert.ErrorIs(t, err, unix.ENOENT)
}

// TestOpen_NotATerminal checks that a regular file is rejected when the
// termios settings are read.
func TestOpen_NotATerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := Open(Config{Device: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get termios")
}

func TestOpen_UnsupportedBaud(t *testing.T) {
	_, err := Open(Config{Device: "/dev/null", BaudRate: 31337})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported baud rate 31337")
}

func TestPort_ClosedWrite(t *testing.T) {
	p := &Port{fd: -1, device: "/dev/ttyUSB0", closed: true}

	n, err := p.Write([]byte("PU;"))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, p.Close(), "second close is a no-op")
	assert.Equal(t, "/dev/ttyUSB0", p.Device())
}

func TestPatterns(t *testing.T) {
	globs, err := patterns()
	switch runtime.GOOS {
	case "linux":
		require.NoError(t, err)
		assert.Contains(t, globs, "/dev/ttyUSB*")
	case "darwin":
		require.NoError(t, err)
		assert.Contains(t, globs, "/dev/cu.usbserial*")
	}
}
