//go:build linux

package serial

import "golang.org/x/sys/unix"

// platformSpeeds are the high rates only Linux defines.
var platformSpeeds = map[int]uint32{
	460800:  0x1004, // B460800
	500000:  0x1005, // B500000
	921600:  0x1007, // B921600
	1000000: 0x1008, // B1000000
}

// setSpeed sets the baud rate on the termios struct for Linux. TCSETS
// reads the rate from the CBAUD bits of Cflag.
func setSpeed(termios *unix.Termios, speed uint32) {
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= speed
	termios.Ispeed = speed
	termios.Ospeed = speed
}
