//go:build unix

package asciicam

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdPoller asks the kernel whether the descriptor is readable with a zero
// timeout, then reads exactly one byte. No goroutine, no buffering beyond
// the kernel's own.
type fdPoller struct {
	fd int
}

func newPlatformPoller(f *os.File) KeyPoller {
	return &fdPoller{fd: int(f.Fd())}
}

func (p *fdPoller) Poll() (rune, bool) {
	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return 0, false
		}
		break
	}

	var buf [1]byte
	n, err := unix.Read(p.fd, buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return rune(buf[0]), true
}
