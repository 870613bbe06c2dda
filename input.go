package asciicam

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyPoller checks for a pending keypress without blocking. Poll consumes
// at most one buffered key per call and returns false immediately when
// nothing is pending.
type KeyPoller interface {
	Poll() (rune, bool)
}

// NewKeyPoller selects the polling strategy for this platform once, at
// startup: a zero-timeout readiness check against the input descriptor
// where the OS supports it, and a buffering background reader elsewhere.
func NewKeyPoller(f *os.File) KeyPoller {
	return newPlatformPoller(f)
}

// channelPoller feeds keys from a blocking reader into a buffered channel
// so Poll can do a non-blocking receive. Used where descriptor readiness
// checks are unavailable.
type channelPoller struct {
	keys chan rune
}

func newChannelPoller(r io.Reader) *channelPoller {
	p := &channelPoller{keys: make(chan rune, 8)}
	go func() {
		br := bufio.NewReader(r)
		for {
			key, _, err := br.ReadRune()
			if err != nil {
				return
			}
			select {
			case p.keys <- key:
			default:
				// Buffer full; drop rather than block the reader.
			}
		}
	}()
	return p
}

func (p *channelPoller) Poll() (rune, bool) {
	select {
	case key := <-p.keys:
		return key, true
	default:
		return 0, false
	}
}

// RawMode puts f into raw input mode (no line buffering, no local echo)
// and returns a restore function that must run on every exit path,
// including error and interrupt paths. When f is not a terminal, both the
// mode change and the restore are no-ops.
func RawMode(f *os.File) (restore func() error, err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}

// isQuitKey reports whether key requests a stop: q, Q, or Esc.
func isQuitKey(key rune) bool {
	return key == 'q' || key == 'Q' || key == 0x1b
}
