//go:build !unix

package asciicam

import "os"

func newPlatformPoller(f *os.File) KeyPoller {
	return newChannelPoller(f)
}
