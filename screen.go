package asciicam

import (
	"bufio"
	"io"
	"strings"

	tsize "github.com/kopoli/go-terminal-size"
)

// Fallback geometry when the terminal size cannot be determined
// (non-interactive output, redirected stream).
const (
	fallbackColumns = 120
	fallbackRows    = 40
)

// Screen is the terminal output surface. Writes are buffered and flushed
// once per draw so a frame appears atomically.
type Screen struct {
	out *bufio.Writer
}

// NewScreen wraps w, normally os.Stdout.
func NewScreen(w io.Writer) *Screen {
	return &Screen{out: bufio.NewWriterSize(w, 64*1024)}
}

// Enter clears the terminal and hides the cursor.
func (s *Screen) Enter() error {
	s.out.WriteString(escClearScreen)
	s.out.WriteString(escHideCursor)
	return s.out.Flush()
}

// Leave restores the cursor and attribute state on the way out.
func (s *Screen) Leave() error {
	s.out.WriteString(escShowCursor)
	s.out.WriteString(escReset)
	s.out.WriteString("\r\n")
	return s.out.Flush()
}

// Draw repaints the screen in place: cursor to origin, a one-line status
// banner, the rendered frame, then a clear to end of screen in case this
// frame is shorter than the previous one. Raw mode disables output
// post-processing, so newlines are expanded to CR LF at this boundary;
// the rendered frame itself stays newline-joined.
func (s *Screen) Draw(status, frame string) error {
	s.out.WriteString(escCursorHome)
	s.out.WriteString(escClearLine)
	s.out.WriteString(escBold)
	s.out.WriteString(status)
	s.out.WriteString(escReset)
	s.out.WriteString("\r\n")
	s.out.WriteString(strings.ReplaceAll(frame, "\n", "\r\n"))
	s.out.WriteString(escReset)
	s.out.WriteString(escClearBelow)
	return s.out.Flush()
}

// Geometry returns the current terminal size in cells. The terminal may
// be resized at any time, so callers re-read it every tick rather than
// caching. Falls back to 120x40 when the size cannot be queried.
func Geometry() (columns, rows int) {
	size, err := tsize.GetSize()
	if err != nil || size.Width <= 0 || size.Height <= 0 {
		return fallbackColumns, fallbackRows
	}
	return size.Width, size.Height
}
