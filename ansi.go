package asciicam

import "strconv"

// The renderer emits plain VT100/ANSI sequences so output works on any
// terminal that supports 256 colors, without a terminfo dependency.
const (
	escClearScreen = "\x1b[2J"
	escClearLine   = "\x1b[0K"
	escClearBelow  = "\x1b[J"
	escCursorHome  = "\x1b[H"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escBold        = "\x1b[1m"
	escReset       = "\x1b[0m"
)

// fgColor returns the escape sequence selecting a 256-color foreground.
func fgColor(code uint8) string {
	return "\x1b[38;5;" + strconv.Itoa(int(code)) + "m"
}
