package asciicam

import "strings"

// ColorScheme is a named, ordered palette of 256-color terminal codes used
// to tint glyphs by brightness band. A nil palette means monochrome: no
// color escapes are emitted at all.
type ColorScheme struct {
	Name    string
	Palette []uint8
}

// Monochrome reports whether the scheme emits no color escapes.
func (s ColorScheme) Monochrome() bool {
	return len(s.Palette) == 0
}

// builtinSchemes is the closed set offered to the user, in menu order.
// The first entry is the default.
var builtinSchemes = []ColorScheme{
	{Name: "Monochrome"},
	{Name: "Warm Sunset", Palette: []uint8{52, 88, 124, 160, 166, 172, 178, 184, 220, 226}},
	{Name: "Neon Rainbow", Palette: []uint8{21, 27, 33, 39, 45, 51, 93, 129, 165, 201, 198, 214, 220}},
	{Name: "Emerald Glow", Palette: []uint8{22, 28, 34, 40, 46, 82, 118, 154, 190, 226}},
}

// Schemes returns the built-in color schemes in menu order.
func Schemes() []ColorScheme {
	out := make([]ColorScheme, len(builtinSchemes))
	copy(out, builtinSchemes)
	return out
}

// DefaultScheme returns the scheme used when the user makes no choice.
func DefaultScheme() ColorScheme {
	return builtinSchemes[0]
}

// SchemeByName looks up a built-in scheme, ignoring case.
func SchemeByName(name string) (ColorScheme, bool) {
	for _, s := range builtinSchemes {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return ColorScheme{}, false
}
