package asciicam

import (
	"fmt"

	"github.com/unilibs/uniwidth"
)

// GlyphRamp is an ordered sequence of glyphs from darkest to brightest.
// Brightness is mapped onto the ramp by index, so ordering is the only
// invariant; duplicate glyphs are allowed.
type GlyphRamp []rune

// DefaultRamp is a 70-glyph ramp covering the printable ASCII density range.
var DefaultRamp = GlyphRamp(" .'`^\",:;Il!i><~+_-?][}{1)(|\\/*tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$")

// NewGlyphRamp builds a ramp from s, darkest glyph first. Every glyph must
// occupy exactly one terminal column; wide runes (CJK, emoji) or zero-width
// runes would desynchronize the rendered grid.
func NewGlyphRamp(s string) (GlyphRamp, error) {
	glyphs := []rune(s)
	if len(glyphs) < 2 {
		return nil, fmt.Errorf("glyph ramp needs at least 2 glyphs, got %d", len(glyphs))
	}
	for _, r := range glyphs {
		if uniwidth.RuneWidth(r) != 1 {
			return nil, fmt.Errorf("glyph %q is not a single-column character", r)
		}
	}
	return GlyphRamp(glyphs), nil
}

// Glyph returns the glyph for a normalized brightness in [0, 1].
// The index is floor(normalized * (len-1)), clamped to the ramp bounds.
func (g GlyphRamp) Glyph(normalized float64) rune {
	i := int(normalized * float64(len(g)-1))
	if i < 0 {
		i = 0
	}
	if i > len(g)-1 {
		i = len(g) - 1
	}
	return g[i]
}
