package asciicam

import (
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// charAspect corrects for terminal character cells being roughly twice as
// tall as wide; without it the rendered image is vertically stretched.
const charAspect = 0.5

// Converter turns raw frames into text grids. The ramp and scheme are
// fixed for the converter's lifetime, so identical (frame, width) inputs
// always produce byte-identical output.
type Converter struct {
	Ramp   GlyphRamp
	Scheme ColorScheme
}

// NewConverter returns a converter rendering with the given ramp and scheme.
func NewConverter(ramp GlyphRamp, scheme ColorScheme) *Converter {
	return &Converter{Ramp: ramp, Scheme: scheme}
}

// targetHeight computes the cell-grid height preserving the frame's aspect
// ratio under the character-cell correction. Never returns less than 1.
func targetHeight(srcWidth, srcHeight, width int) int {
	h := int(math.Round(float64(srcHeight) / float64(srcWidth) * float64(width) * charAspect))
	if h < 1 {
		h = 1
	}
	return h
}

// Convert renders one frame as newline-joined rows of glyphs, interleaved
// with 256-color escapes when the scheme has a palette. A degenerate frame
// (zero width or height) yields an empty string: there is nothing to draw
// this tick, not an error.
func (c *Converter) Convert(frame image.Image, width int) string {
	if frame == nil || width <= 0 {
		return ""
	}
	b := frame.Bounds()
	srcWidth, srcHeight := b.Dx(), b.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return ""
	}

	gray := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	xdraw.Copy(gray, image.Point{}, frame, b, xdraw.Src, nil)
	equalize(gray)

	height := targetHeight(srcWidth, srcHeight, width)

	// Box filtering averages every source pixel that maps to a cell;
	// nearest-neighbor would alias badly at these reduction factors.
	cells := imaging.Resize(gray, width, height, imaging.Box)

	var sb strings.Builder
	sb.Grow(height * (width + 16))

	mono := c.Scheme.Monochrome()
	paletteMax := 0.0
	if !mono {
		paletteMax = float64(len(c.Scheme.Palette) - 1)
	}

	for y := 0; y < height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		last := -1
		for x := 0; x < width; x++ {
			// Resize output is NRGBA; the source was gray, so any
			// channel carries the luminance.
			normalized := float64(cells.Pix[y*cells.Stride+x*4]) / 255

			if !mono {
				// Color bands are quantized independently of the
				// glyph ramp; a switch escape is emitted only when
				// the color changes from the previous cell.
				code := int(c.Scheme.Palette[int(normalized*paletteMax)])
				if code != last {
					sb.WriteString(fgColor(uint8(code)))
					last = code
				}
			}

			sb.WriteRune(c.Ramp.Glyph(normalized))
		}
		if last >= 0 {
			sb.WriteString(escReset)
		}
	}

	return sb.String()
}
