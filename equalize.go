package asciicam

import (
	"image"
	"math"
)

// equalize applies histogram equalization to img in place, stretching
// pixel intensities across the full 0-255 range. Raw camera luminance is
// frequently concentrated in a narrow band; without equalization most
// pixels would collapse into a few glyphs.
//
// A frame whose pixels all share one value is left unchanged (there is
// nothing to stretch), so a uniform frame stays uniform.
func equalize(img *image.Gray) {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return
	}

	var hist [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			hist[row[x]]++
		}
	}

	first := 0
	for hist[first] == 0 {
		first++
	}
	if hist[first] == total {
		return
	}

	// Remap each value through the cumulative distribution, anchored at
	// the darkest occupied bin so the output spans the full range.
	var lut [256]uint8
	cdfMin := hist[first]
	cum := 0
	scale := 255.0 / float64(total-cdfMin)
	for i := 0; i < 256; i++ {
		cum += hist[i]
		if cum <= cdfMin {
			lut[i] = 0
			continue
		}
		lut[i] = uint8(math.Round(float64(cum-cdfMin) * scale))
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			row[x] = lut[row[x]]
		}
	}
}
