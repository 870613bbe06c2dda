// Package asciicam renders a live camera feed as colorized text glyphs
// directly in a terminal, refreshing in place to approximate video.
//
// # Quick Start
//
// Open the camera, put stdin into raw mode, and run the loop:
//
//	source, err := asciicam.OpenCamera(asciicam.CameraOptions{})
//	if err != nil {
//	    // camera unavailable
//	}
//
//	restore, err := asciicam.RawMode(os.Stdin)
//	if err != nil {
//	    source.Close()
//	    return err
//	}
//	defer restore()
//
//	loop, err := asciicam.NewLoop(asciicam.Config{
//	    Source: source,
//	    Ramp:   asciicam.DefaultRamp,
//	    Scheme: asciicam.DefaultScheme(),
//	    Screen: asciicam.NewScreen(os.Stdout),
//	    Keys:   asciicam.NewKeyPoller(os.Stdin),
//	})
//	if err != nil {
//	    return err
//	}
//	return loop.Run()
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [GlyphRamp]: ordered characters representing increasing brightness
//   - [ColorScheme]: a named 256-color palette (or none, for monochrome)
//   - [Converter]: turns one frame into a string of glyphs and color escapes
//   - [FrameSource]: an opaque stream of camera frames
//   - [Screen]: the terminal output surface (cursor, clearing, flushing)
//   - [KeyPoller]: non-blocking single-keypress checks
//   - [Loop]: the steady-state driver tying the above together
//
// # Conversion
//
// Each frame is reduced to luminance, histogram-equalized so quantization
// uses the full dynamic range regardless of ambient lighting, downsampled
// with a box filter to the terminal width (terminal cells are roughly
// twice as tall as wide, corrected by a 0.5 aspect factor), and mapped
// cell by cell onto the glyph ramp. With a colored scheme, brightness is
// independently quantized into the palette and color escapes are emitted
// only when the color changes along a row.
//
// # Terminal handling
//
// The loop re-reads the terminal size every tick, so resizing the window
// takes effect on the next frame. Raw input mode is acquired through
// [RawMode], which returns a restore function that must run on every exit
// path. Quit with q, Q, or Esc; SIGINT is treated as a normal stop.
package asciicam
