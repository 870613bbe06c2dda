package asciicam

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/disintegration/imaging"
)

// State is the render loop lifecycle state.
type State int

const (
	// StateWaitingPermission is the initial state, before the user has
	// granted camera access and picked a scheme.
	StateWaitingPermission State = iota
	// StateRunning means the loop is ticking: capture, convert, draw.
	StateRunning
	// StateStopped is terminal; cleanup has run.
	StateStopped
)

// defaultTick caps the refresh rate so the loop does not peg a CPU core.
// It is a frame-rate cap, not a correctness requirement.
const defaultTick = 20 * time.Millisecond

// minColumns is the narrowest rendering width; anything narrower is
// unreadable, so extremely narrow terminals are clamped up to it.
const minColumns = 20

// Config carries everything the render loop needs. There is no hidden
// global state: the scheme, ramp, and platform input strategy are chosen
// once at startup and passed here.
type Config struct {
	// Source delivers camera frames. Required. The loop closes it when
	// the session ends, whatever the exit path.
	Source FrameSource

	// Ramp and Scheme fix the glyph and color quantization for the
	// whole session.
	Ramp   GlyphRamp
	Scheme ColorScheme

	// Screen is the terminal output surface. Required.
	Screen *Screen

	// Keys polls for the quit key. Required.
	Keys KeyPoller

	// Interval bounds the refresh rate; zero means 20ms.
	Interval time.Duration

	// GeometryFunc overrides the terminal size query, for tests.
	GeometryFunc func() (columns, rows int)

	// Diagnostics receives one-shot failure reports; nil means stderr.
	Diagnostics io.Writer
}

// Loop is the steady-state driver: it pulls frames, converts them, writes
// them to the screen, and watches for a stop request. Single-threaded and
// cooperative: each tick runs to completion, and stop conditions (quit
// key, interrupt) are checked once per tick.
type Loop struct {
	cfg   Config
	conv  *Converter
	state State
}

// NewLoop validates cfg and returns a loop in StateWaitingPermission.
func NewLoop(cfg Config) (*Loop, error) {
	if cfg.Source == nil {
		return nil, errors.New("asciicam: Config.Source is required")
	}
	if cfg.Screen == nil {
		return nil, errors.New("asciicam: Config.Screen is required")
	}
	if cfg.Keys == nil {
		return nil, errors.New("asciicam: Config.Keys is required")
	}
	if len(cfg.Ramp) < 2 {
		cfg.Ramp = DefaultRamp
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultTick
	}
	if cfg.GeometryFunc == nil {
		cfg.GeometryFunc = Geometry
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = os.Stderr
	}
	return &Loop{
		cfg:   cfg,
		conv:  NewConverter(cfg.Ramp, cfg.Scheme),
		state: StateWaitingPermission,
	}, nil
}

// State returns the loop's lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// asciiWidth derives the rendering width from the terminal column count.
// One column is reserved to avoid line-wrap artifacts on terminals that
// treat the last column specially.
func asciiWidth(columns int) int {
	w := columns - 1
	if w < minColumns {
		w = minColumns
	}
	return w
}

// Run drives the loop until the user quits, an interrupt arrives, or the
// capture source fails. Cleanup (release the source, restore cursor and
// attributes) runs exactly once on every exit path. A mid-session capture
// failure is reported once and ends the session without an error: the
// session did occur.
func (l *Loop) Run() error {
	l.state = StateRunning

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer func() {
		signal.Stop(interrupt)
		l.cfg.Source.Close()
		l.cfg.Screen.Leave()
		l.state = StateStopped
	}()

	if err := l.cfg.Screen.Enter(); err != nil {
		return err
	}

	status := fmt.Sprintf("Scheme: %s - press Q or Esc to quit.", l.cfg.Scheme.Name)

	for l.state == StateRunning {
		frame, err := l.cfg.Source.Read()
		if err != nil {
			fmt.Fprintf(l.cfg.Diagnostics, "asciicam: capture failed: %v\n", err)
			break
		}

		// Camera feeds are conventionally shown mirrored, like a mirror.
		mirrored := imaging.FlipH(frame)

		columns, _ := l.cfg.GeometryFunc()
		rendered := l.conv.Convert(mirrored, asciiWidth(columns))

		if err := l.cfg.Screen.Draw(status, rendered); err != nil {
			return err
		}

		if key, ok := l.cfg.Keys.Poll(); ok && isQuitKey(key) {
			break
		}

		select {
		case <-interrupt:
			// Graceful shutdown, same path as the quit key.
			l.state = StateStopped
		default:
		}
		if l.state != StateRunning {
			break
		}

		time.Sleep(l.cfg.Interval)
	}

	return nil
}
