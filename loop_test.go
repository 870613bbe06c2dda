package asciicam

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"
	"time"
)

// fakeSource serves a fixed frame and optionally fails after a number of
// successful reads.
type fakeSource struct {
	frame     image.Image
	failAfter int // fail once reads reaches this count; <0 never fails
	reads     int
	closed    int
}

func (s *fakeSource) Read() (image.Image, error) {
	if s.failAfter >= 0 && s.reads >= s.failAfter {
		return nil, errors.New("device disconnected")
	}
	s.reads++
	return s.frame, nil
}

func (s *fakeSource) Close() error {
	s.closed++
	return nil
}

// fakePoller replays a scripted key per call, then reports no input.
type fakePoller struct {
	script []rune // 0 means "no key pending this tick"
	calls  int
}

func (p *fakePoller) Poll() (rune, bool) {
	if p.calls >= len(p.script) {
		return 0, false
	}
	key := p.script[p.calls]
	p.calls++
	if key == 0 {
		return 0, false
	}
	return key, true
}

func testLoop(t *testing.T, source *fakeSource, poller *fakePoller) (*Loop, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var screen, diag bytes.Buffer
	loop, err := NewLoop(Config{
		Source:       source,
		Ramp:         DefaultRamp,
		Scheme:       DefaultScheme(),
		Screen:       NewScreen(&screen),
		Keys:         poller,
		Interval:     time.Millisecond,
		GeometryFunc: func() (int, int) { return 80, 24 },
		Diagnostics:  &diag,
	})
	if err != nil {
		t.Fatal(err)
	}
	return loop, &screen, &diag
}

func TestNewLoopValidation(t *testing.T) {
	source := &fakeSource{frame: uniformFrame(10, 10, 128), failAfter: -1}
	screen := NewScreen(&bytes.Buffer{})
	keys := &fakePoller{}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing source", Config{Screen: screen, Keys: keys}},
		{"missing screen", Config{Source: source, Keys: keys}},
		{"missing keys", Config{Source: source, Screen: screen}},
	}

	for _, tt := range tests {
		if _, err := NewLoop(tt.cfg); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestLoopStatesAndQuitKey(t *testing.T) {
	source := &fakeSource{frame: uniformFrame(100, 50, 128), failAfter: -1}
	poller := &fakePoller{script: []rune{'q'}}
	loop, screen, _ := testLoop(t, source, poller)

	if loop.State() != StateWaitingPermission {
		t.Fatalf("initial state = %v, want StateWaitingPermission", loop.State())
	}

	if err := loop.Run(); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if loop.State() != StateStopped {
		t.Errorf("final state = %v, want StateStopped", loop.State())
	}
	if source.reads != 1 {
		t.Errorf("source read %d times, want 1 (quit on first tick)", source.reads)
	}
	if source.closed != 1 {
		t.Errorf("source closed %d times, want exactly 1", source.closed)
	}

	out := screen.String()
	if !strings.Contains(out, escHideCursor) || !strings.Contains(out, escShowCursor) {
		t.Error("loop must hide the cursor on entry and restore it on exit")
	}
	if !strings.Contains(out, "Monochrome") {
		t.Error("status banner does not name the active scheme")
	}
}

func TestLoopQuitKeys(t *testing.T) {
	for _, key := range []rune{'q', 'Q', 0x1b} {
		source := &fakeSource{frame: uniformFrame(100, 50, 128), failAfter: -1}
		poller := &fakePoller{script: []rune{key}}
		loop, _, _ := testLoop(t, source, poller)

		if err := loop.Run(); err != nil {
			t.Fatalf("key %q: Run returned %v", key, err)
		}
		if source.reads != 1 {
			t.Errorf("key %q: loop did not stop on first tick", key)
		}
	}
}

func TestLoopIgnoresOtherKeys(t *testing.T) {
	source := &fakeSource{frame: uniformFrame(100, 50, 128), failAfter: -1}
	poller := &fakePoller{script: []rune{'a', 0, 'q'}}
	loop, _, _ := testLoop(t, source, poller)

	if err := loop.Run(); err != nil {
		t.Fatal(err)
	}
	if source.reads != 3 {
		t.Errorf("source read %d times, want 3 (two non-quit ticks, then q)", source.reads)
	}
}

func TestLoopCaptureFailure(t *testing.T) {
	source := &fakeSource{frame: uniformFrame(100, 50, 128), failAfter: 2}
	poller := &fakePoller{}
	loop, screen, diag := testLoop(t, source, poller)

	// A mid-session capture failure ends the session without an error:
	// the session did occur, and cleanup still runs.
	if err := loop.Run(); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if loop.State() != StateStopped {
		t.Errorf("final state = %v, want StateStopped", loop.State())
	}
	if !strings.Contains(diag.String(), "capture failed") {
		t.Errorf("diagnostics = %q, want a single capture failure report", diag.String())
	}
	if source.closed != 1 {
		t.Errorf("source closed %d times, want exactly 1", source.closed)
	}
	if !strings.Contains(screen.String(), escShowCursor) {
		t.Error("cursor not restored after capture failure")
	}
}

func TestLoopRendersAtTerminalWidth(t *testing.T) {
	source := &fakeSource{frame: uniformFrame(100, 50, 128), failAfter: -1}
	poller := &fakePoller{script: []rune{'q'}}

	var screen bytes.Buffer
	loop, err := NewLoop(Config{
		Source:       source,
		Scheme:       DefaultScheme(),
		Screen:       NewScreen(&screen),
		Keys:         poller,
		Interval:     time.Millisecond,
		GeometryFunc: func() (int, int) { return 41, 24 },
		Diagnostics:  &bytes.Buffer{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := loop.Run(); err != nil {
		t.Fatal(err)
	}

	// 41 columns reserve one, so rows are 40 identical glyphs.
	want := strings.Repeat(string(DefaultRamp.Glyph(128.0/255)), 40)
	if !strings.Contains(screen.String(), want) {
		t.Error("rendered output does not contain a full-width uniform row")
	}
}

func TestAsciiWidth(t *testing.T) {
	tests := []struct {
		columns  int
		expected int
	}{
		{10, 20}, // narrow terminals clamp up to the floor
		{0, 20},
		{20, 20},
		{21, 20},
		{22, 21},
		{120, 119},
	}

	for _, tt := range tests {
		if got := asciiWidth(tt.columns); got != tt.expected {
			t.Errorf("asciiWidth(%d) = %d, want %d", tt.columns, got, tt.expected)
		}
	}
}
