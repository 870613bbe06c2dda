package asciicam

import (
	"errors"
	"fmt"
	"image"
	"io"
	"runtime"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrDeviceUnavailable reports that the capture device could not be opened.
var ErrDeviceUnavailable = errors.New("capture device unavailable")

// FrameSource is an opaque stream of camera frames. Read blocks until a
// frame is available; any error is terminal for the session (a webcam
// disconnect is not expected to self-heal within a single run).
type FrameSource interface {
	Read() (image.Image, error)
	Close() error
}

// CameraOptions configures OpenCamera. Zero values select the platform
// default device and a 640x480 capture size.
type CameraOptions struct {
	// Device is the capture device name understood by the platform input
	// format ("/dev/video0" on linux, "0" on darwin, "video=0" on windows).
	Device string

	// InputFormat overrides the ffmpeg input format (v4l2, avfoundation,
	// dshow). Mostly useful for tests and unusual setups.
	InputFormat string

	// Width and Height set the capture size. The raw pipe has no frame
	// headers, so the size is fixed for the lifetime of the source.
	Width  int
	Height int
}

func (o CameraOptions) withDefaults() CameraOptions {
	if o.InputFormat == "" {
		o.InputFormat = defaultInputFormat(runtime.GOOS)
	}
	if o.Device == "" {
		o.Device = defaultDevice(runtime.GOOS)
	}
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	return o
}

func defaultInputFormat(goos string) string {
	switch goos {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	default:
		return "v4l2"
	}
}

func defaultDevice(goos string) string {
	switch goos {
	case "darwin":
		return "0"
	case "windows":
		return "video=0"
	default:
		return "/dev/video0"
	}
}

// FFmpegSource streams rawvideo rgb24 frames from the system camera
// through an ffmpeg child process.
type FFmpegSource struct {
	width  int
	height int
	pipe   *io.PipeReader
	buf    []byte
	first  image.Image

	closeOnce sync.Once
	closeErr  error
}

var _ FrameSource = (*FFmpegSource)(nil)

// OpenCamera starts an ffmpeg capture process and reads the first frame
// eagerly, so an unreachable camera fails here rather than mid-session.
// Failures wrap [ErrDeviceUnavailable].
func OpenCamera(opts CameraOptions) (*FFmpegSource, error) {
	opts = opts.withDefaults()

	pr, pw := io.Pipe()
	stream := ffmpeg.Input(opts.Device, ffmpeg.KwArgs{
		"f":          opts.InputFormat,
		"video_size": fmt.Sprintf("%dx%d", opts.Width, opts.Height),
	}).Output("pipe:", ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgb24",
	}).WithOutput(pw, io.Discard)

	go func() {
		// When the read side closes, the stdout copy fails and ffmpeg
		// exits on the broken pipe; Run returning unblocks any reader.
		pw.CloseWithError(stream.Run())
	}()

	s := &FFmpegSource{
		width:  opts.Width,
		height: opts.Height,
		pipe:   pr,
		buf:    make([]byte, opts.Width*opts.Height*3),
	}

	frame, err := s.readFrame()
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	s.first = frame
	return s, nil
}

// Read returns the next frame from the camera.
func (s *FFmpegSource) Read() (image.Image, error) {
	if s.first != nil {
		frame := s.first
		s.first = nil
		return frame, nil
	}
	return s.readFrame()
}

func (s *FFmpegSource) readFrame() (image.Image, error) {
	if _, err := io.ReadFull(s.pipe, s.buf); err != nil {
		return nil, fmt.Errorf("reading frame: %w", err)
	}
	return decodeRGB24(s.buf, s.width, s.height), nil
}

// Close terminates the capture process. Safe to call more than once.
func (s *FFmpegSource) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.pipe.Close()
	})
	return s.closeErr
}

// decodeRGB24 expands packed rgb24 pixel data into an NRGBA image.
func decodeRGB24(buf []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	si := 0
	for di := 0; di < len(img.Pix); di += 4 {
		img.Pix[di+0] = buf[si+0]
		img.Pix[di+1] = buf[si+1]
		img.Pix[di+2] = buf[si+2]
		img.Pix[di+3] = 0xff
		si += 3
	}
	return img
}
