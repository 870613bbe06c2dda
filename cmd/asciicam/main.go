package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	asciicam "github.com/danielgatis/go-ascii-cam"
)

var (
	flagDevice string
	flagFormat string
	flagScheme string
	flagSize   string
	flagYes    bool
	flagList   bool
)

var rootCmd = &cobra.Command{
	Use:           "asciicam",
	Short:         "Render your webcam as colorized ASCII art in the terminal",
	Long:          "asciicam streams the system camera into the terminal as text glyphs,\ntinted by one of a few built-in color schemes. Quit with q or Esc.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDevice, "device", "", "capture device (default: platform camera 0)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "", "ffmpeg input format (default: platform native)")
	rootCmd.Flags().StringVar(&flagScheme, "scheme", "", "color scheme name, skips the interactive menu")
	rootCmd.Flags().StringVar(&flagSize, "size", "640x480", "capture size as WIDTHxHEIGHT")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the camera permission prompt")
	rootCmd.Flags().BoolVar(&flagList, "list-schemes", false, "list the built-in color schemes and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "asciicam: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagList {
		for _, s := range asciicam.Schemes() {
			if s.Monochrome() {
				fmt.Printf("%s (no color)\n", s.Name)
			} else {
				fmt.Printf("%s (%d colors)\n", s.Name, len(s.Palette))
			}
		}
		return nil
	}

	stdin := bufio.NewReader(os.Stdin)

	// Declining camera access is a normal early exit, not an error.
	if !flagYes && !requestPermission(stdin, os.Stdout) {
		fmt.Println("Camera access declined.")
		return nil
	}

	scheme, err := resolveScheme(stdin, os.Stdout)
	if err != nil {
		return err
	}

	width, height, err := parseSize(flagSize)
	if err != nil {
		return err
	}

	source, err := asciicam.OpenCamera(asciicam.CameraOptions{
		Device:      flagDevice,
		InputFormat: flagFormat,
		Width:       width,
		Height:      height,
	})
	if err != nil {
		// Camera unavailable at startup is the one exit code 1 path.
		fmt.Fprintf(os.Stderr, "asciicam: %v\n", err)
		os.Exit(1)
	}

	restore, err := asciicam.RawMode(os.Stdin)
	if err != nil {
		source.Close()
		return err
	}
	defer restore()

	loop, err := asciicam.NewLoop(asciicam.Config{
		Source: source,
		Ramp:   asciicam.DefaultRamp,
		Scheme: scheme,
		Screen: asciicam.NewScreen(os.Stdout),
		Keys:   asciicam.NewKeyPoller(os.Stdin),
	})
	if err != nil {
		source.Close()
		return err
	}
	return loop.Run()
}

// requestPermission asks for camera access. EOF or anything but an
// affirmative answer counts as declined.
func requestPermission(in *bufio.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Allow webcam access for the ASCII stream? [y/N]: ")
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// resolveScheme honors --scheme when given, otherwise shows the menu.
func resolveScheme(in *bufio.Reader, out io.Writer) (asciicam.ColorScheme, error) {
	if flagScheme != "" {
		scheme, ok := asciicam.SchemeByName(flagScheme)
		if !ok {
			return asciicam.ColorScheme{}, fmt.Errorf("unknown color scheme %q (try --list-schemes)", flagScheme)
		}
		return scheme, nil
	}
	return chooseScheme(in, out), nil
}

// chooseScheme runs the numbered menu. EOF or repeated bad input falls
// back to the default scheme.
func chooseScheme(in *bufio.Reader, out io.Writer) asciicam.ColorScheme {
	schemes := asciicam.Schemes()

	fmt.Fprintln(out, "Choose a color scheme for the ASCII stream:")
	for i, s := range schemes {
		marker := ""
		if i == 0 {
			marker = " (default)"
		}
		fmt.Fprintf(out, "  %d. %s%s\n", i+1, s.Name, marker)
	}

	for {
		fmt.Fprint(out, "Your choice [1]: ")
		line, err := in.ReadString('\n')
		choice := strings.TrimSpace(line)
		if choice == "" {
			return schemes[0]
		}
		for i := range schemes {
			if choice == fmt.Sprintf("%d", i+1) {
				return schemes[i]
			}
		}
		if err != nil {
			return schemes[0]
		}
		fmt.Fprintln(out, "Please enter one of the listed numbers.")
	}
}

// parseSize parses a WIDTHxHEIGHT string such as "640x480".
func parseSize(s string) (width, height int, err error) {
	if _, err := fmt.Sscanf(s, "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("invalid --size %q, want WIDTHxHEIGHT", s)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid --size %q, dimensions must be positive", s)
	}
	return width, height, nil
}
