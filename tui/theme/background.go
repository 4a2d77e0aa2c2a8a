package theme

import (
	"errors"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ErrNotTerminal is returned when the probed file is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// LumaProber reports the perceived brightness of the terminal background
// in the range 0..1.
type LumaProber interface {
	Luma() (float64, error)
}

// TerminalProber queries the terminal attached to a file for its
// background color.
type TerminalProber struct {
	file *os.File
}

// NewTerminalProber creates a prober for f (usually os.Stdout).
func NewTerminalProber(f *os.File) *TerminalProber {
	return &TerminalProber{file: f}
}

// Luma implements LumaProber.
func (p *TerminalProber) Luma() (float64, error) {
	fd := p.file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return 0, ErrNotTerminal
	}
	bg := termenv.NewOutput(p.file).BackgroundColor()
	if bg == nil {
		return 0, errors.New("terminal did not report a background color")
	}
	return Luma(termenv.ConvertToRGB(bg)), nil
}

// Luma computes Rec. 709 relative luminance of c.
func Luma(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// DetectMode picks Light for bright backgrounds and Dark otherwise,
// including when probing fails.
func DetectMode(p LumaProber) Mode {
	luma, err := p.Luma()
	if err != nil || luma <= 0.5 {
		return Dark
	}
	return Light
}

// ResolveMode applies a theme setting: "dark" and "light" force the mode,
// "auto" or "" probes the terminal. ok is false for unknown settings.
func ResolveMode(setting string, p LumaProber) (mode Mode, ok bool) {
	if setting == "" || setting == "auto" {
		return DetectMode(p), true
	}
	return ParseMode(setting)
}
