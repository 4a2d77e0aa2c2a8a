package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Mode is the terminal background the output is rendered against.
type Mode int

const (
	Dark Mode = iota
	Light
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// IsDark reports whether the mode targets a dark background.
func (m Mode) IsDark() bool {
	return m == Dark
}

// ParseMode parses "dark" or "light". "auto" is handled by ResolveMode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "dark":
		return Dark, true
	case "light":
		return Light, true
	}
	return Dark, false
}

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen  = "2"
	terminalYellow = "3"
	terminalRed    = "1"
	terminalOrange = "208"
	terminalCyan   = "6"
	terminalBlue   = "4"
	terminalViolet = "5"
	terminalMuted  = "8"
	terminalWhite  = "15"
	treeGray       = "#808080"
)

// Colors encapsulates the palette used by a theme.
type Colors struct {
	Green  lipgloss.TerminalColor
	Yellow lipgloss.TerminalColor
	Red    lipgloss.TerminalColor
	Orange lipgloss.TerminalColor
	Cyan   lipgloss.TerminalColor
	Blue   lipgloss.TerminalColor
	Violet lipgloss.TerminalColor
	// MutedText is used for timestamps, scopes and secondary notes.
	MutedText lipgloss.TerminalColor
	// TreeGray draws tree connectors and directory names.
	TreeGray lipgloss.TerminalColor
	// LeafText is the file name at the end of a tree branch.
	LeafText lipgloss.TerminalColor
}

func newTerminalColors() Colors {
	return Colors{
		Green:     lipgloss.Color(terminalGreen),
		Yellow:    lipgloss.Color(terminalYellow),
		Red:       lipgloss.Color(terminalRed),
		Orange:    lipgloss.Color(terminalOrange),
		Cyan:      lipgloss.Color(terminalCyan),
		Blue:      lipgloss.Color(terminalBlue),
		Violet:    lipgloss.Color(terminalViolet),
		MutedText: lipgloss.Color(terminalMuted),
		TreeGray:  lipgloss.Color(treeGray),
		LeafText:  lipgloss.Color(terminalWhite),
	}
}

// Theme holds the pre-configured styles for one render pass.
type Theme struct {
	Mode   Mode
	Colors Colors

	renderer *lipgloss.Renderer

	// Commit lines
	Hash  lipgloss.Style
	Time  lipgloss.Style
	Scope lipgloss.Style

	// Headers
	Count lipgloss.Style
	Ref   lipgloss.Style

	// Tree
	Tree lipgloss.Style
	Leaf lipgloss.Style

	// Status and text
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Accent  lipgloss.Style
}

// Option customizes a Theme.
type Option func(*Theme)

// WithRenderer binds the theme's styles to r, which decides the color
// profile used when rendering.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(t *Theme) {
		t.renderer = r
	}
}

// DefaultTheme is used by help output and log formatting, where the
// background has not been probed.
var DefaultTheme = New(Dark)

// New builds a theme for the given background mode.
func New(mode Mode, opts ...Option) *Theme {
	t := &Theme{
		Mode:     mode,
		Colors:   newTerminalColors(),
		renderer: lipgloss.DefaultRenderer(),
	}
	for _, opt := range opts {
		opt(t)
	}

	c := t.Colors
	t.Hash = t.NewStyle().Foreground(c.Yellow)
	t.Time = t.NewStyle().Foreground(c.MutedText)
	t.Scope = t.NewStyle().Foreground(c.MutedText)
	t.Count = t.NewStyle().Foreground(c.Cyan)
	t.Ref = t.NewStyle().Foreground(c.Yellow)
	t.Tree = t.NewStyle().Foreground(c.TreeGray)
	t.Leaf = t.NewStyle().Foreground(c.LeafText)
	t.Success = t.NewStyle().Foreground(c.Green)
	t.Error = t.NewStyle().Foreground(c.Red).Bold(true)
	t.Warning = t.NewStyle().Foreground(c.Yellow)
	t.Muted = t.NewStyle().Foreground(c.MutedText)
	t.Italic = t.NewStyle().Italic(true)
	t.Accent = t.NewStyle().Foreground(c.Violet)
	return t
}

// IsDark reports whether the theme targets a dark background.
func (t *Theme) IsDark() bool {
	return t.Mode.IsDark()
}

// NewStyle returns an empty style bound to the theme's renderer.
func (t *Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}

// Foreground returns a style drawing text in c.
func (t *Theme) Foreground(c Color) lipgloss.Style {
	return t.NewStyle().Foreground(c.Lipgloss())
}

// Badge returns the bold, label-colored background style used for commit
// types. The same label always gets the same background.
func (t *Theme) Badge(label string) lipgloss.Style {
	return t.NewStyle().
		Background(ForLabel(label, t.IsDark()).Lipgloss()).
		Bold(true)
}
