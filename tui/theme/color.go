package theme

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// White is the fallback for colors that cannot be parsed.
var White = Color{R: 255, G: 255, B: 255}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lipgloss converts the color for use in a lipgloss style.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Darken blends the color toward black in Lab space by amount (0..1).
func (c Color) Darken(amount float64) Color {
	r, g, b := c.colorful().BlendLab(colorful.Color{}, amount).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// truncated converts each channel with truncation rather than rounding.
func truncated(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255)}
}

// ForLabel derives a stable background color for a label. Dark backgrounds
// get muted colors so overlaid light text stays legible; light backgrounds
// get more vibrant ones.
func ForLabel(text string, dark bool) Color {
	h := fnv.New64a()
	h.Write([]byte(text))
	hue := float64(h.Sum64() % 360)

	saturation, value := 0.7, 0.8
	if dark {
		saturation, value = 0.5, 0.5
	}
	return truncated(colorful.Hsv(hue, saturation, value))
}

// FromHex parses "#rrggbb" or "rrggbb". Anything else yields White.
func FromHex(hex string) Color {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 || strings.Trim(digits, "0123456789abcdefABCDEF") != "" {
		return White
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return White
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}
