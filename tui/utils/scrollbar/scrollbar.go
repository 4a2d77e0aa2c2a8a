package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const (
	thumbChar = "█"
	trackChar = "░"
)

// Generate creates scrollbar characters based on viewport position.
// Returns one rendered cell for each of height lines.
func Generate(vp *viewport.Model, height int, style lipgloss.Style) []string {
	if height <= 0 {
		return []string{}
	}

	scrollbar := make([]string, height)

	totalLines := vp.TotalLineCount()
	if totalLines == 0 {
		for i := 0; i < height; i++ {
			scrollbar[i] = " "
		}
		return scrollbar
	}

	// If content fits entirely in view, show all thumb
	if totalLines <= vp.Height {
		for i := 0; i < height; i++ {
			scrollbar[i] = style.Render(thumbChar)
		}
		return scrollbar
	}

	// Thumb size is proportional to the visible share of the content
	thumbSize := max(1, (height*vp.Height)/totalLines)

	scrollPercent := vp.ScrollPercent()
	if scrollPercent < 0 {
		scrollPercent = 0
	}
	if scrollPercent > 1 {
		scrollPercent = 1
	}

	maxThumbStart := height - thumbSize
	thumbStart := int(float64(maxThumbStart)*scrollPercent + 0.5)
	if thumbStart < 0 {
		thumbStart = 0
	}
	if thumbStart > maxThumbStart {
		thumbStart = maxThumbStart
	}

	for i := 0; i < height; i++ {
		if i >= thumbStart && i < thumbStart+thumbSize {
			scrollbar[i] = style.Render(thumbChar)
		} else {
			scrollbar[i] = style.Render(trackChar)
		}
	}

	return scrollbar
}

// Overlay appends a scrollbar cell to each visible line of vp.
func Overlay(vp *viewport.Model, style lipgloss.Style) string {
	lines := strings.Split(vp.View(), "\n")
	scrollbar := Generate(vp, len(lines), style)

	for i := range lines {
		cell := " "
		if i < len(scrollbar) {
			cell = scrollbar[i]
		}
		lines[i] += cell
	}

	return strings.Join(lines, "\n")
}
