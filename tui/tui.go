// Package tui holds terminal setup shared by the interactive views.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI adjusts the lipgloss color profile from the environment
// before anything is rendered. NO_COLOR disables styling; CLICOLOR_FORCE=1
// or COLORTERM=truecolor force full color even when stdout is piped.
func InitializeTUI() {
	if profile, ok := forcedProfile(os.Getenv); ok {
		lipgloss.SetColorProfile(profile)
	}
}

func forcedProfile(getenv func(string) string) (termenv.Profile, bool) {
	switch {
	case getenv("NO_COLOR") != "":
		return termenv.Ascii, true
	case getenv("CLICOLOR_FORCE") == "1" || getenv("COLORTERM") == "truecolor":
		return termenv.TrueColor, true
	}
	return termenv.Ascii, false
}
