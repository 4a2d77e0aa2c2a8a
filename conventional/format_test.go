package conventional

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/git-log-pretty/tui/theme"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func themeWithProfile(p termenv.Profile) *theme.Theme {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(p))
	return theme.New(theme.Dark, theme.WithRenderer(r))
}

func TestFormatSummaryStyled(t *testing.T) {
	th := themeWithProfile(termenv.TrueColor)
	out := FormatSummary("feat(cli): add flag", DefaultRegexp, th)

	assert.Contains(t, out, "feat")
	assert.Contains(t, out, "cli")
	assert.Contains(t, out, "add flag")

	bg := theme.ForLabel("feat", true)
	assert.Contains(t, out, fmt.Sprintf("48;2;%d;%d;%d", bg.R, bg.G, bg.B), "type carries a background")
	assert.Contains(t, out, th.Scope.Render("cli"), "scope carries the muted foreground")
}

func TestFormatSummaryLayout(t *testing.T) {
	th := themeWithProfile(termenv.Ascii)

	assert.Equal(t, "feat cli add flag", FormatSummary("feat(cli): add flag", DefaultRegexp, th))
	assert.Equal(t, "fix handle nil", FormatSummary("fix: handle nil", DefaultRegexp, th))
}

func TestFormatSummaryPassthrough(t *testing.T) {
	th := themeWithProfile(termenv.TrueColor)
	assert.Equal(t, "no convention here", FormatSummary("no convention here", DefaultRegexp, th))
	assert.Equal(t, "Merge branch 'main'", FormatSummary("Merge branch 'main'", DefaultRegexp, th))
}

func TestFormatSummarySameTypeSameColor(t *testing.T) {
	th := themeWithProfile(termenv.TrueColor)
	a := FormatSummary("feat: one", DefaultRegexp, th)
	b := FormatSummary("feat: two", DefaultRegexp, th)
	assert.Equal(t, a[:len(a)-len(" one")], b[:len(b)-len(" two")])
}

func TestFormatSummaryMatchesRawInput(t *testing.T) {
	th := themeWithProfile(termenv.Ascii)

	tests := []struct {
		name    string
		summary string
		want    string
	}{
		{"second line is not matched", "feat: a\nsecond line", "feat: a\nsecond line"},
		{"leading spaces", "  feat: x", "  feat: x"},
		{"trailing spaces kept", "feat: trailing  ", "feat trailing  "},
		{"description spacing kept", "fix:  two spaces", "fix  two spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSummary(tt.summary, DefaultRegexp, th))
		})
	}
}
