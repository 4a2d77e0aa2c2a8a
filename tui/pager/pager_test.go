package pager

import (
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/git-log-pretty/tui/theme"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n") + "\n"
}

func sized(t *testing.T, content string, width, height int) Model {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	m := New("git-log-pretty", content, theme.New(theme.Dark, theme.WithRenderer(r)))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestViewBeforeSize(t *testing.T) {
	m := New("x", "content", theme.DefaultTheme)
	assert.Equal(t, "Loading...", m.View())
}

func TestScrolling(t *testing.T) {
	m := sized(t, numbered(50), 40, 11) // ten content lines

	assert.Equal(t, 0, m.viewport.YOffset)
	m = press(t, m, "j", "j")
	assert.Equal(t, 2, m.viewport.YOffset)
	m = press(t, m, "k")
	assert.Equal(t, 1, m.viewport.YOffset)
	m = press(t, m, "f")
	assert.Equal(t, 11, m.viewport.YOffset)
	m = press(t, m, "d")
	assert.Equal(t, 16, m.viewport.YOffset)
	m = press(t, m, "G")
	assert.Equal(t, 40, m.viewport.YOffset)
	m = press(t, m, "j")
	assert.Equal(t, 40, m.viewport.YOffset, "scrolling stops at the end")
	m = press(t, m, "g")
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestViewShowsContentAndStatus(t *testing.T) {
	m := sized(t, numbered(50), 120, 6)

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "line 1"))
	assert.Contains(t, lines[5], "git-log-pretty 5/50")
	assert.Contains(t, lines[5], "quit")
}

func TestContentMsgKeepsOffset(t *testing.T) {
	m := sized(t, numbered(50), 40, 11)
	m = press(t, m, "f")

	updated, _ := m.Update(ContentMsg(numbered(60)))
	m = updated.(Model)
	assert.Equal(t, 10, m.viewport.YOffset)
	assert.Equal(t, 60, m.viewport.TotalLineCount())
}

func TestQuit(t *testing.T) {
	m := sized(t, "x", 20, 5)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}
