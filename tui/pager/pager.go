// Package pager shows long output in a scrollable full-screen viewport.
package pager

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/git-log-pretty/tui/theme"
	"github.com/grovetools/git-log-pretty/tui/utils/scrollbar"
)

// ContentMsg replaces the pager content, keeping the scroll position
// where possible. Watch mode sends one per refresh.
type ContentMsg string

// Model is the bubbletea model of the pager.
type Model struct {
	viewport viewport.Model
	help     help.Model
	keys     KeyMap
	theme    *theme.Theme
	title    string
	content  string
	ready    bool
}

// New creates a pager for content.
func New(title, content string, t *theme.Theme) Model {
	return Model{
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		theme:    t,
		title:    title,
		content:  strings.TrimRight(content, "\n"),
	}
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// One line for the status bar and one for the scrollbar column.
		m.viewport.Width = max(1, msg.Width-1)
		m.viewport.Height = max(1, msg.Height-1)
		m.help.Width = msg.Width
		if !m.ready {
			m.viewport.SetContent(m.content)
			m.ready = true
		}
		return m, nil

	case ContentMsg:
		m.content = strings.TrimRight(string(msg), "\n")
		offset := m.viewport.YOffset
		m.viewport.SetContent(m.content)
		m.viewport.SetYOffset(offset)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.scroll(-1)
		case key.Matches(msg, m.keys.Down):
			m.scroll(1)
		case key.Matches(msg, m.keys.PageUp):
			m.scroll(-m.viewport.Height)
		case key.Matches(msg, m.keys.PageDown):
			m.scroll(m.viewport.Height)
		case key.Matches(msg, m.keys.HalfPageUp):
			m.scroll(-max(1, m.viewport.Height/2))
		case key.Matches(msg, m.keys.HalfPageDown):
			m.scroll(max(1, m.viewport.Height/2))
		case key.Matches(msg, m.keys.GotoTop):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.GotoEnd):
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// scroll moves the view by delta lines; SetYOffset clamps to the content.
func (m *Model) scroll(delta int) {
	m.viewport.SetYOffset(m.viewport.YOffset + delta)
}

// View renders the viewport with its scrollbar and a status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return scrollbar.Overlay(&m.viewport, m.theme.Muted) + "\n" + m.statusBar()
}

func (m Model) statusBar() string {
	position := fmt.Sprintf("%d/%d", min(m.viewport.YOffset+m.viewport.Height, m.viewport.TotalLineCount()), m.viewport.TotalLineCount())
	left := m.theme.Accent.Render(m.title) + " " + m.theme.Muted.Render(position)
	return left + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

// Run shows content until the user quits or ctx is cancelled. Each string
// received from updates replaces the content.
func Run(ctx context.Context, m Model, updates <-chan string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	done := make(chan struct{})
	defer close(done)
	if updates != nil {
		go func() {
			for {
				select {
				case <-done:
					return
				case content, ok := <-updates:
					if !ok {
						return
					}
					p.Send(ContentMsg(content))
				}
			}
		}()
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
