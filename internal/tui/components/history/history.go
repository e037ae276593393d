package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hedaya/internal/tracker"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	onPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	offPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	graceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type Model struct {
	viewport viewport.Model
	entries  []tracker.DayEntry
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return "No history yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetEntries(entries []tracker.DayEntry) {
	m.entries = entries
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	for _, e := range m.entries {
		status := offPathStyle.Render("off the path")
		if e.OnPath {
			status = onPathStyle.Render("on the path")
		}
		if e.Log.UsedGraceDay {
			status += " " + graceStyle.Render("(grace)")
		}
		fmt.Fprintf(&b, "%s %s  %d/5 prayers\n",
			dateStyle.Render(e.Log.DateKey), status, len(e.Log.PrayersCompleted))
	}
	m.viewport.SetContent(b.String())
}
