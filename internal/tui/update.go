package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hedaya/internal/tui/components/tree"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tree.TapMsg:
		el, err := m.tracker.Tap(msg.ID)
		m.err = err
		if err == nil {
			m.message = fmt.Sprintf("✓ %s", tree.ElementTitle(el))
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Grace):
			m.markGrace()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateTree:
		m.treeModel, cmd = m.treeModel.Update(msg)
	case StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) markGrace() {
	res, err := m.tracker.MarkGraceDay("")
	m.err = err
	switch {
	case err != nil:
	case res.AlreadyMarked:
		m.message = "Today is already a grace day."
	case res.OverBudget:
		m.message = warnStyle.Render(fmt.Sprintf("⚠ Grace day recorded beyond this week's allowance (%d of %d).",
			res.UsedThisWeek, res.AllowedPerWeek))
	default:
		m.message = fmt.Sprintf("✓ Grace day recorded (%d of %d this week).", res.UsedThisWeek, res.AllowedPerWeek)
	}
	m.refresh()
}
