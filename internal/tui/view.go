package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTree:
		content = m.treeModel.View()
	case StateEssentials:
		content = m.viewEssentials()
	case StateHistory:
		content = m.historyModel.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		docStyle.Render(content),
		m.viewMessage(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	p := m.tracker.Progress()
	return statusStyle.Render(fmt.Sprintf("%s %s · streak %d · mercy %d/%d",
		p.CurrentLevel, p.CurrentLevel.TitleAr(), p.StreakDays,
		p.MercyDaysUsedThisWeek, p.MercyDaysAllowedPerWeek))
}

func (m Model) viewEssentials() string {
	status := m.tracker.EssentialStatus()
	if len(status) == 0 {
		return "No profile yet; any worship today keeps the streak."
	}
	var b strings.Builder
	for _, s := range status {
		mark := "·"
		if s.Done {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, s.Item.TitleAr)
	}
	return b.String()
}

func (m Model) viewMessage() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	return m.message
}
