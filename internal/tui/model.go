// Package tui is the interactive worship tree: tap elements to record
// today's worship, review essentials and recent days.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hedaya/internal/tracker"
	"github.com/julianstephens/hedaya/internal/tui/components/history"
	"github.com/julianstephens/hedaya/internal/tui/components/tree"
)

type SessionState int

const (
	StateTree SessionState = iota
	StateEssentials
	StateHistory
)

var tabTitles = []string{"Tree", "Essentials", "History"}

// HistoryDays is how many days the history tab shows.
const HistoryDays = 14

type Model struct {
	tracker      *tracker.Tracker
	state        SessionState
	keys         KeyMap
	help         help.Model
	treeModel    tree.Model
	historyModel history.Model
	message      string
	err          error
	quitting     bool
	width        int
	height       int
}

func NewModel(tr *tracker.Tracker) Model {
	m := Model{
		tracker:      tr,
		state:        StateTree,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		treeModel:    tree.New(tr.TodayLog(), 0, 0),
		historyModel: history.New(0, 0),
	}
	m.historyModel.SetEntries(tr.History(HistoryDays))
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// State is the active tab.
func (m Model) State() SessionState {
	return m.state
}

// refresh rolls the day forward if needed and reloads every view.
func (m *Model) refresh() {
	m.tracker.Resume()
	m.treeModel.SetLog(m.tracker.TodayLog())
	m.historyModel.SetEntries(m.tracker.History(HistoryDays))
}

func (m *Model) resize() {
	contentHeight := m.height - 6
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.treeModel.SetSize(m.width-4, contentHeight)
	m.historyModel.SetSize(m.width-4, contentHeight)
}
