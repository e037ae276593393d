package tree

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hedaya/internal/models"
	"github.com/julianstephens/hedaya/internal/tracker"
)

// TapMsg asks the parent model to record the element.
type TapMsg struct {
	ID string
}

type Item struct {
	Element tracker.Element
	Done    bool
}

func (i Item) Title() string {
	mark := "·"
	if i.Done {
		mark = "✓"
	}
	return mark + " " + ElementTitle(i.Element)
}

func (i Item) Description() string { return i.Element.ID }
func (i Item) FilterValue() string { return i.Element.ID }

// ElementTitle is the Arabic label of what the element records.
func ElementTitle(el tracker.Element) string {
	switch el.Kind {
	case tracker.ElementQuran:
		return "ورد القرآن"
	case tracker.ElementPrayer:
		return el.Prayer.TitleAr()
	case tracker.ElementBranch:
		return el.Branch.TitleAr()
	default:
		return el.ID
	}
}

// IsDone reports whether log already records the element.
func IsDone(el tracker.Element, log models.DayLog) bool {
	switch el.Kind {
	case tracker.ElementQuran:
		return log.QuranDone
	case tracker.ElementPrayer:
		return log.PrayersCompleted.Has(el.Prayer)
	case tracker.ElementBranch:
		return log.BranchesCompleted.Has(el.Branch)
	default:
		return false
	}
}

type KeyMap struct {
	Tap key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tap: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "mark done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(log models.DayLog, width, height int) Model {
	l := list.New(items(log), list.NewDefaultDelegate(), width, height)
	l.Title = "Worship tree"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Tap}
	}
	return Model{list: l, keys: keys}
}

func items(log models.DayLog) []list.Item {
	ids := tracker.AllElementIDs()
	out := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		el, ok := tracker.ResolveElement(id)
		if !ok {
			continue
		}
		out = append(out, Item{Element: el, Done: IsDone(el, log)})
	}
	return out
}

// SetLog refreshes the done markers, keeping the selection.
func (m *Model) SetLog(log models.DayLog) {
	m.list.SetItems(items(log))
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Tap) {
		if i, ok := m.Selected(); ok && !i.Done {
			return m, func() tea.Msg { return TapMsg{ID: i.Element.ID} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
