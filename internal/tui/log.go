package tui

import (
	"fmt"

	"nutrilog/internal/service"
	"nutrilog/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FoodLogModel is the food log list screen model
type FoodLogModel struct {
	tracker  *service.Tracker
	entries  []store.LogEntry
	cursor   int
	offset   int
	pageSize int
	// confirm holds the id awaiting a delete confirmation
	confirm string
	status  string
	loading bool
	err     error
}

// NewFoodLogModel creates a new food log model
func NewFoodLogModel(tr *service.Tracker) FoodLogModel {
	return FoodLogModel{
		tracker:  tr,
		pageSize: 15,
		loading:  true,
	}
}

// Init initializes the food log screen
func (m FoodLogModel) Init() tea.Cmd {
	return m.loadEntries
}

type entriesLoadedMsg struct {
	entries []store.LogEntry
}

// entryChangedMsg reports the outcome of a delete or share
type entryChangedMsg struct {
	status string
	err    error
}

func (m FoodLogModel) loadEntries() tea.Msg {
	return entriesLoadedMsg{entries: m.tracker.Entries()}
}

func (m FoodLogModel) removeEntry(e store.LogEntry) tea.Cmd {
	return func() tea.Msg {
		if err := m.tracker.RemoveFood(e.ID); err != nil {
			return entryChangedMsg{err: err}
		}
		return entryChangedMsg{status: "Removed " + e.Name}
	}
}

func (m FoodLogModel) shareEntry(e store.LogEntry) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.tracker.ShareMeal(e.ID); err != nil {
			return entryChangedMsg{err: err}
		}
		return entryChangedMsg{status: "Shared " + e.Name + " to the feed"}
	}
}

func (m FoodLogModel) selected() (store.LogEntry, bool) {
	i := m.offset + m.cursor
	if i < 0 || i >= len(m.entries) {
		return store.LogEntry{}, false
	}
	return m.entries[i], true
}

func (m FoodLogModel) page() []store.LogEntry {
	end := m.offset + m.pageSize
	if end > len(m.entries) {
		end = len(m.entries)
	}
	if m.offset >= end {
		return nil
	}
	return m.entries[m.offset:end]
}

// clamp keeps the cursor on an existing row after the list shrinks
func (m *FoodLogModel) clamp() {
	for m.offset > 0 && m.offset >= len(m.entries) {
		m.offset -= m.pageSize
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if n := len(m.page()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles messages
func (m FoodLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.entries = msg.entries
		m.clamp()

	case entryChangedMsg:
		m.err = msg.err
		m.status = msg.status
		return m, m.loadEntries

	case tea.KeyMsg:
		if m.confirm != "" {
			id := m.confirm
			m.confirm = ""
			if msg.String() == "y" {
				if e, ok := m.selected(); ok && e.ID == id {
					return m, m.removeEntry(e)
				}
			}
			m.status = "Delete cancelled"
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = m.pageSize - 1
			}
		case "down", "j":
			if m.cursor < len(m.page())-1 {
				m.cursor++
			} else if m.offset+m.pageSize < len(m.entries) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "pgup":
			if m.offset > 0 {
				m.offset -= m.pageSize
				m.cursor = 0
			}
		case "pgdown":
			if m.offset+m.pageSize < len(m.entries) {
				m.offset += m.pageSize
				m.cursor = 0
			}
		case "d", "x":
			if e, ok := m.selected(); ok {
				m.confirm = e.ID
				m.status = fmt.Sprintf("Delete %s? (y/n)", e.Name)
			}
		case "s":
			if e, ok := m.selected(); ok {
				return m, m.shareEntry(e)
			}
		case "r":
			m.loading = true
			return m, m.loadEntries
		}
	}
	return m, nil
}

// View renders the food log
func (m FoodLogModel) View() string {
	if m.loading {
		return "\n  Loading food log..."
	}

	var sections []string
	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}

	if len(m.entries) == 0 {
		sections = append(sections, "\n  Nothing logged yet. Try 'nutrilog log -n Oatmeal -c 150'.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	page := m.page()
	title := cardTitleStyle.Render(fmt.Sprintf("Food Log (%d-%d of %d)",
		m.offset+1, m.offset+len(page), len(m.entries)))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("  %-12s  %-24s  %7s  %6s  %6s  %6s",
		"Logged", "Food", "kcal", "P", "C", "F"))
	sections = append(sections, header)

	for i, e := range page {
		row := fmt.Sprintf("  %-12s  %-24s  %7.0f  %6.1f  %6.1f  %6.1f",
			e.LoggedAt(m.tracker.Now().Location()).Format("Jan 02 15:04"),
			truncateName(e.Name, 24),
			e.Calories, e.Protein, e.Carbs, e.Fat,
		)
		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	if m.status != "" {
		sections = append(sections, statusStyle.Render("  "+m.status))
	}
	sections = append(sections, statusStyle.Render("  j/k: move  d: delete  s: share  r: refresh"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
