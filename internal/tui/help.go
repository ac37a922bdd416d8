package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{
		cardTitleStyle.Render("Keyboard Shortcuts"),
		m.renderSection("Navigation", []keyHelp{
			{"1", "Dashboard"},
			{"2", "Food log"},
			{"3", "Forecasts"},
			{"4", "Progress"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
			{"esc", "Back / close help"},
		}),
		m.renderSection("Dashboard", []keyHelp{
			{"r", "Reload from the database"},
		}),
		m.renderSection("Food Log", []keyHelp{
			{"j / down", "Move cursor down"},
			{"k / up", "Move cursor up"},
			{"pgdown / pgup", "Next / previous page"},
			{"d", "Delete entry (asks y/n)"},
			{"s", "Share entry to the feed"},
		}),
		m.renderSection("Forecasts and Progress", []keyHelp{
			{"j / k", "Scroll"},
			{"r", "Refresh"},
		}),
		m.renderGoalsHelp(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	lines := []string{"", sectionStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}

func (m HelpModel) renderGoalsHelp() string {
	lines := []string{"", sectionStyle.Render("Goals Explained"), ""}

	terms := []struct {
		name string
		desc string
	}{
		{"Effective goal", "Base goal adjusted by mode: weight loss -300 kcal, muscle gain +300 kcal."},
		{"Macro targets", "30% protein, 40% carbs, 30% fat of the effective goal."},
		{"Streak", "Consecutive logged days ending today, or yesterday if today is empty."},
		{"Forecast", "Linear trend of recent daily totals, compared with the goal."},
	}

	for _, t := range terms {
		lines = append(lines, "  "+helpKeyStyle.Render(t.name))
		lines = append(lines, "  "+mutedStyle.Render(t.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
