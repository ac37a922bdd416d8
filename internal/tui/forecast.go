package tui

import (
	"fmt"
	"strings"

	"nutrilog/internal/analysis"
	"nutrilog/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ForecastModel is the intake forecast screen model
type ForecastModel struct {
	tracker  *service.Tracker
	data     *service.ForecastData
	viewport viewport.Model
	loading  bool
	width    int
	height   int
	ready    bool
}

// NewForecastModel creates a new forecast model
func NewForecastModel(tr *service.Tracker, width, height int) ForecastModel {
	m := ForecastModel{
		tracker: tr,
		loading: true,
		width:   width,
		height:  height,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6)
		m.ready = true
	}

	return m
}

// Init initializes the forecast screen
func (m ForecastModel) Init() tea.Cmd {
	return m.loadForecasts
}

type forecastsLoadedMsg struct {
	data *service.ForecastData
}

func (m ForecastModel) loadForecasts() tea.Msg {
	return forecastsLoadedMsg{data: m.tracker.Forecasts()}
}

// Update handles messages
func (m ForecastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case forecastsLoadedMsg:
		m.loading = false
		m.data = msg.data
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.data != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadForecasts
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the forecast screen
func (m ForecastModel) View() string {
	if m.loading {
		return "\n  Calculating forecasts..."
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ForecastModel) renderContent() string {
	if m.data == nil || !m.data.HasForecasts {
		return m.renderEmptyState()
	}

	var sections []string
	sections = append(sections, cardTitleStyle.Render("Intake Forecasts"))
	sections = append(sections, mutedStyle.Render(fmt.Sprintf("  Effective goal: %.0f kcal/day", m.data.EffectiveGoal)))
	sections = append(sections, "")
	sections = append(sections, m.renderTable("Next 7 Days", m.data.Weekly))
	sections = append(sections, m.renderTable("Next 30 Days", m.data.Monthly))
	sections = append(sections, m.renderAbout())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ForecastModel) renderEmptyState() string {
	lines := []string{
		"",
		cardTitleStyle.Render("Intake Forecasts"),
		"",
		mutedStyle.Render("  No forecasts yet."),
		mutedStyle.Render(fmt.Sprintf("  Log meals on at least %d days for a weekly trend and %d days for a monthly one.",
			analysis.MinDaysWeekly, analysis.MinDaysMonthly)),
		"",
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ForecastModel) renderTable(title string, rows []service.ForecastDisplay) string {
	var lines []string

	heading := fmt.Sprintf("── %s ", title)
	lines = append(lines, sectionStyle.Render(heading+strings.Repeat("─", 60-len([]rune(heading)))))

	header := fmt.Sprintf("  %-9s  %12s  %12s  %6s  %s", "Nutrient", "Projected", "Goal", "R²", "Status")
	lines = append(lines, tableHeaderStyle.Render(header))

	for _, row := range rows {
		lines = append(lines, formatForecastRow(row))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func formatForecastRow(row service.ForecastDisplay) string {
	f := row.Forecast
	switch f.Status {
	case analysis.StatusMoreDataNeeded:
		return fmt.Sprintf("  %-9s  %s", row.Nutrient, mutedStyle.Render(fmt.Sprintf("need %d logged days", f.MinDays)))
	case analysis.StatusTrendNotReliable:
		return fmt.Sprintf("  %-9s  %s", row.Nutrient, mutedStyle.Render("trend not reliable yet"))
	}

	return fmt.Sprintf("  %-9s  %12s  %12s  %6.2f  %s",
		row.Nutrient,
		fmt.Sprintf("%.0f %s", f.Projected, row.Unit),
		fmt.Sprintf("%.0f %s", f.Goal, row.Unit),
		f.RSquared,
		statusStyleFor(f.Status).Render(fmt.Sprintf("%s (%+.0f%%)", statusLabel(f.Status), f.DiffPercent())),
	)
}

func statusLabel(s analysis.ForecastStatus) string {
	switch s {
	case analysis.StatusOnTrack:
		return "on track"
	case analysis.StatusSlightlyOver:
		return "slightly over"
	case analysis.StatusSignificantlyOver:
		return "well over"
	case analysis.StatusSlightlyUnder:
		return "slightly under"
	case analysis.StatusSignificantlyUnder:
		return "well under"
	}
	return string(s)
}

func statusStyleFor(s analysis.ForecastStatus) lipgloss.Style {
	switch s {
	case analysis.StatusOnTrack:
		return underStyle
	case analysis.StatusSignificantlyOver, analysis.StatusSignificantlyUnder:
		return overStyle
	}
	return successStyle
}

func (m ForecastModel) renderAbout() string {
	lines := []string{
		sectionStyle.Render("── About These Forecasts"),
		mutedStyle.Render("  A straight line is fitted through your recent daily totals."),
		mutedStyle.Render("  Weekly totals sum the next 7 days. Monthly figures are per day at the end of the window."),
		mutedStyle.Render("  R² shows how well that line fits, 1.00 being a perfect fit."),
		"",
	}
	return strings.Join(lines, "\n")
}
