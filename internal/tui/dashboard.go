package tui

import (
	"fmt"
	"strings"

	"nutrilog/internal/analysis"
	"nutrilog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	tracker *service.Tracker
	units   Units
	data    *service.DashboardData
	loading bool
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(tr *service.Tracker, units Units) DashboardModel {
	return DashboardModel{
		tracker: tr,
		units:   units,
		loading: true,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	return dashboardDataMsg{data: m.tracker.Dashboard()}
}

// reloadData re-reads the user's collections from storage first
func (m DashboardModel) reloadData() tea.Msg {
	if err := m.tracker.Reload(); err != nil {
		return dashboardDataMsg{err: err}
	}
	return m.loadData()
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.data != nil {
			m.data = msg.data
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.reloadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if m.data == nil {
		return "\n  No data available. Log a meal with 'nutrilog log'."
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderTodayCard(), "  ", m.renderWellnessCard())
	sections = append(sections, topRow)
	sections = append(sections, m.renderWeekChart())

	if trend := calorieValues(m.data.History.Calories); hasIntake(trend) {
		sections = append(sections, m.renderTrendChart(trend))
	}

	if len(m.data.PlannedToday) > 0 {
		sections = append(sections, m.renderPlanned())
	}

	help := statusStyle.Render("Press 'r' to reload, '2' for the food log, '3' for forecasts")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderTodayCard() string {
	t := m.data.Today
	title := cardTitleStyle.Render("Today " + mutedStyle.Render(t.Date))

	remaining := t.EffectiveGoal - t.Totals.Calories
	note := fmt.Sprintf("%.0f left", remaining)
	if remaining < 0 {
		note = fmt.Sprintf("+%.0f over", -remaining)
	}

	lines := []string{
		RenderMetric("Calories", fmt.Sprintf("%.0f / %.0f", t.Totals.Calories, t.EffectiveGoal), note),
		RenderProgressBar(t.IntakePercent/100, 30) + fmt.Sprintf(" %.0f%%", t.IntakePercent),
		"",
		RenderMetric("Protein", macroValue(t.Totals.Protein, t.Targets.Protein), ""),
		RenderMetric("Carbs", macroValue(t.Totals.Carbs, t.Targets.Carbs), ""),
		RenderMetric("Fat", macroValue(t.Totals.Fat, t.Targets.Fat), ""),
		"",
		RenderMetric("Mode", modeLabel(string(t.Mode)), fmt.Sprintf("base %.0f kcal", t.BaseGoal)),
		RenderMetric("Streak", fmt.Sprintf("%d days", t.Streak), ""),
		RenderMetric("Points", fmt.Sprintf("%d", t.Points), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(48).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWellnessCard() string {
	t := m.data.Today
	title := cardTitleStyle.Render("Wellness")

	sleep := mutedStyle.Render("not logged")
	if t.Sleep != nil {
		sleep = fmt.Sprintf("%.1f h", t.Sleep.DurationHours)
		if t.Sleep.Quality != "" {
			sleep += " (" + t.Sleep.Quality + ")"
		}
	}

	lines := []string{
		RenderMetric("Water", m.units.FormatWater(t.WaterML), "of "+m.units.FormatWater(t.WaterGoalML)),
		RenderWaterBar(t.WaterML/t.WaterGoalML, 24),
		"",
		RenderMetric("Sleep", sleep, ""),
		"",
		RenderMetric("Foods today", fmt.Sprintf("%d", len(t.Entries)), ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m DashboardModel) renderWeekChart() string {
	title := cardTitleStyle.Render("Calories - Last 7 Days")

	values := make([]float64, len(m.data.Week))
	goal := make([]float64, len(m.data.Week))
	labels := make([]string, len(m.data.Week))
	for i, d := range m.data.Week {
		values[i] = d.Calories
		goal[i] = m.data.Today.EffectiveGoal
		labels[i] = d.Label
	}

	graph := asciigraph.PlotMany([][]float64{goal, values},
		asciigraph.Height(8),
		asciigraph.Width(56),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(asciigraph.DarkGray, asciigraph.Green),
		asciigraph.Caption(strings.Join(labels, "  ")+"   (gray: goal)"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderTrendChart(values []float64) string {
	title := cardTitleStyle.Render(fmt.Sprintf("Calorie Trend - %d Days", len(values)))

	graph := asciigraph.Plot(values,
		asciigraph.Height(6),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.SeriesColors(asciigraph.Green),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

func (m DashboardModel) renderPlanned() string {
	title := cardTitleStyle.Render("Planned Today")

	var rows []string
	for _, p := range m.data.PlannedToday {
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-10s %-24s %6.0f kcal",
			p.MealType, truncateName(p.Name, 24), p.Calories)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func calorieValues(points []analysis.DataPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Y
	}
	return values
}

func hasIntake(values []float64) bool {
	for _, v := range values {
		if v > 0 {
			return true
		}
	}
	return false
}

func macroValue(consumed, target float64) string {
	return fmt.Sprintf("%.0fg / %.0fg", consumed, target)
}

// modeLabel turns "weightLoss" into "Weight Loss"
func modeLabel(mode string) string {
	var b strings.Builder
	for i, r := range mode {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
