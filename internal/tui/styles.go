package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	primaryColor = lipgloss.Color("#10B981") // Green
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	waterColor   = lipgloss.Color("#3B82F6") // Blue
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // Light gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	navStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginBottom(1)

	navActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	navInactiveStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(14)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	overStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	underStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				Padding(0, 1)

	tableRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	tableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Background(primaryColor).
				Foreground(textColor).
				Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	progressFullStyle = lipgloss.NewStyle().
				Foreground(primaryColor)

	progressOverStyle = lipgloss.NewStyle().
				Foreground(errorColor)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	waterFullStyle = lipgloss.NewStyle().
			Foreground(waterColor)
)

// RenderMetric renders a label and value, with an optional note after it.
// Notes starting with '+' read as over target.
func RenderMetric(label, value, note string) string {
	noteStyle := mutedStyle
	if strings.HasPrefix(note, "+") {
		noteStyle = overStyle
	}
	if note != "" {
		note = " " + note
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
		noteStyle.Render(note),
	)
}

// RenderProgressBar renders an ASCII progress bar for percent in [0,1].
// Values above 1 fill the bar in the over-target color.
func RenderProgressBar(percent float64, width int) string {
	return renderBar(percent, width, progressFullStyle)
}

// RenderWaterBar renders hydration progress toward the daily goal
func RenderWaterBar(percent float64, width int) string {
	return renderBar(percent, width, waterFullStyle)
}

func renderBar(percent float64, width int, full lipgloss.Style) string {
	if percent > 1 {
		full = progressOverStyle
	}
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString(full.Render("█"))
		} else {
			b.WriteString(progressEmptyStyle.Render("░"))
		}
	}
	return b.String()
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}

func truncateName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
