package tui

import (
	"fmt"
	"strings"

	"nutrilog/internal/analysis"
	"nutrilog/internal/config"
	"nutrilog/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenLog
	ScreenForecast
	ScreenProgress
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard DashboardModel
	foodLog   FoodLogModel
	forecast  ForecastModel
	progress  ProgressModel
	help      HelpModel

	tracker *service.Tracker
	units   Units

	// achievements delivers unlocks made while the app runs; may be nil
	achievements <-chan analysis.Evaluation

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// AchievementMsg is sent when a mutation unlocks milestones or challenges
type AchievementMsg analysis.Evaluation

// NewApp creates a new App for one user's tracker
func NewApp(tr *service.Tracker, display config.DisplayConfig, achievements <-chan analysis.Evaluation) *App {
	units := NewUnits(display)
	return &App{
		screen:       ScreenDashboard,
		tracker:      tr,
		units:        units,
		achievements: achievements,
		dashboard:    NewDashboardModel(tr, units),
		foodLog:      NewFoodLogModel(tr),
		forecast:     NewForecastModel(tr, 0, 0),
		progress:     NewProgressModel(tr, 0, 0),
		help:         NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.Init(), a.waitForAchievement())
}

func (a *App) waitForAchievement() tea.Cmd {
	if a.achievements == nil {
		return nil
	}
	ch := a.achievements
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AchievementMsg(ev)
	}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A pending delete confirmation owns the keyboard
		if a.screen == ScreenLog && a.foodLog.confirm != "" {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			a.dashboard = NewDashboardModel(a.tracker, a.units)
			return a, a.dashboard.Init()
		case "2":
			a.screen = ScreenLog
			return a, a.foodLog.Init()
		case "3":
			a.screen = ScreenForecast
			a.forecast = NewForecastModel(a.tracker, a.width, a.height)
			return a, a.forecast.Init()
		case "4":
			a.screen = ScreenProgress
			a.progress = NewProgressModel(a.tracker, a.width, a.height)
			return a, a.progress.Init()
		case "?":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
			}
			a.screen = ScreenHelp
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Scrolling screens size their viewports even while hidden
		var m tea.Model
		m, _ = a.forecast.Update(msg)
		a.forecast = m.(ForecastModel)
		m, _ = a.progress.Update(msg)
		a.progress = m.(ProgressModel)
		return a, nil

	case AchievementMsg:
		a.status = describeUnlocks(analysis.Evaluation(msg))
		return a, a.waitForAchievement()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	var m tea.Model
	switch a.screen {
	case ScreenDashboard:
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenLog:
		m, cmd = a.foodLog.Update(msg)
		a.foodLog = m.(FoodLogModel)
	case ScreenForecast:
		m, cmd = a.forecast.Update(msg)
		a.forecast = m.(ForecastModel)
	case ScreenProgress:
		m, cmd = a.progress.Update(msg)
		a.progress = m.(ProgressModel)
	case ScreenHelp:
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenLog:
		content = a.foodLog.View()
	case ScreenForecast:
		content = a.forecast.View()
	case ScreenProgress:
		content = a.progress.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	title := "nutrilog"
	if p := a.tracker.Profile(); p != nil {
		title += " - " + p.Name()
	}
	return headerStyle.Render(title)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Food Log", ScreenLog},
		{"3", "Forecast", ScreenForecast},
		{"4", "Progress", ScreenProgress},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}
	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return successStyle.MarginTop(1).Render(a.status)
	}
	return ""
}

// describeUnlocks names everything an evaluation unlocked on one line
func describeUnlocks(ev analysis.Evaluation) string {
	var parts []string
	for _, m := range ev.NewMilestones {
		if rule, ok := analysis.FindMilestoneRule(m.ID); ok {
			parts = append(parts, "Milestone unlocked: "+rule.Name)
		}
	}
	for _, c := range ev.NewChallenges {
		if rule, ok := analysis.FindChallengeRule(c.ID); ok {
			parts = append(parts, fmt.Sprintf("Challenge complete: %s (+%d pts)", rule.Name, c.PointsAwarded))
		}
	}
	return strings.Join(parts, " | ")
}
