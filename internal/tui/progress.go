package tui

import (
	"fmt"
	"strings"

	"nutrilog/internal/service"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProgressModel shows the streak, milestones and challenges
type ProgressModel struct {
	tracker  *service.Tracker
	data     *service.ProgressData
	viewport viewport.Model
	loading  bool
	width    int
	height   int
	ready    bool
}

// NewProgressModel creates a new progress model
func NewProgressModel(tr *service.Tracker, width, height int) ProgressModel {
	m := ProgressModel{
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

// Init initializes the progress screen
func (m ProgressModel) Init() tea.Cmd {
	return m.loadProgress
}

type progressLoadedMsg struct {
	data *service.ProgressData
}

func (m ProgressModel) loadProgress() tea.Msg {
	return progressLoadedMsg{data: m.tracker.Progress()}
}

// Update handles messages
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
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
			return m, m.loadProgress
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the progress screen
func (m ProgressModel) View() string {
	if m.loading {
		return "\n  Loading progress..."
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  j/k or arrows: scroll  r: refresh")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m ProgressModel) renderContent() string {
	if m.data == nil {
		return ""
	}
	d := m.data

	var lines []string
	lines = append(lines, cardTitleStyle.Render("Progress"))
	lines = append(lines, RenderMetric("Streak", fmt.Sprintf("%d days", d.Streak), ""))
	lines = append(lines, RenderMetric("Points", fmt.Sprintf("%d", d.Points), ""))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render(fmt.Sprintf("── Milestones %d/%d", d.Achieved, len(d.Milestones))))
	for _, ms := range d.Milestones {
		if ms.Achieved {
			lines = append(lines, fmt.Sprintf("  %s %-18s %s",
				successStyle.Render("★"), ms.Name, mutedStyle.Render(ms.AchievedAt.Format("Jan 02, 2006"))))
		} else {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ☆ %-18s %s", ms.Name, ms.Description)))
		}
	}
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render(fmt.Sprintf("── Challenges %d/%d", d.Completed, len(d.Challenges))))
	for _, c := range d.Challenges {
		reward := fmt.Sprintf("+%d pts", c.RewardPoints)
		if c.Completed {
			lines = append(lines, fmt.Sprintf("  %s %-18s %-8s %s",
				successStyle.Render("✔"), c.Name, reward, mutedStyle.Render(c.CompletedAt.Format("Jan 02, 2006"))))
		} else {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ○ %-18s %-8s %s", c.Name, reward, c.Description)))
		}
	}
	lines = append(lines, "")

	return strings.Join(lines, "\n")
}
