package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nutrilog/internal/analysis"
	"nutrilog/internal/tui"
)

// runTUI opens the interactive dashboard for the current user
func runTUI(cmd *cobra.Command) error {
	unlocks := make(chan analysis.Evaluation, 8)
	s, err := openSession(func(ev analysis.Evaluation) {
		// Called with the tracker locked; drop rather than block
		select {
		case unlocks <- ev:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer s.db.Close()

	app := tui.NewApp(s.tracker, s.cfg.Display, unlocks)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
