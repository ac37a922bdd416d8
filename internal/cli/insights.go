package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nutrilog/internal/analysis"
	"nutrilog/internal/service"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project weekly and monthly intake against your goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			data := s.tracker.Forecasts()
			if !data.HasForecasts {
				fmt.Fprintln(out, "Log some food to see forecasts")
				return nil
			}
			printForecasts(out, "Next 7 days", data.Weekly)
			fmt.Fprintln(out)
			printForecasts(out, "Monthly trend (per day)", data.Monthly)
			return nil
		})
	},
}

func printForecasts(out io.Writer, title string, items []service.ForecastDisplay) {
	fmt.Fprintln(out, headerStyle.Render(title))
	for _, f := range items {
		line := f.Message
		switch f.Forecast.Status {
		case analysis.StatusSignificantlyOver, analysis.StatusSignificantlyUnder:
			line = overStyle.Render(line)
		case analysis.StatusMoreDataNeeded, analysis.StatusTrendNotReliable:
			line = mutedStyle.Render(line)
		}
		fmt.Fprintln(out, "  "+line)
		if f.Forecast.Status != analysis.StatusMoreDataNeeded && f.Forecast.Status != analysis.StatusTrendNotReliable {
			fmt.Fprintf(out, "    projected %.0f %s vs goal %.0f %s (R² %.2f)\n", f.Forecast.Projected, f.Unit, f.Forecast.Goal, f.Unit, f.Forecast.RSquared)
		}
	}
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show streak, milestones, challenges and points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			p := s.tracker.Progress()

			fmt.Fprintf(out, "Streak: %d days   Points: %d\n\n", p.Streak, p.Points)
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Milestones (%d/%d)", p.Achieved, len(p.Milestones))))
			for _, m := range p.Milestones {
				mark, when := "[ ]", ""
				if m.Achieved {
					mark, when = "[x]", m.AchievedAt.Format("Jan 02, 2006")
				}
				fmt.Fprintf(out, "  %s %-18s %s %s\n", mark, m.Name, mutedStyle.Render(m.Description), when)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Challenges (%d/%d)", p.Completed, len(p.Challenges))))
			for _, c := range p.Challenges {
				mark := "[ ]"
				if c.Completed {
					mark = "[x]"
				}
				fmt.Fprintf(out, "  %s %-18s %4d pts  %s\n", mark, c.Name, c.RewardPoints, mutedStyle.Render(c.Description))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd, progressCmd)
}
