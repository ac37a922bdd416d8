package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nutrilog/internal/analysis"
	"nutrilog/internal/store"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage your daily calorie goal",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <calories>",
	Short: "Set the base daily calorie goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calories, err := parseFloatArg("calories", args[0])
		if err != nil {
			return err
		}
		return withTracker(cmd, func(s *session) error {
			if err := s.tracker.SetBaseCalorieGoal(calories); err != nil {
				return err
			}
			today := s.tracker.Today()
			fmt.Fprintf(cmd.OutOrStdout(), "Base goal set to %.0f kcal (effective %.0f kcal with %s)\n", calories, today.EffectiveGoal, today.Mode.Label())
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current goal and macro targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			today := s.tracker.Today()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base goal:  %.0f kcal\n", today.BaseGoal)
			fmt.Fprintf(out, "Mode:       %s (%+.0f kcal)\n", today.Mode.Label(), analysis.CalorieAdjustment(today.Mode))
			fmt.Fprintf(out, "Effective:  %.0f kcal\n", today.EffectiveGoal)
			fmt.Fprintf(out, "Targets:    P %.0fg  C %.0fg  F %.0fg\n", today.Targets.Protein, today.Targets.Carbs, today.Targets.Fat)
			return nil
		})
	},
}

var modeCmd = &cobra.Command{
	Use:       "mode [maintenance|weight-loss|muscle-gain]",
	Short:     "Show or change the fitness mode",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"maintenance", "weight-loss", "muscle-gain"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Fitness mode: %s\n", s.tracker.Today().Mode.Label())
				return nil
			}
			mode, err := store.ParseFitnessMode(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
			if err := s.tracker.SetFitnessMode(mode); err != nil {
				return err
			}
			fmt.Fprintf(out, "Fitness mode set to %s (daily goal %.0f kcal)\n", mode.Label(), s.tracker.Today().EffectiveGoal)
			return nil
		})
	},
}

func init() {
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)
	rootCmd.AddCommand(goalCmd, modeCmd)
}
