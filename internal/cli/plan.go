package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nutrilog/internal/service"
	"nutrilog/internal/store"
)

var (
	planAddDate  string
	planAddMeal  string
	planListDate string
	planListMeal string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan meals ahead",
}

var planAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Plan a meal for a date",
	Example: `  nutrilog plan add --name "Lentil soup" --calories 420 --date 2024-06-03 --meal dinner`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(planAddDate)
		if err != nil {
			return err
		}
		return withTracker(cmd, func(s *session) error {
			fact, err := factFromFlags(s.tracker)
			if err != nil {
				return err
			}
			meal, err := s.tracker.AddPlannedMeal(service.PlanInput{
				Fact:     fact,
				Date:     date,
				MealType: store.MealType(planAddMeal),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s for %s %s [%s]\n", meal.Name, meal.PlannedDate, meal.MealType, shortID(meal.ID))
			return nil
		})
	},
}

var planRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a planned meal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			var ids []string
			for _, m := range s.tracker.PlannedMeals("", "") {
				ids = append(ids, m.ID)
			}
			id, err := matchID(args[0], ids)
			if err != nil {
				return err
			}
			if err := s.tracker.RemovePlannedMeal(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed planned meal %s\n", shortID(id))
			return nil
		})
	},
}

var planListAll bool

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List planned meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := ""
		if !planListAll {
			var err error
			if date, err = parseDateOrToday(planListDate); err != nil {
				return err
			}
		}
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			meals := s.tracker.PlannedMeals(date, store.MealType(planListMeal))
			if len(meals) == 0 {
				fmt.Fprintln(out, "No meals planned")
				return nil
			}
			var total float64
			for _, m := range meals {
				fmt.Fprintf(out, "%s  %s  %-9s  %-24s %6.0f kcal\n", shortID(m.ID), m.PlannedDate, m.MealType, m.Name, m.Calories)
				total += m.Calories
			}
			fmt.Fprintf(out, "Total: %.0f kcal\n", total)
			return nil
		})
	},
}

func init() {
	addFactFlags(planAddCmd)
	planAddCmd.Flags().StringVar(&planAddDate, "date", "", "Date (YYYY-MM-DD, today, tomorrow)")
	planAddCmd.Flags().StringVar(&planAddMeal, "meal", string(store.MealLunch), "Meal: breakfast, lunch, dinner or snack")

	planListCmd.Flags().StringVar(&planListDate, "date", "", "Date (YYYY-MM-DD, default today)")
	planListCmd.Flags().StringVar(&planListMeal, "meal", "", "Only this meal type")
	planListCmd.Flags().BoolVar(&planListAll, "all", false, "List every planned meal")

	planCmd.AddCommand(planAddCmd, planRemoveCmd, planListCmd)
	rootCmd.AddCommand(planCmd)
}
