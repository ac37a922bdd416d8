package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"nutrilog/internal/service"
	"nutrilog/internal/store"
)

var (
	foodName        string
	foodCalories    float64
	foodProtein     float64
	foodCarbs       float64
	foodFat         float64
	foodServing     float64
	foodInteractive bool
)

// addFactFlags registers the nutrition fact flags shared by log and plan add
func addFactFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&foodName, "name", "n", "", "Food name")
	cmd.Flags().Float64VarP(&foodCalories, "calories", "c", 0, "Calories (kcal)")
	cmd.Flags().Float64Var(&foodProtein, "protein", 0, "Protein (g)")
	cmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbohydrates (g)")
	cmd.Flags().Float64Var(&foodFat, "fat", 0, "Fat (g)")
	cmd.Flags().Float64Var(&foodServing, "serving", 0, "Serving size in grams (default 100)")
	cmd.Flags().BoolVarP(&foodInteractive, "interactive", "i", false, "Enter the food in a form")
}

// factFromFlags builds a NutritionFact from flags, or from the form when asked.
// The form offers the user's recently logged foods as completions.
func factFromFlags(t *service.Tracker) (store.NutritionFact, error) {
	if foodInteractive {
		return runFoodForm(t.RecentFoodNames())
	}
	if strings.TrimSpace(foodName) == "" {
		return store.NutritionFact{}, fmt.Errorf("--name is required (or use --interactive)")
	}
	fact := store.NutritionFact{
		Name:     foodName,
		Calories: foodCalories,
		Protein:  foodProtein,
		Carbs:    foodCarbs,
		Fat:      foodFat,
	}
	if foodServing > 0 {
		size := foodServing
		fact.ServingSizeG = &size
	}
	return fact, nil
}

// foodForm holds the raw form values before parsing
type foodForm struct {
	Name, Calories, Protein, Carbs, Fat, Serving string
}

func newFoodForm(f *foodForm, suggestions []string) *huh.Form {
	number := func(label string, optional bool) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" && optional {
				return nil
			}
			v, err := parseFloatArg(label, s)
			if err != nil {
				return err
			}
			if v < 0 {
				return fmt.Errorf("%s cannot be negative", label)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Food").
				Suggestions(suggestions).
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("food name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Calories (kcal)").Value(&f.Calories).Validate(number("calories", false)),
			huh.NewInput().Title("Protein (g)").Value(&f.Protein).Validate(number("protein", true)),
			huh.NewInput().Title("Carbs (g)").Value(&f.Carbs).Validate(number("carbs", true)),
			huh.NewInput().Title("Fat (g)").Value(&f.Fat).Validate(number("fat", true)),
			huh.NewInput().
				Title("Serving size (g)").
				Description("Leave empty for 100g").
				Value(&f.Serving).
				Validate(number("serving", true)),
		),
	).WithTheme(huh.ThemeCatppuccin())
}

// fillFoodForm prompts for the food values; tests swap it for a scripted fill
var fillFoodForm = func(f *foodForm, suggestions []string) error {
	return newFoodForm(f, suggestions).Run()
}

func runFoodForm(suggestions []string) (store.NutritionFact, error) {
	var f foodForm
	if err := fillFoodForm(&f, suggestions); err != nil {
		return store.NutritionFact{}, err
	}
	return f.fact()
}

func (f foodForm) fact() (store.NutritionFact, error) {
	fact := store.NutritionFact{Name: strings.TrimSpace(f.Name)}
	fields := []struct {
		label string
		raw   string
		dst   *float64
	}{
		{"calories", f.Calories, &fact.Calories},
		{"protein", f.Protein, &fact.Protein},
		{"carbs", f.Carbs, &fact.Carbs},
		{"fat", f.Fat, &fact.Fat},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.raw) == "" {
			continue
		}
		v, err := parseFloatArg(field.label, field.raw)
		if err != nil {
			return store.NutritionFact{}, err
		}
		*field.dst = v
	}
	if strings.TrimSpace(f.Serving) != "" {
		size, err := parseFloatArg("serving", f.Serving)
		if err != nil {
			return store.NutritionFact{}, err
		}
		fact.ServingSizeG = &size
	}
	return fact, nil
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a food item",
	Example: `  nutrilog log --name "Greek yogurt" --calories 146 --protein 20 --carbs 8 --fat 4
  nutrilog log -i`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			fact, err := factFromFlags(s.tracker)
			if err != nil {
				return err
			}
			entry, err := s.tracker.LogFood(fact)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %.0f kcal, %s [%s]\n", entry.Name, entry.Calories, entry.Quantity, shortID(entry.ID))
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a logged food item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			entries := s.tracker.Entries()
			ids := make([]string, len(entries))
			for i, e := range entries {
				ids[i] = e.ID
			}
			id, err := matchID(args[0], ids)
			if err != nil {
				return err
			}
			if err := s.tracker.RemoveFood(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", shortID(id))
			return nil
		})
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake against your goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			today := s.tracker.Today()

			fmt.Fprintln(out, headerStyle.Render("Today "+today.Date))
			if len(today.Entries) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("Nothing logged yet"))
			}
			for _, e := range today.Entries {
				fmt.Fprintf(out, "  %s  %-24s %6.0f kcal  %s\n", shortID(e.ID), e.Name, e.Calories, e.LoggedAt(now().Location()).Format("15:04"))
			}
			fmt.Fprintln(out)

			pct := fmt.Sprintf("%.0f%%", today.IntakePercent)
			if today.IntakePercent > 100 {
				pct = overStyle.Render(pct)
			}
			fmt.Fprintf(out, "Calories: %.0f / %.0f kcal (%s, %s)\n", today.Totals.Calories, today.EffectiveGoal, pct, today.Mode.Label())
			fmt.Fprintf(out, "Protein:  %.1f / %.0f g\n", today.Totals.Protein, today.Targets.Protein)
			fmt.Fprintf(out, "Carbs:    %.1f / %.0f g\n", today.Totals.Carbs, today.Targets.Carbs)
			fmt.Fprintf(out, "Fat:      %.1f / %.0f g\n", today.Totals.Fat, today.Targets.Fat)
			fmt.Fprintf(out, "Water:    %s / %s\n", formatWater(today.WaterML, s.cfg.Display.WaterUnit), formatWater(today.WaterGoalML, s.cfg.Display.WaterUnit))
			if today.Sleep != nil {
				fmt.Fprintf(out, "Sleep:    %.1f h\n", today.Sleep.DurationHours)
			}
			fmt.Fprintf(out, "Streak:   %d days  Points: %d\n", today.Streak, today.Points)
			return nil
		})
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the last 7 days of food",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			for _, day := range s.tracker.WeeklyLog() {
				fmt.Fprintln(out, headerStyle.Render(day.Label))
				if len(day.Entries) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("  no entries"))
					continue
				}
				for _, e := range day.Entries {
					fmt.Fprintf(out, "  %s  %-24s %6.0f kcal\n", shortID(e.ID), e.Name, e.Calories)
				}
				fmt.Fprintf(out, "  total %s\n", formatMacros(day.Totals))
			}
			return nil
		})
	},
}

func init() {
	addFactFlags(logCmd)
	rootCmd.AddCommand(logCmd, removeCmd, todayCmd, weekCmd)
}
