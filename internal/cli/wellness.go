package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"nutrilog/internal/service"
	"nutrilog/internal/store"
)

var waterUnit string

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Log a drink for today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseFloatArg("amount", args[0])
		if err != nil {
			return err
		}
		return withTracker(cmd, func(s *session) error {
			unit := waterUnit
			if unit == "" {
				unit = s.cfg.Display.WaterUnit
			}
			rec, err := s.tracker.AddWater(amount, unit)
			if err != nil {
				return err
			}
			today := s.tracker.Today()
			fmt.Fprintf(cmd.OutOrStdout(), "Added %g %s [%s]. Today: %s / %s\n",
				rec.Amount, rec.Unit, shortID(rec.ID),
				formatWater(today.WaterML, s.cfg.Display.WaterUnit), formatWater(today.WaterGoalML, s.cfg.Display.WaterUnit))
			return nil
		})
	},
}

var waterRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a water record",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			var ids []string
			for _, r := range s.tracker.Snapshot().Water {
				ids = append(ids, r.ID)
			}
			id, err := matchID(args[0], ids)
			if err != nil {
				return err
			}
			if err := s.tracker.RemoveWater(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed water record %s\n", shortID(id))
			return nil
		})
	},
}

var waterListDate string

var waterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List water records for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(waterListDate)
		if err != nil {
			return err
		}
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			records := s.tracker.WaterForDate(date)
			if len(records) == 0 {
				fmt.Fprintf(out, "No water logged on %s\n", date)
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(out, "%s  %g %s\n", shortID(r.ID), r.Amount, r.Unit)
			}
			return nil
		})
	},
}

var (
	sleepDate    string
	sleepQuality string
	sleepNotes   string
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Track sleep",
}

var sleepAddCmd = &cobra.Command{
	Use:   "add <hours>",
	Short: "Record last night's sleep (replaces any record for the same date)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := parseFloatArg("hours", args[0])
		if err != nil {
			return err
		}
		date := ""
		if sleepDate != "" {
			if date, err = parseDateOrToday(sleepDate); err != nil {
				return err
			}
		}
		return withTracker(cmd, func(s *session) error {
			rec, err := s.tracker.AddSleep(service.SleepInput{
				DurationHours: hours,
				Date:          date,
				Quality:       sleepQuality,
				Notes:         sleepNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %.1f h of sleep for %s [%s]\n", rec.DurationHours, rec.Date, shortID(rec.ID))
			return nil
		})
	},
}

var sleepRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a sleep record",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			var ids []string
			for _, r := range s.tracker.SleepRecords() {
				ids = append(ids, r.ID)
			}
			id, err := matchID(args[0], ids)
			if err != nil {
				return err
			}
			if err := s.tracker.RemoveSleep(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed sleep record %s\n", shortID(id))
			return nil
		})
	},
}

var sleepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sleep records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			records := s.tracker.SleepRecords()
			if len(records) == 0 {
				fmt.Fprintln(out, "No sleep recorded")
				return nil
			}
			for _, r := range records {
				line := fmt.Sprintf("%s  %s  %4.1f h", shortID(r.ID), r.Date, r.DurationHours)
				if r.Quality != "" {
					line += "  " + r.Quality
				}
				if r.Notes != "" {
					line += "  " + mutedStyle.Render(r.Notes)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

func init() {
	waterAddCmd.Flags().StringVarP(&waterUnit, "unit", "u", "", "Unit: ml or oz (default from config)")
	waterListCmd.Flags().StringVar(&waterListDate, "date", "", "Date (YYYY-MM-DD, default today)")
	waterCmd.AddCommand(waterAddCmd, waterRemoveCmd, waterListCmd)

	sleepAddCmd.Flags().StringVar(&sleepDate, "date", "", "Date the sleep ended (YYYY-MM-DD, default today)")
	sleepAddCmd.Flags().StringVar(&sleepQuality, "quality", "", "Quality: "+store.SleepPoor+", "+store.SleepFair+" or "+store.SleepGood)
	sleepAddCmd.Flags().StringVar(&sleepNotes, "notes", "", "Notes")
	sleepCmd.AddCommand(sleepAddCmd, sleepRemoveCmd, sleepListCmd)

	rootCmd.AddCommand(waterCmd, sleepCmd)
}
