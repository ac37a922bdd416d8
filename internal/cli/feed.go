package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share <entry-id>",
	Short: "Share a logged meal to the feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			var ids []string
			for _, e := range s.tracker.Entries() {
				ids = append(ids, e.ID)
			}
			id, err := matchID(args[0], ids)
			if err != nil {
				return err
			}
			shared, err := s.tracker.ShareMeal(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shared %s as %s\n", shared.Name, shared.SharedByDisplayName)
			return nil
		})
	},
}

var unshareCmd = &cobra.Command{
	Use:   "unshare <id>",
	Short: "Remove a meal from the feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			var ids []string
			for _, m := range s.tracker.Feed() {
				ids = append(ids, m.ID)
			}
			id, err := matchID(args[0], ids)
			if err != nil {
				return err
			}
			if err := s.tracker.RemoveSharedMeal(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the feed\n", shortID(id))
			return nil
		})
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show shared meals, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(s *session) error {
			out := cmd.OutOrStdout()
			feed := s.tracker.Feed()
			if len(feed) == 0 {
				fmt.Fprintln(out, "The feed is empty. Share a meal with: nutrilog share <entry-id>")
				return nil
			}
			for _, m := range feed {
				at := time.UnixMilli(m.SharedAtMilli).In(now().Location())
				fmt.Fprintf(out, "%s  %-24s %6.0f kcal  %s  %s\n",
					shortID(m.ID), m.Name, m.Calories, m.SharedByDisplayName, mutedStyle.Render(at.Format("Jan 02 15:04")))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(shareCmd, unshareCmd, feedCmd)
}
