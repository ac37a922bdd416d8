package cli

import (
	"context"

	"github.com/spf13/cobra"

	"nutrilog/internal/logger"
)

var (
	dbPath    string
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "nutrilog",
	Short: "nutrilog tracks food, water and sleep from your terminal",
	Long: "nutrilog is a local-first nutrition log with calorie goals, intake forecasts, " +
		"streaks, milestones and point-scoring challenges. Run it without arguments for the dashboard.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the command tree
func Execute(ctx context.Context) error {
	defer logger.Close()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default ~/.nutrilog/data.db)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Write debug logs to stderr")
}
