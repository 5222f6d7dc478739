package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show trading statistics",
	Long: `Show summary statistics, drawdown, streaks, the 1-5 risk score and the
breakdowns by pair, time of day, weekday and lot size.

Examples:
  tradelog stats
  tradelog stats --from 2024-01-01 --to 2024-03-31`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsRange rangeFlags

func init() {
	rootCmd.AddCommand(statsCmd)
	statsRange.register(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	loc, err := location()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := statsRange.load(cmd.Context(), store, loc)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	analytics.PrintReport(cmd.OutOrStdout(), analytics.Summarize(trades, loc))
	return nil
}
