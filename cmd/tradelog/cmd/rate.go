package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/market"
)

var rateCmd = &cobra.Command{
	Use:   "rate [instrument...]",
	Short: "Fetch live rates",
	Long: `Fetch live rates. Forex comes from Frankfurter, crypto and gold from
CoinGecko. Stock indices have no live source.

Examples:
  tradelog rate USDJPY EURUSD
  tradelog rate --all`,
	RunE: runRate,
}

var rateAll bool

func init() {
	rootCmd.AddCommand(rateCmd)
	rateCmd.Flags().BoolVar(&rateAll, "all", false, "fetch every catalog instrument")
}

func runRate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ids := args
	if rateAll {
		ids = market.IDs()
	}
	if len(ids) == 0 {
		ids = []string{market.DefaultInstrumentID}
	}

	svc, cleanup, err := newRateService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	failed := 0
	for _, id := range ids {
		inst, err := market.Lookup(id)
		if err != nil {
			return err
		}
		px, err := svc.Rate(ctx, inst.ID)
		if err != nil {
			failed++
			if errors.Is(err, market.ErrRateUnavailable) {
				fmt.Fprintf(out, "%-10s unavailable\n", inst.DisplayName)
				logger.WithError(err).WithField("instrument", inst.ID).Debug("rate unavailable")
				continue
			}
			return err
		}
		fmt.Fprintf(out, "%-10s %.*f\n", inst.DisplayName, inst.Decimal, px)
	}
	if failed == len(ids) {
		return fmt.Errorf("no rates available: %w", market.ErrRateUnavailable)
	}
	return nil
}
