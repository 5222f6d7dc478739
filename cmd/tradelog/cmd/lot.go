package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/risk"
)

var lotCmd = &cobra.Command{
	Use:   "lot",
	Short: "Recommend a lot size",
	Long: `Recommend a position size from the account balance, the risk percentage
and the stop distance. The stop is given either as a distance (pips for
forex, price units otherwise) or as entry and stop prices.

USD-quoted pairs need USD/JPY. It is fetched live unless --rate is given.

Examples:
  tradelog lot --instrument USDJPY --balance 1000000 --risk 2 --stop 50
  tradelog lot --instrument EURUSD --entry 1.0850 --stop-price 1.0820 --rate 150
  tradelog lot --instrument XAUUSD --stop 5 --account-type domestic`,
	Args: cobra.NoArgs,
	RunE: runLot,
}

var (
	lotInstrument  string
	lotBalance     float64
	lotRiskPercent float64
	lotStop        float64
	lotEntry       float64
	lotStopPrice   float64
	lotTakeProfit  float64
	lotAccountType string
	lotContract    float64
	lotRate        float64
)

func init() {
	rootCmd.AddCommand(lotCmd)

	f := lotCmd.Flags()
	f.StringVarP(&lotInstrument, "instrument", "i", market.DefaultInstrumentID, "instrument, e.g. USDJPY, EUR/USD, XAUUSD")
	f.Float64VarP(&lotBalance, "balance", "b", 0, "account balance (default from config)")
	f.Float64VarP(&lotRiskPercent, "risk", "r", 0, "risk percent of balance (default from config)")
	f.Float64VarP(&lotStop, "stop", "s", 0, "stop distance")
	f.Float64Var(&lotEntry, "entry", 0, "entry price, used with --stop-price")
	f.Float64Var(&lotStopPrice, "stop-price", 0, "stop-loss price, used with --entry")
	f.Float64Var(&lotTakeProfit, "take-profit", 0, "take-profit price, reports the reward:risk ratio")
	f.StringVar(&lotAccountType, "account-type", "", "overseas, domestic or micro (default from config)")
	f.Float64Var(&lotContract, "contract-size", 0, "forex contract size, overrides --account-type")
	f.Float64Var(&lotRate, "rate", 0, "USD/JPY rate for USD-quoted pairs")
}

func runLot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	inst, err := market.Lookup(lotInstrument)
	if err != nil {
		return err
	}

	in := risk.LotInput{
		Balance:          lotBalance,
		RiskPercent:      lotRiskPercent,
		StopLossDistance: lotStop,
		Instrument:       inst,
	}
	if !cmd.Flags().Changed("balance") {
		in.Balance = cfg.Account.Balance
	}
	if !cmd.Flags().Changed("risk") {
		in.RiskPercent = cfg.Account.RiskPercent
	}
	if !cmd.Flags().Changed("stop") && lotEntry > 0 && lotStopPrice > 0 {
		in.StopLossDistance = risk.StopDistance(inst, lotEntry, lotStopPrice)
	}

	acct := lotAccountType
	if acct == "" {
		acct = cfg.Account.AccountType
	}
	at, err := risk.ParseAccountType(acct)
	if err != nil {
		return err
	}
	in.ContractSizeOverride = at.ContractSize()
	if lotContract > 0 {
		in.ContractSizeOverride = lotContract
	}

	if inst.Type == market.Forex && !inst.IsJPYPair {
		svc, cleanup, err := newRateService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		rate, err := market.QuoteToAccountRate(ctx, inst, lotRate, svc)
		if err != nil {
			if errors.Is(err, market.ErrRateUnavailable) {
				return fmt.Errorf("%w (pass --rate to enter USD/JPY manually)", err)
			}
			return err
		}
		in.USDJPYRate = rate
	}

	res, err := risk.ComputeRecommendedLot(in)
	if err != nil {
		var verr *risk.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("check --%s: %w", flagFor(verr.Field), err)
		}
		return err
	}

	fmt.Fprintf(out, "Instrument:      %s (%s)\n", inst.DisplayName, inst.Type)
	fmt.Fprintf(out, "Balance:         %.0f\n", in.Balance)
	fmt.Fprintf(out, "Risk:            %.2f%% (%.0f)\n", in.RiskPercent, res.RiskAmount)
	fmt.Fprintf(out, "Stop distance:   %g\n", in.StopLossDistance)
	if in.USDJPYRate > 0 {
		fmt.Fprintf(out, "USD/JPY:         %.3f\n", in.USDJPYRate)
	}
	fmt.Fprintf(out, "Pip value/lot:   %.2f\n", res.PipValuePerLot)
	fmt.Fprintf(out, "Recommended lot: %.*f\n", inst.LotDecimal, res.Lots)
	fmt.Fprintf(out, "Actual risk:     %.0f (%.2f%%)\n", res.ActualRisk, res.ActualRiskPercent)
	if lotEntry > 0 && lotStopPrice > 0 && lotTakeProfit > 0 {
		fmt.Fprintf(out, "Reward:risk:     %.2f\n", risk.RR(lotEntry, lotStopPrice, lotTakeProfit))
	}

	dec := risk.CheckLot(cfg.Account.Policy(), res, in)
	for _, v := range dec.Violations {
		fmt.Fprintf(out, "⚠ %s: %s\n", v.Code, v.Msg)
	}
	return nil
}

func flagFor(field string) string {
	switch field {
	case "balance":
		return "balance"
	case "risk_percent":
		return "risk"
	case "stop_loss_distance":
		return "stop"
	}
	return "instrument"
}
