package journal

import (
	"math"

	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/settings"
)

// BucketFor picks the pip economics that apply to pair: yen crosses, gold,
// or everything else priced in dollars.
func BucketFor(pair string, d settings.Derived) settings.Bucket {
	switch {
	case market.IsGold(pair):
		return d.Gold
	case market.IsJPYQuoted(pair):
		return d.FXJPY
	default:
		return d.FXUSD
	}
}

// ComputeOutcome derives the pips and account-currency P/L of a closed trade
// from its prices. Pips are rounded to 0.1 and P/L to whole units, the
// precision the journal displays.
func ComputeOutcome(dir Direction, pair string, entry, exit, lots float64, d settings.Derived) (pips, pnl float64) {
	b := BucketFor(pair, d)
	pips = (exit - entry) * b.PipMultiplier * dir.Sign()
	pnl = pips * lots * b.PipValuePerLot
	return math.Round(pips*10) / 10, math.Round(pnl)
}

// FillOutcome sets Pips and PnL on t from its prices.
func FillOutcome(t *TradeRecord, d settings.Derived) {
	t.Pips, t.PnL = ComputeOutcome(t.Direction, t.Pair, t.EntryPrice, t.ExitPrice, t.LotSize, d)
}
