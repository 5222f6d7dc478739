package analytics

import (
	"slices"

	"github.com/rustyeddy/tradelog/journal"
)

// Drawdown values are percentages of the running equity peak. Peak is in
// account currency.
type Drawdown struct {
	Current float64
	Max     float64
	Peak    float64
}

// chronological returns a copy of trades sorted oldest first. Trades with
// equal timestamps keep their input order.
func chronological(trades []journal.TradeRecord) []journal.TradeRecord {
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b journal.TradeRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

func drawdownPct(peak, equity float64) float64 {
	if peak <= 0 {
		return 0
	}
	return (peak - equity) / peak * 100
}

// CalculateDrawdown walks the cumulative P/L curve starting from zero.
// While the curve has never been above zero the drawdown is reported as 0%,
// so an all-losing history shows no drawdown.
func CalculateDrawdown(trades []journal.TradeRecord) Drawdown {
	var dd Drawdown
	var equity float64
	for _, t := range chronological(trades) {
		equity += pnl(t)
		if equity > dd.Peak {
			dd.Peak = equity
		}
		if pct := drawdownPct(dd.Peak, equity); pct > dd.Max {
			dd.Max = pct
		}
	}
	dd.Current = drawdownPct(dd.Peak, equity)
	return dd
}
