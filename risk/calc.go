package risk

import (
	"math"

	"github.com/rustyeddy/tradelog/market"
)

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PipSize is the price increment that StopLossDistance is measured in:
// 0.01 for yen-quoted forex, 0.0001 for other forex, one price unit for
// commodities, indices and crypto.
func PipSize(inst market.Instrument) float64 {
	if inst.Type != market.Forex {
		return 1
	}
	if inst.IsJPYPair {
		return 0.01
	}
	return 0.0001
}

// StopDistance converts an entry and stop price into the distance unit the
// lot calculator expects.
func StopDistance(inst market.Instrument, entry, stop float64) float64 {
	return abs(entry-stop) / PipSize(inst)
}

func RR(entry, stop, takeProfit float64) float64 {
	risk := abs(entry - stop)
	reward := abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// RiskPct is plannedRisk as a fraction of balance. A non-positive balance
// yields +Inf so that any limit check fails.
func RiskPct(plannedRisk, balance float64) float64 {
	if balance <= 0 {
		return math.Inf(1)
	}
	return plannedRisk / balance
}
