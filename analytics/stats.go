// Package analytics turns a list of closed trades into summary statistics,
// drawdown, breakdowns, streaks and a composite risk score.
//
// Every function is a pure reducer: the input slice is never modified and
// degenerate input (empty, all wins, all losses, all flat) yields zero or
// neutral values rather than an error.
package analytics

import (
	"math"

	"github.com/rustyeddy/tradelog/journal"
)

// Stats summarizes a set of trades. WinRate is a percentage.
type Stats struct {
	TotalTrades  int
	WinRate      float64
	TotalPnL     float64
	Wins         int
	Losses       int
	ProfitFactor float64
	AverageWin   float64
	AverageLoss  float64 // absolute value
	LargestWin   float64
	LargestLoss  float64 // most negative pnl, <= 0
}

// pnl returns the trade P/L, treating NaN and infinities as flat.
func pnl(t journal.TradeRecord) float64 {
	if math.IsNaN(t.PnL) || math.IsInf(t.PnL, 0) {
		return 0
	}
	return t.PnL
}

func winRate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}

// CalculateStats computes win rate, profit factor, averages and extrema.
// Profit factor is 0 when there are no losses; it is never +Inf.
func CalculateStats(trades []journal.TradeRecord) Stats {
	var s Stats
	if len(trades) == 0 {
		return s
	}

	var grossWin, grossLoss float64
	for _, t := range trades {
		p := pnl(t)
		s.TotalPnL += p
		switch {
		case p > 0:
			s.Wins++
			grossWin += p
			if s.Wins == 1 || p > s.LargestWin {
				s.LargestWin = p
			}
		case p < 0:
			s.Losses++
			grossLoss += p
			if s.Losses == 1 || p < s.LargestLoss {
				s.LargestLoss = p
			}
		}
	}

	grossLoss = math.Abs(grossLoss)
	s.TotalTrades = len(trades)
	s.WinRate = winRate(s.Wins, s.TotalTrades)
	if grossLoss > 0 {
		s.ProfitFactor = grossWin / grossLoss
	}
	if s.Wins > 0 {
		s.AverageWin = grossWin / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AverageLoss = grossLoss / float64(s.Losses)
	}
	return s
}

// RiskRewardRatio is |AverageWin / AverageLoss|. ok is false when there are
// no losses and the ratio is undefined.
func RiskRewardRatio(s Stats) (ratio float64, ok bool) {
	if s.AverageLoss == 0 {
		return 0, false
	}
	return math.Abs(s.AverageWin / s.AverageLoss), true
}
