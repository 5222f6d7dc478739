package analytics

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/tradelog/journal"
)

// Report bundles every analysis for one snapshot of trades.
type Report struct {
	Stats      Stats
	Drawdown   Drawdown
	Streaks    Streaks
	Score      Score
	RiskReward float64
	HasRR      bool

	Pairs     []PairStats
	TimeOfDay []BucketStats
	Weekday   []BucketStats
	LotSize   []BucketStats
}

// Summarize runs all analyses over trades. loc selects the zone for the
// time buckets; nil means DefaultLocation.
func Summarize(trades []journal.TradeRecord, loc *time.Location) Report {
	stats := CalculateStats(trades)
	dd := CalculateDrawdown(trades)
	rr, ok := RiskRewardRatio(stats)
	return Report{
		Stats:      stats,
		Drawdown:   dd,
		Streaks:    CalculateStreaks(trades),
		Score:      RiskScore(stats, dd),
		RiskReward: rr,
		HasRR:      ok,
		Pairs:      StatsByPair(trades),
		TimeOfDay:  StatsByTimeOfDay(trades, loc),
		Weekday:    StatsByWeekday(trades, loc),
		LotSize:    StatsByLotSize(trades),
	}
}

func PrintReport(w io.Writer, r Report) {
	s := r.Stats
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trading Statistics")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", s.WinRate)
	fmt.Fprintf(w, "Net P/L:       %.0f\n", s.TotalPnL)
	fmt.Fprintf(w, "Average Win:   %.0f\n", s.AverageWin)
	fmt.Fprintf(w, "Average Loss:  %.0f\n", s.AverageLoss)
	fmt.Fprintf(w, "Largest Win:   %.0f\n", s.LargestWin)
	fmt.Fprintf(w, "Largest Loss:  %.0f\n", s.LargestLoss)
	if s.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	}
	if r.HasRR {
		fmt.Fprintf(w, "Risk/Reward:   %.2f\n", r.RiskReward)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Drawdown")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Max:           %.2f%%\n", r.Drawdown.Max)
	fmt.Fprintf(w, "Current:       %.2f%%\n", r.Drawdown.Current)
	fmt.Fprintf(w, "Peak:          %.0f\n", r.Drawdown.Peak)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Streaks")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Max Wins:      %d\n", r.Streaks.MaxWinStreak)
	fmt.Fprintf(w, "Max Losses:    %d\n", r.Streaks.MaxLossStreak)
	fmt.Fprintf(w, "Current:       %+d\n", r.Streaks.CurrentStreak)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk Score")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Score:         %d/5 (%s)\n", r.Score.Score, r.Score.Label)
	fmt.Fprintf(w, "Drawdown:      %d/5\n", r.Score.Drawdown)
	fmt.Fprintf(w, "Risk/Reward:   %d/5\n", r.Score.RiskReward)
	fmt.Fprintf(w, "Win Rate:      %d/5\n", r.Score.WinRate)
	fmt.Fprintf(w, "Profit Factor: %d/5\n", r.Score.ProfitFactor)

	if len(r.Pairs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By Pair")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, p := range r.Pairs {
			fmt.Fprintf(w, "%-14s %4d trades  %10.0f  %5.1f%%\n", p.Pair, p.TradeCount, p.TotalPnL, p.WinRate)
		}
	}

	printBuckets(w, "By Time of Day", r.TimeOfDay)
	printBuckets(w, "By Weekday", r.Weekday)
	printBuckets(w, "By Lot Size", r.LotSize)

	fmt.Fprintln(w)
}

func printBuckets(w io.Writer, title string, buckets []BucketStats) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "--------------------------------------------------")
	for _, b := range buckets {
		fmt.Fprintf(w, "%-18s %4d trades  %10.0f  %5.1f%%\n", b.Label, b.TradeCount, b.TotalPnL, b.WinRate)
	}
}
