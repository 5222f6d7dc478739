package analytics

import "github.com/rustyeddy/tradelog/journal"

// Streaks are run lengths in trades. CurrentStreak is positive for a
// winning run and negative for a losing one.
type Streaks struct {
	MaxWinStreak  int
	MaxLossStreak int
	CurrentStreak int
}

// CalculateStreaks walks the trades oldest first. A flat trade breaks both
// run lengths but does not touch CurrentStreak, so W, flat, W still reports
// a current streak of +2.
func CalculateStreaks(trades []journal.TradeRecord) Streaks {
	var (
		s        Streaks
		winRun   int
		lossRun  int
		lastSign int // 0 until the first non-flat trade
	)

	for _, t := range chronological(trades) {
		p := pnl(t)
		switch {
		case p > 0:
			winRun++
			lossRun = 0
			s.MaxWinStreak = max(s.MaxWinStreak, winRun)
			if lastSign >= 0 {
				s.CurrentStreak++
			} else {
				s.CurrentStreak = 1
			}
			lastSign = 1
		case p < 0:
			lossRun++
			winRun = 0
			s.MaxLossStreak = max(s.MaxLossStreak, lossRun)
			if lastSign <= 0 {
				s.CurrentStreak--
			} else {
				s.CurrentStreak = -1
			}
			lastSign = -1
		default:
			winRun, lossRun = 0, 0
		}
	}
	return s
}
