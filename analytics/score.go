package analytics

import "math"

// Score is the composite 1-5 risk score and its four sub-scores.
type Score struct {
	Score        int
	Label        string
	Drawdown     int
	RiskReward   int
	WinRate      int
	ProfitFactor int
}

var scoreLabels = map[int]string{
	5: "excellent",
	4: "good",
	3: "average",
	2: "needs improvement",
	1: "dangerous",
}

// ScoreLabel returns the label for a composite score, or "" outside 1-5.
func ScoreLabel(n int) string {
	return scoreLabels[n]
}

// descending maps v onto 5..1 where lower is better.
func descending(v float64, limits [4]float64) int {
	for i, l := range limits {
		if v <= l {
			return 5 - i
		}
	}
	return 1
}

// ascending maps v onto 5..1 where higher is better.
func ascending(v float64, limits [4]float64) int {
	for i, l := range limits {
		if v >= l {
			return 5 - i
		}
	}
	return 1
}

// RiskScore grades max drawdown, risk/reward, win rate and profit factor
// and averages them. The mean is rounded half away from zero.
func RiskScore(s Stats, dd Drawdown) Score {
	sc := Score{
		Drawdown:     descending(dd.Max, [4]float64{10, 20, 30, 50}),
		WinRate:      ascending(s.WinRate, [4]float64{60, 50, 40, 30}),
		ProfitFactor: ascending(s.ProfitFactor, [4]float64{2.0, 1.5, 1.0, 0.5}),
	}

	rr, ok := RiskRewardRatio(s)
	if !ok {
		rr = 3
	}
	sc.RiskReward = ascending(rr, [4]float64{2.0, 1.5, 1.0, 0.5})

	mean := float64(sc.Drawdown+sc.RiskReward+sc.WinRate+sc.ProfitFactor) / 4
	sc.Score = int(math.Round(mean))
	sc.Label = ScoreLabel(sc.Score)
	return sc
}
