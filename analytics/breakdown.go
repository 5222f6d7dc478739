package analytics

import (
	"math"
	"slices"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
)

// DefaultLocation is the zone used for time-of-day and weekday buckets when
// the caller passes nil: a fixed UTC+09:00 offset, independent of the host.
var DefaultLocation = time.FixedZone("JST", 9*60*60)

// PairStats is the per-instrument breakdown.
type PairStats struct {
	Pair       string
	TotalPnL   float64
	WinRate    float64
	TradeCount int
}

// BucketStats is one non-empty bucket of a time or lot-size breakdown. Key
// is a stable identifier; Label is for display.
type BucketStats struct {
	Key        string
	Label      string
	TradeCount int
	TotalPnL   float64
	WinRate    float64
}

type bucketDef struct {
	key   string
	label string
}

type tally struct {
	count int
	wins  int
	pnl   float64
}

func (t *tally) add(tr journal.TradeRecord) {
	p := pnl(tr)
	t.count++
	t.pnl += p
	if p > 0 {
		t.wins++
	}
}

// StatsByPair groups trades by normalized pair and sorts the groups by total
// P/L, highest first. Ties keep first-seen order.
func StatsByPair(trades []journal.TradeRecord) []PairStats {
	var order []string
	groups := map[string]*tally{}
	for _, t := range trades {
		pair := market.NormalizePair(t.Pair)
		g, ok := groups[pair]
		if !ok {
			g = &tally{}
			groups[pair] = g
			order = append(order, pair)
		}
		g.add(t)
	}

	out := make([]PairStats, 0, len(order))
	for _, pair := range order {
		g := groups[pair]
		out = append(out, PairStats{
			Pair:       pair,
			TotalPnL:   g.pnl,
			WinRate:    winRate(g.wins, g.count),
			TradeCount: g.count,
		})
	}
	slices.SortStableFunc(out, func(a, b PairStats) int {
		return comparePnLDesc(a.TotalPnL, b.TotalPnL)
	})
	return out
}

func comparePnLDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// bucketize tallies trades into defs using index, which returns -1 for a
// trade that belongs to no bucket. Empty buckets are dropped and the rest
// sorted by total P/L, highest first.
func bucketize(trades []journal.TradeRecord, defs []bucketDef, index func(journal.TradeRecord) int) []BucketStats {
	tallies := make([]tally, len(defs))
	for _, t := range trades {
		if i := index(t); i >= 0 && i < len(defs) {
			tallies[i].add(t)
		}
	}

	var out []BucketStats
	for i, d := range defs {
		if tallies[i].count == 0 {
			continue
		}
		out = append(out, BucketStats{
			Key:        d.key,
			Label:      d.label,
			TradeCount: tallies[i].count,
			TotalPnL:   tallies[i].pnl,
			WinRate:    winRate(tallies[i].wins, tallies[i].count),
		})
	}
	slices.SortStableFunc(out, func(a, b BucketStats) int {
		return comparePnLDesc(a.TotalPnL, b.TotalPnL)
	})
	return out
}

var timeOfDayBuckets = []bucketDef{
	{"morning", "Morning (06-12)"},
	{"afternoon", "Afternoon (12-18)"},
	{"evening", "Evening (18-24)"},
	{"night", "Night (00-06)"},
}

// StatsByTimeOfDay buckets trades by the hour of CreatedAt in loc.
func StatsByTimeOfDay(trades []journal.TradeRecord, loc *time.Location) []BucketStats {
	if loc == nil {
		loc = DefaultLocation
	}
	return bucketize(trades, timeOfDayBuckets, func(t journal.TradeRecord) int {
		h := t.CreatedAt.In(loc).Hour()
		switch {
		case h >= 6 && h < 12:
			return 0
		case h >= 12 && h < 18:
			return 1
		case h >= 18:
			return 2
		default:
			return 3
		}
	})
}

var weekdayBuckets = []bucketDef{
	{"sun", "Sunday"},
	{"mon", "Monday"},
	{"tue", "Tuesday"},
	{"wed", "Wednesday"},
	{"thu", "Thursday"},
	{"fri", "Friday"},
	{"sat", "Saturday"},
}

// StatsByWeekday buckets trades by the weekday of CreatedAt in loc.
func StatsByWeekday(trades []journal.TradeRecord, loc *time.Location) []BucketStats {
	if loc == nil {
		loc = DefaultLocation
	}
	return bucketize(trades, weekdayBuckets, func(t journal.TradeRecord) int {
		return int(t.CreatedAt.In(loc).Weekday())
	})
}

type lotRange struct {
	min, max float64
}

var (
	lotSizeBuckets = []bucketDef{
		{"0.01-0.1", "0.01-0.1"},
		{"0.1-0.5", "0.1-0.5"},
		{"0.5-1.0", "0.5-1.0"},
		{"1.0-2.0", "1.0-2.0"},
		{"2.0+", "2.0+"},
	}
	lotRanges = []lotRange{
		{0.01, 0.1},
		{0.1, 0.5},
		{0.5, 1.0},
		{1.0, 2.0},
		{2.0, math.Inf(1)},
	}
)

// StatsByLotSize buckets trades into half-open lot ranges. Lots below 0.01
// fall into no bucket and are not counted.
func StatsByLotSize(trades []journal.TradeRecord) []BucketStats {
	return bucketize(trades, lotSizeBuckets, func(t journal.TradeRecord) int {
		for i, r := range lotRanges {
			if t.LotSize >= r.min && t.LotSize < r.max {
				return i
			}
		}
		return -1
	})
}
