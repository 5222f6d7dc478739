// Package prompt renders a Markdown request for an AI chat service from a
// trade history and its statistics.
package prompt

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/message"

	"github.com/rustyeddy/tradelog/analytics"
	"github.com/rustyeddy/tradelog/i18n"
	"github.com/rustyeddy/tradelog/journal"
)

// ErrNoTrades is returned when there is nothing to analyze.
var ErrNoTrades = errors.New("no trades to analyze")

// DefaultRecentTrades is how many of the newest trades are listed.
const DefaultRecentTrades = 10

// Options toggle the optional sections. The zero value renders the basic
// statistics, the recent trades and the questions in English.
type Options struct {
	Language     string
	Location     *time.Location // nil means analytics.DefaultLocation
	RecentTrades int

	IncludeNotes bool
	IncludePairs bool
	IncludeTime  bool
	IncludeRisk  bool
	IncludeGoals bool

	// Translator is shared between calls when set; otherwise one is loaded
	// per call.
	Translator *i18n.Translator
}

// Providers maps the supported chat services to the page that opens a new
// conversation.
var Providers = map[string]string{
	"chatgpt": "https://chat.openai.com/",
	"claude":  "https://claude.ai/new",
	"gemini":  "https://gemini.google.com/",
}

// ProviderURL looks up a chat service by name.
func ProviderURL(name string) (string, error) {
	u, ok := Providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown provider %q", name)
	}
	return u, nil
}

type riskInfo struct {
	AvgLot  float64
	AvgPips float64
}

type view struct {
	Opts   Options
	Report analytics.Report
	Recent []journal.TradeRecord
	Risk   riskInfo
}

// Generate renders the prompt. trades may be in any order.
func Generate(trades []journal.TradeRecord, opts Options) (string, error) {
	if len(trades) == 0 {
		return "", ErrNoTrades
	}
	if opts.Location == nil {
		opts.Location = analytics.DefaultLocation
	}
	if opts.RecentTrades <= 0 {
		opts.RecentTrades = DefaultRecentTrades
	}
	tr := opts.Translator
	if tr == nil {
		var err error
		if tr, err = i18n.New(); err != nil {
			return "", err
		}
	}

	v := view{
		Opts:   opts,
		Report: analytics.Summarize(trades, opts.Location),
		Recent: newest(trades, opts.RecentTrades),
		Risk:   riskSummary(trades),
	}

	tmpl, err := template.New("prompt").Funcs(funcs(tr.Localizer(opts.Language), opts)).Parse(promptTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, v); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}

func newest(trades []journal.TradeRecord, n int) []journal.TradeRecord {
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b journal.TradeRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func riskSummary(trades []journal.TradeRecord) riskInfo {
	var lots, pips float64
	for _, t := range trades {
		lots += t.LotSize
		pips += math.Abs(t.Pips)
	}
	n := float64(len(trades))
	return riskInfo{AvgLot: lots / n, AvgPips: pips / n}
}

func funcs(l *i18n.Localizer, opts Options) template.FuncMap {
	p := message.NewPrinter(i18n.Tag(l.Lang()))

	money := func(v float64) string {
		s := p.Sprintf("%d", int64(math.Round(v)))
		if v >= 0.5 {
			s = "+" + s
		}
		return l.T("unit.money", map[string]any{"Amount": s})
	}

	return template.FuncMap{
		"t": func(id string) string { return l.T(id, nil) },
		"count": func(n int) string {
			return l.T("unit.trades", map[string]any{"Count": p.Sprintf("%d", n)})
		},
		"heading": func(id string, n int) string {
			return l.T(id, map[string]any{"Count": n})
		},
		"money": money,
		"plain": func(v float64) string {
			return l.T("unit.money", map[string]any{"Amount": p.Sprintf("%d", int64(math.Round(v)))})
		},
		"lots": func(v float64) string {
			return l.T("unit.lots", map[string]any{"Amount": p.Sprintf("%.2f", v)})
		},
		"pct":  func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"pct2": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"f1":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"f2":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"num":  func(v float64) string { return fmt.Sprintf("%g", v) },
		"inc":  func(i int) int { return i + 1 },
		"dir":  func(d journal.Direction) string { return l.T("direction."+string(d), nil) },
		"bucket": func(b analytics.BucketStats) string {
			return l.T("bucket."+b.Key, nil)
		},
		"date": func(t time.Time) string { return t.In(opts.Location).Format("2006-01-02 15:04") },
		"oneline": func(s string) string {
			return strings.Join(strings.Fields(s), " ")
		},
	}
}
