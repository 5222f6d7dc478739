package prompt

const promptTemplate = `# {{t "prompt.title"}}

{{t "prompt.intro"}}

## {{t "prompt.basic_stats"}}

{{with .Report.Stats -}}
- **{{t "stat.total_trades"}}**: {{count .TotalTrades}}
- **{{t "stat.win_rate"}}**: {{pct .WinRate}}
- **{{t "stat.total_pnl"}}**: {{money .TotalPnL}}
- **{{t "stat.wins"}}**: {{count .Wins}}
- **{{t "stat.losses"}}**: {{count .Losses}}
- **{{t "stat.profit_factor"}}**: {{f2 .ProfitFactor}}
- **{{t "stat.average_win"}}**: {{plain .AverageWin}}
- **{{t "stat.average_loss"}}**: {{plain .AverageLoss}}
- **{{t "stat.largest_win"}}**: {{plain .LargestWin}}
- **{{t "stat.largest_loss"}}**: {{plain .LargestLoss}}
{{end -}}
- **{{t "stat.max_drawdown"}}**: {{pct2 .Report.Drawdown.Max}}
- **{{t "stat.current_drawdown"}}**: {{pct2 .Report.Drawdown.Current}}
{{- if .Report.HasRR}}
- **{{t "stat.risk_reward"}}**: {{f2 .Report.RiskReward}}:1
{{- end}}

## {{heading "prompt.recent_trades" (len .Recent)}}

{{range $i, $t := .Recent -}}
{{inc $i}}. **{{$t.Pair}}** {{dir $t.Direction}} | {{t "trade.lot"}}: {{num $t.LotSize}} | {{t "trade.entry"}}: {{num $t.EntryPrice}} | {{t "trade.exit"}}: {{num $t.ExitPrice}} | {{t "trade.pips"}}: {{f1 $t.Pips}} | {{t "trade.pnl"}}: {{money $t.PnL}}
{{- if and $.Opts.IncludeNotes $t.Notes}} | {{t "trade.notes"}}: {{oneline $t.Notes}}{{end}} | {{t "trade.date"}}: {{date $t.CreatedAt}}
{{end -}}
{{if .Opts.IncludePairs}}
## {{t "prompt.pairs"}}

{{range .Report.Pairs -}}
- **{{.Pair}}**: {{count .TradeCount}} | {{t "stat.total_pnl"}}: {{money .TotalPnL}} | {{t "stat.win_rate"}}: {{pct .WinRate}}
{{end -}}
{{end -}}
{{if .Opts.IncludeTime}}
## {{t "prompt.time"}}

### {{t "prompt.time_of_day"}}

{{range .Report.TimeOfDay -}}
- **{{bucket .}}**: {{count .TradeCount}} | {{t "stat.total_pnl"}}: {{money .TotalPnL}} | {{t "stat.win_rate"}}: {{pct .WinRate}}
{{end}}
### {{t "prompt.weekday"}}

{{range .Report.Weekday -}}
- **{{bucket .}}**: {{count .TradeCount}} | {{t "stat.total_pnl"}}: {{money .TotalPnL}} | {{t "stat.win_rate"}}: {{pct .WinRate}}
{{end -}}
{{end -}}
{{if .Opts.IncludeRisk}}
## {{t "prompt.risk"}}

- **{{t "risk.avg_lot"}}**: {{lots .Risk.AvgLot}}
- **{{t "risk.avg_pips"}}**: {{f1 .Risk.AvgPips}} pips
- **{{t "stat.max_drawdown"}}**: {{pct2 .Report.Drawdown.Max}}
{{- if .Report.HasRR}}
- **{{t "stat.risk_reward"}}**: {{f2 .Report.RiskReward}}:1
{{- end}}
{{end}}
## {{t "prompt.questions"}}

1. {{t "question.1"}}
2. {{t "question.2"}}
3. {{t "question.3"}}
4. {{t "question.4"}}
5. {{t "question.5"}}
6. {{t "question.6"}}
{{if .Opts.IncludeGoals}}
## {{t "prompt.goals"}}

{{t "prompt.goals_intro"}}

- {{t "goal.1"}}
- {{t "goal.2"}}
- {{t "goal.3"}}
- {{t "goal.4"}}
{{end}}
---
{{t "prompt.closing"}}
`
