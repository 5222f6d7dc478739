package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradelog/settings"
)

func TestComputeOutcome(t *testing.T) {
	t.Parallel()

	d := settings.Derive(settings.Default())

	tests := []struct {
		name     string
		dir      Direction
		pair     string
		entry    float64
		exit     float64
		lots     float64
		wantPips float64
		wantPnL  float64
	}{
		{"yen cross buy", Buy, "USD/JPY", 150.00, 150.50, 1, 50, 50000},
		{"yen cross sell loss", Sell, "EUR/JPY", 160.00, 160.25, 0.1, -25, -2500},
		{"dollar pair", Buy, "EUR/USD", 1.0850, 1.0870, 1, 20, 30000},
		{"gold sell", Sell, "XAUUSD", 2050.0, 2045.0, 0.1, 50, 7500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pips, pnl := ComputeOutcome(tt.dir, tt.pair, tt.entry, tt.exit, tt.lots, d)
			assert.InDelta(t, tt.wantPips, pips, 1e-9)
			assert.InDelta(t, tt.wantPnL, pnl, 1e-9)
		})
	}
}

func TestFillOutcome(t *testing.T) {
	t.Parallel()

	d := settings.Derive(settings.Default())
	rec := TradeRecord{Pair: "GBP/JPY", Direction: Buy, EntryPrice: 190.10, ExitPrice: 189.90, LotSize: 0.5}
	FillOutcome(&rec, d)

	assert.InDelta(t, -20.0, rec.Pips, 1e-9)
	assert.InDelta(t, -10000.0, rec.PnL, 1e-9)
}
