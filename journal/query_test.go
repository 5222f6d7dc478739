package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	at := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	expected := TradeRecord{
		ID:         "T123",
		CreatedAt:  at,
		Pair:       "XAU/USD",
		Direction:  Sell,
		EntryPrice: 2350.5,
		ExitPrice:  2345.0,
		LotSize:    0.05,
		Pips:       55,
		PnL:        41250,
		Notes:      "trend",
	}

	_, err := j.RecordTrade(context.Background(), expected)
	require.NoError(t, err)

	actual, err := j.GetTrade(context.Background(), "T123")
	require.NoError(t, err)

	assert.Equal(t, expected.ID, actual.ID)
	assert.True(t, actual.CreatedAt.Equal(expected.CreatedAt))
	assert.Equal(t, expected.Pair, actual.Pair)
	assert.Equal(t, expected.Direction, actual.Direction)
	assert.InDelta(t, expected.EntryPrice, actual.EntryPrice, 1e-9)
	assert.InDelta(t, expected.ExitPrice, actual.ExitPrice, 1e-9)
	assert.InDelta(t, expected.LotSize, actual.LotSize, 1e-9)
	assert.InDelta(t, expected.Pips, actual.Pips, 1e-9)
	assert.InDelta(t, expected.PnL, actual.PnL, 1e-9)
	assert.Equal(t, expected.Notes, actual.Notes)
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTradesNewestFirstWithLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	// inserted out of order
	for _, tc := range []struct {
		id  string
		off time.Duration
	}{
		{"T3", 10 * time.Hour},
		{"T1", 2 * time.Hour},
		{"T2", 5 * time.Hour},
	} {
		_, err := j.RecordTrade(ctx, sampleTrade(tc.id, base.Add(tc.off), 100))
		require.NoError(t, err)
	}

	all, err := j.ListTrades(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "T3", all[0].ID)
	assert.Equal(t, "T2", all[1].ID)
	assert.Equal(t, "T1", all[2].ID)

	two, err := j.ListTrades(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, "T3", two[0].ID)
	assert.Equal(t, "T2", two[1].ID)
}

func TestListTradesBetween(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, off := range []time.Duration{1 * time.Hour, 5 * time.Hour, 10 * time.Hour, 24 * time.Hour} {
		_, err := j.RecordTrade(ctx, sampleTrade([]string{"T1", "T2", "T3", "T4"}[i], base.Add(off), 100))
		require.NoError(t, err)
	}

	results, err := j.ListTradesBetween(ctx, base.Add(3*time.Hour), base.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "T3", results[0].ID)
	assert.Equal(t, "T2", results[1].ID)
}

func TestListTradesBetweenBoundaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	_, err := j.RecordTrade(ctx, sampleTrade("T1", at, 100))
	require.NoError(t, err)

	inclusive, err := j.ListTradesBetween(ctx, at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inclusive, 1)

	exclusive, err := j.ListTradesBetween(ctx, at.Add(-time.Hour), at)
	require.NoError(t, err)
	assert.Empty(t, exclusive)
}

func TestListTradesEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	results, err := j.ListTrades(context.Background(), 100)
	require.NoError(t, err)
	assert.Empty(t, results)
}
