package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func sampleTrade(id string, at time.Time, pnl float64) TradeRecord {
	return TradeRecord{
		ID:         id,
		CreatedAt:  at,
		Pair:       "USD/JPY",
		Direction:  Buy,
		EntryPrice: 150.00,
		ExitPrice:  150.50,
		LotSize:    0.1,
		Pips:       50,
		PnL:        pnl,
		Notes:      "breakout",
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteRecordTrade(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := sampleTrade("T1", at, -12.5)

	got, err := j.RecordTrade(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "T1", got.ID)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		id        string
		createdAt time.Time
		pair      string
		direction string
		lot       float64
		pnl       float64
		notes     string
	)
	err = db.QueryRow(`
        SELECT id, created_at, pair, direction, lot_size, pnl, notes
        FROM trades LIMIT 1`).Scan(&id, &createdAt, &pair, &direction, &lot, &pnl, &notes)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, id)
	assert.True(t, createdAt.Equal(rec.CreatedAt))
	assert.Equal(t, "USD/JPY", pair)
	assert.Equal(t, "buy", direction)
	assert.InDelta(t, rec.LotSize, lot, 1e-9)
	assert.InDelta(t, rec.PnL, pnl, 1e-9)
	assert.Equal(t, rec.Notes, notes)
}

func TestSQLiteRecordTradeAssignsID(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	got, err := j.RecordTrade(context.Background(), sampleTrade("", time.Now(), 100))
	require.NoError(t, err)
	assert.Len(t, got.ID, 26)

	back, err := j.GetTrade(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ID, back.ID)
}

func TestSQLiteRecordTradeRejectsInvalid(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	bad := sampleTrade("", time.Now(), 100)
	bad.LotSize = 0
	_, err := j.RecordTrade(context.Background(), bad)
	require.Error(t, err)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "lot_size", fe.Field)
}

func TestSQLiteUpdateAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	rec, err := j.RecordTrade(ctx, sampleTrade("T1", time.Now().UTC(), 100))
	require.NoError(t, err)

	rec.PnL = -250
	rec.Notes = "moved stop too early"
	require.NoError(t, j.UpdateTrade(ctx, rec))

	got, err := j.GetTrade(ctx, "T1")
	require.NoError(t, err)
	assert.InDelta(t, -250.0, got.PnL, 1e-9)
	assert.Equal(t, "moved stop too early", got.Notes)

	require.NoError(t, j.DeleteTrade(ctx, "T1"))
	_, err = j.GetTrade(ctx, "T1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, j.DeleteTrade(ctx, "T1"), ErrNotFound)
	assert.ErrorIs(t, j.UpdateTrade(ctx, rec), ErrNotFound)
}
