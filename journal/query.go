package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const selectTrades = `
	SELECT id, created_at, pair, direction, entry_price, exit_price, lot_size, pips, pnl, notes
	FROM trades`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (TradeRecord, error) {
	var (
		rec TradeRecord
		dir string
	)
	err := s.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Pair,
		&dir,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.LotSize,
		&rec.Pips,
		&rec.PnL,
		&rec.Notes,
	)
	rec.Direction = Direction(dir)
	return rec, err
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (TradeRecord, error) {
	row := j.db.QueryRowContext(ctx, selectTrades+` WHERE id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns the most recent trades first. A limit <= 0 returns
// every trade.
func (j *SQLite) ListTrades(ctx context.Context, limit int) ([]TradeRecord, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	return j.query(ctx, selectTrades+`
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
}

// ListTradesBetween returns trades created within [start, end), newest first.
func (j *SQLite) ListTradesBetween(ctx context.Context, start, end time.Time) ([]TradeRecord, error) {
	return j.query(ctx, selectTrades+`
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at DESC, id DESC`, start.UTC(), end.UTC())
}

func (j *SQLite) query(ctx context.Context, q string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
