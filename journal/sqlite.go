package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradelog/pkg/id"
)

// SQLite is the local trade store.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordTrade inserts t, assigning a ULID when it has no ID yet, and returns
// the stored record.
func (j *SQLite) RecordTrade(ctx context.Context, t TradeRecord) (TradeRecord, error) {
	if err := Validate(t); err != nil {
		return TradeRecord{}, err
	}
	if t.ID == "" {
		t.ID = id.NewAt(t.CreatedAt)
	}
	t.CreatedAt = t.CreatedAt.UTC()

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(id, created_at, pair, direction, entry_price, exit_price, lot_size, pips, pnl, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CreatedAt, t.Pair, string(t.Direction), t.EntryPrice,
		t.ExitPrice, t.LotSize, t.Pips, t.PnL, t.Notes,
	)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("insert trade: %w", err)
	}
	return t, nil
}

// UpdateTrade replaces every column of an existing trade.
func (j *SQLite) UpdateTrade(ctx context.Context, t TradeRecord) error {
	if err := Validate(t); err != nil {
		return err
	}
	res, err := j.db.ExecContext(ctx, `
		UPDATE trades SET
			created_at = ?, pair = ?, direction = ?, entry_price = ?, exit_price = ?,
			lot_size = ?, pips = ?, pnl = ?, notes = ?
		WHERE id = ?`,
		t.CreatedAt.UTC(), t.Pair, string(t.Direction), t.EntryPrice, t.ExitPrice,
		t.LotSize, t.Pips, t.PnL, t.Notes, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	return expectOne(res, t.ID)
}

// DeleteTrade removes a trade by ID.
func (j *SQLite) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	return expectOne(res, tradeID)
}

func expectOne(res sql.Result, tradeID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
