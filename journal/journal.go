// journal/journal.go
package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a trade ID does not exist in the store.
var ErrNotFound = errors.New("trade not found")

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// ParseDirection accepts buy/sell in any case and the Japanese labels the
// journal UI writes.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long", "買い", "買":
		return Buy, nil
	case "sell", "short", "売り", "売":
		return Sell, nil
	}
	return "", fmt.Errorf("direction must be buy or sell, got %q", s)
}

// Sign is +1 for buys and -1 for sells.
func (d Direction) Sign() float64 {
	if d == Sell {
		return -1
	}
	return 1
}

// TradeRecord is one closed trade as logged by the user.
type TradeRecord struct {
	ID         string
	CreatedAt  time.Time
	Pair       string
	Direction  Direction
	EntryPrice float64
	ExitPrice  float64
	LotSize    float64
	Pips       float64 // stored for display, analytics never recompute it
	PnL        float64 // account currency
	Notes      string
}

// Journal is anything that can persist trade records.
type Journal interface {
	RecordTrade(ctx context.Context, t TradeRecord) (TradeRecord, error)
	Close() error
}

// Store is the read side consumed by the CLI before handing a snapshot to
// the analytics engine.
type Store interface {
	Journal
	GetTrade(ctx context.Context, id string) (TradeRecord, error)
	ListTrades(ctx context.Context, limit int) ([]TradeRecord, error)
	ListTradesBetween(ctx context.Context, start, end time.Time) ([]TradeRecord, error)
	UpdateTrade(ctx context.Context, t TradeRecord) error
	DeleteTrade(ctx context.Context, id string) error
}
