// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	pair TEXT NOT NULL,
	direction TEXT NOT NULL CHECK (direction IN ('buy', 'sell')),
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	lot_size REAL NOT NULL,
	pips REAL NOT NULL,
	pnl REAL NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_created_at ON trades(created_at);
CREATE INDEX IF NOT EXISTS idx_trades_pair ON trades(pair);
`
