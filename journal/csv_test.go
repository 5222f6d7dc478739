package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	require.NoError(t, err)
	assert.Equal(t, CSVHeader, header)
}

func TestCSVJournalRecordTrade(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	j := NewCSVWriter(&buf)
	require.NoError(t, j.WriteHeader())

	rec := sampleTrade("T1", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), -1250)
	rec.Notes = "chased, entry late"
	_, err := j.RecordTrade(context.Background(), rec)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"T1", "2024-03-15T10:30:00Z", "USD/JPY", "buy", "150", "150.5", "0.1", "50", "-1250", "chased, entry late",
	}, rows[1])
}

func TestCSVExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	j := NewCSVWriter(&buf)
	require.NoError(t, j.WriteHeader())

	want := []TradeRecord{
		sampleTrade("A", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 5000),
		sampleTrade("B", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), -3000),
	}
	for _, rec := range want {
		_, err := j.RecordTrade(context.Background(), rec)
		require.NoError(t, err)
	}
	require.NoError(t, j.Close())

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)

	res := Import(rows, time.UTC)
	require.Empty(t, res.Errors)
	require.Len(t, res.Trades, 2)
	for i := range want {
		assert.Equal(t, want[i].ID, res.Trades[i].ID)
		assert.True(t, want[i].CreatedAt.Equal(res.Trades[i].CreatedAt))
		assert.InDelta(t, want[i].PnL, res.Trades[i].PnL, 1e-9)
	}
}

func TestReadCSVHeaderAliases(t *testing.T) {
	t.Parallel()

	in := "\ufeffDate,Symbol,Side,Entry,Exit,Lots,Pips,Profit,Memo\n" +
		"2024/05/01 21:15,usdjpy,買い,155.20,155.45,0.3,25,\"7,500\",news spike\n"

	rows, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2024/05/01 21:15", row["created_at"])
	assert.Equal(t, "usdjpy", row["pair"])
	assert.Equal(t, "買い", row["direction"])
	assert.Equal(t, "7,500", row["pnl"])
	assert.Equal(t, "news spike", row["notes"])

	res := Import(rows, time.UTC)
	require.Empty(t, res.Errors)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "USDJPY", res.Trades[0].Pair)
	assert.Equal(t, Buy, res.Trades[0].Direction)
	assert.InDelta(t, 7500.0, res.Trades[0].PnL, 1e-9)
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
