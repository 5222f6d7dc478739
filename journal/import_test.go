package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONArray(t *testing.T) {
	t.Parallel()

	in := `[
	  {"created_at": "2024-03-01T10:00:00Z", "pair": "EUR/USD", "direction": "buy",
	   "entry_price": 1.08, "exit_price": 1.082, "lot_size": 0.5, "pips": 20, "pnl": 15000},
	  {"date": "2024-03-02 10:00", "symbol": "GOLD", "side": "sell",
	   "entry": 2050, "exit": 2055, "lots": 0.1, "pips": -50, "profit": -7500, "memo": null}
	]`

	rows, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1.08", rows[0]["entry_price"])
	assert.Equal(t, "GOLD", rows[1]["pair"])
	assert.Equal(t, "", rows[1]["notes"])

	res := Import(rows, time.UTC)
	require.Empty(t, res.Errors)
	require.Len(t, res.Trades, 2)
	assert.Equal(t, "XAU/USD", res.Trades[1].Pair)
	assert.InDelta(t, -7500.0, res.Trades[1].PnL, 1e-9)
}

func TestReadJSONSingleObject(t *testing.T) {
	t.Parallel()

	rows, err := ReadJSON(strings.NewReader(`{"pair": "USDJPY", "pnl": -3.5}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "-3.5", rows[0]["pnl"])
}

func TestReadJSONInvalid(t *testing.T) {
	t.Parallel()

	_, err := ReadJSON(strings.NewReader(`[{"pair": `))
	assert.Error(t, err)
}

func TestReadAuto(t *testing.T) {
	t.Parallel()

	rows, err := ReadAuto(strings.NewReader("\n  [{\"pair\": \"EURJPY\"}]"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EURJPY", rows[0]["pair"])

	rows, err = ReadAuto(strings.NewReader("pair,pnl\nGBPJPY,100\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0]["pnl"])

	rows, err = ReadAuto(strings.NewReader("\r\n\t pair,pnl\nUSDJPY,-50\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "USDJPY", rows[0]["pair"])
	assert.Equal(t, "-50", rows[0]["pnl"])

	rows, err = ReadAuto(strings.NewReader("   "))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestImportReportsBadRows(t *testing.T) {
	t.Parallel()

	good := validRaw()
	bad := validRaw()
	bad["lot_size"] = "zero"

	res := Import([]RawTrade{good, bad, good}, time.UTC)
	assert.Len(t, res.Trades, 2)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Error(), "row 2")

	var fe *FieldError
	require.ErrorAs(t, res.Errors[0], &fe)
	assert.Equal(t, "lot_size", fe.Field)
}
