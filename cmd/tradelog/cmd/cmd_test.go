package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so that package-level flag
// variables do not leak between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "tradelog.yaml")
	body := fmt.Sprintf(`journal:
  db_path: %s
settings_file: %s
log_level: error
`, filepath.Join(dir, "trades.sqlite"), filepath.Join(dir, "settings.yaml"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tradelog version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tradelog.yaml")

	out, _, err := execute(t, "config", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, _, err = execute(t, "config", "validate", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Rate cache: memory")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestJournalWorkflow(t *testing.T) {
	cfgPath := writeTestConfig(t)

	// pips and P/L from the default settings: 0.50 yen = 50 pips, 1000 yen per pip per lot
	out, _, err := execute(t, "--config", cfgPath, "journal", "add",
		"--pair", "USD/JPY", "--direction", "buy", "--entry", "150.00", "--exit", "150.50",
		"--lot", "0.1", "--at", "2024-03-04 10:00", "--notes", "breakout")
	require.NoError(t, err)
	assert.Contains(t, out, "** Trade: USD/JPY buy")
	assert.Contains(t, out, ":PIPS: 50.0")
	assert.Contains(t, out, ":PNL: 5000")
	assert.Contains(t, out, ":CREATED_AT: 2024-03-04T01:00:00Z")

	out, _, err = execute(t, "--config", cfgPath, "journal", "add",
		"--pair", "EUR/USD", "--direction", "sell", "--entry", "1.0850", "--exit", "1.0870",
		"--lot", "0.2", "--pips", "-20", "--pnl", "-6000", "--at", "2024-03-05 22:00")
	require.NoError(t, err)
	assert.Contains(t, out, ":PNL: -6000")

	out, _, err = execute(t, "--config", cfgPath, "journal", "list", "--format", "csv")
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "EUR/USD")
	assert.Contains(t, string(lines[2]), "USD/JPY")

	out, _, err = execute(t, "--config", cfgPath, "journal", "list", "--from", "2024-03-05", "--to", "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, "EUR/USD")
	assert.NotContains(t, out, "USD/JPY")

	out, _, err = execute(t, "--config", cfgPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Trades:        2")
	assert.Contains(t, out, "Wins:          1")

	exportPath := filepath.Join(t.TempDir(), "export.csv")
	_, errOut, err := execute(t, "--config", cfgPath, "journal", "export", "--output", exportPath)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Exported 2 trades")
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("id,created_at,pair,direction")))

	out, _, err = execute(t, "--config", cfgPath, "prompt", "--all", "--provider", "claude")
	require.NoError(t, err)
	assert.Contains(t, out, "USD/JPY")

	tradeID := string(bytes.SplitN(lines[1], []byte(","), 2)[0])
	out, _, err = execute(t, "--config", cfgPath, "journal", "show", tradeID)
	require.NoError(t, err)
	assert.Contains(t, out, "EUR/USD")
	assert.Contains(t, out, "Recorded: 2024-03-05 22:00")

	_, _, err = execute(t, "--config", cfgPath, "journal", "show", "01HXXXXXXXXXXXXXXXXXXXXXXX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestJournalImport(t *testing.T) {
	cfgPath := writeTestConfig(t)

	file := filepath.Join(t.TempDir(), "broker.csv")
	csv := "id,created_at,pair,direction,entry_price,exit_price,lot_size,pips,pnl,notes\n" +
		",2024-03-01 10:00,EUR/USD,buy,1.08,1.081,0.1,10,1500,ok\n" +
		",2024-03-01 11:00,EUR/USD,hold,1.08,1.081,0.1,10,1500,bad\n"
	require.NoError(t, os.WriteFile(file, []byte(csv), 0644))

	out, errOut, err := execute(t, "--config", cfgPath, "journal", "import", "--dry-run", file)
	require.NoError(t, err)
	assert.Contains(t, out, "1 valid, 1 invalid, 0 stored")
	assert.Contains(t, errOut, "row 2")

	out, _, err = execute(t, "--config", cfgPath, "journal", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "1 valid, 1 invalid, 1 stored")

	out, _, err = execute(t, "--config", cfgPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Trades:        1")
}

func TestPromptWithoutTrades(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, _, err := execute(t, "--config", cfgPath, "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trades")
}

func TestLot(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, _, err := execute(t, "--config", cfgPath, "lot",
		"--instrument", "USDJPY", "--balance", "1000000", "--risk", "2", "--stop", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended lot: 0.40")
	assert.Contains(t, out, "Risk:            2.00% (20000)")
	assert.NotContains(t, out, "⚠")

	// 30 pips on EUR/USD at 150 yen: 1500 yen per pip per lot
	out, _, err = execute(t, "--config", cfgPath, "lot",
		"--instrument", "EUR/USD", "--balance", "1000000", "--risk", "1",
		"--entry", "1.0850", "--stop-price", "1.0820", "--take-profit", "1.0910", "--rate", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended lot: 0.22")
	assert.Contains(t, out, "Reward:risk:     2.00")

	out, _, err = execute(t, "--config", cfgPath, "lot",
		"--instrument", "USDJPY", "--balance", "10000", "--risk", "1", "--stop", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended lot: 0.01")
	assert.Contains(t, out, "MIN_LOT_EXCEEDS_RISK")
	assert.Contains(t, out, "RISK_OVER_LIMIT")

	_, _, err = execute(t, "--config", cfgPath, "lot", "--instrument", "USDJPY", "--stop", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--stop")
}

func TestSettings(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, _, err := execute(t, "--config", cfgPath, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "fx_lot_size:      100000")

	out, _, err = execute(t, "--config", cfgPath, "settings", "preset", "fx-domestic", "--rate", "140")
	require.NoError(t, err)
	assert.Contains(t, out, "fx_lot_size:      10000")
	assert.Contains(t, out, "usd_jpy_rate:     140")

	out, _, err = execute(t, "--config", cfgPath, "settings", "set", "gold_lot_size=10")
	require.NoError(t, err)
	assert.Contains(t, out, "gold_lot_size:    10\n")
	assert.Contains(t, out, "fx_lot_size:      10000")

	_, _, err = execute(t, "--config", cfgPath, "settings", "set", "leverage=25")
	require.Error(t, err)

	_, _, err = execute(t, "--config", cfgPath, "settings", "preset", "fx-huge")
	require.Error(t, err)

	out, _, err = execute(t, "--config", cfgPath, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "fx_lot_size:      100000")
}
