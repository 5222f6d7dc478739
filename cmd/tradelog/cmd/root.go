package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/internal/logging"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/rates"
	"github.com/rustyeddy/tradelog/settings"
)

var rootCmd = &cobra.Command{
	Use:   "tradelog",
	Short: "A personal trading journal with statistics and position sizing",
	Long: `Tradelog records closed trades and analyzes them.

It provides tools for:
  - Logging, importing and exporting trades (SQLite, CSV, JSON)
  - Win rate, profit factor, drawdown, streaks and a 1-5 risk score
  - Breakdowns by pair, time of day, weekday and lot size
  - Recommended lot size from balance, risk and stop distance
  - Live FX, gold and crypto rates
  - Prompts for AI trade review`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	configPath string
	logLevel   string

	cfg    = config.Default()
	logger = logging.Discard()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML or JSON), defaults apply when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config file")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	l, err := logging.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = l
	logger.WithField("config", configPath).Debug("config loaded")
	return nil
}

func openStore() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func location() (*time.Location, error) {
	loc, err := cfg.Analytics.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

func openSettings() (*settings.Store, error) {
	return settings.NewFileStore(cfg.SettingsFile, logger)
}

// newRateService builds the live rate service. The returned func releases
// the Redis connection when one is configured.
func newRateService(ctx context.Context) (*rates.Service, func(), error) {
	sc, err := cfg.Rates.ServiceConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("rates config: %w", err)
	}

	var cache rates.Cache
	cleanup := func() {}
	if cfg.Rates.RedisAddr != "" {
		rc := rates.NewRedisCache(cfg.Rates.RedisAddr, cfg.Rates.RedisPassword, cfg.Rates.RedisDB, "")
		if err := rc.Ping(ctx); err != nil {
			logger.WithError(err).WithField("addr", cfg.Rates.RedisAddr).Warn("redis unavailable, using memory cache")
			rc.Close()
		} else {
			cache = rc
			cleanup = func() { rc.Close() }
		}
	}
	return rates.NewService(sc, cache, logger.WithField("component", "rates")), cleanup, nil
}

// dayBounds returns [start of day, start of next day) in loc.
func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}

// rangeFlags selects trades by local calendar day. Both bounds are
// optional; to is inclusive.
type rangeFlags struct {
	from string
	to   string
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&r.to, "to", "", "last day to include (YYYY-MM-DD)")
}

// load returns the selected trades newest first.
func (r *rangeFlags) load(ctx context.Context, store journal.Store, loc *time.Location) ([]journal.TradeRecord, error) {
	if r.from == "" && r.to == "" {
		return store.ListTrades(ctx, 0)
	}

	start := time.Unix(0, 0).UTC()
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if r.from != "" {
		s, _, err := dayBounds(loc, r.from)
		if err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
		start = s
	}
	if r.to != "" {
		_, e, err := dayBounds(loc, r.to)
		if err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
		end = e
	}
	return store.ListTradesBetween(ctx, start, end)
}
