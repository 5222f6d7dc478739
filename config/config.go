package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradelog/analytics"
	"github.com/rustyeddy/tradelog/i18n"
	"github.com/rustyeddy/tradelog/rates"
	"github.com/rustyeddy/tradelog/risk"
)

// Config represents the complete tradelog configuration
type Config struct {
	Account      AccountConfig   `json:"account" yaml:"account"`
	Journal      JournalConfig   `json:"journal" yaml:"journal"`
	Analytics    AnalyticsConfig `json:"analytics" yaml:"analytics"`
	Rates        RatesConfig     `json:"rates" yaml:"rates"`
	SettingsFile string          `json:"settings_file" yaml:"settings_file"`
	LogLevel     string          `json:"log_level" yaml:"log_level"`
	Language     string          `json:"language" yaml:"language"`
}

// AccountConfig holds the defaults for the lot calculator
type AccountConfig struct {
	Currency       string  `json:"currency" yaml:"currency"`
	Balance        float64 `json:"balance" yaml:"balance"`
	AccountType    string  `json:"account_type" yaml:"account_type"`
	RiskPercent    float64 `json:"risk_percent" yaml:"risk_percent"`
	MaxRiskPercent float64 `json:"max_risk_percent" yaml:"max_risk_percent"`
}

// JournalConfig locates the trade database
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// AnalyticsConfig contains bucketing and prompt parameters
type AnalyticsConfig struct {
	Timezone     string `json:"timezone" yaml:"timezone"` // "JST", "UTC", "+09:00" or an IANA name
	RecentTrades int    `json:"recent_trades" yaml:"recent_trades"`
}

// RatesConfig contains the live rate endpoints and limits
type RatesConfig struct {
	FrankfurterURL    string  `json:"frankfurter_url" yaml:"frankfurter_url"`
	CoinGeckoURL      string  `json:"coingecko_url" yaml:"coingecko_url"`
	CacheTTL          string  `json:"cache_ttl" yaml:"cache_ttl"` // e.g. "60s"
	RedisAddr         string  `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword     string  `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB           int     `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	Timeout           string  `json:"timeout" yaml:"timeout"` // e.g. "10s"
}

// LoadFromFile loads configuration from a file. Omitted fields keep their
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance < 0 {
		return fmt.Errorf("account.balance must not be negative")
	}
	if _, err := risk.ParseAccountType(c.Account.AccountType); err != nil {
		return fmt.Errorf("account.account_type: %w", err)
	}
	if c.Account.RiskPercent < 0 || c.Account.RiskPercent > 100 {
		return fmt.Errorf("account.risk_percent must be between 0 and 100")
	}
	if c.Account.MaxRiskPercent <= 0 || c.Account.MaxRiskPercent > 100 {
		return fmt.Errorf("account.max_risk_percent must be between 0 and 100")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if _, err := ParseLocation(c.Analytics.Timezone); err != nil {
		return fmt.Errorf("analytics.timezone: %w", err)
	}
	if c.Analytics.RecentTrades < 0 {
		return fmt.Errorf("analytics.recent_trades must not be negative")
	}
	if _, err := parseDuration(c.Rates.CacheTTL); err != nil {
		return fmt.Errorf("rates.cache_ttl: %w", err)
	}
	if _, err := parseDuration(c.Rates.Timeout); err != nil {
		return fmt.Errorf("rates.timeout: %w", err)
	}
	if c.Rates.RequestsPerSecond < 0 {
		return fmt.Errorf("rates.requests_per_second must not be negative")
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	if c.Language != "" && !i18n.Supported(c.Language) {
		return fmt.Errorf("language %q is not supported (want one of %s)", c.Language, strings.Join(i18n.Languages, ", "))
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:       "JPY",
			Balance:        1000000,
			AccountType:    string(risk.Overseas),
			RiskPercent:    1,
			MaxRiskPercent: risk.DefaultMaxRiskPercent,
		},
		Journal: JournalConfig{
			DBPath: "./tradelog.sqlite",
		},
		Analytics: AnalyticsConfig{
			Timezone:     "JST",
			RecentTrades: 10,
		},
		Rates: RatesConfig{
			FrankfurterURL:    rates.FrankfurterURL,
			CoinGeckoURL:      rates.CoinGeckoURL,
			CacheTTL:          "60s",
			RequestsPerSecond: 1,
			Timeout:           "10s",
		},
		SettingsFile: "./settings.yaml",
		LogLevel:     "info",
		Language:     i18n.DefaultLanguage,
	}
}

// Location resolves the analytics time zone.
func (a AnalyticsConfig) Location() (*time.Location, error) {
	return ParseLocation(a.Timezone)
}

// Policy returns the limits for risk.CheckLot.
func (a AccountConfig) Policy() risk.Policy {
	p := risk.DefaultPolicy()
	if a.MaxRiskPercent > 0 {
		p.MaxRiskPercent = a.MaxRiskPercent
	}
	return p
}

// ServiceConfig converts the rates section for rates.NewService.
func (r RatesConfig) ServiceConfig() (rates.Config, error) {
	ttl, err := parseDuration(r.CacheTTL)
	if err != nil {
		return rates.Config{}, fmt.Errorf("cache_ttl: %w", err)
	}
	timeout, err := parseDuration(r.Timeout)
	if err != nil {
		return rates.Config{}, fmt.Errorf("timeout: %w", err)
	}
	return rates.Config{
		FrankfurterURL:    r.FrankfurterURL,
		CoinGeckoURL:      r.CoinGeckoURL,
		CacheTTL:          ttl,
		RequestsPerSecond: r.RequestsPerSecond,
		Timeout:           timeout,
	}, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

var offsetRe = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// ParseLocation accepts "JST" (the default when empty), "UTC", "Local", a
// fixed offset such as "+09:00" or an IANA zone name.
func ParseLocation(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "JST":
		return analytics.DefaultLocation, nil
	case "UTC", "Z":
		return time.UTC, nil
	case "LOCAL":
		return time.Local, nil
	}

	if m := offsetRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[2])
		mins, _ := strconv.Atoi(m[3])
		if h > 14 || mins > 59 {
			return nil, fmt.Errorf("offset out of range: %q", s)
		}
		secs := h*3600 + mins*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(s, secs), nil
	}

	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q", s)
	}
	return loc, nil
}
