package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"SniperScan/internal/universe"
)

// Config holds all application configuration.
type Config struct {
	Scan struct {
		LookbackDays   int     `yaml:"lookback_days"`
		MinHistory     int     `yaml:"min_history"`
		PriceFloor     float64 `yaml:"price_floor"`
		MarketCapFloor float64 `yaml:"market_cap_floor"`
		VolumeFloor    float64 `yaml:"volume_floor"`
		MinFundamental float64 `yaml:"min_fundamental_score"`
		MinComposite   float64 `yaml:"min_composite_score"`
		MaxResults     int     `yaml:"max_results"`
		RequireSignal  bool    `yaml:"require_signal"`
		StopLossATR    float64 `yaml:"stop_loss_atr"`
		Workers        int     `yaml:"workers"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
	} `yaml:"scan"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken   string `yaml:"bot_token"`
		ChatID     string `yaml:"chat_id"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"telegram"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Watchlist []universe.SectorList `yaml:"watchlist"`
	Proxy     string                `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}

	// Defaults
	if cfg.Scan.LookbackDays == 0 {
		cfg.Scan.LookbackDays = 365
	}
	if cfg.Scan.MinHistory == 0 {
		cfg.Scan.MinHistory = 50
	}
	if cfg.Scan.PriceFloor == 0 {
		cfg.Scan.PriceFloor = 1.0
	}
	if cfg.Scan.MarketCapFloor == 0 {
		cfg.Scan.MarketCapFloor = 200_000_000
	}
	if cfg.Scan.VolumeFloor == 0 {
		cfg.Scan.VolumeFloor = 100_000
	}
	if cfg.Scan.MinFundamental == 0 {
		cfg.Scan.MinFundamental = 20
	}
	if cfg.Scan.MinComposite == 0 {
		cfg.Scan.MinComposite = 30
	}
	if cfg.Scan.MaxResults == 0 {
		cfg.Scan.MaxResults = 20
	}
	if cfg.Scan.StopLossATR == 0 {
		cfg.Scan.StopLossATR = 2.0
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 4
	}
	if cfg.Scan.RequestsPerSec == 0 {
		cfg.Scan.RequestsPerSec = 4
	}
	if cfg.Telegram.MaxRetries == 0 {
		cfg.Telegram.MaxRetries = 3
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/sniper_cache.db"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = time.Hour
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 14 * * 1-5"
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = universe.DefaultLists()
	}

	return cfg, nil
}

// Validate checks that all configured values are usable.
func (c *Config) Validate() error {
	if c.Scan.MinHistory < 21 {
		return fmt.Errorf("scan.min_history must be at least 21 (SFP needs a 20-bar lookback)")
	}
	if c.Scan.PriceFloor < 0 || c.Scan.VolumeFloor < 0 || c.Scan.MarketCapFloor < 0 {
		return fmt.Errorf("scan floors must not be negative")
	}
	if c.Scan.MaxResults < 1 {
		return fmt.Errorf("scan.max_results must be positive")
	}
	if c.Scan.StopLossATR <= 0 {
		return fmt.Errorf("scan.stop_loss_atr must be positive")
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive")
	}
	return nil
}

// ValidateTelegram checks the extra fields service mode needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
