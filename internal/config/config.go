package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"MarketCompare/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string `yaml:"provider"` // yahoo, eodhd or mock
		APIKey   string `yaml:"api_key"`
		Exchange string `yaml:"exchange"`
	} `yaml:"data_source"`
	Compare struct {
		Tickers       []string `yaml:"tickers"`
		Base          float64  `yaml:"base"`
		MinOverlap    int      `yaml:"min_overlap"`
		LookbackYears int      `yaml:"lookback_years"`
		Interval      string   `yaml:"interval"`
		TailRows      int      `yaml:"tail_rows"`
	} `yaml:"compare"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Output struct {
		ChartPath string `yaml:"chart_path"`
	} `yaml:"output"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("COMPARE_BASE"); v != "" {
		base, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse COMPARE_BASE: %w", err)
		}
		cfg.Compare.Base = base
	}
	if v := os.Getenv("COMPARE_MIN_OVERLAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse COMPARE_MIN_OVERLAP: %w", err)
		}
		cfg.Compare.MinOverlap = n
	}
	if v := os.Getenv("CRON_REPORT"); v != "" {
		cfg.Schedule.ReportCron = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Exchange == "" {
		cfg.DataSource.Exchange = "US"
	}
	if len(cfg.Compare.Tickers) == 0 {
		cfg.Compare.Tickers = []string{"AAPL", "MSFT"}
	}
	if cfg.Compare.Base == 0 {
		cfg.Compare.Base = 100
	}
	if cfg.Compare.MinOverlap == 0 {
		cfg.Compare.MinOverlap = 12
	}
	if cfg.Compare.LookbackYears == 0 {
		cfg.Compare.LookbackYears = 5
	}
	if cfg.Compare.Interval == "" {
		cfg.Compare.Interval = string(model.Monthly)
	}
	if cfg.Compare.TailRows == 0 {
		cfg.Compare.TailRows = 5
	}
	if cfg.Output.ChartPath == "" {
		cfg.Output.ChartPath = "data/compare.html"
	}

	return cfg, nil
}

// Validate checks the settings every command relies on.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "eodhd":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for eodhd")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if !(c.Compare.Base > 0) || math.IsInf(c.Compare.Base, 0) {
		return fmt.Errorf("compare.base must be a positive finite number, got %v", c.Compare.Base)
	}
	if c.Compare.MinOverlap < 1 {
		return fmt.Errorf("compare.min_overlap must be at least 1")
	}
	if c.Compare.LookbackYears < 1 {
		return fmt.Errorf("compare.lookback_years must be at least 1")
	}
	if _, err := model.ParseInterval(c.Compare.Interval); err != nil {
		return fmt.Errorf("compare.interval: %w", err)
	}
	return nil
}

// ValidateBot checks the settings the Telegram bot needs on top of Validate.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" && c.Schedule.ReportCron != "" {
		return fmt.Errorf("telegram.chat_id is required for scheduled reports")
	}
	return nil
}
