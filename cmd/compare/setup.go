package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"MarketCompare/internal/collector"
	"MarketCompare/internal/compare"
	"MarketCompare/internal/config"
	"MarketCompare/internal/model"
)

// loadConfig reads CONFIG_PATH (default configs/config.yaml) and validates it.
func loadConfig() (*config.Config, error) {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "yahoo":
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	case "eodhd":
		fetcher = collector.NewEODHDFetcher(cfg.DataSource.APIKey, cfg.DataSource.Exchange, cfg.Proxy)
	case "mock":
		fetcher = &collector.MockFetcher{}
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataSource.Provider)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	return fetcher, nil
}

// newService wires fetcher, collector and comparison settings from cfg.
func newService(cfg *config.Config) (*compare.Service, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	interval, err := model.ParseInterval(cfg.Compare.Interval)
	if err != nil {
		return nil, err
	}
	svc := compare.NewService(collector.NewCollector(fetcher), cfg.Compare.Base, cfg.Compare.MinOverlap)
	svc.Interval = interval
	svc.Lookback = time.Duration(cfg.Compare.LookbackYears) * 365 * 24 * time.Hour
	return svc, nil
}
