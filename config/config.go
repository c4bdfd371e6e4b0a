// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"atr-scanner/internal/model"
)

// Config holds all application settings. Every field can be overridden via
// environment variables; defaults match the hourly 1m-interval scan profile.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":5000"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// Upstream market-data API
	BinanceBaseURL string        `envconfig:"BINANCE_BASE_URL" default:"https://fapi.binance.com"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	QuoteSuffix    string        `envconfig:"QUOTE_SUFFIX" default:"USDT"`

	// Scheduling
	ScanInterval time.Duration `envconfig:"SCAN_INTERVAL" default:"1h"`
	PacingDelay  time.Duration `envconfig:"PACING_DELAY" default:"100ms"`

	// Initial scan settings (adjustable at runtime via the API)
	MinATRPercentage float64 `envconfig:"MIN_ATR_PERCENTAGE" default:"0.5"`
	ATRPeriod        int     `envconfig:"ATR_PERIOD" default:"50"`
	ATRMultiplier    float64 `envconfig:"ATR_MULTIPLIER" default:"0.5"`
	CandleInterval   string  `envconfig:"CANDLE_INTERVAL" default:"1m"`
}

// Load reads configuration from the environment, first merging in a .env
// file if one exists. A missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ScanSettings returns the initial scan settings from the config.
func (c *Config) ScanSettings() model.ScanSettings {
	return model.ScanSettings{
		MinATRPercentage: c.MinATRPercentage,
		ATRPeriod:        c.ATRPeriod,
		ATRMultiplier:    c.ATRMultiplier,
		Interval:         c.CandleInterval,
	}
}
