package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"arb_go/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config holds all application settings, loaded once at bootstrap.
// Sensitive or host-specific values can be overridden via environment
// variables after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		Binance struct {
			WSURL   string   `yaml:"ws_url"`
			Symbols []string `yaml:"symbols"` // Lowercase stream symbols, e.g. "btcusdt"
		} `yaml:"binance"`
	} `yaml:"api"`

	Engine struct {
		DetectionIntervalMS int        `yaml:"detection_interval_ms"`
		FeeRate             float64    `yaml:"fee_rate"`     // Fraction per leg, e.g. 0.001
		TradeAmount         float64    `yaml:"trade_amount"` // Units of the opportunity's base currency
		Triplets            [][]string `yaml:"triplets"`
	} `yaml:"engine"`

	Ledger struct {
		InitialBalances map[string]float64 `yaml:"initial_balances"`
	} `yaml:"ledger"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.DetectionIntervalMS == 0 {
		cfg.Engine.DetectionIntervalMS = 1000
	}
	if cfg.Engine.FeeRate == 0 {
		cfg.Engine.FeeRate = 0.001
	}
	if cfg.Engine.TradeAmount == 0 {
		cfg.Engine.TradeAmount = 100
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.API.Binance.WSURL == "" || (!hasPrefix(c.API.Binance.WSURL, "ws://") && !hasPrefix(c.API.Binance.WSURL, "wss://")) {
		return &domain.ConfigError{Field: "api.binance.ws_url", Err: fmt.Errorf("invalid WS URL: %q", c.API.Binance.WSURL)}
	}
	if len(c.API.Binance.Symbols) == 0 {
		return &domain.ConfigError{Field: "api.binance.symbols", Err: errors.New("at least one symbol is required")}
	}

	if c.Engine.DetectionIntervalMS <= 0 {
		return &domain.ConfigError{Field: "engine.detection_interval_ms", Err: errors.New("must be positive")}
	}
	if c.Engine.FeeRate < 0 || c.Engine.FeeRate >= 1 {
		return &domain.ConfigError{Field: "engine.fee_rate", Err: fmt.Errorf("must be in [0, 1): %f", c.Engine.FeeRate)}
	}
	if c.Engine.TradeAmount <= 0 {
		return &domain.ConfigError{Field: "engine.trade_amount", Err: errors.New("must be positive")}
	}
	for i, t := range c.Engine.Triplets {
		if len(t) != 3 {
			return &domain.ConfigError{
				Field: fmt.Sprintf("engine.triplets[%d]", i),
				Err:   fmt.Errorf("must have exactly 3 currencies, got %d", len(t)),
			}
		}
		for _, code := range t {
			if code == "" {
				return &domain.ConfigError{Field: fmt.Sprintf("engine.triplets[%d]", i), Err: domain.ErrInvalidSymbol}
			}
		}
	}

	return nil
}

// Triplets converts the configured triplet lists into domain values,
// preserving configuration order.
func (c *Config) Triplets() []domain.Triplet {
	triplets := make([]domain.Triplet, 0, len(c.Engine.Triplets))
	for _, t := range c.Engine.Triplets {
		triplets = append(triplets, domain.Triplet{t[0], t[1], t[2]})
	}
	return triplets
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[0:len(prefix)] == prefix
}

// overrideWithEnv applies environment variable overrides when present.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("ARB_BINANCE_WS_URL"); url != "" {
		cfg.API.Binance.WSURL = url
	}
	if level := os.Getenv("ARB_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
