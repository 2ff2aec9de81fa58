// Package config loads run configuration from YAML with environment
// variable overrides for credentials and connection strings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"equity-options-lab/internal/strategy"
)

// Storage backends.
const (
	BackendMemory     = "memory"
	BackendPostgres   = "postgres"
	BackendClickhouse = "clickhouse"
)

// Validation errors
var (
	ErrUnknownBackend = errors.New("config: unknown storage backend")
	ErrMissingSymbol  = errors.New("config: backtest symbol is required")
	ErrMissingDSN     = errors.New("config: storage backend requires a dsn")
)

// Config is the top-level run configuration.
type Config struct {
	Storage  Storage         `yaml:"storage"`
	Logging  Logging         `yaml:"logging"`
	Backtest Backtest        `yaml:"backtest"`
	Strategy strategy.Config `yaml:"strategy"`
}

// Storage selects the bar store backend and its connection string.
type Storage struct {
	Backend       string `yaml:"backend"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Backtest holds the run parameters shared by both engines.
type Backtest struct {
	Symbol         string  `yaml:"symbol"`
	InitialCapital float64 `yaml:"initial_capital"`
	Commission     float64 `yaml:"commission"`
	StartDate      string  `yaml:"start_date"`
	EndDate        string  `yaml:"end_date"`
}

// Load reads the YAML configuration file at the given path, parses it,
// applies environment variable overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Storage: Storage{Backend: BackendMemory},
		Logging: Logging{Level: "info"},
		Backtest: Backtest{
			InitialCapital: 100000,
			Commission:     0,
		},
		Strategy: strategy.Config{Type: strategy.TypeSMACross},
	}
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		cfg.Storage.ClickhouseDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("%w: postgres", ErrMissingDSN)
		}
	case BackendClickhouse:
		if c.Storage.ClickhouseDSN == "" {
			return fmt.Errorf("%w: clickhouse", ErrMissingDSN)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	if c.Backtest.Symbol == "" {
		return ErrMissingSymbol
	}
	return nil
}
