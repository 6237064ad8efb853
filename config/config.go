package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"noxshift/errors"
)

// Environment variables that override the config file.
const (
	EnvDatabasePath  = "NOXSHIFT_DB"
	EnvMonthlyBudget = "NOXSHIFT_MONTHLY_BUDGET"
	EnvMetricsAddr   = "NOXSHIFT_METRICS_ADDR"
	EnvPushURL       = "NOXSHIFT_PUSH_URL"
	EnvLogLevel      = "NOXSHIFT_LOG_LEVEL"
)

// Config holds runtime settings. Flags override it.
type Config struct {
	DatabasePath  string  `yaml:"database_path"`
	MonthlyBudget float64 `yaml:"monthly_budget"`
	MetricsAddr   string  `yaml:"metrics_addr"`
	PushURL       string  `yaml:"push_url"`
	LogLevel      string  `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath: "noxshift.db",
		LogLevel:     "info",
	}
}

// Load reads .env (if present), then the YAML file at path (if path is not
// empty), then NOXSHIFT_* environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvMonthlyBudget); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", errors.ErrInvalidBudget, EnvMonthlyBudget, v)
		}
		cfg.MonthlyBudget = budget
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv(EnvPushURL); v != "" {
		cfg.PushURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have constraints.
func (c *Config) Validate() error {
	if c.MonthlyBudget < 0 {
		return fmt.Errorf("%w: must not be negative, got %v", errors.ErrInvalidBudget, c.MonthlyBudget)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
