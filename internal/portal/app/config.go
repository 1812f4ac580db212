package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prestige-strategies/academy/internal/portal/payment"
)

// Config is the portal's YAML configuration.
type Config struct {
	BaseURL     string        `yaml:"base_url"`     // Backend base URL (default: http://localhost:8080)
	Storage     string        `yaml:"storage"`      // Storage driver: memory, sqlite (default: sqlite)
	StoragePath string        `yaml:"storage_path"` // SQLite file for tokens and attempts (default: <config dir>/academy/portal.db)
	Env         string        `yaml:"env"`          // Environment (dev, prod) (default: prod)
	LogLevel    string        `yaml:"log_level"`    // debug, info, warn, error (default: warn)
	LogFormat   string        `yaml:"log_format"`   // json, text (default: text)
	Payment     PaymentConfig `yaml:"payment"`
}

// PaymentConfig tunes the checkout flow.
type PaymentConfig struct {
	SuccessDelay time.Duration `yaml:"success_delay"` // default: 2s
	PollInterval time.Duration `yaml:"poll_interval"` // default: 3s
}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:8080",
		Storage:     StorageSQLite,
		StoragePath: filepath.Join(configDir(), "portal.db"),
		Env:         "prod",
		LogLevel:    "warn",
		LogFormat:   "text",
		Payment: PaymentConfig{
			SuccessDelay: payment.DefaultSuccessDelay,
			PollInterval: payment.DefaultPollInterval,
		},
	}
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	if p := os.Getenv("PORTAL_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configDir(), "portal.yaml")
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "academy")
}

// LoadConfig reads path over the defaults. A missing file is not an error.
// PORTAL_BASE_URL overrides base_url.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORTAL_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	switch c.Storage {
	case StorageMemory:
	case StorageSQLite:
		if c.StoragePath == "" {
			return errors.New("config: storage_path is required for sqlite storage")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage)
	}
	if c.Payment.SuccessDelay < 0 || c.Payment.PollInterval < 0 {
		return errors.New("config: payment durations must not be negative")
	}
	return nil
}
