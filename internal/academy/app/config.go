package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	IdentityGoogle = "google"
	IdentityDev    = "dev"
)

type Config struct {
	Issuer         string // Issuer claim for tokens (default: prestige-academy)
	DatabaseFile   string // Path to SQLite database file (default: ./academy.db)
	PepperFile     string // Path to file containing pepper for password hashing (default: ./pepper)
	SigningKeyFile string // Optional: Ed25519 key file; empty means an ephemeral key per process
	TokenTTL       time.Duration

	AdminEmail      string // Optional: admin seeded on startup
	AdminPassword   string // Required when AdminEmail is set
	AdminTOTPSecret string // Optional: base32 TOTP secret for the seeded admin

	IdentityMode   string // google or dev (default: google)
	GoogleClientID string // Required in google mode: expected "aud" of ID tokens
	GoogleJWKSURL  string // Optional: override of Google's JWKS endpoint

	PaymentConfirmDelay  time.Duration // Simulated prompt delay; 0 settles synchronously (default: 0)
	PaymentMaxPendingAge time.Duration // Pending payments older than this are cancelled (default: 15m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1m)
}

// LoadConfig reads the environment, after loading envFiles (typically .env)
// into it. Missing env files are ignored and never override variables that
// are already set.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Issuer:         getEnvOrDefault("ACADEMY_ISSUER", "prestige-academy"),
		DatabaseFile:   getEnvOrDefault("ACADEMY_DATABASE_FILE", "academy.db"),
		PepperFile:     getEnvOrDefault("ACADEMY_PEPPER_FILE", "pepper"),
		SigningKeyFile: os.Getenv("ACADEMY_SIGNING_KEY_FILE"),
		TokenTTL:       getEnvDurationOrDefault("ACADEMY_TOKEN_TTL", 24*time.Hour),

		AdminEmail:      os.Getenv("ACADEMY_ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ACADEMY_ADMIN_PASSWORD"),
		AdminTOTPSecret: os.Getenv("ACADEMY_ADMIN_TOTP_SECRET"),

		IdentityMode:   getEnvOrDefault("ACADEMY_IDENTITY_MODE", IdentityGoogle),
		GoogleClientID: os.Getenv("ACADEMY_GOOGLE_CLIENT_ID"),
		GoogleJWKSURL:  os.Getenv("ACADEMY_GOOGLE_JWKS_URL"),

		PaymentConfirmDelay:  getEnvDurationOrDefault("ACADEMY_PAYMENT_CONFIRM_DELAY", 0),
		PaymentMaxPendingAge: getEnvDurationOrDefault("ACADEMY_PAYMENT_MAX_PENDING_AGE", 15*time.Minute),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Minute),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.IdentityMode {
	case IdentityGoogle:
		if c.GoogleClientID == "" {
			return errors.New("config: ACADEMY_GOOGLE_CLIENT_ID is required in google identity mode")
		}
	case IdentityDev:
		if c.Env == "prod" {
			return errors.New("config: dev identity mode is not allowed in prod")
		}
	default:
		return fmt.Errorf("config: unknown identity mode %q", c.IdentityMode)
	}

	if c.AdminEmail != "" && c.AdminPassword == "" {
		return errors.New("config: ACADEMY_ADMIN_PASSWORD is required with ACADEMY_ADMIN_EMAIL")
	}
	if c.PaymentConfirmDelay < 0 {
		return errors.New("config: ACADEMY_PAYMENT_CONFIRM_DELAY must not be negative")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
