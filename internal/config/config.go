package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/walletpay/walletpay/internal/money"
)

const (
	defaultAppName        = "WalletPay"
	defaultEnv            = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultDeclineBelow   = "10.00"

	// Supported PAYMENT_PROVIDER values.
	ProviderSimulated = "simulated"
	ProviderStripe    = "stripe"

	idemTTLSecondsEnvVar   = "IDEMPOTENCY_TTL_SECONDS"
	idemTTLDurEnvVar       = "IDEMPOTENCY_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment
// variables, optionally seeded from a .env file.
type Config struct {
	AppName        string
	Env            string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	// Payment gateway selection. The simulated provider declines charges
	// below DeclineBelow; Stripe charges the configured source.
	PaymentProvider string
	DeclineBelow    money.Money
	StripeSecretKey string
	StripeCurrency  string
	StripeSource    string
}

// Load reads configuration values from the environment and populates a
// Config instance. DATABASE_URL and REDIS_URL may be omitted in development,
// where the service falls back to in-memory storage.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		Env:             getEnv("APP_ENV", defaultEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		ShutdownPeriod:  defaultShutdownDelay,
		IdempotencyTTL:  defaultIdempotencyTTL,
		PaymentProvider: strings.ToLower(getEnv("PAYMENT_PROVIDER", ProviderSimulated)),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripeCurrency:  os.Getenv("STRIPE_CURRENCY"),
		StripeSource:    os.Getenv("STRIPE_SOURCE"),
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(idemTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLSecondsEnvVar, err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(idemTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLDurEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	declineBelow, err := money.FromString(getEnv("PAYMENT_DECLINE_BELOW", defaultDeclineBelow))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PAYMENT_DECLINE_BELOW: %w", err)
	}
	cfg.DeclineBelow = declineBelow

	switch cfg.PaymentProvider {
	case ProviderSimulated:
	case ProviderStripe:
		if cfg.StripeSecretKey == "" {
			return Config{}, fmt.Errorf("STRIPE_SECRET_KEY must be set when PAYMENT_PROVIDER=stripe")
		}
	default:
		return Config{}, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.PaymentProvider)
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.Env)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.Env)
		}
	}

	return cfg, nil
}

// IsDev reports whether the app runs in a development-like environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
