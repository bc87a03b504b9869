package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr             = ":8080"
	defaultCustomerTokenTTL = "60m"
	defaultAdminTokenTTL    = "6h"
	defaultRequestTimeout   = "15s"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultDriverToken      = "change-me-driver-token"
	defaultDatabaseURL      = "taxi.db"
)

// Config is built once at startup and passed by reference into every
// component. Nothing reads the environment after Load returns.
type Config struct {
	AppEnv           string
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	CustomerTokenTTL time.Duration
	AdminTokenTTL    time.Duration
	AdminUsername    string
	AdminPassword    string
	DriverToken      string
	RequestTimeout   time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("APP_ADDR", defaultAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.AdminUsername = strings.TrimSpace(os.Getenv("ADMIN_NAME"))
	cfg.AdminPassword = strings.TrimSpace(os.Getenv("ADMIN_PASS"))
	cfg.DriverToken = strings.TrimSpace(getEnv("DRIVER_TOKEN", defaultDriverToken))

	var err error
	cfg.CustomerTokenTTL, err = parseDurationEnv("CUSTOMER_TOKEN_TTL", defaultCustomerTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.AdminTokenTTL, err = parseDurationEnv("ADMIN_TOKEN_TTL", defaultAdminTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout, err = parseDurationEnv("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s request_timeout=%s", cfg.AppEnv, cfg.Addr, cfg.RequestTimeout)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.CustomerTokenTTL <= 0 {
		return fmt.Errorf("CUSTOMER_TOKEN_TTL must be > 0")
	}
	if cfg.AdminTokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be > 0")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("ADMIN_NAME and ADMIN_PASS must be set")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.DriverToken, defaultDriverToken) {
			return fmt.Errorf("in prod/release DRIVER_TOKEN must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
