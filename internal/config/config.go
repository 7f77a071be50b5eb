package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AccountSourceEnv = "env"
	AccountSourceDB  = "db"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// AccountSource is where gateway accounts come from: env or db.
	AccountSource string

	SamanTerminalID     string
	SamanPassword       string
	SamanAccountName    string
	SamanTokenURL       string
	SamanPaymentPageURL string
	SamanUseGetMethod   bool

	// VirtualEnabled mounts the sandbox gateway; keep it off in production.
	VirtualEnabled    bool
	VirtualPaymentURL string

	JWTSecret          string
	InternalSecretKey  string
	ResolveConcurrency int
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:              os.Getenv("APP_ENV"),
		AppPort:             getEnv("APP_PORT", "8080"),
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              getEnv("DB_PORT", "5432"),
		AccountSource:       strings.ToLower(getEnv("ACCOUNT_SOURCE", AccountSourceEnv)),
		SamanTerminalID:     os.Getenv("SAMAN_TERMINAL_ID"),
		SamanPassword:       os.Getenv("SAMAN_PASSWORD"),
		SamanAccountName:    getEnv("SAMAN_ACCOUNT_NAME", "default"),
		SamanTokenURL:       os.Getenv("SAMAN_TOKEN_URL"),
		SamanPaymentPageURL: os.Getenv("SAMAN_PAYMENT_PAGE_URL"),
		VirtualPaymentURL:   os.Getenv("VIRTUAL_PAYMENT_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		InternalSecretKey:   os.Getenv("INTERNAL_SECRET_KEY"),
	}

	var err error
	if cfg.SamanUseGetMethod, err = getBool("SAMAN_USE_GET_METHOD", false); err != nil {
		return nil, err
	}
	if cfg.VirtualEnabled, err = getBool("VIRTUAL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.ResolveConcurrency, err = getInt("RESOLVE_CONCURRENCY", 8); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.AccountSource {
	case AccountSourceEnv:
	case AccountSourceDB:
		if c.DBHost == "" {
			return fmt.Errorf("%w: DB_HOST is required when ACCOUNT_SOURCE=db", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ACCOUNT_SOURCE %q", ErrInvalidConfig, c.AccountSource)
	}

	if c.ResolveConcurrency <= 0 {
		return fmt.Errorf("%w: RESOLVE_CONCURRENCY must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return n, nil
}
