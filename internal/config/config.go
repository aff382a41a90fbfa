package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mode задаёт источник данных: демо-хранилище или живой Procore
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

const (
	defaultServerAddress = "0.0.0.0:8080"
	defaultAPIBaseURL    = "https://api.procore.com"
	defaultTokenCookie   = "procore_access_token"
	defaultRateLimit     = 10.0
	defaultShutdown      = 10 * time.Second
)

// Config хранит настройки сервера, прочитанные из окружения
type Config struct {
	Mode            Mode
	CompanyID       string
	APIBaseURL      string
	TokenCookie     string
	RateLimit       float64
	ServerAddress   string
	PostgresConn    string
	ShutdownTimeout time.Duration
}

// Load читает конфигурацию из окружения. .env подгружается заранее в main.
func Load() (*Config, error) {
	cfg := &Config{
		Mode:            ModeMock,
		CompanyID:       strings.TrimSpace(os.Getenv("PROCORE_COMPANY_ID")),
		APIBaseURL:      getEnv("PROCORE_API_BASE_URL", defaultAPIBaseURL),
		TokenCookie:     getEnv("PROCORE_TOKEN_COOKIE", defaultTokenCookie),
		RateLimit:       defaultRateLimit,
		ServerAddress:   getEnv("SERVER_ADDRESS", defaultServerAddress),
		PostgresConn:    os.Getenv("POSTGRES_CONN"),
		ShutdownTimeout: defaultShutdown,
	}

	switch mode := strings.ToLower(strings.TrimSpace(os.Getenv("PROCORE_MODE"))); mode {
	case "", string(ModeMock):
	case string(ModeLive):
		cfg.Mode = ModeLive
	default:
		return nil, fmt.Errorf("PROCORE_MODE must be %q or %q, got %q", ModeMock, ModeLive, mode)
	}

	if val := os.Getenv("PROCORE_RATE_LIMIT"); val != "" {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid PROCORE_RATE_LIMIT %q", val)
		}
		cfg.RateLimit = parsed
	}

	if val := os.Getenv("SHUTDOWN_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", val, err)
		}
		cfg.ShutdownTimeout = parsed
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
