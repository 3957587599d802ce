package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL  = "24h"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultDatabaseURL   = "fitcrm.db"
	defaultListenAddr    = ":8080"
	defaultCookieName    = "fitcrm_session"
	defaultCookieSecure  = "false"
	defaultLoginPath     = "/login"
	defaultDashboardPath = "/dashboard"
)

type Config struct {
	AppEnv        string
	DatabaseURL   string
	ListenAddr    string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	CookieName    string
	CookieSecure  bool
	LoginPath     string
	DashboardPath string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.CookieName = getEnv("SESSION_COOKIE_NAME", defaultCookieName)
	cfg.LoginPath = getEnv("LOGIN_PATH", defaultLoginPath)
	cfg.DashboardPath = getEnv("DASHBOARD_PATH", defaultDashboardPath)

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	secure := strings.ToLower(getEnv("SESSION_COOKIE_SECURE", defaultCookieSecure))
	cfg.CookieSecure = secure == "true" || secure == "1"

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return d, nil
}
