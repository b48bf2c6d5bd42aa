package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL     string
	AppHost         string
	JWTSecret       string
	JWTTTL          time.Duration
	LogLevel        string
	MigrationsDir   string
	PresetCacheTTL  time.Duration
	PresetCacheSize int
	SubstituteLimit int
	LoginRateLimit  int
	LoginRateWindow time.Duration
	CartIdleTTL     time.Duration
	RequestTimeout  time.Duration
}

// Load reads the configuration from the environment. Unset values fall back
// to defaults; malformed values are an error.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AppHost:       getEnv("APP_HOST", ":8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 120*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PresetCacheTTL, err = getDuration("PRESET_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.PresetCacheSize, err = getInt("PRESET_CACHE_SIZE", 128); err != nil {
		return nil, err
	}
	if cfg.SubstituteLimit, err = getInt("SUBSTITUTE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = getInt("LOGIN_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.LoginRateWindow, err = getDuration("LOGIN_RATE_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CartIdleTTL, err = getDuration("CART_IDLE_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}
