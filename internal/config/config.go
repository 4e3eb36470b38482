package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	APIBaseURL       string
	TelegramUserID   string
	HTTPTimeout      time.Duration
	DebounceInterval time.Duration
	PageLimit        int
	StubAddr         string
	ShutdownTimeout  time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		APIBaseURL:       envOrDefault("API_BASE_URL", "http://localhost:8000"),
		TelegramUserID:   envOrDefault("TELEGRAM_USER_ID", "1"),
		HTTPTimeout:      envDuration("HTTP_TIMEOUT_SECONDS", 10*time.Second),
		DebounceInterval: envMillis("SEARCH_DEBOUNCE_MS", 450*time.Millisecond),
		PageLimit:        envInt("PAGE_LIMIT", 300),
		StubAddr:         envOrDefault("STUB_ADDR", ":8000"),
		ShutdownTimeout:  envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		ms, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}
