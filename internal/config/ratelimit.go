package config

import (
	"os"
	"time"
)

// LoginRateLimitConfig controls the fixed-window limiter applied to the
// login endpoint. The defaults allow 5 attempts per 15-minute window per
// client address.
type LoginRateLimitConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
	Prefix      string
}

// LoadLoginRateLimitConfig reads environment overrides for the login
// limiter and clamps the values to sane minimums.
func LoadLoginRateLimitConfig() LoginRateLimitConfig {
	cfg := LoginRateLimitConfig{
		Enabled:     envBool("LOGIN_RATE_LIMIT_ENABLED", true),
		MaxAttempts: envInt("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", 5),
		Window:      envDur("LOGIN_RATE_LIMIT_WINDOW", 15*time.Minute),
		Prefix:      envStr("LOGIN_RATE_LIMIT_PREFIX", "rl:login"),
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}
	return cfg
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
