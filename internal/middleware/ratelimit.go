package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/prosetii/club-roster/internal/config"
)

// LoginRateLimit returns a fixed-window limiter for the login endpoint,
// keyed by client address. The window lives in Redis so multiple instances
// share the same counters. When no Redis client is available, or a Redis
// call fails mid-request, the middleware passes requests through unchanged
// rather than blocking logins.
func LoginRateLimit(cfg config.LoginRateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	windowScript := redis.NewScript(`
        local count = redis.call('INCR', KEYS[1])
        if count == 1 then
            redis.call('EXPIRE', KEYS[1], ARGV[1])
        end
        local ttl = redis.call('TTL', KEYS[1])
        return { count, ttl }
    `)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":" + ip

			ctx := c.Request().Context()
			vals, err := windowScript.Run(ctx, rdb, []string{key},
				int64(cfg.Window/time.Second)).Result()
			if err != nil {
				c.Logger().Warnf("login rate limit: redis error for key=%s: %v", key, err)
				return next(c)
			}

			var count, ttl int64
			if arr, ok := vals.([]interface{}); ok && len(arr) == 2 {
				count = asInt64(arr[0])
				ttl = asInt64(arr[1])
			} else {
				c.Logger().Warnf("login rate limit: unexpected script result for key=%s: %#v", key, vals)
				return next(c)
			}

			remaining := int64(cfg.MaxAttempts) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxAttempts))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.MaxAttempts) {
				if ttl < 0 {
					ttl = 0
				}
				c.Response().Header().Set("Retry-After", strconv.FormatInt(ttl, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "Too many login attempts, please try again later.",
				})
			}
			return next(c)
		}
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case float32:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
