package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosetii/club-roster/internal/config"
	"github.com/prosetii/club-roster/internal/middleware"
)

func limiterConfig() config.LoginRateLimitConfig {
	return config.LoginRateLimitConfig{
		Enabled:     true,
		MaxAttempts: 5,
		Window:      15 * time.Minute,
		Prefix:      "rl:login",
	}
}

func loginAttempt(t *testing.T, h echo.HandlerFunc, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestLoginRateLimitBlocksSixthAttempt(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := middleware.LoginRateLimit(limiterConfig(), rdb)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 1; i <= 5; i++ {
		rec := loginAttempt(t, h, "")
		assert.Equal(t, http.StatusOK, rec.Code, "attempt %d should pass", i)
	}

	rec := loginAttempt(t, h, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, rec.Body.String(), "Too many login attempts")
}

func TestLoginRateLimitSeparateAddresses(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := middleware.LoginRateLimit(limiterConfig(), rdb)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 6; i++ {
		loginAttempt(t, h, "10.0.0.1:1234")
	}
	// The first address is exhausted, a second address is not.
	rec := loginAttempt(t, h, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = loginAttempt(t, h, "10.0.0.2:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimitWindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := limiterConfig()
	h := middleware.LoginRateLimit(cfg, rdb)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 6; i++ {
		loginAttempt(t, h, "")
	}
	rec := loginAttempt(t, h, "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Once the window key expires the counter resets.
	mr.FastForward(cfg.Window + time.Second)
	rec = loginAttempt(t, h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimitDisabledWithoutRedis(t *testing.T) {
	h := middleware.LoginRateLimit(limiterConfig(), nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	for i := 0; i < 10; i++ {
		rec := loginAttempt(t, h, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
