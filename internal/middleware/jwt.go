package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prosetii/club-roster/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's identity claims into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware wraps protected routes so that handlers can read the caller
// via `c.Get("user_id")`, `c.Get("username")` and `c.Get("role")`.
//
// The check never queries the store: a token stays valid until expiry even
// if its user was demoted or deactivated after issuance.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// The Authorization header is the sole authentication channel.
			// Anything not shaped like "Bearer <token>" counts as missing.
			auth := c.Request().Header.Get("Authorization")
			var raw string
			if strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}

			claims, err := utils.ParseAccessToken(secret, raw)
			switch {
			case errors.Is(err, utils.ErrTokenMissing):
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
			case errors.Is(err, utils.ErrTokenExpired):
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token expired"})
			case err != nil:
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
