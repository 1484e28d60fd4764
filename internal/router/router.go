package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/prosetii/club-roster/internal/handler"    // import the handlers that implement business logic
	"github.com/prosetii/club-roster/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/prosetii/club-roster/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Login additionally
// runs through the rate limiter; verify sits behind the JWT gate so a bad
// token is rejected before the handler runs.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/login", a.Login, loginLimiter)
	g.POST("/register", a.Register)
	g.POST("/logout", a.Logout)
	g.GET("/verify", a.Verify, middleware.JWTAuth(jwtSecret))
}

// RegisterUsers registers the user directory. The whole group requires a
// valid access token; the roster CRUD routes additionally require the
// admin role. Authentication always runs before the role check.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/users")
	g.Use(middleware.JWTAuth(jwtSecret))

	// Self-scoped routes: the target record comes from the token claim,
	// not from a path parameter.
	g.GET("/profile", u.Profile)
	g.PUT("/profile", u.UpdateProfile)
	g.PUT("/change-password", u.ChangePassword)

	// Admin-only roster CRUD.
	admin := middleware.RequireRole(model.RoleAdmin)
	g.GET("", u.List, admin)
	g.POST("", u.Create, admin)
	g.GET("/:id", u.Get, admin)
	g.PUT("/:id", u.Update, admin)
	g.DELETE("/:id", u.Delete, admin)
}
