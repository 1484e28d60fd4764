package main // Entry point package

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prosetii/club-roster/internal/config"
	"github.com/prosetii/club-roster/internal/database"
	"github.com/prosetii/club-roster/internal/handler"
	mw "github.com/prosetii/club-roster/internal/middleware"
	"github.com/prosetii/club-roster/internal/queue"
	"github.com/prosetii/club-roster/internal/repository"
	"github.com/prosetii/club-roster/internal/router"
)

func main() {
	// A local .env is a convenience for dev; in production everything comes
	// from real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db, cfg); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Redis backs the login limiter; a nil client disables it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, login rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	authHandler := handler.NewAuthHandler(cfg, users)
	userHandler := handler.NewUserHandler(cfg, users)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	loginLimiter := mw.LoginRateLimit(config.LoadLoginRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, loginLimiter)
	router.RegisterUsers(e, userHandler, cfg.JWTSecret)

	// Background consumer writing new registrations to logs/members.log.
	go func() {
		if err := queue.StartMemberConsumer(); err != nil {
			log.Printf("member consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
