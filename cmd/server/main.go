package main // Entry point package for the API server

import (
	"context" // context bounds the startup seed call
	"log"     // Logging library
	"time"    // time builds the seed timeout

	"github.com/joho/godotenv"    // godotenv loads a local .env file in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/autoparts/catalog/internal/config"     // Internal config loader
	"github.com/autoparts/catalog/internal/database"   // MySQL connection pool
	"github.com/autoparts/catalog/internal/handler"    // HTTP handlers
	"github.com/autoparts/catalog/internal/middleware" // JWT, permission gate, rate limiter
	"github.com/autoparts/catalog/internal/queue"      // CSV import job publisher
	"github.com/autoparts/catalog/internal/repository" // SQL repositories
	"github.com/autoparts/catalog/internal/router"     // Route registration
	"github.com/autoparts/catalog/internal/service"    // Link resolver
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool and verify connectivity
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories: one per aggregate, all sharing the pool.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	permRepo := repository.NewPermissionRepo(db)
	carModelRepo := repository.NewCarModelRepo(db)
	partRepo := repository.NewPartRepo(db)
	linkRepo := repository.NewLinkRepo(db)

	// Ensure the baseline capability groups exist before serving.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repository.Seed(ctx, db); err != nil {
			log.Printf("seed groups/permissions: %v", err)
		}
		cancel()
	}

	// Domain services and handlers, wired explicitly.
	links := service.NewLinkResolver(linkRepo)
	catalogH := handler.NewCatalogHandler(carModelRepo, partRepo, links)
	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo, permRepo)
	userH := handler.NewUserHandler(cfg, userRepo, permRepo, tokenRepo)
	uploadH := handler.NewUploadHandler(cfg, queue.NewPublisher(cfg.AMQPURL))

	// The permission gate: method-to-capability rules shared by all
	// protected routes.
	gate := middleware.NewGate()

	// Optional Redis-backed rate limiting. When Redis is unreachable the
	// API runs unthrottled rather than refusing to start.
	var rate echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rate = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	} else {
		log.Println("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	router.RegisterRoutes(e)                    // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret) // Token endpoints
	router.Protected(e, catalogH, userH, uploadH, gate, permRepo, cfg.JWTSecret, rate)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
