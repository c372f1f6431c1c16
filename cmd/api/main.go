// Command api starts the route-search HTTP server, adapted from the
// teacher's cmd/api/main_with_auth.go: same singleton init order
// (config → db → redis → fiber app → listen), same feature-toggle
// environment switches, same graceful-shutdown goroutine, repointed at
// the route-search/health endpoints and the file-backed segment graph
// instead of a DB-backed GTFS graph.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/routeopt/internal/api"
	"github.com/passbi/routeopt/internal/cache"
	"github.com/passbi/routeopt/internal/config"
	"github.com/passbi/routeopt/internal/db"
	"github.com/passbi/routeopt/internal/enumerate"
	"github.com/passbi/routeopt/internal/ingest"
	"github.com/passbi/routeopt/internal/metrics"
	"github.com/passbi/routeopt/internal/middleware"
	"github.com/passbi/routeopt/internal/optimizer"
)

func main() {
	log.Println("Starting route-search API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	segments, err := ingest.LoadSegments(cfg.SegmentFilePath)
	if err != nil {
		log.Fatalf("Failed to load segment data: %v", err)
	}
	log.Printf("✓ Loaded %d segments from %s", len(segments), cfg.SegmentFilePath)

	limits := enumerate.Limits{
		MinTransferWaitH:      cfg.MinTransferWaitH,
		MaxTransferWaitH:      cfg.MaxTransferWaitH,
		MaxDistanceKM:         cfg.MaxDistanceKM,
		MaxEmittedPerStrategy: cfg.MaxEmittedPerStrategy,
	}
	opt := optimizer.New(segments, limits, cfg.RNGSeed)

	enableAuth := getEnvBool("ENABLE_AUTH", false)
	enableRateLimit := getEnvBool("ENABLE_RATE_LIMIT", false)
	enableAnalytics := getEnvBool("ENABLE_ANALYTICS", false)
	needsDB := enableAuth || enableRateLimit || enableAnalytics

	var dbPool *pgxpool.Pool
	if needsDB {
		dbPool, err = db.GetDB(db.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			Database: cfg.DBName,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			SSLMode:  cfg.DBSSLMode,
			MinConns: cfg.DBMinConns,
			MaxConns: cfg.DBMaxConns,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("✓ Database connection established")
	}

	rdb, err := cache.GetClient(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.Close()
	log.Println("✓ Redis connection established")

	log.Printf("Configuration: Auth=%v, RateLimit=%v, Analytics=%v", enableAuth, enableRateLimit, enableAnalytics)

	app := fiber.New(fiber.Config{
		AppName:      "Route Optimizer API",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(requestIDMiddleware())
	app.Use(metrics.Middleware())

	srv := &api.Server{
		Optimizer: opt,
		Redis:     rdb,
		DB:        dbPool,
		CacheTTL:  cfg.CacheTTL,
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Route Optimizer API",
			"version": "2.0.0",
			"status":  "operational",
			"authentication": fiber.Map{
				"enabled": enableAuth,
				"type":    "Bearer Token (API Key)",
				"format":  "Authorization: Bearer pk_live_...",
			},
		})
	})
	app.Get("/health", srv.Health)
	app.Get("/metrics", metrics.Handler())

	v2 := app.Group("/v2")
	if enableAuth {
		v2.Use(middleware.AuthMiddleware(dbPool))
		log.Println("✓ Authentication middleware enabled")
	}
	if enableRateLimit && enableAuth {
		v2.Use(middleware.RateLimitMiddleware(rdb, middleware.RateLimits{
			PerSecond: cfg.RateLimitPerSecond,
			PerDay:    cfg.RateLimitPerDay,
			PerMonth:  cfg.RateLimitPerMonth,
		}))
		log.Println("✓ Rate limiting middleware enabled")
	}
	if enableAnalytics && enableAuth {
		v2.Use(middleware.AnalyticsMiddleware(dbPool))
		log.Println("✓ Analytics middleware enabled")
	}
	v2.Get("/route-search", srv.RouteSearch)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "endpoint not found",
			"path":  c.Path(),
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Port)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		cache.Close()
		if dbPool != nil {
			db.Close()
		}
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		log.Println("✓ Server shut down gracefully")
	}()

	log.Printf("🚀 Server listening on http://localhost%s", addr)
	log.Printf("📍 Route search: http://localhost%s/v2/route-search?origin=NDLS&destination=BCT", addr)
	log.Printf("❤️  Health check: http://localhost%s/health", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// requestIDMiddleware stamps every request with a UUID (or keeps the
// caller's X-Request-ID), echoes it back as X-Request-ID and stores it in
// the request locals under "request_id". The access log format does not
// include it.
func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("request_id", id)
		return c.Next()
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error [%s %s]: %v", c.Method(), c.Path(), err)

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
