// Package api is the Fiber HTTP surface: route-search and health
// endpoints, using the fiber.Map{"error": ...} error envelope throughout.
package api

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/passbi/routeopt/internal/apierr"
	"github.com/passbi/routeopt/internal/cache"
	"github.com/passbi/routeopt/internal/metrics"
	"github.com/passbi/routeopt/internal/optimizer"
	"github.com/passbi/routeopt/internal/shaper"
)

// Server bundles the collaborators a handler needs: the optimizer over
// the in-memory segment dataset, the Redis client for result caching, and
// (optionally) the database pool for health reporting.
type Server struct {
	Optimizer *optimizer.Optimizer
	Redis     *redis.Client
	DB        *pgxpool.Pool
	CacheTTL  time.Duration
}

// RouteSearch handles GET /v2/route-search.
func (s *Server) RouteSearch(c *fiber.Ctx) error {
	var maxTransfersPtr *int
	if raw := c.Query("max_transfers"); raw != "" {
		v := c.QueryInt("max_transfers", 3)
		maxTransfersPtr = &v
	}

	req, err := optimizer.ParseRequest(
		c.Query("origin"),
		c.Query("destination"),
		maxTransfersPtr,
		c.Query("travel_date"),
		time.Now(),
	)
	if err != nil {
		return writeAPIError(c, err)
	}

	ctx := c.Context()
	key := cache.RouteKey(req.Origin, req.Destination, req.MaxTransfers, c.Query("travel_date"))

	if s.Redis != nil {
		if doc, err := cache.GetDocument(ctx, s.Redis, key); err == nil && doc != nil {
			metrics.CacheHits.WithLabelValues("route_search").Inc()
			c.Locals("cache_hit", true)
			return c.JSON(doc)
		}
	}
	metrics.CacheMisses.WithLabelValues("route_search").Inc()
	c.Locals("cache_hit", false)

	result, runErr, _ := cache.ComputeOnce(key, func() (shaper.Document, error) {
		return s.Optimizer.Run(req)
	})
	if runErr != nil {
		return writeAPIError(c, runErr)
	}

	metrics.RoutesGenerated.Observe(float64(len(result.AllGeneratedRoutes)))
	metrics.RoutesSelected.Observe(float64(len(result.OptimalRoutes)))

	if s.Redis != nil {
		if err := cache.SetDocument(ctx, s.Redis, key, result, s.CacheTTL); err != nil {
			log.Println("api: caching result document:", err)
		}
	}

	return c.JSON(result)
}

// Health handles GET /health.
func (s *Server) Health(c *fiber.Ctx) error {
	ctx := c.Context()

	checks := fiber.Map{}
	healthy := true

	if s.DB != nil {
		if err := pingDB(ctx, s.DB); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := "healthy"
	httpStatus := fiber.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

func pingDB(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// writeAPIError maps an *apierr.Error to its HTTP status and the
// {"error": ...} envelope; any other error is a 500.
func writeAPIError(c *fiber.Ctx, err error) error {
	apiErr, ok := err.(*apierr.Error)
	if !ok {
		log.Println("api: unexpected error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	status := fiber.StatusBadRequest
	switch apiErr.Kind {
	case apierr.KindInputValidation:
		status = fiber.StatusBadRequest
	case apierr.KindUnknownLocation:
		status = fiber.StatusNotFound
	case apierr.KindDataSourceMissing, apierr.KindDataSourceMalformed:
		status = fiber.StatusInternalServerError
	case apierr.KindEmptyResult:
		status = fiber.StatusOK
	}

	if apiErr.Kind == apierr.KindEmptyResult {
		return c.Status(status).JSON(fiber.Map{
			"error":          apiErr.Message,
			"optimal_routes": []interface{}{},
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": apiErr.Message,
	})
}
