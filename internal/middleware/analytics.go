// Async usage logging: a fire-and-forget goroutine records each request's
// origin/destination/max_transfers and cache-hit outcome to
// internal/db's usage_logs table and rolls it into partner_quota_daily,
// and the handler sets response-time/cache-hit headers without waiting on
// the write.
package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/routeopt/internal/db"
)

// AnalyticsMiddleware logs each route-search request for partner usage
// analytics and billing.
func AnalyticsMiddleware(pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		responseTime := time.Since(start)

		partner, ok := c.Locals("partner").(*PartnerContext)
		if !ok {
			return err
		}

		cacheHit := false
		if val := c.Locals("cache_hit"); val != nil {
			cacheHit, _ = val.(bool)
		}

		origin := c.Query("origin")
		destination := c.Query("destination")
		maxTransfers := c.QueryInt("max_transfers", 0)

		go logUsage(pool, partner.PartnerID, origin, destination, maxTransfers, cacheHit)

		c.Set("X-Response-Time", responseTime.String())
		c.Set("X-Cache-Hit", boolToString(cacheHit))

		return err
	}
}

func logUsage(pool *pgxpool.Pool, partnerID, origin, destination string, maxTransfers int, cacheHit bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.LogUsage(ctx, pool, partnerID, origin, destination, maxTransfers, cacheHit); err != nil {
		log.Println("middleware: logging usage:", err)
		return
	}
	if err := db.UpsertDailyQuota(ctx, pool, partnerID, time.Now()); err != nil {
		log.Println("middleware: updating daily quota:", err)
	}
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
