// Multi-window partner rate limiting (per-second/day/month) via Redis
// INCR+EXPIRE counters per window, with the usual X-RateLimit-* and
// Retry-After response headers. Limits are sourced from config-wide
// defaults rather than a per-partner override row.
package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimits holds the three windows a partner is bound by.
type RateLimits struct {
	PerSecond int
	PerDay    int
	PerMonth  int
}

// RateLimitMiddleware enforces per-second/day/month request quotas per
// partner.
func RateLimitMiddleware(rdb *redis.Client, limits RateLimits) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partner, ok := c.Locals("partner").(*PartnerContext)
		if !ok {
			return c.Next()
		}

		ctx := context.Background()
		now := time.Now()

		keySecond := fmt.Sprintf("rl:partner:%s:second:%d", partner.PartnerID, now.Unix())
		keyDay := fmt.Sprintf("rl:partner:%s:day:%s", partner.PartnerID, now.Format("2006-01-02"))
		keyMonth := fmt.Sprintf("rl:partner:%s:month:%s", partner.PartnerID, now.Format("2006-01"))

		if limits.PerSecond > 0 {
			countSecond, err := rdb.Incr(ctx, keySecond).Result()
			if err == nil {
				rdb.Expire(ctx, keySecond, 2*time.Second)
				if countSecond > int64(limits.PerSecond) {
					c.Set("X-RateLimit-Limit-Second", strconv.Itoa(limits.PerSecond))
					c.Set("X-RateLimit-Remaining-Second", "0")
					c.Set("Retry-After", "1")
					return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
						"error": "Too many requests per second",
					})
				}
			}
		}

		if limits.PerDay > 0 {
			countDay, err := rdb.Incr(ctx, keyDay).Result()
			if err == nil {
				rdb.Expire(ctx, keyDay, 25*time.Hour)
				if countDay > int64(limits.PerDay) {
					tomorrow := now.AddDate(0, 0, 1)
					midnight := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
					retryAfter := int64(midnight.Sub(now).Seconds())
					c.Set("X-RateLimit-Limit-Day", strconv.Itoa(limits.PerDay))
					c.Set("X-RateLimit-Remaining-Day", "0")
					c.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
					return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
						"error": "Daily quota exceeded",
					})
				}
				c.Set("X-RateLimit-Remaining-Day", strconv.FormatInt(int64(limits.PerDay)-countDay, 10))
			}
		}

		if limits.PerMonth > 0 {
			countMonth, err := rdb.Incr(ctx, keyMonth).Result()
			if err == nil {
				rdb.Expire(ctx, keyMonth, 32*24*time.Hour)
				if countMonth > int64(limits.PerMonth) {
					firstDayNextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
					retryAfter := int64(firstDayNextMonth.Sub(now).Seconds())
					c.Set("X-RateLimit-Limit-Month", strconv.Itoa(limits.PerMonth))
					c.Set("X-RateLimit-Remaining-Month", "0")
					c.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
					return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
						"error": "Monthly quota exceeded",
					})
				}
				c.Set("X-RateLimit-Remaining-Month", strconv.FormatInt(int64(limits.PerMonth)-countMonth, 10))
			}
		}

		c.Set("X-RateLimit-Limit-Second", strconv.Itoa(limits.PerSecond))
		c.Set("X-RateLimit-Limit-Day", strconv.Itoa(limits.PerDay))
		c.Set("X-RateLimit-Limit-Month", strconv.Itoa(limits.PerMonth))

		return c.Next()
	}
}

// ResetRateLimit clears one partner's window counter (admin function).
func ResetRateLimit(rdb *redis.Client, partnerID, period string) error {
	ctx := context.Background()
	now := time.Now()

	var key string
	switch period {
	case "second":
		key = fmt.Sprintf("rl:partner:%s:second:%d", partnerID, now.Unix())
	case "day":
		key = fmt.Sprintf("rl:partner:%s:day:%s", partnerID, now.Format("2006-01-02"))
	case "month":
		key = fmt.Sprintf("rl:partner:%s:month:%s", partnerID, now.Format("2006-01"))
	default:
		return fmt.Errorf("middleware: invalid rate limit period: %s", period)
	}
	return rdb.Del(ctx, key).Err()
}

// GetRateLimitStatus reports current usage against a partner's limits.
func GetRateLimitStatus(rdb *redis.Client, partnerID string, limits RateLimits) map[string]interface{} {
	ctx := context.Background()
	now := time.Now()

	countSecond := currentCount(ctx, rdb, fmt.Sprintf("rl:partner:%s:second:%d", partnerID, now.Unix()))
	countDay := currentCount(ctx, rdb, fmt.Sprintf("rl:partner:%s:day:%s", partnerID, now.Format("2006-01-02")))
	countMonth := currentCount(ctx, rdb, fmt.Sprintf("rl:partner:%s:month:%s", partnerID, now.Format("2006-01")))

	return map[string]interface{}{
		"second": map[string]interface{}{"limit": limits.PerSecond, "used": countSecond, "remaining": maxInt64(0, int64(limits.PerSecond)-countSecond)},
		"day":    map[string]interface{}{"limit": limits.PerDay, "used": countDay, "remaining": maxInt64(0, int64(limits.PerDay)-countDay)},
		"month":  map[string]interface{}{"limit": limits.PerMonth, "used": countMonth, "remaining": maxInt64(0, int64(limits.PerMonth)-countMonth)},
	}
}

func currentCount(ctx context.Context, rdb *redis.Client, key string) int64 {
	val, err := rdb.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return val
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
