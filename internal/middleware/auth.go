// Partner API-key authentication: Bearer pk_-prefixed keys, hashed and
// looked up against internal/db's partner table.
package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/routeopt/internal/db"
)

// PartnerContext holds the authenticated partner's identity for the
// remainder of the request.
type PartnerContext struct {
	PartnerID string
	Name      string
	Scopes    []string
}

// AuthMiddleware validates the Authorization: Bearer pk_... header and
// loads the partner's record.
func AuthMiddleware(pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key is required. Use Authorization: Bearer YOUR_API_KEY",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header must be in format: Bearer YOUR_API_KEY",
			})
		}

		apiKey := strings.TrimSpace(parts[1])
		if !strings.HasPrefix(apiKey, "pk_") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key must start with pk_",
			})
		}

		ctx := context.Background()
		partner, err := db.LookupPartnerByKey(ctx, pool, apiKey)
		if err != nil || partner == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "The provided API key is invalid, expired, or has been revoked",
			})
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.UpdateLastUsed(ctx, pool, partner.ID)
		}()

		c.Locals("partner", &PartnerContext{
			PartnerID: partner.ID,
			Name:      partner.Name,
			Scopes:    partner.Scopes,
		})

		return c.Next()
	}
}

// RequireScope rejects requests whose partner lacks the given scope.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partner, ok := c.Locals("partner").(*PartnerContext)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		hasScope := false
		for _, s := range partner.Scopes {
			if s == scope || s == "*" {
				hasScope = true
				break
			}
		}
		if !hasScope {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Your API key does not have the required permissions",
			})
		}

		return c.Next()
	}
}

// OptionalAuth runs AuthMiddleware only if an Authorization header is
// present, for endpoints that work with or without a partner identity.
func OptionalAuth(pool *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return AuthMiddleware(pool)(c)
	}
}
