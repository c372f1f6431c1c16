// Partner/API-key/usage-log queries against the partners, usage_logs,
// and partner_quota_daily tables.
package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Partner is one registered API consumer.
type Partner struct {
	ID        string
	Name      string
	KeyHash   string
	Scopes    []string
	Active    bool
	CreatedAt time.Time
}

// HashAPIKey returns the SHA-256 hex digest of a raw API key, the value
// stored in partners.key_hash (teacher never stores raw keys either).
func HashAPIKey(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// LookupPartnerByKey finds the active partner owning a raw API key.
func LookupPartnerByKey(ctx context.Context, p *pgxpool.Pool, rawKey string) (*Partner, error) {
	hash := HashAPIKey(rawKey)

	var partner Partner
	err := p.QueryRow(ctx, `
		SELECT id, name, key_hash, scopes, active, created_at
		FROM partners
		WHERE key_hash = $1 AND active = true
	`, hash).Scan(&partner.ID, &partner.Name, &partner.KeyHash, &partner.Scopes, &partner.Active, &partner.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db: looking up partner: %w", err)
	}
	return &partner, nil
}

// UpdateLastUsed bumps a partner's last-used timestamp. It runs
// synchronously; AuthMiddleware calls it from a background goroutine.
func UpdateLastUsed(ctx context.Context, p *pgxpool.Pool, partnerID string) error {
	_, err := p.Exec(ctx, `UPDATE partners SET last_used_at = now() WHERE id = $1`, partnerID)
	if err != nil {
		return fmt.Errorf("db: updating last_used_at: %w", err)
	}
	return nil
}

// LogUsage records one request for a partner's usage analytics.
func LogUsage(ctx context.Context, p *pgxpool.Pool, partnerID, origin, destination string, maxTransfers int, cacheHit bool) error {
	_, err := p.Exec(ctx, `
		INSERT INTO usage_logs (partner_id, origin, destination, max_transfers, cache_hit, requested_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, partnerID, origin, destination, maxTransfers, cacheHit)
	if err != nil {
		return fmt.Errorf("db: logging usage: %w", err)
	}
	return nil
}

// UpsertDailyQuota increments a partner's daily request counter.
func UpsertDailyQuota(ctx context.Context, p *pgxpool.Pool, partnerID string, day time.Time) error {
	_, err := p.Exec(ctx, `
		INSERT INTO partner_quota_daily (partner_id, quota_date, request_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (partner_id, quota_date)
		DO UPDATE SET request_count = partner_quota_daily.request_count + 1
	`, partnerID, day.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("db: upserting daily quota: %w", err)
	}
	return nil
}

// CreatePartner inserts a new partner row, used by
// scripts/generate_api_key.go.
func CreatePartner(ctx context.Context, p *pgxpool.Pool, name, keyHash string, scopes []string) (string, error) {
	var id string
	err := p.QueryRow(ctx, `
		INSERT INTO partners (name, key_hash, scopes, active, created_at)
		VALUES ($1, $2, $3, true, now())
		RETURNING id
	`, name, keyHash, scopes).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db: creating partner: %w", err)
	}
	return id, nil
}
