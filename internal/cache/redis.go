// Package cache memoizes shaped result documents per
// (origin, destination, max_transfers, travel_date) in a singleton Redis
// pool. Route computation is a fast, pure, in-process function, so
// in-process request coalescing uses golang.org/x/sync/singleflight rather
// than a Redis-backed lock/wait dance; Redis remains the cross-process
// cache of record.
package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/passbi/routeopt/internal/shaper"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error

	group singleflight.Group
)

// Config holds Redis connection settings.
type Config struct {
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	TLSEnable bool
}

// GetClient returns the global Redis client, dialed once.
func GetClient(cfg Config) (*redis.Client, error) {
	clientOnce.Do(func() {
		opts := &redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}
		if cfg.TLSEnable {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}

		client = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("cache: connecting to redis: %w", err)
		}
	})
	return client, clientErr
}

// Close closes the Redis client.
func Close() {
	if client != nil {
		client.Close()
	}
}

// RouteKey builds the deterministic cache key for a route-search request.
func RouteKey(origin, destination string, maxTransfers int, travelDate string) string {
	data := fmt.Sprintf("%s|%s|%d|%s", origin, destination, maxTransfers, travelDate)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("routeopt:doc:%x", hash[:12])
}

// GetDocument retrieves a cached document, nil on a cache miss.
func GetDocument(ctx context.Context, rdb *redis.Client, key string) (*shaper.Document, error) {
	data, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}

	var doc shaper.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cache: unmarshaling cached document: %w", err)
	}
	return &doc, nil
}

// SetDocument caches a document under key with the configured TTL.
func SetDocument(ctx context.Context, rdb *redis.Client, key string, doc shaper.Document, ttl time.Duration) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: marshaling document: %w", err)
	}
	return rdb.Set(ctx, key, data, ttl).Err()
}

// ComputeOnce coalesces concurrent in-process requests for the same key
// through compute, so that a cache-stampede on a hot route only runs the
// optimizer pipeline once. Independent of the Redis cache above: this
// guards CPU/memory within one process, Redis guards cross-process reuse.
func ComputeOnce(key string, compute func() (shaper.Document, error)) (shaper.Document, error, bool) {
	v, err, shared := group.Do(key, func() (interface{}, error) {
		return compute()
	})
	if err != nil {
		return shaper.Document{}, err, shared
	}
	return v.(shaper.Document), nil, shared
}

// HealthCheck pings Redis.
func HealthCheck(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping failed: %w", err)
	}
	return nil
}
