// Package db owns the partner/API-key/usage-log persistence layer via a
// singleton pgx pool. The routing graph itself is file-backed and
// request-scoped, so no graph or schedule tables live here.
package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// Config holds database connection settings.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MinConns int32
	MaxConns int32
}

// GetDB returns the global connection pool, dialed once.
func GetDB(cfg Config) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		pool, poolErr = initPool(cfg)
	})
	return pool, poolErr
}

func initPool(cfg Config) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("db: parsing connection string: %w", err)
	}

	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Disable prepared statements for poolers running in transaction mode
	// (e.g. Supabase's pgbouncer on 6543).
	if cfg.Port == 6543 {
		poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("db: creating pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("db: pinging database: %w", err)
	}
	return p, nil
}

// Close closes the pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// HealthCheck pings the pool.
func HealthCheck(ctx context.Context, p *pgxpool.Pool) error {
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("db: ping failed: %w", err)
	}
	return nil
}
