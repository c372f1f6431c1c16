// Package config loads server, cache, database, and optimizer settings via
// viper, with env var overrides and explicit defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	Port string

	SegmentFilePath string
	RNGSeed         int64

	MaxTransferWaitH      float64
	MinTransferWaitH      float64
	MaxDistanceKM         float64
	MaxEmittedPerStrategy int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
	DBMinConns int32
	DBMaxConns int32

	RateLimitPerSecond int
	RateLimitPerDay    int
	RateLimitPerMonth  int
}

// Load reads configuration from environment variables (prefix ROUTEOPT_),
// falling back to defaults matching enumerate.DefaultLimits() and the
// teacher's own env defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ROUTEOPT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", "8080")
	v.SetDefault("segment_file_path", "unified_routes.json")
	v.SetDefault("rng_seed", int64(42))

	v.SetDefault("max_transfer_wait_h", 8.0)
	v.SetDefault("min_transfer_wait_h", 0.5)
	v.SetDefault("max_distance_km", 5000.0)
	v.SetDefault("max_emitted_per_strategy", 100)

	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", "10m")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_name", "routeopt")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_min_conns", 5)
	v.SetDefault("db_max_conns", 20)

	v.SetDefault("rate_limit_per_second", 10)
	v.SetDefault("rate_limit_per_day", 10000)
	v.SetDefault("rate_limit_per_month", 100000)

	cacheTTL, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		return nil, fmt.Errorf("config: parsing cache_ttl: %w", err)
	}

	return &Config{
		Port:                   v.GetString("port"),
		SegmentFilePath:        v.GetString("segment_file_path"),
		RNGSeed:                v.GetInt64("rng_seed"),
		MaxTransferWaitH:       v.GetFloat64("max_transfer_wait_h"),
		MinTransferWaitH:       v.GetFloat64("min_transfer_wait_h"),
		MaxDistanceKM:          v.GetFloat64("max_distance_km"),
		MaxEmittedPerStrategy:  v.GetInt("max_emitted_per_strategy"),
		RedisAddr:              v.GetString("redis_addr"),
		RedisPassword:          v.GetString("redis_password"),
		RedisDB:                v.GetInt("redis_db"),
		CacheTTL:               cacheTTL,
		DBHost:                 v.GetString("db_host"),
		DBPort:                 v.GetInt("db_port"),
		DBName:                 v.GetString("db_name"),
		DBUser:                 v.GetString("db_user"),
		DBPassword:             v.GetString("db_password"),
		DBSSLMode:              v.GetString("db_sslmode"),
		DBMinConns:             int32(v.GetInt("db_min_conns")),
		DBMaxConns:             int32(v.GetInt("db_max_conns")),
		RateLimitPerSecond:     v.GetInt("rate_limit_per_second"),
		RateLimitPerDay:        v.GetInt("rate_limit_per_day"),
		RateLimitPerMonth:      v.GetInt("rate_limit_per_month"),
	}, nil
}
