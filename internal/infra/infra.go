// Package infra opens the external connections the gateway may depend on.
// Both are optional: the stub backend needs no database and rate limiting
// falls back to process memory without Redis.
package infra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/x31a/acrobits-websvc/internal/config"
)

// Resources holds the opened connections. Nil fields were not configured.
type Resources struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

// Open connects to whatever cfg asks for. On error nothing is left open.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Resources, error) {
	res := &Resources{}

	if cfg.Backend == config.BackendPostgres {
		db, err := NewPostgresPool(ctx, cfg.DatabaseURL, cfg.AppName)
		if err != nil {
			return nil, err
		}
		res.DB = db
		logger.Info("postgres connected")
	}

	cache, err := NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		res.Close()
		return nil, err
	}
	if cache != nil {
		res.Cache = cache
		logger.Info("redis connected")
	}
	return res, nil
}

// Close releases every open connection.
func (r *Resources) Close() error {
	var errs []error
	if r.Cache != nil {
		errs = append(errs, r.Cache.Close())
	}
	if r.DB != nil {
		r.DB.Close()
	}
	return errors.Join(errs...)
}

// NewPostgresPool configures and returns a PostgreSQL connection pool tagged
// with appName so sessions are identifiable in pg_stat_activity.
func NewPostgresPool(ctx context.Context, url, appName string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if appName != "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = appName
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// NewRedisClient configures a Redis client and verifies connectivity. An
// empty url means Redis is not used and yields a nil client.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
