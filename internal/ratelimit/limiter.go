// Package ratelimit throttles requests per account or client address.
package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key fits in its budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter is a fixed one-minute window shared by every gateway instance
// pointing at the same Redis.
type RedisLimiter struct {
	cache     *redis.Client
	perMinute int64
	prefix    string
	window    time.Duration
}

// NewRedisLimiter returns nil when cache is nil or perMinute is not positive.
func NewRedisLimiter(cache *redis.Client, perMinute int) *RedisLimiter {
	if cache == nil || perMinute <= 0 {
		return nil
	}
	return &RedisLimiter{
		cache:     cache,
		perMinute: int64(perMinute),
		prefix:    "rl:websvc:",
		window:    time.Minute,
	}
}

// Allow increments the counter for key, starting the window on first use.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}
	k := l.prefix + key
	cnt, err := l.cache.Incr(ctx, k).Result()
	if err != nil {
		return true, err
	}
	if cnt == 1 {
		if err := l.cache.Expire(ctx, k, l.window).Err(); err != nil {
			return true, err
		}
	}
	return cnt <= l.perMinute, nil
}

// MemoryLimiter applies a token bucket per key inside this process and
// periodically evicts idle entries.
type MemoryLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.Mutex
	byKey map[string]*entry
	hits  uint64
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter allows perMinute requests per key, refilled evenly, with
// a burst of the same size. It returns nil if perMinute is not positive.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &MemoryLimiter{
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		byKey:   make(map[string]*entry),
	}
}

// Allow reports whether one token can be consumed for key.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true, nil
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}
	return allowed, nil
}

// New picks the Redis limiter when a cache is configured and falls back to
// the in-process one otherwise. It returns nil when limiting is disabled.
func New(cache *redis.Client, perMinute int) Limiter {
	if perMinute <= 0 {
		return nil
	}
	if cache != nil {
		return NewRedisLimiter(cache, perMinute)
	}
	return NewMemoryLimiter(perMinute)
}
