// Package db holds the optional Redis-backed cache for per-advertiser
// active-ads estimates. The cache is a bounded-TTL memo around the slow
// advertiser lookups; a nil store disables caching entirely.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore wraps a redis client and context for operations.
type RedisStore struct {
	Client *redis.Client
	Ctx    context.Context
}

// InitRedis initializes a Redis client and returns a RedisStore.
func InitRedis(addr string) (*RedisStore, error) {
	rs := &RedisStore{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		Ctx:    context.Background(),
	}

	if err := redisotel.InstrumentTracing(rs.Client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := rs.Client.Ping(rs.Ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	zap.L().Info("Connected to Redis", zap.String("addr", addr))
	return rs, nil
}

func estimateKey(advertiser string) string {
	return "advest:" + advertiser
}

// GetAdvertiserActiveAds returns the cached active-ads estimate for an
// advertiser key, with ok=false on a miss.
func (r *RedisStore) GetAdvertiserActiveAds(advertiser string) (int, bool, error) {
	if r == nil || r.Client == nil {
		return 0, false, nil
	}
	n, err := r.Client.Get(r.Ctx, estimateKey(advertiser)).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// SetAdvertiserActiveAds caches an active-ads estimate with the given TTL.
func (r *RedisStore) SetAdvertiserActiveAds(advertiser string, count int, ttl time.Duration) error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Set(r.Ctx, estimateKey(advertiser), count, ttl).Err()
}

// Close shuts down the Redis client.
func (r *RedisStore) Close() {
	if r != nil && r.Client != nil {
		if err := r.Client.Close(); err != nil {
			zap.L().Error("redis close", zap.Error(err))
		}
	}
}
