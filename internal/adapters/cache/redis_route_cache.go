package cache

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRouteTTL bounds how long a road route is reused. Road networks
// change slowly, so a day is plenty.
const DefaultRouteTTL = 24 * time.Hour

// KeyRoute prefixes every road route key in Redis.
const KeyRoute = "centre-scheduler:cache:route:"

// RedisRouteCache keeps road routes in Redis with a TTL.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRouteCache wraps client. A non-positive ttl means DefaultRouteTTL.
func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.RoadRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if c.client == nil {
		return domain.RoadRoute{}, false, errors.New("route cache: redis client is nil")
	}

	data, err := c.client.Get(ctx, KeyRoute+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RoadRoute{}, false, nil
	}
	if err != nil {
		return domain.RoadRoute{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var r domain.RoadRoute
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.RoadRoute{}, false, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	return r, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, r domain.RoadRoute) (err error) {
	defer obs.Time(ctx, "route.cache.redis.Put")(&err)

	if c.client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if err := validateRoute(key, r); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: encode: %w", key, err)
	}

	if err := c.client.Set(ctx, KeyRoute+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}
	return nil
}
