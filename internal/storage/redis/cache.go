package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leozw/domain-scout/internal/core"
)

// Cache is a TTL cache for availability results. Lookups that fail at
// the Redis level are reported as misses; callers never see cache errors.
type Cache struct {
	*redis.Client
	ttl time.Duration
}

func NewCache(redisURL string, ttl time.Duration) *Cache {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Cache{Client: redis.NewClient(opt), ttl: ttl}
}

func availabilityKey(domain string) string {
	return fmt.Sprintf("availability:%s", domain)
}

func (c *Cache) GetAvailability(ctx context.Context, domain string) (*core.AvailabilityResult, bool) {
	data, err := c.Get(ctx, availabilityKey(domain)).Result()
	if err != nil {
		return nil, false
	}

	var result core.AvailabilityResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *Cache) SetAvailability(ctx context.Context, result *core.AvailabilityResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.Set(ctx, availabilityKey(result.Domain), data, c.ttl)
}
