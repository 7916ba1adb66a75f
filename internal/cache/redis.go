package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumistore/backoffice/internal/logger"
)

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCache is the shared render cache for multi-instance deployments.
// Redis owns expiry via key TTLs; tag membership lives in a set per tag.
func NewRedisCache(addr string, ttl time.Duration, log *logger.Logger) (RenderCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
		log:    log.With("cache", "redis"),
	}, nil
}

func renderKey(key string) string { return "render:" + key }
func tagKey(tag string) string    { return "render:tag:" + tag }

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, renderKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, tags []string) error {
	if err := c.client.Set(ctx, renderKey(key), value, c.ttl).Err(); err != nil {
		return err
	}
	for _, tag := range tags {
		if err := c.client.SAdd(ctx, tagKey(tag), renderKey(key)).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, renderKey(key)).Err()
}

func (c *redisCache) InvalidateTag(ctx context.Context, tag string) error {
	keys, err := c.client.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return c.client.Del(ctx, tagKey(tag)).Err()
}

func (c *redisCache) Sweep(ctx context.Context) (int, error) {
	// Redis expires render keys itself; only the tag sets need pruning.
	var removed int
	tags, err := c.client.Keys(ctx, tagKey("*")).Result()
	if err != nil {
		return 0, err
	}
	for _, tag := range tags {
		members, err := c.client.SMembers(ctx, tag).Result()
		if err != nil {
			return removed, err
		}
		for _, member := range members {
			exists, err := c.client.Exists(ctx, member).Result()
			if err != nil {
				return removed, err
			}
			if exists == 0 {
				if err := c.client.SRem(ctx, tag, member).Err(); err != nil {
					return removed, err
				}
				removed++
			}
		}
	}
	return removed, nil
}
