package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	catalogdomain "recipe-app-go/internal/domain/catalog"
	"recipe-app-go/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	tagsKey        = "catalog:tags"
	ingredientsKey = "catalog:ingredients"
)

// CatalogCache stores the tag listing in Redis. Cache failures are
// logged and treated as misses so the database stays the source of
// truth.
type CatalogCache struct {
	client *redis.Client
	log    logger.Logger
}

func NewCatalogCache(client *redis.Client, log logger.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

func (c *CatalogCache) GetTags(ctx context.Context) ([]catalogdomain.Tag, bool) {
	payload, err := c.client.Get(ctx, tagsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", "key", tagsKey, "error", err)
		}
		return nil, false
	}

	var tags []catalogdomain.Tag
	if err := json.Unmarshal(payload, &tags); err != nil {
		c.log.Warn("redis cache entry corrupted", "key", tagsKey, "error", err)
		return nil, false
	}
	return tags, true
}

func (c *CatalogCache) SetTags(ctx context.Context, tags []catalogdomain.Tag, ttl time.Duration) {
	c.set(ctx, tagsKey, tags, ttl)
}

func (c *CatalogCache) GetIngredients(ctx context.Context) ([]catalogdomain.Ingredient, bool) {
	payload, err := c.client.Get(ctx, ingredientsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", "key", ingredientsKey, "error", err)
		}
		return nil, false
	}

	var ingredients []catalogdomain.Ingredient
	if err := json.Unmarshal(payload, &ingredients); err != nil {
		c.log.Warn("redis cache entry corrupted", "key", ingredientsKey, "error", err)
		return nil, false
	}
	return ingredients, true
}

func (c *CatalogCache) SetIngredients(ctx context.Context, ingredients []catalogdomain.Ingredient, ttl time.Duration) {
	c.set(ctx, ingredientsKey, ingredients, ttl)
}

func (c *CatalogCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("redis cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.log.Warn("redis set failed", "key", key, "error", err)
	}
}
