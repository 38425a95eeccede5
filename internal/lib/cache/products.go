// Package cache keeps the product catalog in Redis between requests.
//
// The cache is best effort: Redis failures are logged and treated as misses,
// and a nil *ProductCache is a valid, always-missing cache.
//
// Lists are stored per generation. Every committed product write bumps the
// generation, so a list computed before the write lands under a key that is
// no longer read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/logger"
	"github.com/pr-poehali-dev/internal-employee-app/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// GenerationKey holds the current catalog generation, bumped with INCR.
	GenerationKey = "supply:products:generation"

	productsKeyPrefix = "supply:products:list:"
)

func productsKey(generation string) string {
	return productsKeyPrefix + generation
}

type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zerolog.Logger

	// stale is set when a bump failed. Reads miss until a bump succeeds.
	stale atomic.Bool
}

// NewProductCache returns nil when client is nil, which disables caching.
func NewProductCache(client *redis.Client, ttl time.Duration, log *zerolog.Logger) *ProductCache {
	if client == nil {
		return nil
	}
	return &ProductCache{client: client, ttl: ttl, log: log}
}

// Products returns the cached list and whether it was present, along with
// the generation it was looked up under. Pass that generation to
// StoreProducts; an empty generation means nothing may be stored.
func (c *ProductCache) Products(ctx context.Context) ([]model.Product, string, bool) {
	if c == nil {
		return nil, "", false
	}

	if c.stale.Load() && !c.bump(ctx) {
		return nil, "", false
	}

	generation, err := c.generation(ctx)
	if err != nil {
		logger.FromContext(ctx, c.log).Warn().Err(err).Msg("product cache read failed")
		return nil, "", false
	}

	key := productsKey(generation)
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx, c.log).Warn().Err(err).Msg("product cache read failed")
			return nil, "", false
		}
		return nil, generation, false
	}

	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		logger.FromContext(ctx, c.log).Warn().Err(err).Str("key", key).Msg("discarding undecodable product cache entry")
		if err := c.client.Del(ctx, key).Err(); err != nil {
			logger.FromContext(ctx, c.log).Warn().Err(err).Str("key", key).Msg("product cache delete failed")
		}
		return nil, generation, false
	}

	return products, generation, true
}

func (c *ProductCache) generation(ctx context.Context) (string, error) {
	n, err := c.client.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

// StoreProducts caches the list under generation for the configured TTL.
func (c *ProductCache) StoreProducts(ctx context.Context, generation string, products []model.Product) {
	if c == nil || generation == "" || c.stale.Load() {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		logger.FromContext(ctx, c.log).Warn().Err(err).Msg("encode products for cache")
		return
	}

	if err := c.client.Set(ctx, productsKey(generation), raw, c.ttl).Err(); err != nil {
		logger.FromContext(ctx, c.log).Warn().Err(err).Msg("product cache write failed")
	}
}

// Invalidate retires every cached list. Call it after a product write commits.
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	if !c.bump(ctx) {
		c.stale.Store(true)
	}
}

func (c *ProductCache) bump(ctx context.Context) bool {
	if err := c.client.Incr(ctx, GenerationKey).Err(); err != nil {
		logger.FromContext(ctx, c.log).Warn().Err(err).Msg("product cache invalidation failed")
		return false
	}
	c.stale.Store(false)
	return true
}
