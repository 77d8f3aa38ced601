// Package cache holds the Redis-backed related-products cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafidhia/storefront/internal/models"
)

const keyPrefix = "related:"

type RelatedCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewRelatedCache wraps client; a nil client yields a cache that always
// misses, so callers never have to branch on whether Redis is configured.
func NewRelatedCache(client *redis.Client) *RelatedCache {
	return &RelatedCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func Key(productID, collectionID, categoryID uint, limit int) string {
	return fmt.Sprintf("%s%d:%d:%d:%d", keyPrefix, productID, collectionID, categoryID, limit)
}

func (r *RelatedCache) Get(ctx context.Context, key string) ([]models.Product, error) {
	if r == nil || r.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal cached products failed: %w", err)
	}
	return products, nil
}

func (r *RelatedCache) Set(ctx context.Context, key string, products []models.Product) error {
	if r == nil || r.client == nil {
		return nil
	}

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Flush drops every related-products entry. Called after any product write
// since a single product can appear in arbitrarily many cached result sets.
func (r *RelatedCache) Flush(ctx context.Context) error {
	if r == nil || r.client == nil {
		return nil
	}

	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}
