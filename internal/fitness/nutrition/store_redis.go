// Copyright (c) 2026 IronLog. All rights reserved.

package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ironlog-app/ironlog/internal/platform/constants"
)

// cacheTTL bounds staleness if an invalidation is ever lost (e.g. a write
// that lands between a recompute and its backfill).
const cacheTTL = 10 * time.Minute

// RedisTotalsCache implements [TotalsCache] over Redis with JSON values.
type RedisTotalsCache struct {
	client *redis.Client
}

// NewTotalsCache creates the Redis implementation of [TotalsCache].
func NewTotalsCache(client *redis.Client) *RedisTotalsCache {
	return &RedisTotalsCache{client: client}
}

// cacheKey builds the per-user, per-day key.
func cacheKey(userID, date string) string {
	return constants.RedisPrefixDailyNutrition + userID + ":" + date
}

// Get returns the cached summary, or (nil, nil) on a miss.
func (cache *RedisTotalsCache) Get(ctx context.Context, userID, date string) (*DailySummary, error) {
	payload, err := cache.client.Get(ctx, cacheKey(userID, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_nutrition_cache_get_failed: %w", err)
	}

	summary := &DailySummary{}
	if err := json.Unmarshal(payload, summary); err != nil {
		// A corrupt value is treated as a miss; it will be overwritten.
		return nil, nil
	}

	return summary, nil
}

// Set stores the summary with the cache TTL.
func (cache *RedisTotalsCache) Set(ctx context.Context, userID, date string, summary *DailySummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("redis_nutrition_cache_marshal_failed: %w", err)
	}

	if err := cache.client.Set(ctx, cacheKey(userID, date), payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_nutrition_cache_set_failed: %w", err)
	}

	return nil
}

// Invalidate drops the cached summary for the day.
func (cache *RedisTotalsCache) Invalidate(ctx context.Context, userID, date string) error {
	if err := cache.client.Del(ctx, cacheKey(userID, date)).Err(); err != nil {
		return fmt.Errorf("redis_nutrition_cache_del_failed: %w", err)
	}
	return nil
}
