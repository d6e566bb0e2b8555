package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prabesh187/recipe-sharing-platform/internal/domain"
)

const (
	forYouKeyPrefix   = "recs:foryou:"
	trendingKeyPrefix = "recs:trending:"
)

// RecommendationCache caches assembled recommendation and trending lists in
// Redis. A cache miss is reported through the boolean return, not an error,
// so callers fall through to recomputation.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache creates a Redis-backed recommendation cache.
func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

// GetForYou retrieves a user's cached recommendation list.
func (c *RecommendationCache) GetForYou(ctx context.Context, userID string) ([]domain.Recommendation, bool, error) {
	data, err := c.client.Get(ctx, forYouKeyPrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get recommendations: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal recommendations: %w", err)
	}

	return recs, true, nil
}

// SetForYou stores a user's recommendation list with the configured TTL.
func (c *RecommendationCache) SetForYou(ctx context.Context, userID string, recs []domain.Recommendation) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, forYouKeyPrefix+userID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set recommendations: %w", err)
	}

	return nil
}

// InvalidateForYou drops a user's cached recommendation list. Called when the
// user rates a recipe or changes preferences.
func (c *RecommendationCache) InvalidateForYou(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, forYouKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del recommendations: %w", err)
	}
	return nil
}

// GetTrending retrieves the cached trending list for a timeframe.
func (c *RecommendationCache) GetTrending(ctx context.Context, timeframe string) ([]domain.Recipe, bool, error) {
	data, err := c.client.Get(ctx, trendingKeyPrefix+timeframe).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get trending: %w", err)
	}

	var recipes []domain.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, false, fmt.Errorf("unmarshal trending: %w", err)
	}

	return recipes, true, nil
}

// SetTrending stores the trending list for a timeframe with the configured TTL.
func (c *RecommendationCache) SetTrending(ctx context.Context, timeframe string, recipes []domain.Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("marshal trending: %w", err)
	}

	if err := c.client.Set(ctx, trendingKeyPrefix+timeframe, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set trending: %w", err)
	}

	return nil
}

// InvalidateTrending drops the cached trending lists for the given timeframes.
func (c *RecommendationCache) InvalidateTrending(ctx context.Context, timeframes ...string) error {
	if len(timeframes) == 0 {
		return nil
	}

	keys := make([]string, len(timeframes))
	for i, tf := range timeframes {
		keys[i] = trendingKeyPrefix + tf
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del trending: %w", err)
	}
	return nil
}
