package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-api/internal/domain"
)

const (
	// Categories are static reference data, so a long TTL is safe.
	categoryExpiration = 1 * time.Hour

	categoriesKey = "categories"
)

// ErrMiss is returned when the cache has no entry for the requested key.
var ErrMiss = errors.New("cache miss")

// CategoryCache keeps the category list in Redis so the listing endpoints
// do not hit Postgres on every request. It is best-effort: callers fall
// back to the store on any failure.
type CategoryCache struct {
	redis *redis.Client
}

// NewCategoryCache creates a new category cache
func NewCategoryCache(redis *redis.Client) *CategoryCache {
	return &CategoryCache{redis: redis}
}

// Get retrieves the cached category list
func (c *CategoryCache) Get(ctx context.Context) ([]domain.Category, error) {
	data, err := c.redis.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	return categories, nil
}

// Set stores the category list with a TTL
func (c *CategoryCache) Set(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	return c.redis.Set(ctx, categoriesKey, data, categoryExpiration).Err()
}
