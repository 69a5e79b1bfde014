package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// MovieCache stores single movies as JSON under pelicula:<id>.
type MovieCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMovieCache wraps client. A non-positive ttl falls back to five minutes.
func NewMovieCache(client *redis.Client, ttl time.Duration) *MovieCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &MovieCache{client: client, ttl: ttl}
}

// Get reports a miss as (nil, false, nil).
func (c *MovieCache) Get(ctx context.Context, id string) (*domain.Movie, bool, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var m domain.Movie
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &m, true, nil
}

func (c *MovieCache) Set(ctx context.Context, m *domain.Movie) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key(m.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *MovieCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func key(id string) string {
	return "pelicula:" + id
}
