package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/quezi/domain"
)

const ratingPrefix = "rating:"

// RatingCache implements domain.RatingCache on Redis
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRatingCache(client *redis.Client, ttl time.Duration) domain.RatingCache {
	return &RatingCache{client: client, ttl: ttl}
}

func ratingKey(professionalID uint) string {
	return fmt.Sprintf("%s%d", ratingPrefix, professionalID)
}

// Get returns domain.ErrCacheMiss when nothing is cached
func (c *RatingCache) Get(ctx context.Context, professionalID uint) (*domain.RatingSummary, error) {
	data, err := c.client.Get(ctx, ratingKey(professionalID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}
	var summary domain.RatingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decode rating summary: %w", err)
	}
	return &summary, nil
}

func (c *RatingCache) Set(ctx context.Context, summary *domain.RatingSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ratingKey(summary.ProfessionalID), data, c.ttl).Err()
}

func (c *RatingCache) Invalidate(ctx context.Context, professionalID uint) error {
	return c.client.Del(ctx, ratingKey(professionalID)).Err()
}
