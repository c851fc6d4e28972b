// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
)

const catalogueSnapshotKey = "catalogue:snapshot"

// RedisCatalogueCache implements the CatalogueCache using Redis. The whole
// catalogue is stored as one JSON snapshot: it is small, read together, and
// invalidated together.
type RedisCatalogueCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCatalogueCache creates a new Redis-backed catalogue cache.
func NewRedisCatalogueCache(client *redis.Client, ttl time.Duration) *RedisCatalogueCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCatalogueCache{
		client: client,
		ttl:    ttl,
	}
}

// GetSnapshot retrieves the cached catalogue, or nil on a miss.
func (c *RedisCatalogueCache) GetSnapshot(ctx context.Context) ([]*entity.CatalogueCard, error) {
	payload, err := c.client.Get(ctx, catalogueSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalogue snapshot: %w", err)
	}

	var cards []*entity.CatalogueCard
	if err := json.Unmarshal(payload, &cards); err != nil {
		// A corrupt snapshot is treated as a miss so the next read repopulates it.
		return nil, nil
	}
	return cards, nil
}

// SetSnapshot stores the full catalogue with the configured TTL.
func (c *RedisCatalogueCache) SetSnapshot(ctx context.Context, cards []*entity.CatalogueCard) error {
	payload, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue snapshot: %w", err)
	}

	if err := c.client.Set(ctx, catalogueSnapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store catalogue snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot after catalogue writes.
func (c *RedisCatalogueCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogueSnapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalogue snapshot: %w", err)
	}
	return nil
}

// Compile-time interface checks.
var _ adapter.CatalogueCache = (*RedisCatalogueCache)(nil)
