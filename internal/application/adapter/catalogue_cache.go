// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/cardwise/backend/internal/domain/entity"
)

// CatalogueCache defines a read-through cache for the card catalogue
// snapshot used by recommendation calls. A miss returns (nil, nil);
// cache failures must degrade to the database, never break a request.
type CatalogueCache interface {
	// GetSnapshot retrieves the cached catalogue, or nil on a miss.
	GetSnapshot(ctx context.Context) ([]*entity.CatalogueCard, error)

	// SetSnapshot stores the full catalogue with the configured TTL.
	SetSnapshot(ctx context.Context, cards []*entity.CatalogueCard) error

	// Invalidate drops the snapshot after catalogue writes.
	Invalidate(ctx context.Context) error
}
