// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
)

// ExplanationAuditRepository defines the interface for explanation audit persistence.
type ExplanationAuditRepository interface {
	// Create records one generated explanation.
	Create(ctx context.Context, audit *entity.ExplanationAudit) error

	// FindByUser retrieves a user's audit entries, newest first, capped at limit.
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ExplanationAudit, error)
}
