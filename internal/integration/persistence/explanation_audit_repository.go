// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	"github.com/cardwise/backend/internal/integration/persistence/model"
)

// explanationAuditRepository implements the adapter.ExplanationAuditRepository interface.
type explanationAuditRepository struct {
	db *gorm.DB
}

// NewExplanationAuditRepository creates a new explanation audit repository instance.
func NewExplanationAuditRepository(db *gorm.DB) adapter.ExplanationAuditRepository {
	return &explanationAuditRepository{
		db: db,
	}
}

// Create records one generated explanation.
func (r *explanationAuditRepository) Create(ctx context.Context, audit *entity.ExplanationAudit) error {
	auditModel := model.ExplanationAuditFromEntity(audit)
	result := r.db.WithContext(ctx).Create(auditModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves a user's audit entries, newest first, capped at limit.
func (r *explanationAuditRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ExplanationAudit, error) {
	if limit < 1 {
		limit = 20
	}

	var auditModels []model.ExplanationAuditModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&auditModels)
	if result.Error != nil {
		return nil, result.Error
	}

	audits := make([]*entity.ExplanationAudit, len(auditModels))
	for i, am := range auditModels {
		audits[i] = am.ToEntity()
	}
	return audits, nil
}
