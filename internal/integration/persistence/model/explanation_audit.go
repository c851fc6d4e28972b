// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cardwise/backend/internal/domain/entity"
)

// ExplanationAuditModel represents the explanation_audits table in the database.
type ExplanationAuditModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	CatalogueCardID int64          `gorm:"not null"`
	Model           string         `gorm:"type:varchar(60);not null"`
	PromptHash      string         `gorm:"type:varchar(64);not null"`
	GenerationMS    int64          `gorm:"not null"`
	UsedFallback    bool           `gorm:"default:false"`
	Lines           pq.StringArray `gorm:"type:text[]"`
	CreatedAt       time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the ExplanationAuditModel.
func (ExplanationAuditModel) TableName() string {
	return "explanation_audits"
}

// ToEntity converts an ExplanationAuditModel to a domain ExplanationAudit entity.
func (m *ExplanationAuditModel) ToEntity() *entity.ExplanationAudit {
	return &entity.ExplanationAudit{
		ID:              m.ID,
		UserID:          m.UserID,
		CatalogueCardID: m.CatalogueCardID,
		Model:           m.Model,
		PromptHash:      m.PromptHash,
		GenerationMS:    m.GenerationMS,
		UsedFallback:    m.UsedFallback,
		Lines:           []string(m.Lines),
		CreatedAt:       m.CreatedAt,
	}
}

// ExplanationAuditFromEntity creates an ExplanationAuditModel from a domain ExplanationAudit entity.
func ExplanationAuditFromEntity(audit *entity.ExplanationAudit) *ExplanationAuditModel {
	return &ExplanationAuditModel{
		ID:              audit.ID,
		UserID:          audit.UserID,
		CatalogueCardID: audit.CatalogueCardID,
		Model:           audit.Model,
		PromptHash:      audit.PromptHash,
		GenerationMS:    audit.GenerationMS,
		UsedFallback:    audit.UsedFallback,
		Lines:           pq.StringArray(audit.Lines),
		CreatedAt:       audit.CreatedAt,
	}
}
