// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExplanationAudit records one natural-language explanation generation:
// which model produced it (or the template fallback), how long it took and
// the lines returned. Prompts are stored as a hash only.
type ExplanationAudit struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CatalogueCardID int64
	Model           string
	PromptHash      string
	GenerationMS    int64
	UsedFallback    bool
	Lines           []string
	CreatedAt       time.Time
}

// NewExplanationAudit creates an audit record for one generation.
func NewExplanationAudit(userID uuid.UUID, cardID int64, model, promptHash string, generationMS int64, usedFallback bool, lines []string) *ExplanationAudit {
	return &ExplanationAudit{
		ID:              uuid.New(),
		UserID:          userID,
		CatalogueCardID: cardID,
		Model:           model,
		PromptHash:      promptHash,
		GenerationMS:    generationMS,
		UsedFallback:    usedFallback,
		Lines:           lines,
		CreatedAt:       time.Now().UTC(),
	}
}
