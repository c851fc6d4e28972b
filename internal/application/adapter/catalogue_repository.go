// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/cardwise/backend/internal/domain/entity"
)

// CatalogueFilter defines filter options for listing catalogue cards.
type CatalogueFilter struct {
	Bank        *entity.Bank
	BenefitType *entity.BenefitType
	Status      *entity.CardStatus
	// BonusCategory keeps only cards carrying a bonus rule for the category.
	BonusCategory *string
}

// CatalogueRepository defines the interface for card catalogue persistence operations.
// All reads return cards with their bonus rules and period rule joined.
type CatalogueRepository interface {
	// List retrieves catalogue cards matching the filter.
	List(ctx context.Context, filter CatalogueFilter) ([]*entity.CatalogueCard, error)

	// FindByID retrieves a catalogue card by its ID.
	FindByID(ctx context.Context, id int64) (*entity.CatalogueCard, error)

	// FindByIDs retrieves catalogue cards for the given IDs, keyed by ID.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*entity.CatalogueCard, error)

	// Create creates a catalogue card together with its rules.
	Create(ctx context.Context, card *entity.CatalogueCard) error

	// Update updates a catalogue card and replaces its rules.
	Update(ctx context.Context, card *entity.CatalogueCard) error

	// Delete removes a catalogue card and its rules.
	Delete(ctx context.Context, id int64) error

	// ExistsByBankAndName checks whether a card already exists in the catalogue.
	ExistsByBankAndName(ctx context.Context, bank entity.Bank, name string) (bool, error)
}
