// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
)

// WalletRepository defines the interface for owned-card persistence operations.
type WalletRepository interface {
	// Create adds a card to a user's wallet.
	Create(ctx context.Context, card *entity.WalletCard) error

	// FindByID retrieves a wallet card by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error)

	// FindByUser retrieves all wallet cards for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error)

	// FindActiveByUser retrieves only the user's Active wallet cards.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error)

	// FindByUserAndCard retrieves the wallet entry linking a user to a catalogue card.
	FindByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (*entity.WalletCard, error)

	// Update persists status and billing changes to a wallet card.
	Update(ctx context.Context, card *entity.WalletCard) error

	// ExistsByUserAndCard checks whether the user already holds the catalogue card.
	ExistsByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (bool, error)

	// CountByCard counts wallet rows referencing a catalogue card, any status.
	CountByCard(ctx context.Context, catalogueCardID int64) (int64, error)
}
