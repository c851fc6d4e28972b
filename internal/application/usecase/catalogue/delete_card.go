// Package catalogue contains card catalogue use cases.
package catalogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cardwise/backend/internal/application/adapter"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// DeleteCardInput represents the input for catalogue card deletion.
type DeleteCardInput struct {
	CardID int64
}

// DeleteCardOutput represents the output of catalogue card deletion.
type DeleteCardOutput struct {
	Success bool
}

// DeleteCardUseCase handles catalogue card deletion logic.
type DeleteCardUseCase struct {
	catalogueRepo  adapter.CatalogueRepository
	walletRepo     adapter.WalletRepository
	catalogueCache adapter.CatalogueCache
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(
	catalogueRepo adapter.CatalogueRepository,
	walletRepo adapter.WalletRepository,
	catalogueCache adapter.CatalogueCache,
) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		catalogueRepo:  catalogueRepo,
		walletRepo:     walletRepo,
		catalogueCache: catalogueCache,
	}
}

// Execute performs the catalogue card deletion.
func (uc *DeleteCardUseCase) Execute(ctx context.Context, input DeleteCardInput) (*DeleteCardOutput, error) {
	// Find the existing card
	if _, err := uc.catalogueRepo.FindByID(ctx, input.CardID); err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	// Refuse deletion while wallets still reference the card; transaction
	// history must keep resolving to a catalogue entry
	count, err := uc.walletRepo.CountByCard(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wallet references: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardHasWalletRefs,
			fmt.Sprintf("card is still held in %d wallet(s); mark it INVALID instead", count),
			domainerror.ErrCardHasWalletReferences,
		)
	}

	// Delete the card
	if err := uc.catalogueRepo.Delete(ctx, input.CardID); err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}

	// Drop the cached catalogue snapshot
	if err := uc.catalogueCache.Invalidate(ctx); err != nil {
		slog.Debug("failed to invalidate catalogue cache", "error", err)
	}

	return &DeleteCardOutput{
		Success: true,
	}, nil
}
