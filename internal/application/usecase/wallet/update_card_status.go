// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// UpdateCardStatusInput represents the input for a wallet status change.
type UpdateCardStatusInput struct {
	UserID       uuid.UUID
	WalletCardID uuid.UUID
	Status       string
}

// UpdateCardStatusOutput represents the output of a wallet status change.
type UpdateCardStatusOutput struct {
	WalletCard *WalletCardOutput
}

// UpdateCardStatusUseCase handles wallet card status transitions.
type UpdateCardStatusUseCase struct {
	walletRepo    adapter.WalletRepository
	catalogueRepo adapter.CatalogueRepository
}

// NewUpdateCardStatusUseCase creates a new UpdateCardStatusUseCase instance.
func NewUpdateCardStatusUseCase(walletRepo adapter.WalletRepository, catalogueRepo adapter.CatalogueRepository) *UpdateCardStatusUseCase {
	return &UpdateCardStatusUseCase{
		walletRepo:    walletRepo,
		catalogueRepo: catalogueRepo,
	}
}

// Execute performs the wallet card status change.
func (uc *UpdateCardStatusUseCase) Execute(ctx context.Context, input UpdateCardStatusInput) (*UpdateCardStatusOutput, error) {
	// Validate status
	if !entity.ValidWalletCardStatus(input.Status) {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletStatus,
			"status must be Active, Suspended or Expired",
			domainerror.ErrInvalidWalletStatus,
		)
	}

	// Find the wallet card
	walletCard, err := uc.walletRepo.FindByID(ctx, input.WalletCardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrWalletCardNotFound) {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeWalletCardNotFound,
				"wallet card not found",
				domainerror.ErrWalletCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find wallet card: %w", err)
	}

	// Check if user is authorized to modify this wallet card
	if walletCard.UserID != input.UserID {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeWalletNotAuthorized,
			"not authorized to modify this wallet card",
			domainerror.ErrNotAuthorizedToModifyWallet,
		)
	}

	walletCard.Status = entity.WalletCardStatus(input.Status)
	walletCard.UpdatedAt = time.Now().UTC()

	// Save updated wallet card
	if err := uc.walletRepo.Update(ctx, walletCard); err != nil {
		return nil, fmt.Errorf("failed to update wallet card: %w", err)
	}

	card, err := uc.catalogueRepo.FindByID(ctx, walletCard.CatalogueCardID)
	if err != nil {
		// The status change already happened; return the entry without
		// catalogue details
		card = nil
	}

	return &UpdateCardStatusOutput{
		WalletCard: newWalletCardOutput(walletCard, card),
	}, nil
}
