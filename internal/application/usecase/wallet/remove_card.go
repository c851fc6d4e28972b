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

// RemoveCardInput represents the input for removing a card from a wallet.
type RemoveCardInput struct {
	UserID       uuid.UUID
	WalletCardID uuid.UUID
}

// RemoveCardOutput represents the output of removing a card from a wallet.
type RemoveCardOutput struct {
	Success bool
}

// RemoveCardUseCase handles wallet card removal. Removal expires the entry
// instead of deleting the row so logged transactions keep a valid
// reference.
type RemoveCardUseCase struct {
	walletRepo adapter.WalletRepository
}

// NewRemoveCardUseCase creates a new RemoveCardUseCase instance.
func NewRemoveCardUseCase(walletRepo adapter.WalletRepository) *RemoveCardUseCase {
	return &RemoveCardUseCase{
		walletRepo: walletRepo,
	}
}

// Execute performs the wallet card removal.
func (uc *RemoveCardUseCase) Execute(ctx context.Context, input RemoveCardInput) (*RemoveCardOutput, error) {
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

	// Check if user is authorized to remove this wallet card
	if walletCard.UserID != input.UserID {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeWalletNotAuthorized,
			"not authorized to remove this wallet card",
			domainerror.ErrNotAuthorizedToModifyWallet,
		)
	}

	now := time.Now().UTC()
	walletCard.Status = entity.WalletCardStatusExpired
	walletCard.ExpiresAt = &now
	walletCard.UpdatedAt = now

	// Expire the wallet card
	if err := uc.walletRepo.Update(ctx, walletCard); err != nil {
		return nil, fmt.Errorf("failed to remove wallet card: %w", err)
	}

	return &RemoveCardOutput{
		Success: true,
	}, nil
}
