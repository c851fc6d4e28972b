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

// AddCardInput represents the input for adding a catalogue card to a wallet.
type AddCardInput struct {
	UserID            uuid.UUID
	CatalogueCardID   int64
	RefreshDayOfMonth *int // Optional, defaults to 1
}

// AddCardOutput represents the output of adding a card to a wallet.
type AddCardOutput struct {
	WalletCard *WalletCardOutput
}

// AddCardUseCase handles adding a catalogue card to a user's wallet.
type AddCardUseCase struct {
	walletRepo    adapter.WalletRepository
	catalogueRepo adapter.CatalogueRepository
}

// NewAddCardUseCase creates a new AddCardUseCase instance.
func NewAddCardUseCase(walletRepo adapter.WalletRepository, catalogueRepo adapter.CatalogueRepository) *AddCardUseCase {
	return &AddCardUseCase{
		walletRepo:    walletRepo,
		catalogueRepo: catalogueRepo,
	}
}

// Execute performs the wallet addition.
func (uc *AddCardUseCase) Execute(ctx context.Context, input AddCardInput) (*AddCardOutput, error) {
	// Validate refresh day if provided
	refreshDay := 1
	if input.RefreshDayOfMonth != nil {
		if *input.RefreshDayOfMonth < 1 || *input.RefreshDayOfMonth > 28 {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeInvalidRefreshDay,
				"refresh day must be between 1 and 28",
				domainerror.ErrInvalidRefreshDay,
			)
		}
		refreshDay = *input.RefreshDayOfMonth
	}

	// The catalogue card must exist and be currently offered
	card, err := uc.catalogueRepo.FindByID(ctx, input.CatalogueCardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	if card.Status != entity.CardStatusValid {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeCardNotUsable,
			"this card is no longer offered",
			domainerror.ErrCardNotUsable,
		)
	}

	// One wallet row per (user, card): a previously removed card is
	// reactivated rather than duplicated
	existing, err := uc.walletRepo.FindByUserAndCard(ctx, input.UserID, input.CatalogueCardID)
	if err != nil && !errors.Is(err, domainerror.ErrWalletCardNotFound) {
		return nil, fmt.Errorf("failed to check wallet: %w", err)
	}
	if existing != nil {
		if existing.IsActive() {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeCardAlreadyInWallet,
				"this card is already in your wallet",
				domainerror.ErrCardAlreadyInWallet,
			)
		}

		existing.Status = entity.WalletCardStatusActive
		existing.RefreshDayOfMonth = refreshDay
		existing.AddedAt = time.Now().UTC()
		existing.UpdatedAt = existing.AddedAt
		if err := uc.walletRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate wallet card: %w", err)
		}
		return &AddCardOutput{
			WalletCard: newWalletCardOutput(existing, card),
		}, nil
	}

	walletCard := entity.NewWalletCard(input.UserID, input.CatalogueCardID, refreshDay)

	// Save wallet card to database
	if err := uc.walletRepo.Create(ctx, walletCard); err != nil {
		return nil, fmt.Errorf("failed to add card to wallet: %w", err)
	}

	return &AddCardOutput{
		WalletCard: newWalletCardOutput(walletCard, card),
	}, nil
}
