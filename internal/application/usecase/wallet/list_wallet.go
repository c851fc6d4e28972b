// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
)

// ListWalletInput represents the input for listing a user's wallet.
type ListWalletInput struct {
	UserID uuid.UUID
}

// CardSummaryOutput represents the catalogue side of a wallet entry.
type CardSummaryOutput struct {
	ID          int64
	Bank        entity.Bank
	Name        string
	BenefitType entity.BenefitType
	BaseRate    decimal.Decimal
	Status      entity.CardStatus
}

// WalletCardOutput represents a single wallet entry in the output.
type WalletCardOutput struct {
	ID                uuid.UUID
	CatalogueCardID   int64
	Status            entity.WalletCardStatus
	RefreshDayOfMonth int
	AddedAt           time.Time
	ExpiresAt         *time.Time
	Card              *CardSummaryOutput
}

// ListWalletOutput represents the output of listing a wallet.
type ListWalletOutput struct {
	WalletCards []*WalletCardOutput
}

// ListWalletUseCase handles wallet listing logic.
type ListWalletUseCase struct {
	walletRepo    adapter.WalletRepository
	catalogueRepo adapter.CatalogueRepository
}

// NewListWalletUseCase creates a new ListWalletUseCase instance.
func NewListWalletUseCase(walletRepo adapter.WalletRepository, catalogueRepo adapter.CatalogueRepository) *ListWalletUseCase {
	return &ListWalletUseCase{
		walletRepo:    walletRepo,
		catalogueRepo: catalogueRepo,
	}
}

// Execute performs the wallet listing.
func (uc *ListWalletUseCase) Execute(ctx context.Context, input ListWalletInput) (*ListWalletOutput, error) {
	walletCards, err := uc.walletRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// Join with the catalogue in one lookup
	cardIDs := make([]int64, len(walletCards))
	for i, wc := range walletCards {
		cardIDs[i] = wc.CatalogueCardID
	}
	catalogue, err := uc.catalogueRepo.FindByIDs(ctx, cardIDs)
	if err != nil {
		return nil, err
	}

	output := &ListWalletOutput{
		WalletCards: make([]*WalletCardOutput, 0, len(walletCards)),
	}
	for _, wc := range walletCards {
		card, ok := catalogue[wc.CatalogueCardID]
		if !ok {
			// A wallet row pointing at a vanished catalogue entry is listed
			// without card details rather than breaking the whole wallet
			slog.Debug("wallet card has no catalogue entry",
				"wallet_card_id", wc.ID,
				"catalogue_card_id", wc.CatalogueCardID,
			)
		}
		output.WalletCards = append(output.WalletCards, newWalletCardOutput(wc, card))
	}

	return output, nil
}

// newWalletCardOutput maps a wallet entity and its catalogue card to output.
// card may be nil when the catalogue entry is missing.
func newWalletCardOutput(wc *entity.WalletCard, card *entity.CatalogueCard) *WalletCardOutput {
	out := &WalletCardOutput{
		ID:                wc.ID,
		CatalogueCardID:   wc.CatalogueCardID,
		Status:            wc.Status,
		RefreshDayOfMonth: wc.RefreshDayOfMonth,
		AddedAt:           wc.AddedAt,
		ExpiresAt:         wc.ExpiresAt,
	}
	if card != nil {
		out.Card = &CardSummaryOutput{
			ID:          card.ID,
			Bank:        card.Bank,
			Name:        card.Name,
			BenefitType: card.BenefitType,
			BaseRate:    card.BaseRate,
			Status:      card.Status,
		}
	}
	return out
}
