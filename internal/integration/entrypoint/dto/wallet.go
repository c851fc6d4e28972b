// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cardwise/backend/internal/application/usecase/wallet"
)

// AddWalletCardRequest represents the request body for adding a catalogue
// card to the caller's wallet.
type AddWalletCardRequest struct {
	CatalogueCardID   int64 `json:"catalogue_card_id" binding:"required"`
	RefreshDayOfMonth *int  `json:"refresh_day_of_month,omitempty" binding:"omitempty,min=1,max=31"`
}

// UpdateWalletCardStatusRequest represents the request body for changing a
// wallet card's status.
type UpdateWalletCardStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// WalletCardSummaryResponse represents the catalogue card data embedded in
// a wallet entry response.
type WalletCardSummaryResponse struct {
	ID          int64  `json:"id"`
	Bank        string `json:"bank"`
	Name        string `json:"name"`
	BenefitType string `json:"benefit_type"`
	BaseRate    string `json:"base_rate"`
	Status      string `json:"status"`
}

// WalletCardResponse represents one wallet entry in API responses.
type WalletCardResponse struct {
	ID                string                     `json:"id"`
	CatalogueCardID   int64                      `json:"catalogue_card_id"`
	Status            string                     `json:"status"`
	RefreshDayOfMonth int                        `json:"refresh_day_of_month"`
	AddedAt           time.Time                  `json:"added_at"`
	ExpiresAt         *time.Time                 `json:"expires_at,omitempty"`
	Card              *WalletCardSummaryResponse `json:"card,omitempty"`
}

// WalletListResponse represents the response for listing the wallet.
type WalletListResponse struct {
	WalletCards []WalletCardResponse `json:"wallet_cards"`
	Total       int                  `json:"total"`
}

// ToWalletCardResponse converts a WalletCardOutput to a WalletCardResponse DTO.
func ToWalletCardResponse(wc *wallet.WalletCardOutput) WalletCardResponse {
	response := WalletCardResponse{
		ID:                wc.ID.String(),
		CatalogueCardID:   wc.CatalogueCardID,
		Status:            string(wc.Status),
		RefreshDayOfMonth: wc.RefreshDayOfMonth,
		AddedAt:           wc.AddedAt,
		ExpiresAt:         wc.ExpiresAt,
	}

	if wc.Card != nil {
		response.Card = &WalletCardSummaryResponse{
			ID:          wc.Card.ID,
			Bank:        string(wc.Card.Bank),
			Name:        wc.Card.Name,
			BenefitType: string(wc.Card.BenefitType),
			BaseRate:    wc.Card.BaseRate.String(),
			Status:      string(wc.Card.Status),
		}
	}

	return response
}

// ToWalletListResponse converts a ListWalletOutput to WalletListResponse.
func ToWalletListResponse(output *wallet.ListWalletOutput) WalletListResponse {
	walletCards := make([]WalletCardResponse, len(output.WalletCards))
	for i, wc := range output.WalletCards {
		walletCards[i] = ToWalletCardResponse(wc)
	}
	return WalletListResponse{
		WalletCards: walletCards,
		Total:       len(walletCards),
	}
}
