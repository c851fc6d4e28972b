// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// WalletCardStatus is the lifecycle state of a card in a user's wallet.
type WalletCardStatus string

const (
	WalletCardStatusActive    WalletCardStatus = "Active"
	WalletCardStatusSuspended WalletCardStatus = "Suspended"
	WalletCardStatusExpired   WalletCardStatus = "Expired"
)

// WalletCard relates a user to a catalogue card. Only Active wallet cards
// participate in ranking. Removal transitions the status rather than
// destroying the row, so transaction history keeps a valid reference.
type WalletCard struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CatalogueCardID int64
	Status          WalletCardStatus
	// RefreshDayOfMonth is the billing-cycle reset day, clamped to 1-28 so
	// every month has the day.
	RefreshDayOfMonth int
	AddedAt           time.Time
	ExpiresAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewWalletCard creates an Active wallet card for a user.
func NewWalletCard(userID uuid.UUID, catalogueCardID int64, refreshDay int) *WalletCard {
	if refreshDay < 1 {
		refreshDay = 1
	}
	if refreshDay > 28 {
		refreshDay = 28
	}
	now := time.Now().UTC()
	return &WalletCard{
		ID:                uuid.New(),
		UserID:            userID,
		CatalogueCardID:   catalogueCardID,
		Status:            WalletCardStatusActive,
		RefreshDayOfMonth: refreshDay,
		AddedAt:           now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsActive reports whether the card participates in ranking.
func (w *WalletCard) IsActive() bool {
	return w.Status == WalletCardStatusActive
}

// ValidWalletCardStatus reports whether s is a known wallet card status.
func ValidWalletCardStatus(s string) bool {
	switch WalletCardStatus(s) {
	case WalletCardStatusActive, WalletCardStatusSuspended, WalletCardStatusExpired:
		return true
	}
	return false
}
