// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Spend channels recognised by channel-gated period rules. Channel is a
// free-form lowercased token; these are the common values.
const (
	ChannelOnline      = "online"
	ChannelContactless = "contactless"
	ChannelInStore     = "in_store"
)

// CardTransaction is one logged spend on a wallet card. Transactions are
// the ground truth for period state; monthly counters are always recomputed
// from them, never stored.
type CardTransaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	WalletCardID    uuid.UUID
	CatalogueCardID int64
	Date            time.Time
	AmountSGD       decimal.Decimal
	Channel         string
	Category        string
	Merchant        string
	IsOverseas      bool
	CreatedAt       time.Time
}

// NewCardTransaction creates a logged transaction.
func NewCardTransaction(userID, walletCardID uuid.UUID, catalogueCardID int64, date time.Time, amount decimal.Decimal, channel string) *CardTransaction {
	return &CardTransaction{
		ID:              uuid.New(),
		UserID:          userID,
		WalletCardID:    walletCardID,
		CatalogueCardID: catalogueCardID,
		Date:            date,
		AmountSGD:       amount,
		Channel:         channel,
		CreatedAt:       time.Now().UTC(),
	}
}
