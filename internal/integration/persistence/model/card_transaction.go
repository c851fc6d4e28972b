// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

// CardTransactionModel represents the card_transactions table in the database.
// Rows are the ground truth for monthly period state, so they are deleted
// outright rather than soft-deleted: a hidden row must not keep counting
// toward caps and tiers.
type CardTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_txn_user_date"`
	WalletCardID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CatalogueCardID int64           `gorm:"not null;index"`
	Date            time.Time       `gorm:"type:date;not null;index:idx_txn_user_date"`
	AmountSGD       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Channel         string          `gorm:"type:varchar(30);not null"`
	Category        string          `gorm:"type:varchar(30)"`
	Merchant        string          `gorm:"type:varchar(255)"`
	IsOverseas      bool            `gorm:"default:false"`
	CreatedAt       time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	WalletCard    *WalletCardModel    `gorm:"foreignKey:WalletCardID;references:ID"`
	CatalogueCard *CatalogueCardModel `gorm:"foreignKey:CatalogueCardID;references:ID"`
}

// TableName returns the table name for the CardTransactionModel.
func (CardTransactionModel) TableName() string {
	return "card_transactions"
}

// ToEntity converts a CardTransactionModel to a domain CardTransaction entity.
func (m *CardTransactionModel) ToEntity() *entity.CardTransaction {
	return &entity.CardTransaction{
		ID:              m.ID,
		UserID:          m.UserID,
		WalletCardID:    m.WalletCardID,
		CatalogueCardID: m.CatalogueCardID,
		Date:            m.Date,
		AmountSGD:       m.AmountSGD,
		Channel:         m.Channel,
		Category:        m.Category,
		Merchant:        m.Merchant,
		IsOverseas:      m.IsOverseas,
		CreatedAt:       m.CreatedAt,
	}
}

// CardTransactionFromEntity creates a CardTransactionModel from a domain CardTransaction entity.
func CardTransactionFromEntity(transaction *entity.CardTransaction) *CardTransactionModel {
	return &CardTransactionModel{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		WalletCardID:    transaction.WalletCardID,
		CatalogueCardID: transaction.CatalogueCardID,
		Date:            transaction.Date,
		AmountSGD:       transaction.AmountSGD,
		Channel:         transaction.Channel,
		Category:        transaction.Category,
		Merchant:        transaction.Merchant,
		IsOverseas:      transaction.IsOverseas,
		CreatedAt:       transaction.CreatedAt,
	}
}
