// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
)

// WalletCardModel represents the wallet_cards table in the database.
// Removed cards keep their row with a non-Active status so transaction
// history retains a valid card reference.
type WalletCardModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index:idx_wallet_user_card,unique"`
	CatalogueCardID   int64      `gorm:"not null;index:idx_wallet_user_card,unique"`
	Status            string     `gorm:"type:varchar(20);not null;default:'Active';index"`
	RefreshDayOfMonth int        `gorm:"not null;default:1"`
	AddedAt           time.Time  `gorm:"not null"`
	ExpiresAt         *time.Time `gorm:"type:date"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	CatalogueCard *CatalogueCardModel `gorm:"foreignKey:CatalogueCardID;references:ID"`
	User          *UserModel          `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the WalletCardModel.
func (WalletCardModel) TableName() string {
	return "wallet_cards"
}

// ToEntity converts a WalletCardModel to a domain WalletCard entity.
func (m *WalletCardModel) ToEntity() *entity.WalletCard {
	return &entity.WalletCard{
		ID:                m.ID,
		UserID:            m.UserID,
		CatalogueCardID:   m.CatalogueCardID,
		Status:            entity.WalletCardStatus(m.Status),
		RefreshDayOfMonth: m.RefreshDayOfMonth,
		AddedAt:           m.AddedAt,
		ExpiresAt:         m.ExpiresAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// WalletCardFromEntity creates a WalletCardModel from a domain WalletCard entity.
func WalletCardFromEntity(card *entity.WalletCard) *WalletCardModel {
	return &WalletCardModel{
		ID:                card.ID,
		UserID:            card.UserID,
		CatalogueCardID:   card.CatalogueCardID,
		Status:            string(card.Status),
		RefreshDayOfMonth: card.RefreshDayOfMonth,
		AddedAt:           card.AddedAt,
		ExpiresAt:         card.ExpiresAt,
		CreatedAt:         card.CreatedAt,
		UpdatedAt:         card.UpdatedAt,
	}
}
