// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/integration/persistence/model"
)

// walletRepository implements the adapter.WalletRepository interface.
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository instance.
func NewWalletRepository(db *gorm.DB) adapter.WalletRepository {
	return &walletRepository{
		db: db,
	}
}

// Create adds a card to a user's wallet.
func (r *walletRepository) Create(ctx context.Context, card *entity.WalletCard) error {
	cardModel := model.WalletCardFromEntity(card)
	result := r.db.WithContext(ctx).Create(cardModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a wallet card by its ID.
func (r *walletRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error) {
	var cardModel model.WalletCardModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWalletCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByUser retrieves all wallet cards for a user, newest first.
func (r *walletRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error) {
	var cardModels []model.WalletCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return walletCardsToEntities(cardModels), nil
}

// FindActiveByUser retrieves only the user's Active wallet cards.
func (r *walletRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletCard, error) {
	var cardModels []model.WalletCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.WalletCardStatusActive)).
		Order("added_at DESC").
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return walletCardsToEntities(cardModels), nil
}

// FindByUserAndCard retrieves the wallet entry linking a user to a catalogue card.
func (r *walletRepository) FindByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (*entity.WalletCard, error) {
	var cardModel model.WalletCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND catalogue_card_id = ?", userID, catalogueCardID).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWalletCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// Update persists status and billing changes to a wallet card.
func (r *walletRepository) Update(ctx context.Context, card *entity.WalletCard) error {
	cardModel := model.WalletCardFromEntity(card)
	result := r.db.WithContext(ctx).Save(cardModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsByUserAndCard checks whether the user already holds the catalogue card.
func (r *walletRepository) ExistsByUserAndCard(ctx context.Context, userID uuid.UUID, catalogueCardID int64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.WalletCardModel{}).
		Where("user_id = ? AND catalogue_card_id = ?", userID, catalogueCardID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountByCard counts wallet rows referencing a catalogue card, any status.
func (r *walletRepository) CountByCard(ctx context.Context, catalogueCardID int64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.WalletCardModel{}).
		Where("catalogue_card_id = ?", catalogueCardID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func walletCardsToEntities(cardModels []model.WalletCardModel) []*entity.WalletCard {
	cards := make([]*entity.WalletCard, len(cardModels))
	for i, cm := range cardModels {
		cards[i] = cm.ToEntity()
	}
	return cards
}
