// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/integration/persistence/model"
)

// catalogueRepository implements the adapter.CatalogueRepository interface.
type catalogueRepository struct {
	db *gorm.DB
}

// NewCatalogueRepository creates a new catalogue repository instance.
func NewCatalogueRepository(db *gorm.DB) adapter.CatalogueRepository {
	return &catalogueRepository{
		db: db,
	}
}

// List retrieves catalogue cards matching the filter, with bonus rules and
// period rule joined.
func (r *catalogueRepository) List(ctx context.Context, filter adapter.CatalogueFilter) ([]*entity.CatalogueCard, error) {
	query := r.db.WithContext(ctx).Model(&model.CatalogueCardModel{}).
		Preload("BonusRules").
		Preload("PeriodRule").
		Preload("PeriodRule.Tiers")

	if filter.Bank != nil {
		query = query.Where("bank = ?", string(*filter.Bank))
	}
	if filter.BenefitType != nil {
		query = query.Where("benefit_type = ?", string(*filter.BenefitType))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.BonusCategory != nil {
		query = query.Where("id IN (?)",
			r.db.Model(&model.BonusRuleModel{}).
				Select("card_id").
				Where("bonus_category = ?", *filter.BonusCategory))
	}

	var cardModels []model.CatalogueCardModel
	result := query.Order("bank ASC, name ASC").Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	cards := make([]*entity.CatalogueCard, len(cardModels))
	for i, cm := range cardModels {
		cards[i] = cm.ToEntity()
	}
	return cards, nil
}

// FindByID retrieves a catalogue card by its ID, with rules joined.
func (r *catalogueRepository) FindByID(ctx context.Context, id int64) (*entity.CatalogueCard, error) {
	var cardModel model.CatalogueCardModel
	result := r.db.WithContext(ctx).
		Preload("BonusRules").
		Preload("PeriodRule").
		Preload("PeriodRule.Tiers").
		Where("id = ?", id).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindByIDs retrieves catalogue cards for the given IDs, keyed by ID.
// Missing IDs are absent from the map rather than an error.
func (r *catalogueRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*entity.CatalogueCard, error) {
	cards := make(map[int64]*entity.CatalogueCard, len(ids))
	if len(ids) == 0 {
		return cards, nil
	}

	var cardModels []model.CatalogueCardModel
	result := r.db.WithContext(ctx).
		Preload("BonusRules").
		Preload("PeriodRule").
		Preload("PeriodRule.Tiers").
		Where("id IN ?", ids).
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range cardModels {
		cards[cardModels[i].ID] = cardModels[i].ToEntity()
	}
	return cards, nil
}

// Create creates a catalogue card together with its rules.
func (r *catalogueRepository) Create(ctx context.Context, card *entity.CatalogueCard) error {
	cardModel := model.CatalogueCardFromEntity(card)
	result := r.db.WithContext(ctx).Create(cardModel)
	if result.Error != nil {
		return result.Error
	}
	// Propagate generated IDs back for callers that respond with the card.
	card.ID = cardModel.ID
	for i := range cardModel.BonusRules {
		card.BonusRules[i].ID = cardModel.BonusRules[i].ID
		card.BonusRules[i].CardID = cardModel.ID
	}
	if cardModel.PeriodRule != nil && card.PeriodRule != nil {
		card.PeriodRule.ID = cardModel.PeriodRule.ID
		card.PeriodRule.CardID = cardModel.ID
	}
	return nil
}

// Update updates a catalogue card and replaces its rules atomically.
func (r *catalogueRepository) Update(ctx context.Context, card *entity.CatalogueCard) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cardModel := model.CatalogueCardFromEntity(card)

		result := tx.Model(&model.CatalogueCardModel{}).
			Where("id = ?", card.ID).
			Updates(map[string]interface{}{
				"bank":         cardModel.Bank,
				"name":         cardModel.Name,
				"benefit_type": cardModel.BenefitType,
				"base_rate":    cardModel.BaseRate,
				"status":       cardModel.Status,
				"expiry_date":  cardModel.ExpiryDate,
				"updated_at":   cardModel.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCardNotFound
		}

		if err := deleteCardRules(tx, card.ID); err != nil {
			return err
		}

		for i := range cardModel.BonusRules {
			cardModel.BonusRules[i].ID = 0
			cardModel.BonusRules[i].CardID = card.ID
			if err := tx.Create(&cardModel.BonusRules[i]).Error; err != nil {
				return err
			}
		}
		if cardModel.PeriodRule != nil {
			cardModel.PeriodRule.ID = 0
			cardModel.PeriodRule.CardID = card.ID
			for i := range cardModel.PeriodRule.Tiers {
				cardModel.PeriodRule.Tiers[i].ID = 0
				cardModel.PeriodRule.Tiers[i].PeriodRuleID = 0
			}
			if err := tx.Create(cardModel.PeriodRule).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a catalogue card and its rules.
func (r *catalogueRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteCardRules(tx, id); err != nil {
			return err
		}

		result := tx.Delete(&model.CatalogueCardModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrCardNotFound
		}
		return nil
	})
}

// ExistsByBankAndName checks whether a card already exists in the catalogue.
func (r *catalogueRepository) ExistsByBankAndName(ctx context.Context, bank entity.Bank, name string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.CatalogueCardModel{}).
		Where("bank = ? AND name = ?", string(bank), name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// deleteCardRules removes a card's bonus rules, period rule and tier rows.
func deleteCardRules(tx *gorm.DB, cardID int64) error {
	if err := tx.Delete(&model.BonusRuleModel{}, "card_id = ?", cardID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&model.PeriodRuleTierModel{},
		"period_rule_id IN (?)",
		tx.Session(&gorm.Session{NewDB: true}).Model(&model.PeriodRuleModel{}).
			Select("id").Where("card_id = ?", cardID),
	).Error; err != nil {
		return err
	}
	return tx.Delete(&model.PeriodRuleModel{}, "card_id = ?", cardID).Error
}
