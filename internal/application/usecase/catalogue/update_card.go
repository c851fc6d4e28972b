// Package catalogue contains card catalogue use cases.
package catalogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// UpdateCardInput represents the input for catalogue card update.
// Nil fields are left unchanged; a non-nil BonusRules replaces the card's
// rules wholesale.
type UpdateCardInput struct {
	CardID          int64
	Name            *string
	BaseRate        *decimal.Decimal
	Status          *entity.CardStatus
	ExpiryDate      *time.Time
	BonusRules      *[]BonusRuleInput
	ChannelCap      *ChannelCapInput
	TierRule        *TierRuleInput
	ClearPeriodRule bool
}

// UpdateCardOutput represents the output of catalogue card update.
type UpdateCardOutput struct {
	Card *CardOutput
}

// UpdateCardUseCase handles catalogue card update logic.
type UpdateCardUseCase struct {
	catalogueRepo  adapter.CatalogueRepository
	catalogueCache adapter.CatalogueCache
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(catalogueRepo adapter.CatalogueRepository, catalogueCache adapter.CatalogueCache) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		catalogueRepo:  catalogueRepo,
		catalogueCache: catalogueCache,
	}
}

// Execute performs the catalogue card update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	// Find the existing card
	card, err := uc.catalogueRepo.FindByID(ctx, input.CardID)
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

	// Update name if provided
	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > MaxCardNameLength {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeMissingCardFields,
				fmt.Sprintf("card name is required and must not exceed %d characters", MaxCardNameLength),
				domainerror.ErrMissingCardFields,
			)
		}

		// Check if the new name collides with another card of the same bank
		if *input.Name != card.Name {
			exists, err := uc.catalogueRepo.ExistsByBankAndName(ctx, card.Bank, *input.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to check card existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewCardError(
					domainerror.ErrCodeCardAlreadyExists,
					"this bank already lists a card with this name",
					domainerror.ErrCardAlreadyExists,
				)
			}
		}

		card.Name = *input.Name
	}

	// Update base rate if provided
	if input.BaseRate != nil {
		if !input.BaseRate.IsPositive() {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeInvalidBaseRate,
				"base rate must be greater than zero",
				domainerror.ErrInvalidBaseRate,
			)
		}
		card.BaseRate = *input.BaseRate
	}

	// Update status if provided
	if input.Status != nil {
		if !isValidCardStatus(*input.Status) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeInvalidCardStatus,
				"card status must be VALID or INVALID",
				domainerror.ErrInvalidCardStatus,
			)
		}
		card.Status = *input.Status
	}

	// Update expiry date if provided
	if input.ExpiryDate != nil {
		card.ExpiryDate = *input.ExpiryDate
	}

	// Replace bonus rules if provided
	if input.BonusRules != nil {
		if err := validateBonusRules(*input.BonusRules); err != nil {
			return nil, err
		}
		rules := make([]entity.BonusRule, 0, len(*input.BonusRules))
		for _, ruleInput := range *input.BonusRules {
			rule := entity.NewBonusRule(card.ID, ruleInput.BonusCategory, ruleInput.BonusRate)
			if ruleInput.CapInDollar != nil {
				rule.CapInDollar = *ruleInput.CapInDollar
			}
			if ruleInput.MinSpendInDollar != nil {
				rule.MinSpendInDollar = *ruleInput.MinSpendInDollar
			}
			rules = append(rules, *rule)
		}
		card.BonusRules = rules
	}

	// Replace or clear the period rule if requested
	if input.ChannelCap != nil && input.TierRule != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"a card may carry either a channel cap or a tier rule, not both",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	switch {
	case input.ChannelCap != nil:
		if err := validateChannelCap(input.ChannelCap); err != nil {
			return nil, err
		}
		cc := input.ChannelCap
		card.PeriodRule = entity.NewChannelCapRule(card.ID, cc.Channel, cc.MonthlyCapSGD, cc.BonusRate, cc.SpillRate)
	case input.TierRule != nil:
		if err := validateTierRule(input.TierRule); err != nil {
			return nil, err
		}
		tiers := make([]entity.TierLevel, len(input.TierRule.Tiers))
		for i, t := range input.TierRule.Tiers {
			tiers[i] = entity.TierLevel{
				ThresholdSGD:       t.ThresholdSGD,
				QuarterlyPayoutSGD: t.QuarterlyPayoutSGD,
			}
		}
		card.PeriodRule = entity.NewTierRule(card.ID, input.TierRule.MinTxnCount, tiers)
	case input.ClearPeriodRule:
		card.PeriodRule = nil
	}

	// Update timestamp
	card.UpdatedAt = time.Now().UTC()

	// Save updated card
	if err := uc.catalogueRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	// Drop the cached catalogue snapshot so rankings stop using stale rates
	if err := uc.catalogueCache.Invalidate(ctx); err != nil {
		slog.Debug("failed to invalidate catalogue cache", "error", err)
	}

	return &UpdateCardOutput{
		Card: newCardOutput(card),
	}, nil
}
