// Package catalogue contains card catalogue use cases.
package catalogue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// MaxCardNameLength is the maximum allowed length for card names.
const MaxCardNameLength = 100

// BonusRuleInput represents one bonus rule in card creation or update input.
type BonusRuleInput struct {
	BonusCategory    string
	BonusRate        decimal.Decimal
	CapInDollar      *int64 // Optional, defaults to the uncapped sentinel
	MinSpendInDollar *int64 // Optional, defaults to 0
}

// ChannelCapInput represents a channel-gated monthly cap rule in the input.
type ChannelCapInput struct {
	Channel       string
	MonthlyCapSGD decimal.Decimal
	BonusRate     decimal.Decimal
	SpillRate     decimal.Decimal
}

// TierLevelInput represents one tier of a tiered payout rule in the input.
type TierLevelInput struct {
	ThresholdSGD       int64
	QuarterlyPayoutSGD decimal.Decimal
}

// TierRuleInput represents a tiered payout rule in the input.
type TierRuleInput struct {
	MinTxnCount int
	Tiers       []TierLevelInput
}

// CreateCardInput represents the input for catalogue card creation.
type CreateCardInput struct {
	Bank        entity.Bank
	Name        string
	BenefitType entity.BenefitType
	BaseRate    decimal.Decimal
	BonusRules  []BonusRuleInput
	ChannelCap  *ChannelCapInput
	TierRule    *TierRuleInput
}

// CreateCardOutput represents the output of catalogue card creation.
type CreateCardOutput struct {
	Card *CardOutput
}

// CreateCardUseCase handles catalogue card creation logic.
type CreateCardUseCase struct {
	catalogueRepo  adapter.CatalogueRepository
	catalogueCache adapter.CatalogueCache
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(catalogueRepo adapter.CatalogueRepository, catalogueCache adapter.CatalogueCache) *CreateCardUseCase {
	return &CreateCardUseCase{
		catalogueRepo:  catalogueRepo,
		catalogueCache: catalogueCache,
	}
}

// Execute performs the catalogue card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	// Validate required fields
	if input.Name == "" || len(input.Name) > MaxCardNameLength {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeMissingCardFields,
			fmt.Sprintf("card name is required and must not exceed %d characters", MaxCardNameLength),
			domainerror.ErrMissingCardFields,
		)
	}

	// Validate bank
	if !isValidBank(input.Bank) {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidBank,
			"bank must be one of DBS, CITI, Standard_Chartered, UOB",
			domainerror.ErrInvalidBank,
		)
	}

	// Validate benefit type
	if !isValidBenefitType(input.BenefitType) {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidBenefitType,
			"benefit type must be CASHBACK, MILES or BOTH",
			domainerror.ErrInvalidBenefitType,
		)
	}

	// Validate base rate
	if !input.BaseRate.IsPositive() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidBaseRate,
			"base rate must be greater than zero",
			domainerror.ErrInvalidBaseRate,
		)
	}

	// Validate bonus rules
	if err := validateBonusRules(input.BonusRules); err != nil {
		return nil, err
	}

	// Validate period rule; a card carries at most one
	if input.ChannelCap != nil && input.TierRule != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"a card may carry either a channel cap or a tier rule, not both",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	if input.ChannelCap != nil {
		if err := validateChannelCap(input.ChannelCap); err != nil {
			return nil, err
		}
	}
	if input.TierRule != nil {
		if err := validateTierRule(input.TierRule); err != nil {
			return nil, err
		}
	}

	// Check if the bank already lists a card with this name
	exists, err := uc.catalogueRepo.ExistsByBankAndName(ctx, input.Bank, input.Name)
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

	// Build the card entity with its rules
	card := entity.NewCatalogueCard(input.Bank, input.Name, input.BenefitType, input.BaseRate)
	for _, ruleInput := range input.BonusRules {
		rule := entity.NewBonusRule(0, ruleInput.BonusCategory, ruleInput.BonusRate)
		if ruleInput.CapInDollar != nil {
			rule.CapInDollar = *ruleInput.CapInDollar
		}
		if ruleInput.MinSpendInDollar != nil {
			rule.MinSpendInDollar = *ruleInput.MinSpendInDollar
		}
		card.BonusRules = append(card.BonusRules, *rule)
	}
	if cc := input.ChannelCap; cc != nil {
		card.PeriodRule = entity.NewChannelCapRule(0, cc.Channel, cc.MonthlyCapSGD, cc.BonusRate, cc.SpillRate)
	}
	if tr := input.TierRule; tr != nil {
		tiers := make([]entity.TierLevel, len(tr.Tiers))
		for i, t := range tr.Tiers {
			tiers[i] = entity.TierLevel{
				ThresholdSGD:       t.ThresholdSGD,
				QuarterlyPayoutSGD: t.QuarterlyPayoutSGD,
			}
		}
		card.PeriodRule = entity.NewTierRule(0, tr.MinTxnCount, tiers)
	}

	// Save card to database
	if err := uc.catalogueRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	// Drop the cached catalogue snapshot so the next ranking sees the new card
	if err := uc.catalogueCache.Invalidate(ctx); err != nil {
		slog.Debug("failed to invalidate catalogue cache", "error", err)
	}

	return &CreateCardOutput{
		Card: newCardOutput(card),
	}, nil
}

// isValidBank validates the issuing bank.
func isValidBank(bank entity.Bank) bool {
	switch bank {
	case entity.BankDBS, entity.BankCiti, entity.BankStandardChartered, entity.BankUOB:
		return true
	}
	return false
}

// isValidBenefitType validates the benefit type.
func isValidBenefitType(benefitType entity.BenefitType) bool {
	switch benefitType {
	case entity.BenefitTypeCashback, entity.BenefitTypeMiles, entity.BenefitTypeBoth:
		return true
	}
	return false
}

// isValidCardStatus validates the card status.
func isValidCardStatus(status entity.CardStatus) bool {
	return status == entity.CardStatusValid || status == entity.CardStatusInvalid
}

// validateBonusRules checks every rule and rejects duplicate categories.
func validateBonusRules(rules []BonusRuleInput) error {
	seen := make(map[string]bool, len(rules))
	for _, rule := range rules {
		if _, ok := reward.ParseCategory(rule.BonusCategory); !ok {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvalidBonusCategory,
				fmt.Sprintf("unknown bonus category %q", rule.BonusCategory),
				domainerror.ErrInvalidBonusCategory,
			)
		}
		if seen[rule.BonusCategory] {
			return domainerror.NewCardError(
				domainerror.ErrCodeDuplicateBonusCategory,
				fmt.Sprintf("bonus category %q appears more than once", rule.BonusCategory),
				domainerror.ErrDuplicateBonusCategory,
			)
		}
		seen[rule.BonusCategory] = true

		if !rule.BonusRate.IsPositive() {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvalidBonusRate,
				"bonus rate must be greater than zero",
				domainerror.ErrInvalidBonusRate,
			)
		}
		if rule.CapInDollar != nil && *rule.CapInDollar <= 0 {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvalidBonusCap,
				"bonus cap must be greater than zero",
				domainerror.ErrInvalidBonusCap,
			)
		}
		if rule.MinSpendInDollar != nil && *rule.MinSpendInDollar < 0 {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvalidBonusCap,
				"minimum spend must not be negative",
				domainerror.ErrInvalidBonusCap,
			)
		}
	}
	return nil
}

// validateChannelCap checks a channel-gated monthly cap rule.
func validateChannelCap(cc *ChannelCapInput) error {
	if cc.Channel == "" {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"channel cap requires a channel",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	if !cc.MonthlyCapSGD.IsPositive() {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"monthly cap must be greater than zero",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	if !cc.BonusRate.IsPositive() || cc.SpillRate.IsNegative() {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"channel cap rates must be positive",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	return nil
}

// validateTierRule checks a tiered payout rule. Tiers must be ordered by
// strictly ascending threshold.
func validateTierRule(tr *TierRuleInput) error {
	if tr.MinTxnCount < 0 {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"minimum transaction count must not be negative",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	if len(tr.Tiers) == 0 {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidPeriodRule,
			"tier rule requires at least one tier",
			domainerror.ErrInvalidPeriodRule,
		)
	}
	prev := int64(0)
	for _, tier := range tr.Tiers {
		if tier.ThresholdSGD <= prev {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvalidPeriodRule,
				"tier thresholds must be positive and strictly ascending",
				domainerror.ErrInvalidPeriodRule,
			)
		}
		if !tier.QuarterlyPayoutSGD.IsPositive() {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvalidPeriodRule,
				"tier payouts must be greater than zero",
				domainerror.ErrInvalidPeriodRule,
			)
		}
		prev = tier.ThresholdSGD
	}
	return nil
}
