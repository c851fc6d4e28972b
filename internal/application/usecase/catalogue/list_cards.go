// Package catalogue contains card catalogue use cases.
package catalogue

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
)

// ListCardsInput represents the input for listing catalogue cards.
type ListCardsInput struct {
	Bank          *entity.Bank
	BenefitType   *entity.BenefitType
	Status        *entity.CardStatus
	BonusCategory *string
}

// BonusRuleOutput represents a bonus rule in card output.
type BonusRuleOutput struct {
	ID               int64
	BonusCategory    string
	BonusRate        decimal.Decimal
	CapInDollar      int64
	MinSpendInDollar int64
}

// TierLevelOutput represents one tier of a tiered payout rule.
type TierLevelOutput struct {
	ThresholdSGD       int64
	QuarterlyPayoutSGD decimal.Decimal
}

// PeriodRuleOutput represents a card's month-scoped rule in the output.
type PeriodRuleOutput struct {
	Kind          entity.PeriodRuleKind
	Channel       string
	MonthlyCapSGD decimal.Decimal
	BonusRate     decimal.Decimal
	SpillRate     decimal.Decimal
	MinTxnCount   int
	Tiers         []TierLevelOutput
}

// CardOutput represents a single catalogue card in the output.
type CardOutput struct {
	ID          int64
	Bank        entity.Bank
	Name        string
	BenefitType entity.BenefitType
	BaseRate    decimal.Decimal
	Status      entity.CardStatus
	ExpiryDate  time.Time
	BonusRules  []BonusRuleOutput
	PeriodRule  *PeriodRuleOutput
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListCardsOutput represents the output of listing catalogue cards.
type ListCardsOutput struct {
	Cards []*CardOutput
}

// ListCardsUseCase handles catalogue listing logic.
type ListCardsUseCase struct {
	catalogueRepo adapter.CatalogueRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(catalogueRepo adapter.CatalogueRepository) *ListCardsUseCase {
	return &ListCardsUseCase{
		catalogueRepo: catalogueRepo,
	}
}

// Execute performs the catalogue listing.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	filter := adapter.CatalogueFilter{
		Bank:          input.Bank,
		BenefitType:   input.BenefitType,
		Status:        input.Status,
		BonusCategory: input.BonusCategory,
	}

	cards, err := uc.catalogueRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	output := &ListCardsOutput{
		Cards: make([]*CardOutput, len(cards)),
	}
	for i, card := range cards {
		output.Cards[i] = newCardOutput(card)
	}

	return output, nil
}

// newCardOutput maps a catalogue card entity to its use case output.
func newCardOutput(card *entity.CatalogueCard) *CardOutput {
	out := &CardOutput{
		ID:          card.ID,
		Bank:        card.Bank,
		Name:        card.Name,
		BenefitType: card.BenefitType,
		BaseRate:    card.BaseRate,
		Status:      card.Status,
		ExpiryDate:  card.ExpiryDate,
		BonusRules:  make([]BonusRuleOutput, len(card.BonusRules)),
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
	for i, rule := range card.BonusRules {
		out.BonusRules[i] = BonusRuleOutput{
			ID:               rule.ID,
			BonusCategory:    rule.BonusCategory,
			BonusRate:        rule.BonusRate,
			CapInDollar:      rule.CapInDollar,
			MinSpendInDollar: rule.MinSpendInDollar,
		}
	}
	if pr := card.PeriodRule; pr != nil {
		ruleOut := &PeriodRuleOutput{
			Kind:          pr.Kind,
			Channel:       pr.Channel,
			MonthlyCapSGD: pr.MonthlyCapSGD,
			BonusRate:     pr.BonusRate,
			SpillRate:     pr.SpillRate,
			MinTxnCount:   pr.MinTxnCount,
			Tiers:         make([]TierLevelOutput, len(pr.Tiers)),
		}
		for i, tier := range pr.Tiers {
			ruleOut.Tiers[i] = TierLevelOutput{
				ThresholdSGD:       tier.ThresholdSGD,
				QuarterlyPayoutSGD: tier.QuarterlyPayoutSGD,
			}
		}
		out.PeriodRule = ruleOut
	}
	return out
}
