// Package recommendation contains reward recommendation use cases.
package recommendation

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// channelTokenRegex accepts lowercased channel tokens such as "online",
// "contactless" or "in_store".
var channelTokenRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// EvaluateSpendInput represents the input for a cap/tier-aware evaluation
// of one prospective spend against the month's accumulated state.
type EvaluateSpendInput struct {
	UserID    uuid.UUID
	AmountSGD decimal.Decimal
	Channel   string
	Category  *string
	Date      *time.Time // Optional, defaults to the current time
}

// CapStateOutput is the cap position of a channel-capped card around the
// evaluated spend.
type CapStateOutput struct {
	Channel            string
	MonthlyCapSGD      decimal.Decimal
	EligibleAmount     decimal.Decimal
	SpilloverAmount    decimal.Decimal
	CapRemainingBefore decimal.Decimal
	CapRemainingAfter  decimal.Decimal
}

// TierStateOutput is the tier progress of a tiered card around the
// evaluated spend. Tier thresholds are nil below the lowest tier.
type TierStateOutput struct {
	TxnCountAfter      int
	MinTxnCount        int
	SpendAfter         decimal.Decimal
	TierBefore         *int64
	TierAfter          *int64
	QualifiedBefore    bool
	QualifiedAfter     bool
	MonthlyPayoutAfter decimal.Decimal
	MonthlyDelta       decimal.Decimal
}

// EvaluatedCardOutput represents one card's period-aware evaluation.
type EvaluatedCardOutput struct {
	CardID           int64
	CardName         string
	Bank             entity.Bank
	RewardUnit       reward.Unit
	RewardValue      decimal.Decimal
	EffectiveRateStr string
	Explanations     []string
	CapState         *CapStateOutput
	TierState        *TierStateOutput
}

// EvaluateSpendOutput represents the output of a period-aware evaluation.
type EvaluateSpendOutput struct {
	Month  string
	Best   *EvaluatedCardOutput
	Ranked []*EvaluatedCardOutput
}

// EvaluateSpendUseCase evaluates a prospective spend against monthly caps
// and tier qualification, recomputing period state from the transaction log.
type EvaluateSpendUseCase struct {
	walletRepo      adapter.WalletRepository
	catalogueRepo   adapter.CatalogueRepository
	catalogueCache  adapter.CatalogueCache
	transactionRepo adapter.TransactionRepository
}

// NewEvaluateSpendUseCase creates a new EvaluateSpendUseCase instance.
func NewEvaluateSpendUseCase(
	walletRepo adapter.WalletRepository,
	catalogueRepo adapter.CatalogueRepository,
	catalogueCache adapter.CatalogueCache,
	transactionRepo adapter.TransactionRepository,
) *EvaluateSpendUseCase {
	return &EvaluateSpendUseCase{
		walletRepo:      walletRepo,
		catalogueRepo:   catalogueRepo,
		catalogueCache:  catalogueCache,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the period-aware evaluation.
func (uc *EvaluateSpendUseCase) Execute(ctx context.Context, input EvaluateSpendInput) (*EvaluateSpendOutput, error) {
	// Validate amount
	if !input.AmountSGD.IsPositive() {
		return nil, domainerror.NewRecommendationError(
			domainerror.ErrCodeInvalidSpendAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidSpendAmount,
		)
	}

	// Validate channel token
	channel := strings.ToLower(strings.TrimSpace(input.Channel))
	if !channelTokenRegex.MatchString(channel) {
		return nil, domainerror.NewRecommendationError(
			domainerror.ErrCodeInvalidSpendChannel,
			"channel must be a lowercase token such as online, contactless or in_store",
			domainerror.ErrInvalidSpendChannel,
		)
	}

	// Validate category if provided
	var category *reward.Category
	if input.Category != nil && *input.Category != "" {
		parsed, ok := reward.ParseCategory(*input.Category)
		if !ok {
			return nil, domainerror.NewRecommendationError(
				domainerror.ErrCodeInvalidSpendCategory,
				fmt.Sprintf("unknown spend category %q", *input.Category),
				domainerror.ErrInvalidSpendCategory,
			)
		}
		category = &parsed
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}
	month := reward.MonthKeyOf(date)

	// Load the active wallet and the catalogue snapshot
	walletCards, err := uc.walletRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	catalogue, err := loadCatalogueSnapshot(ctx, uc.catalogueCache, uc.catalogueRepo)
	if err != nil {
		return nil, err
	}
	views := joinWalletViews(walletCards, catalogue)

	// Rebuild this month's cumulative state from the transaction log
	transactions, err := uc.transactionRepo.FindByUserMonth(ctx, input.UserID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	state := reward.Accumulate(transactions, month)

	spend := reward.ProspectiveSpend{
		AmountSGD: input.AmountSGD,
		Channel:   channel,
		Category:  category,
		Date:      date,
	}

	ranked := make([]*EvaluatedCardOutput, 0, len(views))
	for _, view := range views {
		ranked = append(ranked, uc.evaluateCard(view, state, spend, category))
	}

	// Highest computed reward value first; order of arrival breaks ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RewardValue.GreaterThan(ranked[j].RewardValue)
	})

	output := &EvaluateSpendOutput{
		Month:  string(month),
		Ranked: ranked,
	}
	if len(ranked) > 0 {
		output.Best = ranked[0]
	}

	return output, nil
}

// evaluateCard runs the card's period rule against the spend, or falls back
// to plain rate resolution for cards without one.
func (uc *EvaluateSpendUseCase) evaluateCard(
	view reward.CardView,
	state reward.PeriodState,
	spend reward.ProspectiveSpend,
	category *reward.Category,
) *EvaluatedCardOutput {
	card := view.Card
	unit := reward.UnitFor(card.BenefitType, nil)
	cardState := state.Card(card.ID)

	out := &EvaluatedCardOutput{
		CardID:   card.ID,
		CardName: card.Name,
		Bank:     card.Bank,
	}

	pr := card.PeriodRule
	switch {
	case pr != nil && pr.Kind == entity.PeriodRuleChannelCap:
		d := reward.EvaluateChannelCap(pr, unit, cardState, spend)
		out.RewardUnit = d.Unit
		out.RewardValue = d.RewardValue
		out.EffectiveRateStr = d.EffectiveRateStr
		out.Explanations = d.Explanations
		if split := d.CapSplit; split != nil {
			out.CapState = &CapStateOutput{
				Channel:            pr.Channel,
				MonthlyCapSGD:      pr.MonthlyCapSGD,
				EligibleAmount:     split.EligibleAmount,
				SpilloverAmount:    split.SpilloverAmount,
				CapRemainingBefore: split.CapRemainingBefore,
				CapRemainingAfter:  split.CapRemainingAfter,
			}
		}

	case pr != nil && pr.Kind == entity.PeriodRuleTier:
		d := reward.EvaluateTier(pr, cardState, spend)
		out.RewardUnit = d.Unit
		out.RewardValue = d.RewardValue
		out.EffectiveRateStr = d.EffectiveRateStr
		out.Explanations = d.Explanations
		if move := d.TierMove; move != nil {
			tierState := &TierStateOutput{
				TxnCountAfter:      move.TxnCountAfter,
				MinTxnCount:        pr.MinTxnCount,
				SpendAfter:         move.SpendAfter,
				QualifiedBefore:    move.QualifiedBefore,
				QualifiedAfter:     move.QualifiedAfter,
				MonthlyPayoutAfter: move.MonthlyPayoutAfter,
				MonthlyDelta:       move.MonthlyDelta,
			}
			if move.TierBefore != nil {
				tierState.TierBefore = &move.TierBefore.ThresholdSGD
			}
			if move.TierAfter != nil {
				tierState.TierAfter = &move.TierAfter.ThresholdSGD
			}
			out.TierState = tierState
		}

	default:
		decision := reward.Resolve(card, category, &spend.AmountSGD, unit)
		b := decision.Breakdown
		out.RewardUnit = unit
		out.RewardValue = b.RewardAfterCap
		out.EffectiveRateStr = reward.FormatRate(b.EffectiveRate, unit)
		out.Explanations = decision.Explanations
	}

	return out
}
