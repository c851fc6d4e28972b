// Package digest contains the monthly reward digest use case.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// BuildMonthlyDigestInput represents the input for a digest run. An empty
// Month targets the previous calendar month.
type BuildMonthlyDigestInput struct {
	Month string
}

// BuildMonthlyDigestOutput represents the outcome of a digest run.
type BuildMonthlyDigestOutput struct {
	Month          string
	UsersProcessed int
	EmailsQueued   int
}

// BuildMonthlyDigestUseCase assembles the per-user monthly reward digest
// and queues one email per user with activity. Reward totals are recomputed
// from the transaction log with the same engine the live endpoints use.
type BuildMonthlyDigestUseCase struct {
	userRepo        adapter.UserRepository
	transactionRepo adapter.TransactionRepository
	catalogueRepo   adapter.CatalogueRepository
	emailService    adapter.EmailService
}

// NewBuildMonthlyDigestUseCase creates a new BuildMonthlyDigestUseCase instance.
func NewBuildMonthlyDigestUseCase(
	userRepo adapter.UserRepository,
	transactionRepo adapter.TransactionRepository,
	catalogueRepo adapter.CatalogueRepository,
	emailService adapter.EmailService,
) *BuildMonthlyDigestUseCase {
	return &BuildMonthlyDigestUseCase{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		catalogueRepo:   catalogueRepo,
		emailService:    emailService,
	}
}

// Execute performs the digest run.
func (uc *BuildMonthlyDigestUseCase) Execute(ctx context.Context, input BuildMonthlyDigestInput) (*BuildMonthlyDigestOutput, error) {
	month := previousMonth(time.Now().UTC())
	if input.Month != "" {
		parsed, ok := reward.ParseMonthKey(input.Month)
		if !ok {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidBillingMonth,
				"month must be in YYYY-MM format",
				domainerror.ErrInvalidBillingMonth,
			)
		}
		month = parsed
	}

	users, err := uc.userRepo.FindDigestRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load digest recipients: %w", err)
	}

	output := &BuildMonthlyDigestOutput{Month: string(month)}
	for _, user := range users {
		output.UsersProcessed++
		queued, err := uc.digestForUser(ctx, user, month)
		if err != nil {
			// One user's failure must not starve the rest of the run
			slog.Error("digest build failed for user",
				"user_id", user.ID,
				"month", month,
				"error", err,
			)
			continue
		}
		if queued {
			output.EmailsQueued++
		}
	}

	slog.Info("monthly digest run complete",
		"month", month,
		"users", output.UsersProcessed,
		"queued", output.EmailsQueued,
	)
	return output, nil
}

// digestForUser builds and queues one user's digest. Users with no logged
// spend that month are skipped.
func (uc *BuildMonthlyDigestUseCase) digestForUser(ctx context.Context, user *entity.User, month reward.MonthKey) (bool, error) {
	transactions, err := uc.transactionRepo.FindByUserMonth(ctx, user.ID, month)
	if err != nil {
		return false, fmt.Errorf("failed to load transactions: %w", err)
	}

	state := reward.Accumulate(transactions, month)
	if len(state.Cards) == 0 {
		slog.Debug("skipping digest for user with no activity", "user_id", user.ID, "month", month)
		return false, nil
	}

	cardIDs := make([]int64, 0, len(state.Cards))
	for cardID := range state.Cards {
		cardIDs = append(cardIDs, cardID)
	}
	catalogue, err := uc.catalogueRepo.FindByIDs(ctx, cardIDs)
	if err != nil {
		return false, fmt.Errorf("failed to load catalogue: %w", err)
	}

	summaries := make([]adapter.DigestCardSummary, 0, len(state.Cards))
	totalSpend := decimal.Zero
	bestCard := ""
	bestNormalized := decimal.Decimal{}

	for cardID, cardState := range state.Cards {
		card, ok := catalogue[cardID]
		if !ok {
			slog.Debug("digest card missing from catalogue",
				"user_id", user.ID,
				"catalogue_card_id", cardID,
			)
			continue
		}

		unit := reward.UnitFor(card.BenefitType, unitForPreference(user.RewardPreference))
		rewardValue := monthlyReward(card, *cardState, transactions, unit)
		totalSpend = totalSpend.Add(cardState.SpendTotal)

		summaries = append(summaries, adapter.DigestCardSummary{
			CardName:    card.Name,
			Bank:        string(card.Bank),
			SpendSGD:    cardState.SpendTotal.StringFixed(2),
			TxnCount:    cardState.TxnCount,
			RewardValue: reward.FormatRewardValue(rewardValue, unit),
			RewardUnit:  string(unit),
		})

		// Best card of the month by normalized reward value, so cashback
		// dollars and miles stay roughly comparable
		normalized := rewardValue
		if unit == reward.UnitMiles {
			normalized = rewardValue.Div(decimal.NewFromInt(100))
		}
		if bestCard == "" || normalized.GreaterThan(bestNormalized) {
			bestCard = card.Name
			bestNormalized = normalized
		}
	}

	if len(summaries) == 0 {
		return false, nil
	}

	err = uc.emailService.QueueRewardDigestEmail(ctx, adapter.QueueRewardDigestInput{
		UserID:       user.ID.String(),
		UserEmail:    user.Email,
		UserName:     user.Name,
		Month:        string(month),
		Cards:        summaries,
		BestCardName: bestCard,
		TotalSpend:   totalSpend.StringFixed(2),
	})
	if err != nil {
		return false, fmt.Errorf("failed to queue digest email: %w", err)
	}
	return true, nil
}

// monthlyReward estimates what a card earned over one month of logged
// spend, honouring its period rule when it has one.
func monthlyReward(card *entity.CatalogueCard, cardState reward.CardPeriodState, transactions []entity.CardTransaction, unit reward.Unit) decimal.Decimal {
	pr := card.PeriodRule
	switch {
	case pr != nil && pr.Kind == entity.PeriodRuleChannelCap:
		return channelCapMonthReward(pr, cardState, unit)
	case pr != nil && pr.Kind == entity.PeriodRuleTier:
		return tierMonthReward(pr, cardState)
	default:
		return resolvedMonthReward(card, transactions, unit)
	}
}

// channelCapMonthReward applies the cap to the month's aggregate channel
// spend: the capped portion earns the bonus rate, everything else spills.
func channelCapMonthReward(pr *entity.PeriodRule, cardState reward.CardPeriodState, unit reward.Unit) decimal.Decimal {
	channelSpend := cardState.ChannelTotal(pr.Channel)
	eligible := decimal.Min(channelSpend, pr.MonthlyCapSGD)
	spill := cardState.SpendTotal.Sub(eligible)

	total := eligible.Mul(reward.NormalizeRate(pr.BonusRate, unit)).
		Add(spill.Mul(reward.NormalizeRate(pr.SpillRate, unit)))
	if unit == reward.UnitMiles {
		return reward.RoundMiles(total)
	}
	return reward.RoundCashback(total)
}

// tierMonthReward reports the monthly-equivalent payout the month's
// position qualifies for, zero when unqualified.
func tierMonthReward(pr *entity.PeriodRule, cardState reward.CardPeriodState) decimal.Decimal {
	if cardState.TxnCount < pr.MinTxnCount {
		return decimal.Zero
	}
	payout := decimal.Zero
	for _, tier := range pr.Tiers {
		if cardState.SpendTotal.GreaterThanOrEqual(decimal.NewFromInt(tier.ThresholdSGD)) {
			payout = tier.QuarterlyPayoutSGD.Div(decimal.NewFromInt(3))
		}
	}
	return reward.RoundCashback(payout)
}

// resolvedMonthReward folds the resolver over each of the card's
// transactions, using each spend's own category.
func resolvedMonthReward(card *entity.CatalogueCard, transactions []entity.CardTransaction, unit reward.Unit) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		txn := &transactions[i]
		if txn.CatalogueCardID != card.ID {
			continue
		}
		var category *reward.Category
		if parsed, ok := reward.ParseCategory(txn.Category); ok {
			category = &parsed
		}
		decision := reward.Resolve(card, category, &txn.AmountSGD, unit)
		total = total.Add(decision.Breakdown.RewardAfterCap)
	}
	if unit == reward.UnitMiles {
		return reward.RoundMiles(total)
	}
	return reward.RoundCashback(total)
}

// previousMonth returns the month key of the calendar month before t.
func previousMonth(t time.Time) reward.MonthKey {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return reward.MonthKeyOf(firstOfMonth.AddDate(0, 0, -1))
}

// unitForPreference maps a stored reward preference to a unit preference.
func unitForPreference(p entity.RewardPreference) *reward.Unit {
	switch p {
	case entity.RewardPreferenceMiles:
		u := reward.UnitMiles
		return &u
	case entity.RewardPreferenceCashback:
		u := reward.UnitCashback
		return &u
	default:
		return nil
	}
}
