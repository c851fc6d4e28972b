// Package recommendation contains reward recommendation use cases.
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

// RecommendInput represents the input for a card recommendation. Category
// and amount are both optional: omitting the amount ranks cards by rate
// alone, and omitting the category restricts matching to catch-all rules.
type RecommendInput struct {
	UserID     uuid.UUID
	Category   *string
	AmountSGD  *decimal.Decimal
	Preference *string // Optional, overrides the user's stored preference
}

// BreakdownOutput carries the full rate-resolution transparency fields for
// one evaluated card.
type BreakdownOutput struct {
	AmountSGD            decimal.Decimal
	Unit                 reward.Unit
	BaseRate             decimal.Decimal
	EffectiveRate        decimal.Decimal
	RateSource           reward.RateSource
	AppliedBonusCategory *string
	MinSpendRequiredSGD  int64
	MinSpendMet          bool
	CapInDollar          *int64
	RewardBeforeCap      decimal.Decimal
	RewardAfterCap       decimal.Decimal
	CapApplied           bool
}

// RankedCardOutput represents one ranked card in the output.
type RankedCardOutput struct {
	CardID               int64
	CardName             string
	Bank                 entity.Bank
	RewardUnit           reward.Unit
	BaseRate             decimal.Decimal
	EffectiveRate        decimal.Decimal
	AppliedBonusCategory *string
	EstimatedReward      decimal.Decimal
	EffectiveRateStr     string
	Explanations         []string
	Breakdown            BreakdownOutput
}

// RecommendOutput represents the output of a recommendation. A nil Best
// with an empty Ranked list means no owned card was eligible; that is a
// normal outcome, not an error.
type RecommendOutput struct {
	Best   *RankedCardOutput
	Ranked []*RankedCardOutput
}

// RecommendUseCase ranks a user's wallet for a spend.
type RecommendUseCase struct {
	userRepo       adapter.UserRepository
	walletRepo     adapter.WalletRepository
	catalogueRepo  adapter.CatalogueRepository
	catalogueCache adapter.CatalogueCache
}

// NewRecommendUseCase creates a new RecommendUseCase instance.
func NewRecommendUseCase(
	userRepo adapter.UserRepository,
	walletRepo adapter.WalletRepository,
	catalogueRepo adapter.CatalogueRepository,
	catalogueCache adapter.CatalogueCache,
) *RecommendUseCase {
	return &RecommendUseCase{
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		catalogueRepo:  catalogueRepo,
		catalogueCache: catalogueCache,
	}
}

// Execute performs the recommendation.
func (uc *RecommendUseCase) Execute(ctx context.Context, input RecommendInput) (*RecommendOutput, error) {
	// Validate amount if provided
	if input.AmountSGD != nil && !input.AmountSGD.IsPositive() {
		return nil, domainerror.NewRecommendationError(
			domainerror.ErrCodeInvalidSpendAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidSpendAmount,
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

	// Resolve the unit preference: an explicit request value wins over the
	// stored profile preference
	preferred, err := uc.resolvePreference(ctx, input)
	if err != nil {
		return nil, err
	}

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

	best, ranked := reward.Rank(views, category, input.AmountSGD, preferred)

	output := &RecommendOutput{
		Ranked: make([]*RankedCardOutput, len(ranked)),
	}
	for i := range ranked {
		output.Ranked[i] = newRankedCardOutput(&ranked[i])
	}
	if best != nil {
		output.Best = output.Ranked[0]
	}

	return output, nil
}

// resolvePreference maps the request or profile preference to a unit filter.
func (uc *RecommendUseCase) resolvePreference(ctx context.Context, input RecommendInput) (*reward.Unit, error) {
	if input.Preference != nil && *input.Preference != "" {
		if !entity.ValidRewardPreference(*input.Preference) {
			return nil, domainerror.NewRecommendationError(
				domainerror.ErrCodeInvalidRewardPreference,
				"preference must be Miles, Cashback or No preference",
				domainerror.ErrInvalidRewardPreference,
			)
		}
		return unitForPreference(entity.RewardPreference(*input.Preference)), nil
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewRecommendationError(
				domainerror.ErrCodeRecommendationUserNotFound,
				"user not found",
				domainerror.ErrRecommendationUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return unitForPreference(user.RewardPreference), nil
}

// joinWalletViews joins wallet rows with the catalogue snapshot. Wallet
// entries whose catalogue card has vanished are skipped rather than failing
// the whole ranking.
func joinWalletViews(walletCards []*entity.WalletCard, catalogue []*entity.CatalogueCard) []reward.CardView {
	index := make(map[int64]*entity.CatalogueCard, len(catalogue))
	for _, card := range catalogue {
		index[card.ID] = card
	}

	views := make([]reward.CardView, 0, len(walletCards))
	for _, wc := range walletCards {
		card, ok := index[wc.CatalogueCardID]
		if !ok {
			slog.Debug("wallet card missing from catalogue snapshot",
				"wallet_card_id", wc.ID,
				"catalogue_card_id", wc.CatalogueCardID,
			)
			continue
		}
		views = append(views, reward.CardView{Owned: wc, Card: card})
	}
	return views
}

// loadCatalogueSnapshot reads the catalogue through the cache, falling back
// to the repository and repopulating on a miss. Cache failures degrade to
// the repository rather than failing the request.
func loadCatalogueSnapshot(ctx context.Context, cache adapter.CatalogueCache, repo adapter.CatalogueRepository) ([]*entity.CatalogueCard, error) {
	cards, err := cache.GetSnapshot(ctx)
	if err != nil {
		slog.Debug("catalogue cache read failed", "error", err)
	}
	if cards != nil {
		return cards, nil
	}

	cards, err = repo.List(ctx, adapter.CatalogueFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}
	if err := cache.SetSnapshot(ctx, cards); err != nil {
		slog.Debug("catalogue cache write failed", "error", err)
	}
	return cards, nil
}

// unitForPreference maps a stored reward preference to a ranking filter.
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

// newRankedCardOutput maps an engine result to use case output.
func newRankedCardOutput(rc *reward.RankedCard) *RankedCardOutput {
	return &RankedCardOutput{
		CardID:               rc.CardID,
		CardName:             rc.CardName,
		Bank:                 rc.Bank,
		RewardUnit:           rc.Unit,
		BaseRate:             rc.BaseRate,
		EffectiveRate:        rc.EffectiveRate,
		AppliedBonusCategory: categoryString(rc.AppliedBonusCategory),
		EstimatedReward:      rc.EstimatedReward,
		EffectiveRateStr:     rc.EffectiveRateStr,
		Explanations:         rc.Explanations,
		Breakdown:            newBreakdownOutput(rc.Breakdown),
	}
}

// newBreakdownOutput maps an engine breakdown to use case output.
func newBreakdownOutput(b reward.Breakdown) BreakdownOutput {
	return BreakdownOutput{
		AmountSGD:            b.AmountSGD,
		Unit:                 b.Unit,
		BaseRate:             b.BaseRate,
		EffectiveRate:        b.EffectiveRate,
		RateSource:           b.RateSource,
		AppliedBonusCategory: categoryString(b.AppliedBonusCategory),
		MinSpendRequiredSGD:  b.MinSpendRequiredSGD,
		MinSpendMet:          b.MinSpendMet,
		CapInDollar:          b.CapInDollar,
		RewardBeforeCap:      b.RewardBeforeCap,
		RewardAfterCap:       b.RewardAfterCap,
		CapApplied:           b.CapApplied,
	}
}

func categoryString(c *reward.Category) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}
