// Package recommendation contains reward recommendation use cases.
package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

func catalogueCard(id int64, bank entity.Bank, name string, benefitType entity.BenefitType, baseRate string, rules ...entity.BonusRule) *entity.CatalogueCard {
	card := entity.NewCatalogueCard(bank, name, benefitType, decimal.RequireFromString(baseRate))
	card.ID = id
	card.BonusRules = rules
	return card
}

func bonusRule(cardID int64, category, rate string, capInDollar, minSpend int64) entity.BonusRule {
	return entity.BonusRule{
		CardID:           cardID,
		BonusCategory:    category,
		BonusRate:        decimal.RequireFromString(rate),
		CapInDollar:      capInDollar,
		MinSpendInDollar: minSpend,
	}
}

func strPtr(s string) *string { return &s }

func amountOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// recommendFixture wires one user holding the given catalogue cards through
// fake repositories and an empty cache.
type recommendFixture struct {
	userID     uuid.UUID
	userRepo   *fakeUserRepo
	walletRepo *fakeWalletRepo
	catRepo    *fakeCatalogueRepo
	cache      *fakeCatalogueCache
	uc         *RecommendUseCase
}

func newRecommendFixture(preference entity.RewardPreference, cards ...*entity.CatalogueCard) *recommendFixture {
	user := entity.NewUser("jordan@example.com", "Jordan", "hash", time.Now().UTC())
	user.RewardPreference = preference

	wallet := make([]*entity.WalletCard, 0, len(cards))
	for _, c := range cards {
		wallet = append(wallet, entity.NewWalletCard(user.ID, c.ID, 1))
	}

	f := &recommendFixture{
		userID:     user.ID,
		userRepo:   &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}},
		walletRepo: &fakeWalletRepo{cards: wallet},
		catRepo:    &fakeCatalogueRepo{cards: cards},
		cache:      &fakeCatalogueCache{},
	}
	f.uc = NewRecommendUseCase(f.userRepo, f.walletRepo, f.catRepo, f.cache)
	return f
}

func milesFoodCard() *entity.CatalogueCard {
	return catalogueCard(1, entity.BankCiti, "Altitude Card", entity.BenefitTypeMiles, "1.2",
		bonusRule(1, "Food", "5.0", reward.UncappedSentinel, 500))
}

func cashbackFoodCard() *entity.CatalogueCard {
	return catalogueCard(2, entity.BankDBS, "Live Fresh Card", entity.BenefitTypeCashback, "0.003",
		bonusRule(2, "Food", "0.05", 100, 0))
}

func recommendationCode(t *testing.T, err error) domainerror.RecommendationErrorCode {
	t.Helper()
	var recErr *domainerror.RecommendationError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected a recommendation error, got %v", err)
	}
	return recErr.Code
}

func TestRecommend_RanksAcrossUnits(t *testing.T) {
	f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard(), cashbackFoodCard())

	out, err := f.uc.Execute(context.Background(), RecommendInput{
		UserID:    f.userID,
		Category:  strPtr("Food"),
		AmountSGD: amountOf("800"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Best == nil {
		t.Fatal("expected a best card")
	}
	if len(out.Ranked) != 2 {
		t.Fatalf("expected 2 ranked cards, got %d", len(out.Ranked))
	}
	if out.Best != out.Ranked[0] {
		t.Error("expected best to alias the first ranked entry")
	}

	best := out.Best
	if best.CardName != "Altitude Card" {
		t.Errorf("expected the 5 mpd card to rank above 5%% cashback, got %s", best.CardName)
	}
	if best.RewardUnit != reward.UnitMiles {
		t.Errorf("expected miles unit, got %s", best.RewardUnit)
	}
	if !best.EstimatedReward.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected 4000 miles on $800, got %s", best.EstimatedReward)
	}
	if best.EffectiveRateStr != "5.0 mpd" {
		t.Errorf("expected rate string '5.0 mpd', got %q", best.EffectiveRateStr)
	}
	if best.Breakdown.RateSource != reward.RateSourceBonus {
		t.Errorf("expected bonus rate source, got %s", best.Breakdown.RateSource)
	}
	if best.AppliedBonusCategory == nil || *best.AppliedBonusCategory != "Food" {
		t.Errorf("expected applied category Food, got %v", best.AppliedBonusCategory)
	}
	if len(best.Explanations) == 0 || best.Explanations[0] != "Applies bonus category 'Food' for this spend." {
		t.Errorf("unexpected first explanation: %v", best.Explanations)
	}

	runnerUp := out.Ranked[1]
	if runnerUp.CardName != "Live Fresh Card" {
		t.Errorf("expected Live Fresh Card second, got %s", runnerUp.CardName)
	}
	if !runnerUp.EstimatedReward.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected $40 cashback on $800, got %s", runnerUp.EstimatedReward)
	}
	if runnerUp.EffectiveRateStr != "5.0% cashback" {
		t.Errorf("expected rate string '5.0%% cashback', got %q", runnerUp.EffectiveRateStr)
	}
}

func TestRecommend_BrowseWithoutAmount(t *testing.T) {
	f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())

	out, err := f.uc.Execute(context.Background(), RecommendInput{
		UserID:   f.userID,
		Category: strPtr("Food"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Best == nil {
		t.Fatal("expected a best card")
	}

	// Without an amount the min-spend gate is not enforced and the reward
	// is computed on zero.
	if out.Best.Breakdown.RateSource != reward.RateSourceBonus {
		t.Errorf("expected the bonus rate to apply when browsing, got %s", out.Best.Breakdown.RateSource)
	}
	if !out.Best.EstimatedReward.IsZero() {
		t.Errorf("expected zero reward without an amount, got %s", out.Best.EstimatedReward)
	}
	if out.Best.EffectiveRateStr != "5.0 mpd" {
		t.Errorf("expected rate string '5.0 mpd', got %q", out.Best.EffectiveRateStr)
	}
}

func TestRecommend_ValidatesInput(t *testing.T) {
	f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())

	t.Run("rejects a zero amount", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:    f.userID,
			AmountSGD: amountOf("0"),
		})
		if code := recommendationCode(t, err); code != domainerror.ErrCodeInvalidSpendAmount {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidSpendAmount, code)
		}
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:    f.userID,
			AmountSGD: amountOf("-10"),
		})
		if code := recommendationCode(t, err); code != domainerror.ErrCodeInvalidSpendAmount {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidSpendAmount, code)
		}
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:    f.userID,
			Category:  strPtr("Groceries"),
			AmountSGD: amountOf("100"),
		})
		if code := recommendationCode(t, err); code != domainerror.ErrCodeInvalidSpendCategory {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidSpendCategory, code)
		}
		if !errors.Is(err, domainerror.ErrInvalidSpendCategory) {
			t.Error("expected the error to wrap ErrInvalidSpendCategory")
		}
	})

	t.Run("rejects an unknown preference", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:     f.userID,
			AmountSGD:  amountOf("100"),
			Preference: strPtr("Points"),
		})
		if code := recommendationCode(t, err); code != domainerror.ErrCodeInvalidRewardPreference {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidRewardPreference, code)
		}
	})

	t.Run("empty category string means no category", func(t *testing.T) {
		out, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:    f.userID,
			Category:  strPtr(""),
			AmountSGD: amountOf("100"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// No category matches only catch-all rules, so the base rate applies.
		if out.Best.Breakdown.RateSource != reward.RateSourceBase {
			t.Errorf("expected base rate source, got %s", out.Best.Breakdown.RateSource)
		}
	})
}

func TestRecommend_PreferenceFiltering(t *testing.T) {
	t.Run("explicit preference filters units and skips the profile", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceMiles, milesFoodCard(), cashbackFoodCard())

		out, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:     f.userID,
			Category:   strPtr("Food"),
			AmountSGD:  amountOf("800"),
			Preference: strPtr("Cashback"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Ranked) != 1 {
			t.Fatalf("expected only the cashback card, got %d cards", len(out.Ranked))
		}
		if out.Best.CardName != "Live Fresh Card" {
			t.Errorf("expected Live Fresh Card, got %s", out.Best.CardName)
		}
		if f.userRepo.findByIDCalls != 0 {
			t.Errorf("expected the stored preference not to be read, got %d lookups", f.userRepo.findByIDCalls)
		}
	})

	t.Run("stored preference applies when the request is silent", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceMiles, milesFoodCard(), cashbackFoodCard())

		out, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:    f.userID,
			Category:  strPtr("Food"),
			AmountSGD: amountOf("800"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Ranked) != 1 {
			t.Fatalf("expected only the miles card, got %d cards", len(out.Ranked))
		}
		if out.Best.CardName != "Altitude Card" {
			t.Errorf("expected Altitude Card, got %s", out.Best.CardName)
		}
		if f.userRepo.findByIDCalls != 1 {
			t.Errorf("expected one profile lookup, got %d", f.userRepo.findByIDCalls)
		}
	})

	t.Run("no preference keeps both units in play", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard(), cashbackFoodCard())

		out, err := f.uc.Execute(context.Background(), RecommendInput{
			UserID:    f.userID,
			Category:  strPtr("Food"),
			AmountSGD: amountOf("800"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Ranked) != 2 {
			t.Errorf("expected both cards ranked, got %d", len(out.Ranked))
		}
	})
}

func TestRecommend_UserNotFound(t *testing.T) {
	f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())

	_, err := f.uc.Execute(context.Background(), RecommendInput{
		UserID:    uuid.New(),
		AmountSGD: amountOf("100"),
	})
	if code := recommendationCode(t, err); code != domainerror.ErrCodeRecommendationUserNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeRecommendationUserNotFound, code)
	}
	if !errors.Is(err, domainerror.ErrRecommendationUserNotFound) {
		t.Error("expected the error to wrap ErrRecommendationUserNotFound")
	}
}

func TestRecommend_EmptyWalletIsNormal(t *testing.T) {
	f := newRecommendFixture(entity.RewardPreferenceNone)

	out, err := f.uc.Execute(context.Background(), RecommendInput{
		UserID:    f.userID,
		AmountSGD: amountOf("100"),
	})
	if err != nil {
		t.Fatalf("expected an empty wallet to rank without error, got %v", err)
	}
	if out.Best != nil {
		t.Errorf("expected no best card, got %s", out.Best.CardName)
	}
	if len(out.Ranked) != 0 {
		t.Errorf("expected an empty ranking, got %d cards", len(out.Ranked))
	}
}

func TestRecommend_SkipsInactiveAndOrphanedCards(t *testing.T) {
	f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard(), cashbackFoodCard())

	// Suspend the cashback card and add a wallet row whose catalogue entry
	// no longer exists.
	f.walletRepo.cards[1].Status = entity.WalletCardStatusSuspended
	f.walletRepo.cards = append(f.walletRepo.cards, entity.NewWalletCard(f.userID, 99, 1))

	out, err := f.uc.Execute(context.Background(), RecommendInput{
		UserID:    f.userID,
		Category:  strPtr("Food"),
		AmountSGD: amountOf("800"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Ranked) != 1 {
		t.Fatalf("expected only the active owned card, got %d", len(out.Ranked))
	}
	if out.Best.CardName != "Altitude Card" {
		t.Errorf("expected Altitude Card, got %s", out.Best.CardName)
	}
}

func TestRecommend_CatalogueCacheReadThrough(t *testing.T) {
	t.Run("miss loads the repository and repopulates", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())

		_, err := f.uc.Execute(context.Background(), RecommendInput{UserID: f.userID, AmountSGD: amountOf("100")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.catRepo.listCalls != 1 {
			t.Errorf("expected one repository load, got %d", f.catRepo.listCalls)
		}
		if f.cache.setCalls != 1 {
			t.Errorf("expected the snapshot to be written back, got %d writes", f.cache.setCalls)
		}
	})

	t.Run("hit skips the repository", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())
		f.cache.snapshot = f.catRepo.cards

		out, err := f.uc.Execute(context.Background(), RecommendInput{UserID: f.userID, AmountSGD: amountOf("100")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.catRepo.listCalls != 0 {
			t.Errorf("expected the repository to be skipped, got %d loads", f.catRepo.listCalls)
		}
		if len(out.Ranked) != 1 {
			t.Errorf("expected the cached catalogue to serve the ranking, got %d cards", len(out.Ranked))
		}
	})

	t.Run("read failure degrades to the repository", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())
		f.cache.getErr = errors.New("connection refused")

		out, err := f.uc.Execute(context.Background(), RecommendInput{UserID: f.userID, AmountSGD: amountOf("100")})
		if err != nil {
			t.Fatalf("expected a cache failure to degrade, got %v", err)
		}
		if f.catRepo.listCalls != 1 {
			t.Errorf("expected one repository load, got %d", f.catRepo.listCalls)
		}
		if len(out.Ranked) != 1 {
			t.Errorf("expected the ranking to survive the cache failure, got %d cards", len(out.Ranked))
		}
	})

	t.Run("repository failure is an error", func(t *testing.T) {
		f := newRecommendFixture(entity.RewardPreferenceNone, milesFoodCard())
		f.catRepo.listErr = errors.New("database gone")

		_, err := f.uc.Execute(context.Background(), RecommendInput{UserID: f.userID, AmountSGD: amountOf("100")})
		if err == nil {
			t.Fatal("expected an error when both cache and repository fail")
		}
	})
}
