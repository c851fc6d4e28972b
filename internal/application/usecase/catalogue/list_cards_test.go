// Package catalogue contains card catalogue use cases.
package catalogue

import (
	"context"
	"testing"

	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

func TestListCards_PassesFilterThrough(t *testing.T) {
	repo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{
		storedCard(1, entity.BankDBS, "Vantage Card"),
		storedCard(2, entity.BankCiti, "Altitude Card"),
	}}
	uc := NewListCardsUseCase(repo)

	bank := entity.BankDBS
	status := entity.CardStatusValid
	out, err := uc.Execute(context.Background(), ListCardsInput{
		Bank:          &bank,
		Status:        &status,
		BonusCategory: strPtr("Food"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(out.Cards))
	}

	filter := repo.lastFilter
	if filter.Bank == nil || *filter.Bank != entity.BankDBS {
		t.Errorf("expected the bank filter forwarded, got %v", filter.Bank)
	}
	if filter.BenefitType != nil {
		t.Errorf("expected no benefit type filter, got %v", *filter.BenefitType)
	}
	if filter.Status == nil || *filter.Status != entity.CardStatusValid {
		t.Errorf("expected the status filter forwarded, got %v", filter.Status)
	}
	if filter.BonusCategory == nil || *filter.BonusCategory != "Food" {
		t.Errorf("expected the bonus category filter forwarded, got %v", filter.BonusCategory)
	}
}

func TestListCards_MapsRulesToOutput(t *testing.T) {
	card := storedCard(7, entity.BankUOB, "Rewards Plus Card")
	card.BonusRules = []entity.BonusRule{
		*entity.NewBonusRule(7, "Food", rateOf("0.05")),
	}
	card.PeriodRule = entity.NewChannelCapRule(7, entity.ChannelOnline, rateOf("1000"), rateOf("4.0"), rateOf("0.4"))

	uc := NewListCardsUseCase(&fakeCatalogueRepo{cards: []*entity.CatalogueCard{card}})

	out, err := uc.Execute(context.Background(), ListCardsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(out.Cards))
	}

	got := out.Cards[0]
	if got.ID != 7 || got.Bank != entity.BankUOB || got.Name != "Rewards Plus Card" {
		t.Errorf("unexpected card identity: %+v", got)
	}
	if len(got.BonusRules) != 1 || got.BonusRules[0].BonusCategory != "Food" {
		t.Fatalf("unexpected bonus rules: %+v", got.BonusRules)
	}
	if got.PeriodRule == nil {
		t.Fatal("expected the period rule in the output")
	}
	if got.PeriodRule.Kind != entity.PeriodRuleChannelCap || got.PeriodRule.Channel != entity.ChannelOnline {
		t.Errorf("unexpected period rule: %+v", got.PeriodRule)
	}
	if !got.PeriodRule.MonthlyCapSGD.Equal(rateOf("1000")) {
		t.Errorf("expected cap 1000, got %s", got.PeriodRule.MonthlyCapSGD)
	}
}

func TestGetCard_ReturnsCard(t *testing.T) {
	repo := &fakeCatalogueRepo{cards: []*entity.CatalogueCard{
		storedCard(3, entity.BankDBS, "Live Fresh Card"),
	}}
	uc := NewGetCardUseCase(repo)

	out, err := uc.Execute(context.Background(), GetCardInput{CardID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Card.ID != 3 || out.Card.Name != "Live Fresh Card" {
		t.Errorf("unexpected card: %+v", out.Card)
	}
}

func TestGetCard_NotFound(t *testing.T) {
	uc := NewGetCardUseCase(&fakeCatalogueRepo{})

	_, err := uc.Execute(context.Background(), GetCardInput{CardID: 404})
	if code := cardCode(t, err); code != domainerror.ErrCodeCardNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeCardNotFound, code)
	}
}
