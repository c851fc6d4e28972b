package reward

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

// CardView pairs an owned wallet card with its catalogue entry. The caller
// loads and joins both; a nil Card marks a catalogue gap and is skipped.
type CardView struct {
	Owned *entity.WalletCard
	Card  *entity.CatalogueCard
}

// RankedCard is one ranked result: identity, rates, estimated reward and the
// transparency fields (rules, breakdown, explanations).
type RankedCard struct {
	CardID               int64
	CardName             string
	Bank                 entity.Bank
	Unit                 Unit
	BaseRate             decimal.Decimal
	EffectiveRate        decimal.Decimal
	AppliedBonusCategory *Category
	EstimatedReward      decimal.Decimal
	EffectiveRateStr     string
	Explanations         []string
	Breakdown            Breakdown
	Rules                []entity.BonusRule
}

// Rank evaluates every active owned card for a spend and orders the results
// best-first. A nil preferred unit keeps both cashback and miles cards in
// play; an explicit preference excludes cards paying the other unit, since
// the two are incomparable without an exchange rate this engine does not
// model. A nil amount ranks by rate alone, supporting a browse mode
// distinct from evaluating one purchase.
//
// Returns (nil, empty) when no card survives filtering; that is a normal
// outcome, not an error.
func Rank(cards []CardView, category *Category, amount *decimal.Decimal, preferred *Unit) (*RankedCard, []RankedCard) {
	ranked := make([]RankedCard, 0, len(cards))

	for _, view := range cards {
		if view.Owned == nil || !view.Owned.IsActive() {
			continue
		}
		if view.Card == nil {
			continue
		}

		unit := UnitFor(view.Card.BenefitType, preferred)
		if preferred != nil && unit != *preferred {
			continue
		}

		decision := Resolve(view.Card, category, amount, unit)
		b := decision.Breakdown

		ranked = append(ranked, RankedCard{
			CardID:               view.Card.ID,
			CardName:             view.Card.Name,
			Bank:                 view.Card.Bank,
			Unit:                 unit,
			BaseRate:             b.BaseRate,
			EffectiveRate:        b.EffectiveRate,
			AppliedBonusCategory: b.AppliedBonusCategory,
			EstimatedReward:      b.RewardAfterCap,
			EffectiveRateStr:     FormatRate(b.EffectiveRate, unit),
			Explanations:         decision.Explanations,
			Breakdown:            b,
			Rules:                view.Card.BonusRules,
		})
	}

	if len(ranked) == 0 {
		return nil, ranked
	}

	sortRanked(ranked)
	return &ranked[0], ranked
}

// sortRanked orders results descending by normalized effective rate, then
// normalized base rate. The secondary key favours cards that stay strong
// when no bonus matches.
func sortRanked(ranked []RankedCard) {
	sort.SliceStable(ranked, func(i, j int) bool {
		ei := NormalizeRate(ranked[i].EffectiveRate, ranked[i].Unit)
		ej := NormalizeRate(ranked[j].EffectiveRate, ranked[j].Unit)
		if !ei.Equal(ej) {
			return ei.GreaterThan(ej)
		}
		bi := NormalizeRate(ranked[i].BaseRate, ranked[i].Unit)
		bj := NormalizeRate(ranked[j].BaseRate, ranked[j].Unit)
		return bi.GreaterThan(bj)
	})
}
