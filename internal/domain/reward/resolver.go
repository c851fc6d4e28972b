package reward

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

// Breakdown is the full computed projection for one card evaluation: which
// rate applied, why, and what it pays. It is never stored.
type Breakdown struct {
	AmountSGD     decimal.Decimal
	Unit          Unit
	BaseRate      decimal.Decimal
	EffectiveRate decimal.Decimal
	RateSource    RateSource
	// AppliedBonusCategory is set only when a bonus rule was chosen.
	AppliedBonusCategory *Category
	MinSpendRequiredSGD  int64
	MinSpendMet          bool
	// CapInDollar carries the chosen rule's cap, uncapped sentinel included;
	// nil when the base rate applied.
	CapInDollar     *int64
	RewardBeforeCap decimal.Decimal
	RewardAfterCap  decimal.Decimal
	CapApplied      bool
}

// Decision is the Rate Resolver's output: the breakdown plus its ordered
// explanation lines.
type Decision struct {
	Breakdown    Breakdown
	Explanations []string
}

// UnitFor determines the reward unit of a catalogue card, falling back to
// miles for BOTH-type cards when the user states no preference.
func UnitFor(benefitType entity.BenefitType, preferred *Unit) Unit {
	switch benefitType {
	case entity.BenefitTypeCashback:
		return UnitCashback
	case entity.BenefitTypeMiles:
		return UnitMiles
	default:
		if preferred != nil {
			return *preferred
		}
		return UnitMiles
	}
}

// Resolve determines which of a card's rates applies to a spend and what it
// pays. A nil category matches only "All" rules. A nil amount means "rank
// by rate": minimum-spend thresholds are not enforced and the reward is
// computed on zero. A zero amount is legal and yields a zero reward;
// positivity is the caller's boundary to enforce.
func Resolve(card *entity.CatalogueCard, category *Category, amount *decimal.Decimal, unit Unit) Decision {
	chosen, bestUnmet := chooseRule(card.BonusRules, category, amount)

	amt := decimal.Zero
	if amount != nil {
		amt = *amount
	}

	b := Breakdown{
		AmountSGD:     amt,
		Unit:          unit,
		BaseRate:      card.BaseRate,
		EffectiveRate: card.BaseRate,
		RateSource:    RateSourceBase,
		MinSpendMet:   true,
	}

	if chosen != nil {
		cat := Category(chosen.BonusCategory)
		cap := chosen.CapInDollar
		b.EffectiveRate = chosen.BonusRate
		b.RateSource = RateSourceBonus
		b.AppliedBonusCategory = &cat
		b.MinSpendRequiredSGD = chosen.MinSpendInDollar
		b.CapInDollar = &cap
	}

	b.RewardBeforeCap, b.RewardAfterCap, b.CapApplied = estimateReward(amt, b.EffectiveRate, unit, chosen)

	return Decision{
		Breakdown:    b,
		Explanations: buildExplanations(b, bestUnmet),
	}
}

// chooseRule picks the met candidate rule with the highest rate, preferring
// a specific category over "All" on exact ties. Rules whose minimum spend
// the amount does not reach are reported separately so explanations can
// mention them; a nil amount skips the minimum-spend check entirely.
func chooseRule(rules []entity.BonusRule, category *Category, amount *decimal.Decimal) (chosen, bestUnmet *entity.BonusRule) {
	for i := range rules {
		rule := &rules[i]
		if !ruleMatches(rule, category) {
			continue
		}
		if amount != nil && amount.LessThan(decimal.NewFromInt(rule.MinSpendInDollar)) {
			if bestUnmet == nil || rule.BonusRate.GreaterThan(bestUnmet.BonusRate) {
				bestUnmet = rule
			}
			continue
		}
		if chosen == nil || betterRule(rule, chosen) {
			chosen = rule
		}
	}
	return chosen, bestUnmet
}

func ruleMatches(rule *entity.BonusRule, category *Category) bool {
	if rule.BonusCategory == string(CategoryAll) {
		return true
	}
	return category != nil && rule.BonusCategory == string(*category)
}

// betterRule reports whether a should replace b as the chosen rule. Rate
// magnitude decides; specificity only breaks exact ties.
func betterRule(a, b *entity.BonusRule) bool {
	if !a.BonusRate.Equal(b.BonusRate) {
		return a.BonusRate.GreaterThan(b.BonusRate)
	}
	return b.BonusCategory == string(CategoryAll) && a.BonusCategory != string(CategoryAll)
}

// estimateReward computes the reward for an amount at a rate, applying the
// chosen rule's cap for cashback. Miles are never capped: the catalogue's
// miles programmes are uncapped, and the sentinel keeps that explicit.
func estimateReward(amount, rate decimal.Decimal, unit Unit, chosen *entity.BonusRule) (before, after decimal.Decimal, capped bool) {
	if amount.Sign() <= 0 {
		return decimal.Zero, decimal.Zero, false
	}

	before = amount.Mul(NormalizeRate(rate, unit))
	after = before

	if unit == UnitCashback && chosen != nil && !chosen.IsUncapped() {
		cap := decimal.NewFromInt(chosen.CapInDollar)
		if before.GreaterThan(cap) {
			after = cap
			capped = true
		}
	}

	if unit == UnitMiles {
		return RoundMiles(before), RoundMiles(after), capped
	}
	return RoundCashback(before), RoundCashback(after), capped
}

// buildExplanations produces the ordered, human-readable lines for a
// decision: applied rule, min-spend note, effective-rate summary, cap note.
// At most five lines are returned.
func buildExplanations(b Breakdown, bestUnmet *entity.BonusRule) []string {
	lines := make([]string, 0, 5)

	if b.AppliedBonusCategory != nil {
		lines = append(lines, fmt.Sprintf("Applies bonus category '%s' for this spend.", *b.AppliedBonusCategory))
	} else {
		lines = append(lines, "No matching bonus category rule applied; using base rate.")
	}

	if bestUnmet != nil && bestUnmet.BonusRate.GreaterThan(b.EffectiveRate) {
		lines = append(lines, fmt.Sprintf("Bonus category '%s' exists but minimum spend $%d is not met.",
			bestUnmet.BonusCategory, bestUnmet.MinSpendInDollar))
	}

	lines = append(lines, fmt.Sprintf("Effective rate: %s on $%s.", FormatRate(b.EffectiveRate, b.Unit), b.AmountSGD.String()))

	if b.Unit == UnitCashback && b.CapInDollar != nil && *b.CapInDollar < UncappedSentinel {
		if b.CapApplied {
			lines = append(lines, fmt.Sprintf("Cashback capped at $%d.", *b.CapInDollar))
		} else {
			lines = append(lines, fmt.Sprintf("Cashback cap is $%d (not reached).", *b.CapInDollar))
		}
	}

	if len(lines) > 5 {
		lines = lines[:5]
	}
	return lines
}
