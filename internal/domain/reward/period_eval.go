package reward

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

// ProspectiveSpend is the hypothetical transaction being evaluated against
// cumulative monthly state.
type ProspectiveSpend struct {
	AmountSGD decimal.Decimal
	Channel   string
	Category  *Category
	Date      time.Time
}

// CapSplit reports how a channel-capped evaluation divided one amount
// between the bonus-eligible portion and the spillover.
type CapSplit struct {
	EligibleAmount     decimal.Decimal
	SpilloverAmount    decimal.Decimal
	CapRemainingBefore decimal.Decimal
	CapRemainingAfter  decimal.Decimal
}

// TierMove reports the qualification movement one prospective transaction
// causes on a tiered card.
type TierMove struct {
	TxnCountAfter      int
	SpendAfter         decimal.Decimal
	TierBefore         *entity.TierLevel
	TierAfter          *entity.TierLevel
	QualifiedBefore    bool
	QualifiedAfter     bool
	MonthlyPayoutAfter decimal.Decimal
	MonthlyDelta       decimal.Decimal
}

// PeriodDecision is the outcome of evaluating one card's period rule. Only
// one of CapSplit / TierMove is set, matching the rule kind.
type PeriodDecision struct {
	Unit             Unit
	RewardValue      decimal.Decimal
	EffectiveRateStr string
	Explanations     []string
	CapSplit         *CapSplit
	TierMove         *TierMove
}

var three = decimal.NewFromInt(3)

// EvaluateChannelCap evaluates a spend against a channel-gated monthly cap:
// the portion of a matching-channel amount that fits under the remaining
// cap earns the bonus rate, the rest spills to the base rate, and both
// portions are summed. Off-channel spend earns the base rate outright.
func EvaluateChannelCap(rule *entity.PeriodRule, unit Unit, state CardPeriodState, spend ProspectiveSpend) PeriodDecision {
	used := state.ChannelTotal(rule.Channel)
	remaining := rule.MonthlyCapSGD.Sub(used)
	if remaining.Sign() < 0 {
		remaining = decimal.Zero
	}

	split := CapSplit{
		CapRemainingBefore: remaining,
		CapRemainingAfter:  remaining,
	}
	d := PeriodDecision{Unit: unit, CapSplit: &split}

	if spend.Channel != rule.Channel {
		reward := spend.AmountSGD.Mul(NormalizeRate(rule.SpillRate, unit))
		split.SpilloverAmount = spend.AmountSGD
		d.RewardValue = roundReward(reward, unit)
		d.EffectiveRateStr = FormatRate(rule.SpillRate, unit)
		d.Explanations = []string{
			fmt.Sprintf("%s transaction @ %s", offChannelLabel(rule.Channel), FormatRate(rule.SpillRate, unit)),
		}
		return d
	}

	split.EligibleAmount = decimal.Min(spend.AmountSGD, remaining)
	split.SpilloverAmount = spend.AmountSGD.Sub(split.EligibleAmount)
	split.CapRemainingAfter = remaining.Sub(split.EligibleAmount)

	reward := split.EligibleAmount.Mul(NormalizeRate(rule.BonusRate, unit)).
		Add(split.SpilloverAmount.Mul(NormalizeRate(rule.SpillRate, unit)))
	d.RewardValue = roundReward(reward, unit)

	if split.SpilloverAmount.Sign() > 0 {
		d.EffectiveRateStr = FormatSplitRate(rule.BonusRate, rule.SpillRate)
		d.Explanations = []string{
			fmt.Sprintf("%s cap: S$%s @ %s, S$%s @ %s",
				titleChannel(rule.Channel),
				split.EligibleAmount.StringFixed(2), FormatRate(rule.BonusRate, unit),
				split.SpilloverAmount.StringFixed(2), FormatRate(rule.SpillRate, unit)),
			fmt.Sprintf("Cap remaining before: S$%s", remaining.StringFixed(2)),
		}
		return d
	}

	d.EffectiveRateStr = FormatRate(rule.BonusRate, unit)
	d.Explanations = []string{
		fmt.Sprintf("%s transaction @ %s", titleChannel(rule.Channel), FormatRate(rule.BonusRate, unit)),
		fmt.Sprintf("Cap remaining before: S$%s", remaining.StringFixed(2)),
		fmt.Sprintf("Cap remaining after: S$%s", split.CapRemainingAfter.StringFixed(2)),
	}
	return d
}

// EvaluateTier evaluates a spend against a transaction-count plus
// spend-tier qualification rule. The reward value is the marginal
// monthly-equivalent payout delta this one transaction causes, computed by
// comparing the qualification state before and after it.
func EvaluateTier(rule *entity.PeriodRule, state CardPeriodState, spend ProspectiveSpend) PeriodDecision {
	spendPre := state.SpendTotal
	txnsPre := state.TxnCount
	spendPost := spendPre.Add(spend.AmountSGD)
	txnsPost := txnsPre + 1

	tierPre := tierIndex(rule.Tiers, spendPre)
	tierPost := tierIndex(rule.Tiers, spendPost)

	qualifiedPre := txnsPre >= rule.MinTxnCount && tierPre >= 0
	qualifiedPost := txnsPost >= rule.MinTxnCount && tierPost >= 0

	payoutPre := decimal.Zero
	if qualifiedPre {
		payoutPre = rule.Tiers[tierPre].QuarterlyPayoutSGD.Div(three)
	}
	payoutPost := decimal.Zero
	if qualifiedPost {
		payoutPost = rule.Tiers[tierPost].QuarterlyPayoutSGD.Div(three)
	}
	delta := payoutPost.Sub(payoutPre)

	move := TierMove{
		TxnCountAfter:      txnsPost,
		SpendAfter:         spendPost,
		QualifiedBefore:    qualifiedPre,
		QualifiedAfter:     qualifiedPost,
		MonthlyPayoutAfter: payoutPost,
		MonthlyDelta:       delta,
	}
	if tierPre >= 0 {
		move.TierBefore = &rule.Tiers[tierPre]
	}
	if tierPost >= 0 {
		move.TierAfter = &rule.Tiers[tierPost]
	}

	lines := make([]string, 0, 3)

	if txnsPost < rule.MinTxnCount {
		lines = append(lines, fmt.Sprintf("Progress: %d/%d txns (%d more needed)",
			txnsPost, rule.MinTxnCount, rule.MinTxnCount-txnsPost))
	} else {
		lines = append(lines, fmt.Sprintf("Transaction requirement met: %d/%d txns", txnsPost, rule.MinTxnCount))
	}

	switch {
	case tierPost < 0:
		next := rule.Tiers[0]
		gap := decimal.NewFromInt(next.ThresholdSGD).Sub(spendPost)
		lines = append(lines, fmt.Sprintf("Spend: S$%s (S$%s to S$%d tier)",
			spendPost.StringFixed(2), gap.StringFixed(2), next.ThresholdSGD))
	case tierPost < len(rule.Tiers)-1:
		next := rule.Tiers[tierPost+1]
		gap := decimal.NewFromInt(next.ThresholdSGD).Sub(spendPost)
		lines = append(lines, fmt.Sprintf("Current tier: S$%d (S$%s to S$%d tier)",
			rule.Tiers[tierPost].ThresholdSGD, gap.StringFixed(2), next.ThresholdSGD))
	default:
		lines = append(lines, fmt.Sprintf("Highest tier achieved: S$%d", rule.Tiers[tierPost].ThresholdSGD))
	}

	switch {
	case !qualifiedPre && qualifiedPost:
		lines = append(lines, fmt.Sprintf("This transaction qualifies you! Expected monthly payout: S$%s",
			payoutPost.StringFixed(2)))
	case qualifiedPre && tierPost > tierPre:
		lines = append(lines, fmt.Sprintf("Tier upgrade: S$%d → S$%d (+S$%s/month)",
			rule.Tiers[tierPre].ThresholdSGD, rule.Tiers[tierPost].ThresholdSGD, delta.StringFixed(2)))
	case qualifiedPost:
		lines = append(lines, fmt.Sprintf("Already qualified at S$%d tier (S$%s/month expected)",
			rule.Tiers[tierPost].ThresholdSGD, payoutPost.StringFixed(2)))
	}

	return PeriodDecision{
		Unit:             UnitCashback,
		RewardValue:      RoundCashback(delta),
		EffectiveRateStr: FormatMonthlyDelta(delta),
		Explanations:     lines,
		TierMove:         &move,
	}
}

// tierIndex returns the index of the highest tier whose threshold the spend
// meets, or -1 below the lowest. Tiers are stored ascending by threshold.
func tierIndex(tiers []entity.TierLevel, spend decimal.Decimal) int {
	idx := -1
	for i, t := range tiers {
		if spend.GreaterThanOrEqual(decimal.NewFromInt(t.ThresholdSGD)) {
			idx = i
		}
	}
	return idx
}

func roundReward(v decimal.Decimal, unit Unit) decimal.Decimal {
	if unit == UnitMiles {
		return RoundMiles(v)
	}
	return RoundCashback(v)
}

func titleChannel(channel string) string {
	if channel == "" {
		return channel
	}
	return strings.ToUpper(channel[:1]) + channel[1:]
}

func offChannelLabel(channel string) string {
	if channel == entity.ChannelOnline {
		return "Offline"
	}
	return "Non-" + strings.ToLower(channel)
}
