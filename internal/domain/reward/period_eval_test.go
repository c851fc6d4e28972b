package reward

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

func onlineCapRule() *entity.PeriodRule {
	return entity.NewChannelCapRule(4, entity.ChannelOnline,
		decimal.NewFromInt(1000), decimal.RequireFromString("4.0"), decimal.RequireFromString("0.4"))
}

func quarterlyTierRule() *entity.PeriodRule {
	return entity.NewTierRule(6, 10, []entity.TierLevel{
		{ThresholdSGD: 600, QuarterlyPayoutSGD: decimal.NewFromInt(60)},
		{ThresholdSGD: 1000, QuarterlyPayoutSGD: decimal.NewFromInt(100)},
		{ThresholdSGD: 2000, QuarterlyPayoutSGD: decimal.NewFromInt(200)},
	})
}

func stateOf(spend string, txns int, channelSpend map[string]string) CardPeriodState {
	cs := make(map[string]decimal.Decimal, len(channelSpend))
	for ch, v := range channelSpend {
		cs[ch] = decimal.RequireFromString(v)
	}
	return CardPeriodState{
		SpendTotal:   decimal.RequireFromString(spend),
		TxnCount:     txns,
		ChannelSpend: cs,
	}
}

func onlineSpend(amount string) ProspectiveSpend {
	return ProspectiveSpend{
		AmountSGD: decimal.RequireFromString(amount),
		Channel:   entity.ChannelOnline,
	}
}

func inStoreSpend(amount string) ProspectiveSpend {
	return ProspectiveSpend{
		AmountSGD: decimal.RequireFromString(amount),
		Channel:   entity.ChannelInStore,
	}
}

func TestEvaluateChannelCap(t *testing.T) {
	t.Run("full cap available pays the bonus rate", func(t *testing.T) {
		d := EvaluateChannelCap(onlineCapRule(), UnitMiles, stateOf("0", 0, nil), onlineSpend("250"))

		if !d.RewardValue.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected 1000 miles, got %s", d.RewardValue)
		}
		if d.EffectiveRateStr != "4.0 mpd" {
			t.Errorf("expected 4.0 mpd, got %q", d.EffectiveRateStr)
		}
		if d.Explanations[0] != "Online transaction @ 4.0 mpd" {
			t.Errorf("unexpected first line: %q", d.Explanations[0])
		}
		if !containsLine(d.Explanations, "Cap remaining before: S$1000.00") {
			t.Errorf("expected cap-before line, got %v", d.Explanations)
		}
		if !containsLine(d.Explanations, "Cap remaining after: S$750.00") {
			t.Errorf("expected cap-after line, got %v", d.Explanations)
		}
	})

	t.Run("spillover splits across the cap boundary", func(t *testing.T) {
		state := stateOf("900", 2, map[string]string{entity.ChannelOnline: "900"})

		d := EvaluateChannelCap(onlineCapRule(), UnitMiles, state, onlineSpend("250"))

		if !d.RewardValue.Equal(decimal.NewFromInt(460)) {
			t.Errorf("expected 460 miles, got %s", d.RewardValue)
		}
		if d.EffectiveRateStr != "split: 4.0/0.4 mpd" {
			t.Errorf("expected split rate string, got %q", d.EffectiveRateStr)
		}
		if d.Explanations[0] != "Online cap: S$100.00 @ 4.0 mpd, S$150.00 @ 0.4 mpd" {
			t.Errorf("unexpected split line: %q", d.Explanations[0])
		}
		if !containsLine(d.Explanations, "Cap remaining before: S$100.00") {
			t.Errorf("expected cap-before line, got %v", d.Explanations)
		}
		if d.CapSplit == nil {
			t.Fatal("expected a cap split")
		}
		if !d.CapSplit.EligibleAmount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected eligible 100, got %s", d.CapSplit.EligibleAmount)
		}
		if !d.CapSplit.SpilloverAmount.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected spillover 150, got %s", d.CapSplit.SpilloverAmount)
		}
	})

	t.Run("exactly exhausted cap pays the spill rate on everything", func(t *testing.T) {
		state := stateOf("1000", 1, map[string]string{entity.ChannelOnline: "1000"})

		d := EvaluateChannelCap(onlineCapRule(), UnitMiles, state, onlineSpend("100"))

		if !d.RewardValue.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected 40 miles, got %s", d.RewardValue)
		}
		if !d.CapSplit.EligibleAmount.IsZero() {
			t.Errorf("expected no eligible amount, got %s", d.CapSplit.EligibleAmount)
		}
	})

	t.Run("overshot cap never reports negative remaining", func(t *testing.T) {
		state := stateOf("1200", 2, map[string]string{entity.ChannelOnline: "1200"})

		d := EvaluateChannelCap(onlineCapRule(), UnitMiles, state, onlineSpend("100"))

		if d.CapSplit.CapRemainingBefore.Sign() < 0 {
			t.Errorf("cap remaining went negative: %s", d.CapSplit.CapRemainingBefore)
		}
		if !d.RewardValue.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected 40 miles, got %s", d.RewardValue)
		}
	})

	t.Run("off channel spend earns the base rate", func(t *testing.T) {
		d := EvaluateChannelCap(onlineCapRule(), UnitMiles, stateOf("0", 0, nil), inStoreSpend("200"))

		if !d.RewardValue.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected 80 miles, got %s", d.RewardValue)
		}
		if d.EffectiveRateStr != "0.4 mpd" {
			t.Errorf("expected 0.4 mpd, got %q", d.EffectiveRateStr)
		}
		if d.Explanations[0] != "Offline transaction @ 0.4 mpd" {
			t.Errorf("unexpected line: %q", d.Explanations[0])
		}
	})

	t.Run("off channel spend leaves the cap untouched", func(t *testing.T) {
		state := stateOf("400", 1, map[string]string{entity.ChannelOnline: "400"})

		d := EvaluateChannelCap(onlineCapRule(), UnitMiles, state, inStoreSpend("200"))

		if !d.CapSplit.CapRemainingBefore.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected 600 remaining, got %s", d.CapSplit.CapRemainingBefore)
		}
		if !d.CapSplit.CapRemainingAfter.Equal(decimal.NewFromInt(600)) {
			t.Errorf("expected remaining unchanged, got %s", d.CapSplit.CapRemainingAfter)
		}
	})
}

func TestEvaluateTier(t *testing.T) {
	t.Run("tenth transaction crossing the first tier qualifies", func(t *testing.T) {
		state := stateOf("550", 9, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("100"))

		if got := d.RewardValue.StringFixed(2); got != "20.00" {
			t.Errorf("expected delta 20.00, got %s", got)
		}
		if d.Unit != UnitCashback {
			t.Errorf("expected cashback unit, got %s", d.Unit)
		}
		if d.EffectiveRateStr != "+S$20.00/month" {
			t.Errorf("expected +S$20.00/month, got %q", d.EffectiveRateStr)
		}
		if !containsLine(d.Explanations, "This transaction qualifies you! Expected monthly payout: S$20.00") {
			t.Errorf("expected qualification line, got %v", d.Explanations)
		}
		if d.TierMove == nil || !d.TierMove.QualifiedAfter || d.TierMove.QualifiedBefore {
			t.Error("expected a transition into the qualified state")
		}
	})

	t.Run("insufficient transaction count reports progress", func(t *testing.T) {
		state := stateOf("700", 5, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("100"))

		if !d.RewardValue.IsZero() {
			t.Errorf("expected zero delta, got %s", d.RewardValue)
		}
		if d.Explanations[0] != "Progress: 6/10 txns (4 more needed)" {
			t.Errorf("unexpected progress line: %q", d.Explanations[0])
		}
		if d.EffectiveRateStr != "S$0.00/month" {
			t.Errorf("expected S$0.00/month, got %q", d.EffectiveRateStr)
		}
	})

	t.Run("already qualified within a tier adds nothing", func(t *testing.T) {
		state := stateOf("650", 10, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("50"))

		if !d.RewardValue.IsZero() {
			t.Errorf("expected zero delta, got %s", d.RewardValue)
		}
		if !containsLine(d.Explanations, "Already qualified at S$600 tier (S$20.00/month expected)") {
			t.Errorf("expected already-qualified line, got %v", d.Explanations)
		}
	})

	t.Run("crossing into a higher tier reports the upgrade delta", func(t *testing.T) {
		state := stateOf("650", 10, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("400"))

		if got := d.RewardValue.StringFixed(2); got != "13.33" {
			t.Errorf("expected delta 13.33, got %s", got)
		}
		found := false
		for _, line := range d.Explanations {
			if strings.HasPrefix(line, "Tier upgrade: S$600") && strings.Contains(line, "S$1000") {
				found = true
				if !strings.Contains(line, "+S$13.33/month") {
					t.Errorf("upgrade line missing the delta: %q", line)
				}
			}
		}
		if !found {
			t.Errorf("expected a tier upgrade line, got %v", d.Explanations)
		}
	})

	t.Run("below the lowest tier shows the gap", func(t *testing.T) {
		state := stateOf("300", 10, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("50"))

		if !containsLine(d.Explanations, "Spend: S$350.00 (S$250.00 to S$600 tier)") {
			t.Errorf("expected spend-gap line, got %v", d.Explanations)
		}
		if !d.RewardValue.IsZero() {
			t.Errorf("expected zero delta below the first tier, got %s", d.RewardValue)
		}
	})

	t.Run("middle tier names the next threshold", func(t *testing.T) {
		state := stateOf("1100", 11, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("50"))

		if !containsLine(d.Explanations, "Current tier: S$1000 (S$850.00 to S$2000 tier)") {
			t.Errorf("expected next-threshold line, got %v", d.Explanations)
		}
	})

	t.Run("top tier reports no further target", func(t *testing.T) {
		state := stateOf("2500", 12, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("50"))

		if !containsLine(d.Explanations, "Highest tier achieved: S$2000") {
			t.Errorf("expected highest-tier line, got %v", d.Explanations)
		}
		if !d.RewardValue.IsZero() {
			t.Errorf("expected zero delta at the top tier, got %s", d.RewardValue)
		}
	})

	t.Run("qualification never moves backwards", func(t *testing.T) {
		state := stateOf("650", 10, nil)

		d := EvaluateTier(quarterlyTierRule(), state, inStoreSpend("1"))

		if d.TierMove.QualifiedBefore && !d.TierMove.QualifiedAfter {
			t.Error("an additional transaction must never drop qualification")
		}
		if d.RewardValue.Sign() < 0 {
			t.Errorf("delta went negative: %s", d.RewardValue)
		}
	})
}
