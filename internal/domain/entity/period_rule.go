// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodRuleKind selects which month-scoped evaluation a card uses.
type PeriodRuleKind string

const (
	// PeriodRuleChannelCap pays a bonus rate on a sub-channel (e.g. online)
	// up to a monthly spend cap, with spend beyond the cap earning a
	// spillover rate.
	PeriodRuleChannelCap PeriodRuleKind = "channel_cap"
	// PeriodRuleTier pays a fixed quarterly cashback once cumulative spend
	// reaches a tier threshold and a minimum transaction count is met.
	PeriodRuleTier PeriodRuleKind = "tier"
)

// TierLevel is one rung of a tiered payout table.
type TierLevel struct {
	ThresholdSGD       int64           `json:"threshold_sgd"`
	QuarterlyPayoutSGD decimal.Decimal `json:"quarterly_payout_sgd"`
}

// PeriodRule attaches month-scoped cap or tier behaviour to a catalogue
// card. Cards without one are evaluated per transaction only.
type PeriodRule struct {
	ID     int64
	CardID int64
	Kind   PeriodRuleKind

	// Channel-cap fields.
	Channel       string
	MonthlyCapSGD decimal.Decimal
	BonusRate     decimal.Decimal
	SpillRate     decimal.Decimal

	// Tier fields.
	MinTxnCount int
	// Tiers are ordered by ascending threshold.
	Tiers []TierLevel

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewChannelCapRule creates a channel-gated monthly cap rule.
func NewChannelCapRule(cardID int64, channel string, monthlyCap, bonusRate, spillRate decimal.Decimal) *PeriodRule {
	now := time.Now().UTC()
	return &PeriodRule{
		CardID:        cardID,
		Kind:          PeriodRuleChannelCap,
		Channel:       channel,
		MonthlyCapSGD: monthlyCap,
		BonusRate:     bonusRate,
		SpillRate:     spillRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTierRule creates a tiered payout rule.
func NewTierRule(cardID int64, minTxnCount int, tiers []TierLevel) *PeriodRule {
	now := time.Now().UTC()
	return &PeriodRule{
		CardID:      cardID,
		Kind:        PeriodRuleTier,
		MinTxnCount: minTxnCount,
		Tiers:       tiers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
