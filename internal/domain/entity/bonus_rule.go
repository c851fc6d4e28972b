// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonusRule is a category-specific (or catch-all "All") override of a
// catalogue card's base rate. At most one rule exists per (card, category).
type BonusRule struct {
	ID     int64
	CardID int64
	// BonusCategory is one of the fixed category tokens; "All" matches any
	// spend category not claimed by a more specific rule.
	BonusCategory string
	// BonusRate uses the same dual representation as CatalogueCard.BaseRate.
	BonusRate decimal.Decimal
	// CapInDollar caps the cashback a rule may yield; 99999999 means uncapped.
	CapInDollar int64
	// MinSpendInDollar gates the rule; 0 means no minimum.
	MinSpendInDollar int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewBonusRule creates a bonus rule with the uncapped sentinel and no
// minimum spend.
func NewBonusRule(cardID int64, category string, rate decimal.Decimal) *BonusRule {
	now := time.Now().UTC()
	return &BonusRule{
		CardID:           cardID,
		BonusCategory:    category,
		BonusRate:        rate,
		CapInDollar:      99999999,
		MinSpendInDollar: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsUncapped reports whether the rule carries the "no cap" sentinel.
func (r *BonusRule) IsUncapped() bool {
	return r.CapInDollar >= 99999999
}

// HasMinSpend reports whether the rule requires a minimum spend.
func (r *BonusRule) HasMinSpend() bool {
	return r.MinSpendInDollar > 0
}
