// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank identifies the issuing bank of a catalogue card.
type Bank string

const (
	BankDBS               Bank = "DBS"
	BankCiti              Bank = "CITI"
	BankStandardChartered Bank = "Standard_Chartered"
	BankUOB               Bank = "UOB"
)

// BenefitType is the reward programme a catalogue card pays out in.
type BenefitType string

const (
	BenefitTypeCashback BenefitType = "CASHBACK"
	BenefitTypeMiles    BenefitType = "MILES"
	BenefitTypeBoth     BenefitType = "BOTH"
)

// CardStatus marks whether a catalogue card is currently offered.
type CardStatus string

const (
	CardStatusValid   CardStatus = "VALID"
	CardStatusInvalid CardStatus = "INVALID"
)

// CatalogueCard is an entry in the card catalogue: reference data describing
// a card product and its reward rates. The engine never mutates it.
type CatalogueCard struct {
	ID          int64
	Bank        Bank
	Name        string
	BenefitType BenefitType
	// BaseRate is stored in the catalogue's dual representation: cashback as
	// a fraction (0.015) or occasionally a percent literal (1.5); miles as
	// miles-per-dollar.
	BaseRate   decimal.Decimal
	Status     CardStatus
	ExpiryDate time.Time
	BonusRules []BonusRule
	PeriodRule *PeriodRule
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCatalogueCard creates a catalogue card with the far-future default
// expiry used for cards without a published end date.
func NewCatalogueCard(bank Bank, name string, benefitType BenefitType, baseRate decimal.Decimal) *CatalogueCard {
	now := time.Now().UTC()
	return &CatalogueCard{
		Bank:        bank,
		Name:        name,
		BenefitType: benefitType,
		BaseRate:    baseRate,
		Status:      CardStatusValid,
		ExpiryDate:  time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RuleFor returns the bonus rule for the given category, if any.
func (c *CatalogueCard) RuleFor(category string) *BonusRule {
	for i := range c.BonusRules {
		if c.BonusRules[i].BonusCategory == category {
			return &c.BonusRules[i]
		}
	}
	return nil
}
