// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/domain/entity"
)

// CatalogueCardModel represents the catalogue_cards table in the database.
type CatalogueCardModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Bank        string          `gorm:"type:varchar(30);not null;index:idx_catalogue_bank_name,unique"`
	Name        string          `gorm:"type:varchar(120);not null;index:idx_catalogue_bank_name,unique"`
	BenefitType string          `gorm:"type:varchar(10);not null;index"`
	BaseRate    decimal.Decimal `gorm:"type:decimal(12,6);not null"`
	Status      string          `gorm:"type:varchar(10);not null;default:'VALID';index"`
	ExpiryDate  time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	BonusRules []BonusRuleModel `gorm:"foreignKey:CardID;references:ID"`
	PeriodRule *PeriodRuleModel `gorm:"foreignKey:CardID;references:ID"`
}

// TableName returns the table name for the CatalogueCardModel.
func (CatalogueCardModel) TableName() string {
	return "catalogue_cards"
}

// BonusRuleModel represents the bonus_rules table in the database.
type BonusRuleModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	CardID           int64           `gorm:"not null;index:idx_bonus_card_category,unique"`
	BonusCategory    string          `gorm:"type:varchar(30);not null;index:idx_bonus_card_category,unique"`
	BonusRate        decimal.Decimal `gorm:"type:decimal(12,6);not null"`
	CapInDollar      int64           `gorm:"not null;default:99999999"`
	MinSpendInDollar int64           `gorm:"not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BonusRuleModel.
func (BonusRuleModel) TableName() string {
	return "bonus_rules"
}

// PeriodRuleModel represents the period_rules table in the database.
// A card has at most one period rule; tier levels live in their own table.
type PeriodRuleModel struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	CardID        int64           `gorm:"not null;uniqueIndex"`
	Kind          string          `gorm:"type:varchar(20);not null"`
	Channel       string          `gorm:"type:varchar(30)"`
	MonthlyCapSGD decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BonusRate     decimal.Decimal `gorm:"type:decimal(12,6);not null;default:0"`
	SpillRate     decimal.Decimal `gorm:"type:decimal(12,6);not null;default:0"`
	MinTxnCount   int             `gorm:"not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Tiers []PeriodRuleTierModel `gorm:"foreignKey:PeriodRuleID;references:ID"`
}

// TableName returns the table name for the PeriodRuleModel.
func (PeriodRuleModel) TableName() string {
	return "period_rules"
}

// PeriodRuleTierModel represents the period_rule_tiers table in the database.
type PeriodRuleTierModel struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement"`
	PeriodRuleID       int64           `gorm:"not null;index"`
	ThresholdSGD       int64           `gorm:"not null"`
	QuarterlyPayoutSGD decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for the PeriodRuleTierModel.
func (PeriodRuleTierModel) TableName() string {
	return "period_rule_tiers"
}

// ToEntity converts a CatalogueCardModel to a domain CatalogueCard entity.
func (m *CatalogueCardModel) ToEntity() *entity.CatalogueCard {
	card := &entity.CatalogueCard{
		ID:          m.ID,
		Bank:        entity.Bank(m.Bank),
		Name:        m.Name,
		BenefitType: entity.BenefitType(m.BenefitType),
		BaseRate:    m.BaseRate,
		Status:      entity.CardStatus(m.Status),
		ExpiryDate:  m.ExpiryDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if len(m.BonusRules) > 0 {
		card.BonusRules = make([]entity.BonusRule, len(m.BonusRules))
		for i, rm := range m.BonusRules {
			card.BonusRules[i] = *rm.ToEntity()
		}
	}
	if m.PeriodRule != nil {
		card.PeriodRule = m.PeriodRule.ToEntity()
	}

	return card
}

// ToEntity converts a BonusRuleModel to a domain BonusRule entity.
func (m *BonusRuleModel) ToEntity() *entity.BonusRule {
	return &entity.BonusRule{
		ID:               m.ID,
		CardID:           m.CardID,
		BonusCategory:    m.BonusCategory,
		BonusRate:        m.BonusRate,
		CapInDollar:      m.CapInDollar,
		MinSpendInDollar: m.MinSpendInDollar,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToEntity converts a PeriodRuleModel to a domain PeriodRule entity.
func (m *PeriodRuleModel) ToEntity() *entity.PeriodRule {
	rule := &entity.PeriodRule{
		ID:            m.ID,
		CardID:        m.CardID,
		Kind:          entity.PeriodRuleKind(m.Kind),
		Channel:       m.Channel,
		MonthlyCapSGD: m.MonthlyCapSGD,
		BonusRate:     m.BonusRate,
		SpillRate:     m.SpillRate,
		MinTxnCount:   m.MinTxnCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if len(m.Tiers) > 0 {
		rule.Tiers = make([]entity.TierLevel, len(m.Tiers))
		for i, tm := range m.Tiers {
			rule.Tiers[i] = entity.TierLevel{
				ThresholdSGD:       tm.ThresholdSGD,
				QuarterlyPayoutSGD: tm.QuarterlyPayoutSGD,
			}
		}
	}

	return rule
}

// CatalogueCardFromEntity creates a CatalogueCardModel from a domain CatalogueCard entity.
func CatalogueCardFromEntity(card *entity.CatalogueCard) *CatalogueCardModel {
	m := &CatalogueCardModel{
		ID:          card.ID,
		Bank:        string(card.Bank),
		Name:        card.Name,
		BenefitType: string(card.BenefitType),
		BaseRate:    card.BaseRate,
		Status:      string(card.Status),
		ExpiryDate:  card.ExpiryDate,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}

	if len(card.BonusRules) > 0 {
		m.BonusRules = make([]BonusRuleModel, len(card.BonusRules))
		for i, rule := range card.BonusRules {
			m.BonusRules[i] = *BonusRuleFromEntity(&rule)
		}
	}
	if card.PeriodRule != nil {
		m.PeriodRule = PeriodRuleFromEntity(card.PeriodRule)
	}

	return m
}

// BonusRuleFromEntity creates a BonusRuleModel from a domain BonusRule entity.
func BonusRuleFromEntity(rule *entity.BonusRule) *BonusRuleModel {
	return &BonusRuleModel{
		ID:               rule.ID,
		CardID:           rule.CardID,
		BonusCategory:    rule.BonusCategory,
		BonusRate:        rule.BonusRate,
		CapInDollar:      rule.CapInDollar,
		MinSpendInDollar: rule.MinSpendInDollar,
		CreatedAt:        rule.CreatedAt,
		UpdatedAt:        rule.UpdatedAt,
	}
}

// PeriodRuleFromEntity creates a PeriodRuleModel from a domain PeriodRule entity.
func PeriodRuleFromEntity(rule *entity.PeriodRule) *PeriodRuleModel {
	m := &PeriodRuleModel{
		ID:            rule.ID,
		CardID:        rule.CardID,
		Kind:          string(rule.Kind),
		Channel:       rule.Channel,
		MonthlyCapSGD: rule.MonthlyCapSGD,
		BonusRate:     rule.BonusRate,
		SpillRate:     rule.SpillRate,
		MinTxnCount:   rule.MinTxnCount,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}

	if len(rule.Tiers) > 0 {
		m.Tiers = make([]PeriodRuleTierModel, len(rule.Tiers))
		for i, tier := range rule.Tiers {
			m.Tiers[i] = PeriodRuleTierModel{
				PeriodRuleID:       rule.ID,
				ThresholdSGD:       tier.ThresholdSGD,
				QuarterlyPayoutSGD: tier.QuarterlyPayoutSGD,
			}
		}
	}

	return m
}
