// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cardwise/backend/internal/application/usecase/catalogue"
)

// BonusRuleRequest represents one category bonus rule in card requests.
type BonusRuleRequest struct {
	BonusCategory    string `json:"bonus_category" binding:"required"`
	BonusRate        string `json:"bonus_rate" binding:"required"`
	CapInDollar      *int64 `json:"cap_in_dollar,omitempty"`
	MinSpendInDollar *int64 `json:"min_spend_in_dollar,omitempty"`
}

// ChannelCapRequest represents a channel spending cap rule in card requests.
type ChannelCapRequest struct {
	Channel       string `json:"channel" binding:"required"`
	MonthlyCapSGD string `json:"monthly_cap_sgd" binding:"required"`
	BonusRate     string `json:"bonus_rate" binding:"required"`
	SpillRate     string `json:"spill_rate" binding:"required"`
}

// TierLevelRequest represents one spend tier in card requests.
type TierLevelRequest struct {
	ThresholdSGD       int64  `json:"threshold_sgd" binding:"required"`
	QuarterlyPayoutSGD string `json:"quarterly_payout_sgd" binding:"required"`
}

// TierRuleRequest represents a tiered payout rule in card requests.
type TierRuleRequest struct {
	MinTxnCount int                `json:"min_txn_count" binding:"required,min=1"`
	Tiers       []TierLevelRequest `json:"tiers" binding:"required,min=1"`
}

// CreateCardRequest represents the request body for catalogue card creation.
type CreateCardRequest struct {
	Bank        string             `json:"bank" binding:"required"`
	Name        string             `json:"name" binding:"required,min=1,max=100"`
	BenefitType string             `json:"benefit_type" binding:"required"`
	BaseRate    string             `json:"base_rate" binding:"required"`
	BonusRules  []BonusRuleRequest `json:"bonus_rules,omitempty"`
	ChannelCap  *ChannelCapRequest `json:"channel_cap,omitempty"`
	TierRule    *TierRuleRequest   `json:"tier_rule,omitempty"`
}

// UpdateCardRequest represents the request body for catalogue card update.
// Omitted fields are left unchanged; ClearPeriodRule removes the existing
// cap or tier rule without replacing it.
type UpdateCardRequest struct {
	Name            *string             `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	BaseRate        *string             `json:"base_rate,omitempty"`
	Status          *string             `json:"status,omitempty"`
	ExpiryDate      *string             `json:"expiry_date,omitempty"`
	BonusRules      *[]BonusRuleRequest `json:"bonus_rules,omitempty"`
	ChannelCap      *ChannelCapRequest  `json:"channel_cap,omitempty"`
	TierRule        *TierRuleRequest    `json:"tier_rule,omitempty"`
	ClearPeriodRule bool                `json:"clear_period_rule,omitempty"`
}

// BonusRuleResponse represents one category bonus rule in API responses.
type BonusRuleResponse struct {
	ID               int64  `json:"id"`
	BonusCategory    string `json:"bonus_category"`
	BonusRate        string `json:"bonus_rate"`
	CapInDollar      int64  `json:"cap_in_dollar"`
	MinSpendInDollar int64  `json:"min_spend_in_dollar"`
}

// TierLevelResponse represents one spend tier in API responses.
type TierLevelResponse struct {
	ThresholdSGD       int64  `json:"threshold_sgd"`
	QuarterlyPayoutSGD string `json:"quarterly_payout_sgd"`
}

// PeriodRuleResponse represents a card's monthly cap or tier rule in API
// responses. Channel/cap fields are set for channel_cap rules, txn count
// and tiers for tier rules.
type PeriodRuleResponse struct {
	Kind          string              `json:"kind"`
	Channel       string              `json:"channel,omitempty"`
	MonthlyCapSGD string              `json:"monthly_cap_sgd,omitempty"`
	BonusRate     string              `json:"bonus_rate,omitempty"`
	SpillRate     string              `json:"spill_rate,omitempty"`
	MinTxnCount   int                 `json:"min_txn_count,omitempty"`
	Tiers         []TierLevelResponse `json:"tiers,omitempty"`
}

// CardResponse represents a catalogue card in API responses.
type CardResponse struct {
	ID          int64               `json:"id"`
	Bank        string              `json:"bank"`
	Name        string              `json:"name"`
	BenefitType string              `json:"benefit_type"`
	BaseRate    string              `json:"base_rate"`
	Status      string              `json:"status"`
	ExpiryDate  string              `json:"expiry_date"`
	BonusRules  []BonusRuleResponse `json:"bonus_rules"`
	PeriodRule  *PeriodRuleResponse `json:"period_rule,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CardListResponse represents the response for listing catalogue cards.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int            `json:"total"`
}

// ToCardResponse converts a CardOutput to a CardResponse DTO.
func ToCardResponse(card *catalogue.CardOutput) CardResponse {
	response := CardResponse{
		ID:          card.ID,
		Bank:        string(card.Bank),
		Name:        card.Name,
		BenefitType: string(card.BenefitType),
		BaseRate:    card.BaseRate.String(),
		Status:      string(card.Status),
		ExpiryDate:  card.ExpiryDate.Format("2006-01-02"),
		BonusRules:  make([]BonusRuleResponse, len(card.BonusRules)),
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}

	for i, rule := range card.BonusRules {
		response.BonusRules[i] = BonusRuleResponse{
			ID:               rule.ID,
			BonusCategory:    rule.BonusCategory,
			BonusRate:        rule.BonusRate.String(),
			CapInDollar:      rule.CapInDollar,
			MinSpendInDollar: rule.MinSpendInDollar,
		}
	}

	if card.PeriodRule != nil {
		response.PeriodRule = toPeriodRuleResponse(card.PeriodRule)
	}

	return response
}

// toPeriodRuleResponse converts a PeriodRuleOutput to its response DTO.
func toPeriodRuleResponse(rule *catalogue.PeriodRuleOutput) *PeriodRuleResponse {
	response := &PeriodRuleResponse{
		Kind:        string(rule.Kind),
		Channel:     rule.Channel,
		MinTxnCount: rule.MinTxnCount,
	}
	if !rule.MonthlyCapSGD.IsZero() {
		response.MonthlyCapSGD = rule.MonthlyCapSGD.String()
	}
	if !rule.BonusRate.IsZero() {
		response.BonusRate = rule.BonusRate.String()
	}
	if !rule.SpillRate.IsZero() {
		response.SpillRate = rule.SpillRate.String()
	}
	if len(rule.Tiers) > 0 {
		response.Tiers = make([]TierLevelResponse, len(rule.Tiers))
		for i, tier := range rule.Tiers {
			response.Tiers[i] = TierLevelResponse{
				ThresholdSGD:       tier.ThresholdSGD,
				QuarterlyPayoutSGD: tier.QuarterlyPayoutSGD.StringFixed(2),
			}
		}
	}
	return response
}

// ToCardListResponse converts a ListCardsOutput to CardListResponse.
func ToCardListResponse(output *catalogue.ListCardsOutput) CardListResponse {
	cards := make([]CardResponse, len(output.Cards))
	for i, card := range output.Cards {
		cards[i] = ToCardResponse(card)
	}
	return CardListResponse{
		Cards: cards,
		Total: len(cards),
	}
}
