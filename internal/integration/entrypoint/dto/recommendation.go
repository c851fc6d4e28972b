// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/usecase/recommendation"
	"github.com/cardwise/backend/internal/domain/reward"
)

// RecommendRequest represents the request body for a card recommendation.
// Amount and category are optional: without an amount cards are ranked by
// rate alone, without a category only catch-all rules match.
type RecommendRequest struct {
	Category   *string `json:"category,omitempty"`
	AmountSGD  *string `json:"amount_sgd,omitempty"`
	Preference *string `json:"preference,omitempty"`
}

// EvaluateSpendRequest represents the request body for a cap/tier-aware
// evaluation of one prospective spend.
type EvaluateSpendRequest struct {
	AmountSGD string  `json:"amount_sgd" binding:"required"`
	Channel   string  `json:"channel" binding:"required"`
	Category  *string `json:"category,omitempty"`
	Date      *string `json:"date,omitempty"`
}

// ExplainRecommendationRequest represents the request body for a natural
// language explanation of the best card. Unlike ranking, the amount is
// required here.
type ExplainRecommendationRequest struct {
	Category   *string `json:"category,omitempty"`
	AmountSGD  string  `json:"amount_sgd" binding:"required"`
	Preference *string `json:"preference,omitempty"`
}

// BreakdownResponse carries the rate-resolution transparency fields for
// one evaluated card. Reward fields are whole miles or 2dp cashback
// strings depending on the unit.
type BreakdownResponse struct {
	AmountSGD            string      `json:"amount_sgd"`
	Unit                 string      `json:"unit"`
	BaseRate             string      `json:"base_rate"`
	EffectiveRate        string      `json:"effective_rate"`
	RateSource           string      `json:"rate_source"`
	AppliedBonusCategory *string     `json:"applied_bonus_category"`
	MinSpendRequiredSGD  int64       `json:"min_spend_required_sgd"`
	MinSpendMet          bool        `json:"min_spend_met"`
	CapInDollar          *int64      `json:"cap_in_dollar"`
	RewardBeforeCap      interface{} `json:"reward_before_cap"`
	RewardAfterCap       interface{} `json:"reward_after_cap"`
	CapApplied           bool        `json:"cap_applied"`
}

// RankedCardResponse represents one ranked card in API responses.
type RankedCardResponse struct {
	CardID               int64             `json:"card_id"`
	CardName             string            `json:"card_name"`
	Bank                 string            `json:"bank"`
	RewardUnit           string            `json:"reward_unit"`
	BaseRate             string            `json:"base_rate"`
	EffectiveRate        string            `json:"effective_rate"`
	AppliedBonusCategory *string           `json:"applied_bonus_category"`
	EstimatedRewardValue interface{}       `json:"estimated_reward_value"`
	EffectiveRateStr     string            `json:"effective_rate_str"`
	Explanations         []string          `json:"explanations"`
	Breakdown            BreakdownResponse `json:"breakdown"`
}

// RecommendResponse represents the response for a recommendation. A null
// best with an empty ranked list means no owned card was eligible.
type RecommendResponse struct {
	Best   *RankedCardResponse  `json:"best"`
	Ranked []RankedCardResponse `json:"ranked"`
}

// CapStateResponse is the cap position of a channel-capped card around the
// evaluated spend.
type CapStateResponse struct {
	Channel            string `json:"channel"`
	MonthlyCapSGD      string `json:"monthly_cap_sgd"`
	EligibleAmount     string `json:"eligible_amount"`
	SpilloverAmount    string `json:"spillover_amount"`
	CapRemainingBefore string `json:"cap_remaining_before"`
	CapRemainingAfter  string `json:"cap_remaining_after"`
}

// TierStateResponse is the tier progress of a tiered card around the
// evaluated spend. Tier thresholds are null below the lowest tier.
type TierStateResponse struct {
	TxnCountAfter      int    `json:"txn_count_after"`
	MinTxnCount        int    `json:"min_txn_count"`
	SpendAfter         string `json:"spend_after"`
	TierBefore         *int64 `json:"tier_before"`
	TierAfter          *int64 `json:"tier_after"`
	QualifiedBefore    bool   `json:"qualified_before"`
	QualifiedAfter     bool   `json:"qualified_after"`
	MonthlyPayoutAfter string `json:"monthly_payout_after"`
	MonthlyDelta       string `json:"monthly_delta"`
}

// EvaluatedCardResponse represents one card's period-aware evaluation in
// API responses.
type EvaluatedCardResponse struct {
	CardID           int64              `json:"card_id"`
	CardName         string             `json:"card_name"`
	Bank             string             `json:"bank"`
	RewardUnit       string             `json:"reward_unit"`
	RewardValue      interface{}        `json:"reward_value"`
	EffectiveRateStr string             `json:"effective_rate_str"`
	Explanations     []string           `json:"explanations"`
	CapState         *CapStateResponse  `json:"cap_state,omitempty"`
	TierState        *TierStateResponse `json:"tier_state,omitempty"`
}

// EvaluateSpendResponse represents the response for a period-aware
// evaluation.
type EvaluateSpendResponse struct {
	Month  string                  `json:"month"`
	Best   *EvaluatedCardResponse  `json:"best"`
	Ranked []EvaluatedCardResponse `json:"ranked"`
}

// ExplainRecommendationResponse represents the response for an explanation.
type ExplainRecommendationResponse struct {
	Explanation  string               `json:"explanation"`
	Model        string               `json:"model"`
	IsFallback   bool                 `json:"is_fallback"`
	GenerationMS int64                `json:"generation_ms"`
	Best         *RankedCardResponse  `json:"best"`
	Ranked       []RankedCardResponse `json:"ranked"`
}

// rewardValueJSON serializes a computed reward in its unit-appropriate
// wire form: a whole-number JSON integer for miles, a 2dp string for
// cashback dollars.
func rewardValueJSON(v decimal.Decimal, unit reward.Unit) interface{} {
	if unit == reward.UnitMiles {
		return reward.RoundMiles(v).IntPart()
	}
	return v.StringFixed(2)
}

// ToBreakdownResponse converts a BreakdownOutput to a BreakdownResponse DTO.
func ToBreakdownResponse(b *recommendation.BreakdownOutput) BreakdownResponse {
	return BreakdownResponse{
		AmountSGD:            b.AmountSGD.StringFixed(2),
		Unit:                 string(b.Unit),
		BaseRate:             b.BaseRate.String(),
		EffectiveRate:        b.EffectiveRate.String(),
		RateSource:           string(b.RateSource),
		AppliedBonusCategory: b.AppliedBonusCategory,
		MinSpendRequiredSGD:  b.MinSpendRequiredSGD,
		MinSpendMet:          b.MinSpendMet,
		CapInDollar:          b.CapInDollar,
		RewardBeforeCap:      rewardValueJSON(b.RewardBeforeCap, b.Unit),
		RewardAfterCap:       rewardValueJSON(b.RewardAfterCap, b.Unit),
		CapApplied:           b.CapApplied,
	}
}

// ToRankedCardResponse converts a RankedCardOutput to a RankedCardResponse DTO.
func ToRankedCardResponse(rc *recommendation.RankedCardOutput) RankedCardResponse {
	return RankedCardResponse{
		CardID:               rc.CardID,
		CardName:             rc.CardName,
		Bank:                 string(rc.Bank),
		RewardUnit:           string(rc.RewardUnit),
		BaseRate:             rc.BaseRate.String(),
		EffectiveRate:        rc.EffectiveRate.String(),
		AppliedBonusCategory: rc.AppliedBonusCategory,
		EstimatedRewardValue: rewardValueJSON(rc.EstimatedReward, rc.RewardUnit),
		EffectiveRateStr:     rc.EffectiveRateStr,
		Explanations:         rc.Explanations,
		Breakdown:            ToBreakdownResponse(&rc.Breakdown),
	}
}

// ToRecommendResponse converts a RecommendOutput to RecommendResponse.
func ToRecommendResponse(output *recommendation.RecommendOutput) RecommendResponse {
	response := RecommendResponse{
		Ranked: make([]RankedCardResponse, len(output.Ranked)),
	}
	for i, rc := range output.Ranked {
		response.Ranked[i] = ToRankedCardResponse(rc)
	}
	if output.Best != nil && len(response.Ranked) > 0 {
		response.Best = &response.Ranked[0]
	}
	return response
}

// ToEvaluatedCardResponse converts an EvaluatedCardOutput to its response DTO.
func ToEvaluatedCardResponse(ec *recommendation.EvaluatedCardOutput) EvaluatedCardResponse {
	response := EvaluatedCardResponse{
		CardID:           ec.CardID,
		CardName:         ec.CardName,
		Bank:             string(ec.Bank),
		RewardUnit:       string(ec.RewardUnit),
		RewardValue:      rewardValueJSON(ec.RewardValue, ec.RewardUnit),
		EffectiveRateStr: ec.EffectiveRateStr,
		Explanations:     ec.Explanations,
	}

	if cs := ec.CapState; cs != nil {
		response.CapState = &CapStateResponse{
			Channel:            cs.Channel,
			MonthlyCapSGD:      cs.MonthlyCapSGD.StringFixed(2),
			EligibleAmount:     cs.EligibleAmount.StringFixed(2),
			SpilloverAmount:    cs.SpilloverAmount.StringFixed(2),
			CapRemainingBefore: cs.CapRemainingBefore.StringFixed(2),
			CapRemainingAfter:  cs.CapRemainingAfter.StringFixed(2),
		}
	}

	if ts := ec.TierState; ts != nil {
		response.TierState = &TierStateResponse{
			TxnCountAfter:      ts.TxnCountAfter,
			MinTxnCount:        ts.MinTxnCount,
			SpendAfter:         ts.SpendAfter.StringFixed(2),
			TierBefore:         ts.TierBefore,
			TierAfter:          ts.TierAfter,
			QualifiedBefore:    ts.QualifiedBefore,
			QualifiedAfter:     ts.QualifiedAfter,
			MonthlyPayoutAfter: ts.MonthlyPayoutAfter.StringFixed(2),
			MonthlyDelta:       ts.MonthlyDelta.StringFixed(2),
		}
	}

	return response
}

// ToEvaluateSpendResponse converts an EvaluateSpendOutput to EvaluateSpendResponse.
func ToEvaluateSpendResponse(output *recommendation.EvaluateSpendOutput) EvaluateSpendResponse {
	response := EvaluateSpendResponse{
		Month:  output.Month,
		Ranked: make([]EvaluatedCardResponse, len(output.Ranked)),
	}
	for i, ec := range output.Ranked {
		response.Ranked[i] = ToEvaluatedCardResponse(ec)
	}
	if output.Best != nil && len(response.Ranked) > 0 {
		response.Best = &response.Ranked[0]
	}
	return response
}

// ToExplainRecommendationResponse converts an ExplainRecommendationOutput
// to its response DTO.
func ToExplainRecommendationResponse(output *recommendation.ExplainRecommendationOutput) ExplainRecommendationResponse {
	response := ExplainRecommendationResponse{
		Explanation:  output.Explanation,
		Model:        output.Model,
		IsFallback:   output.IsFallback,
		GenerationMS: output.GenerationMS,
		Ranked:       make([]RankedCardResponse, len(output.Ranked)),
	}
	for i, rc := range output.Ranked {
		response.Ranked[i] = ToRankedCardResponse(rc)
	}
	if output.Best != nil && len(response.Ranked) > 0 {
		response.Best = &response.Ranked[0]
	}
	return response
}
