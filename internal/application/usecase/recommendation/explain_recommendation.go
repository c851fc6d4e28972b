// Package recommendation contains reward recommendation use cases.
package recommendation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
	"github.com/cardwise/backend/internal/domain/reward"
)

const (
	// explainTimeout bounds one generation attempt.
	explainTimeout = 5 * time.Second
	// explainRetries is the number of additional attempts after a failure.
	explainRetries = 1
)

// ExplainRecommendationInput represents the input for generating a natural
// language explanation of the best card for a spend.
type ExplainRecommendationInput struct {
	UserID     uuid.UUID
	Category   *string
	AmountSGD  decimal.Decimal
	Preference *string
}

// ExplainRecommendationOutput represents the output of an explanation.
type ExplainRecommendationOutput struct {
	Explanation  string
	Model        string
	IsFallback   bool
	GenerationMS int64
	Best         *RankedCardOutput
	Ranked       []*RankedCardOutput
}

// ExplainRecommendationUseCase wraps a computed ranking with an LLM-written
// explanation, falling back to a factual template when generation fails.
// Every generation, fallback included, leaves an audit record.
type ExplainRecommendationUseCase struct {
	recommend          *RecommendUseCase
	explanationService adapter.ExplanationService
	auditRepo          adapter.ExplanationAuditRepository
}

// NewExplainRecommendationUseCase creates a new ExplainRecommendationUseCase instance.
func NewExplainRecommendationUseCase(
	recommend *RecommendUseCase,
	explanationService adapter.ExplanationService,
	auditRepo adapter.ExplanationAuditRepository,
) *ExplainRecommendationUseCase {
	return &ExplainRecommendationUseCase{
		recommend:          recommend,
		explanationService: explanationService,
		auditRepo:          auditRepo,
	}
}

// Execute performs the explanation generation.
func (uc *ExplainRecommendationUseCase) Execute(ctx context.Context, input ExplainRecommendationInput) (*ExplainRecommendationOutput, error) {
	// Explaining needs a concrete purchase, so the amount is required here
	// even though ranking itself accepts browsing without one
	if !input.AmountSGD.IsPositive() {
		return nil, domainerror.NewRecommendationError(
			domainerror.ErrCodeInvalidSpendAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidSpendAmount,
		)
	}

	recommendation, err := uc.recommend.Execute(ctx, RecommendInput{
		UserID:     input.UserID,
		Category:   input.Category,
		AmountSGD:  &input.AmountSGD,
		Preference: input.Preference,
	})
	if err != nil {
		return nil, err
	}
	if recommendation.Best == nil {
		return nil, domainerror.NewExplanationError(
			domainerror.ErrCodeExplanationUnavailable,
			"no eligible cards to explain",
			domainerror.ErrExplanationUnavailable,
		)
	}

	best := recommendation.Best
	categoryLabel := "general"
	if input.Category != nil && *input.Category != "" {
		categoryLabel = *input.Category
	}

	prompt := buildExplanationPrompt(best, alternativesOf(recommendation.Ranked), categoryLabel)
	promptHash := hashPrompt(prompt)

	start := time.Now()
	text, model, isFallback := uc.tryGenerate(ctx, prompt, best, categoryLabel)
	generationMS := time.Since(start).Milliseconds()

	audit := entity.NewExplanationAudit(
		input.UserID,
		best.CardID,
		model,
		promptHash,
		generationMS,
		isFallback,
		[]string{text},
	)
	if err := uc.auditRepo.Create(ctx, audit); err != nil {
		slog.Error("failed to write explanation audit",
			"user_id", input.UserID,
			"card_id", best.CardID,
			"error", err,
		)
	}

	return &ExplainRecommendationOutput{
		Explanation:  text,
		Model:        model,
		IsFallback:   isFallback,
		GenerationMS: generationMS,
		Best:         best,
		Ranked:       recommendation.Ranked,
	}, nil
}

// tryGenerate attempts LLM generation with a per-attempt deadline and one
// retry, degrading to the template fallback. The returned model label
// records which path produced the text.
func (uc *ExplainRecommendationUseCase) tryGenerate(ctx context.Context, prompt string, best *RankedCardOutput, categoryLabel string) (text, model string, isFallback bool) {
	if !uc.explanationService.IsAvailable() {
		slog.Debug("explanation service not available, using template fallback")
		return buildTemplateFallback(best, categoryLabel), "template", true
	}

	var lastErr error
	for attempt := 0; attempt <= explainRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, explainTimeout)
		result, err := uc.explanationService.Generate(attemptCtx, prompt)
		cancel()

		if err == nil {
			generated := strings.TrimSpace(result.Text)
			if generated != "" {
				return generated, result.Model, false
			}
			err = domainerror.ErrExplanationEmpty
		}

		lastErr = err
		slog.Warn("explanation generation attempt failed",
			"attempt", attempt+1,
			"error", err,
		)
	}

	model = "template_error"
	if errors.Is(lastErr, context.DeadlineExceeded) {
		model = "template_timeout"
	}
	return buildTemplateFallback(best, categoryLabel), model, true
}

// buildExplanationPrompt constructs the grounded prompt: lead with the
// question, list the numerical ground truth, then the top alternatives, and
// ask for brevity. Everything numeric comes from the computed breakdown so
// the model has nothing to invent.
func buildExplanationPrompt(best *RankedCardOutput, alternatives []*RankedCardOutput, categoryLabel string) string {
	b := best.Breakdown

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a Singapore credit card advisor. Explain why the %s %s is the best choice for a $%.2f %s purchase.\n",
		best.Bank, best.CardName, b.AmountSGD.InexactFloat64(), categoryLabel)
	sb.WriteString("\nGround Truth Facts:\n")
	fmt.Fprintf(&sb, "- Card: %s %s\n", best.Bank, best.CardName)
	fmt.Fprintf(&sb, "- Benefit Type: %s\n", best.RewardUnit)
	fmt.Fprintf(&sb, "- Category: %s\n", categoryLabel)
	fmt.Fprintf(&sb, "- Effective Rate: %s", promptRate(b.EffectiveRate, best.RewardUnit))

	if b.RateSource == reward.RateSourceBonus {
		fmt.Fprintf(&sb, "\n- Base Rate: %s", promptRate(b.BaseRate, best.RewardUnit))
		fmt.Fprintf(&sb, "\n- Bonus Rate: %s (bonus category applied)", promptRate(b.EffectiveRate, best.RewardUnit))
	}
	if b.CapInDollar != nil && *b.CapInDollar < reward.UncappedSentinel {
		fmt.Fprintf(&sb, "\n- Monthly Cap: SGD %d", *b.CapInDollar)
	}
	if b.RewardAfterCap.IsPositive() {
		fmt.Fprintf(&sb, "\n- Total Reward: %s", promptReward(b.RewardAfterCap, best.RewardUnit))
	}

	if len(alternatives) > 0 {
		sb.WriteString("\n\nAlternative Considered:")
		for _, alt := range alternatives {
			fmt.Fprintf(&sb, "\n- %s %s: %s = %s",
				alt.Bank, alt.CardName,
				promptRate(alt.EffectiveRate, alt.RewardUnit),
				promptReward(alt.EstimatedReward, alt.RewardUnit))
		}
	}

	sb.WriteString("\n\nProvide a concise explanation (2-3 sentences) in simple English suitable for general consumers. Focus on the value difference.")
	return sb.String()
}

// buildTemplateFallback renders the factual template used when the LLM is
// unavailable or fails. The uncapped sentinel never surfaces as a cap.
func buildTemplateFallback(best *RankedCardOutput, categoryLabel string) string {
	b := best.Breakdown
	amount := b.AmountSGD.InexactFloat64()

	var explanation string
	if b.RateSource == reward.RateSourceBonus {
		explanation = fmt.Sprintf(
			"The %s %s offers %s on %s purchases (bonus category). For this $%.2f transaction, you'll earn %s.",
			best.Bank, best.CardName,
			promptRate(b.EffectiveRate, best.RewardUnit),
			categoryLabel, amount,
			promptReward(b.RewardAfterCap, best.RewardUnit),
		)
	} else {
		explanation = fmt.Sprintf(
			"The %s %s provides %s on all purchases. For this $%.2f transaction, you'll receive %s.",
			best.Bank, best.CardName,
			promptRate(b.EffectiveRate, best.RewardUnit),
			amount,
			promptReward(b.RewardAfterCap, best.RewardUnit),
		)
	}

	if b.CapInDollar != nil && *b.CapInDollar < reward.UncappedSentinel {
		explanation += fmt.Sprintf(" (Subject to monthly cap of SGD %d)", *b.CapInDollar)
	}

	return explanation
}

// promptRate renders a rate in its unit-appropriate textual form: a
// percentage with its fraction for cashback, miles-per-dollar for miles.
func promptRate(rate decimal.Decimal, unit reward.Unit) string {
	if unit == reward.UnitMiles {
		return reward.FormatRate(rate, unit)
	}
	pct := reward.RatePercent(rate).InexactFloat64()
	return fmt.Sprintf("%.2f%% (%.4f)", pct, pct/100)
}

// promptReward renders a computed reward in its unit-appropriate form.
func promptReward(v decimal.Decimal, unit reward.Unit) string {
	if unit == reward.UnitMiles {
		return fmt.Sprintf("%s miles", reward.FormatRewardValue(v, unit))
	}
	return fmt.Sprintf("SGD %s", reward.FormatRewardValue(v, unit))
}

// alternativesOf returns the runner-up cards shown in the prompt, at most
// two for brevity.
func alternativesOf(ranked []*RankedCardOutput) []*RankedCardOutput {
	if len(ranked) <= 1 {
		return nil
	}
	alternatives := ranked[1:]
	if len(alternatives) > 2 {
		alternatives = alternatives[:2]
	}
	return alternatives
}

// hashPrompt returns the short audit hash of a prompt.
func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])[:16]
}
