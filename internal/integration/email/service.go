// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	domainerror "github.com/cardwise/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	subject := "Reset your password - Cardwise"

	templateData := map[string]interface{}{
		"user_name":  input.UserName,
		"reset_url":  input.ResetURL,
		"expires_in": input.ExpiresIn,
	}

	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue password reset email",
			err,
		)
	}

	return nil
}

// QueueRewardDigestEmail queues a monthly reward digest email.
func (s *Service) QueueRewardDigestEmail(ctx context.Context, input adapter.QueueRewardDigestInput) error {
	subject := fmt.Sprintf("Your card rewards for %s - Cardwise", input.Month)

	cards := make([]map[string]interface{}, len(input.Cards))
	for i, card := range input.Cards {
		cards[i] = map[string]interface{}{
			"card_name":    card.CardName,
			"bank":         card.Bank,
			"spend_sgd":    card.SpendSGD,
			"txn_count":    card.TxnCount,
			"reward_value": card.RewardValue,
			"reward_unit":  card.RewardUnit,
		}
	}

	templateData := map[string]interface{}{
		"user_name":      input.UserName,
		"month":          input.Month,
		"cards":          cards,
		"best_card_name": input.BestCardName,
		"total_spend":    input.TotalSpend,
		"wallet_url":     s.appBaseURL + "/wallet",
	}

	job := entity.NewEmailJob(
		entity.TemplateRewardDigest,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue reward digest email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
