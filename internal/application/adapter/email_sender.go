// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePasswordResetEmail queues a password reset email.
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error

	// QueueRewardDigestEmail queues a monthly reward digest email.
	QueueRewardDigestEmail(ctx context.Context, input QueueRewardDigestInput) error
}

// QueuePasswordResetInput represents the input for queueing a password reset email.
type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// DigestCardSummary is one card's month summary inside a digest email.
type DigestCardSummary struct {
	CardName    string
	Bank        string
	SpendSGD    string
	TxnCount    int
	RewardValue string
	RewardUnit  string
}

// QueueRewardDigestInput represents the input for queueing a reward digest email.
type QueueRewardDigestInput struct {
	UserID    string
	UserEmail string
	UserName  string
	Month     string
	Cards     []DigestCardSummary
	// BestCardName is the card that earned the most this month, empty when
	// the user logged no spend.
	BestCardName string
	TotalSpend   string
}
