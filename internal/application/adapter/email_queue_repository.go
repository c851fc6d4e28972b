// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/domain/entity"
)

// EmailQueueRepository persists the outbound email queue. Queueing an
// email and sending it are separate steps: use cases Create jobs, the
// background worker picks them up and records the outcome.
type EmailQueueRepository interface {
	// Create adds a new email job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns up to limit due jobs, oldest schedule
	// first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update saves changes to an email job.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// GetByRecipient retrieves every job addressed to an email address.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// DeleteOldSentJobs prunes sent jobs past the retention window and
	// reports how many rows went away.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
