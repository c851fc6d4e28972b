// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cardwise/backend/internal/application/adapter"
	"github.com/cardwise/backend/internal/domain/entity"
	"github.com/cardwise/backend/internal/integration/email/templates"
)

// fakeQueue keeps email jobs in memory with the same visibility rules
// as the database queue: pending status and a due schedule.
type fakeQueue struct {
	jobs []*entity.EmailJob
}

func (f *fakeQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	now := time.Now().UTC()
	var due []*entity.EmailJob
	for _, job := range f.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) {
			due = append(due, job)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledAt.Before(due[j].ScheduledAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (f *fakeQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	for i, existing := range f.jobs {
		if existing.ID == job.ID {
			f.jobs[i] = job
			return nil
		}
	}
	return errors.New("job not found")
}

func (f *fakeQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	for _, job := range f.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, errors.New("job not found")
}

func (f *fakeQueue) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, job := range f.jobs {
		if job.RecipientEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

var _ adapter.EmailQueueRepository = (*fakeQueue)(nil)

type workerFixture struct {
	queue  *fakeQueue
	sender *MockEmailSender
	worker *Worker
}

func newWorkerFixture(t *testing.T) *workerFixture {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	worker := NewWorker(queue, sender, renderer, WorkerConfig{
		PollInterval: time.Hour,
		BatchSize:    10,
	})
	return &workerFixture{queue: queue, sender: sender, worker: worker}
}

func queuedResetJob() *entity.EmailJob {
	return entity.NewEmailJob(
		entity.TemplatePasswordReset,
		"jamie@example.com",
		"Jamie",
		"Reset your Cardwise password",
		map[string]interface{}{
			"user_name":  "Jamie",
			"reset_url":  "https://app.cardwise.sg/reset-password?token=abc123",
			"expires_in": "1 hour",
		},
	)
}

func TestWorkerSendsPendingJob(t *testing.T) {
	f := newWorkerFixture(t)
	job := queuedResetJob()
	_ = f.queue.Create(context.Background(), job)

	f.worker.ProcessNow(context.Background())

	if job.Status != entity.EmailStatusSent {
		t.Fatalf("status = %s, want %s", job.Status, entity.EmailStatusSent)
	}
	if job.ResendID == "" {
		t.Error("expected a provider message id on the sent job")
	}
	if job.ProcessedAt == nil {
		t.Error("expected ProcessedAt to be set")
	}

	if len(f.sender.SentEmails) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.sender.SentEmails))
	}
	sent := f.sender.SentEmails[0]
	if sent.To != "jamie@example.com" {
		t.Errorf("To = %q", sent.To)
	}
	if !strings.Contains(sent.Text, "https://app.cardwise.sg/reset-password?token=abc123") {
		t.Error("rendered text should contain the reset URL")
	}
	if !strings.Contains(sent.HTML, "Jamie") {
		t.Error("rendered HTML should address the recipient by name")
	}
}

func TestWorkerRendersDigestCards(t *testing.T) {
	f := newWorkerFixture(t)
	job := entity.NewEmailJob(
		entity.TemplateRewardDigest,
		"jamie@example.com",
		"Jamie",
		"Your March rewards",
		map[string]interface{}{
			"user_name":   "Jamie",
			"month":       "March 2026",
			"total_spend": "1250.00",
			"wallet_url":  "https://app.cardwise.sg/wallet",
			"cards": []interface{}{
				map[string]interface{}{
					"card_name":    "Live Fresh Card",
					"bank":         "DBS",
					"spend_sgd":    "800.00",
					"txn_count":    float64(12),
					"reward_value": "40.00",
					"reward_unit":  "SGD",
				},
			},
		},
	)
	_ = f.queue.Create(context.Background(), job)

	f.worker.ProcessNow(context.Background())

	if job.Status != entity.EmailStatusSent {
		t.Fatalf("status = %s, want %s", job.Status, entity.EmailStatusSent)
	}
	text := f.sender.SentEmails[0].Text
	if !strings.Contains(text, "Live Fresh Card (DBS)") {
		t.Errorf("digest text missing card line:\n%s", text)
	}
	if !strings.Contains(text, "12 txns") {
		t.Errorf("digest text missing txn count:\n%s", text)
	}
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	f := newWorkerFixture(t)
	job := queuedResetJob()
	_ = f.queue.Create(context.Background(), job)
	f.sender.SetFailure(errors.New("503 from provider"), false)

	f.worker.ProcessNow(context.Background())

	if job.Status != entity.EmailStatusPending {
		t.Fatalf("status = %s, want pending for retry", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", job.Attempts)
	}
	if !job.ScheduledAt.After(time.Now().UTC()) {
		t.Error("retry should be scheduled in the future")
	}

	// The retry is not due yet, so a second pass sends nothing
	f.sender.ClearFailure()
	f.worker.ProcessNow(context.Background())
	if len(f.sender.SentEmails) != 0 {
		t.Errorf("sent %d emails before the retry was due", len(f.sender.SentEmails))
	}
}

func TestWorkerPermanentFailureStopsRetries(t *testing.T) {
	f := newWorkerFixture(t)
	job := queuedResetJob()
	_ = f.queue.Create(context.Background(), job)
	f.sender.SetFailure(errors.New("422 invalid recipient"), true)

	f.worker.ProcessNow(context.Background())

	if job.Status != entity.EmailStatusFailed {
		t.Fatalf("status = %s, want failed", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", job.Attempts)
	}
	if job.ProcessedAt == nil {
		t.Error("failed job should record when it finished")
	}
}

func TestWorkerUnknownTemplateFailsPermanently(t *testing.T) {
	f := newWorkerFixture(t)
	job := entity.NewEmailJob(
		"carrier_pigeon",
		"jamie@example.com",
		"Jamie",
		"Subject",
		map[string]interface{}{},
	)
	_ = f.queue.Create(context.Background(), job)

	f.worker.ProcessNow(context.Background())

	if job.Status != entity.EmailStatusFailed {
		t.Fatalf("status = %s, want failed", job.Status)
	}
	if len(f.sender.SentEmails) != 0 {
		t.Error("nothing should be sent for an unknown template")
	}
}

func TestWorkerExhaustsRetries(t *testing.T) {
	f := newWorkerFixture(t)
	job := queuedResetJob()
	_ = f.queue.Create(context.Background(), job)
	f.sender.SetFailure(errors.New("timeout"), false)

	// Force each retry due immediately
	for i := 0; i < job.MaxAttempts; i++ {
		job.Status = entity.EmailStatusPending
		job.ScheduledAt = time.Now().UTC().Add(-time.Second)
		f.worker.ProcessNow(context.Background())
		if job.Status == entity.EmailStatusFailed {
			break
		}
	}

	if job.Status != entity.EmailStatusFailed {
		t.Fatalf("status = %s after %d attempts, want failed", job.Status, job.Attempts)
	}
	if job.Attempts != job.MaxAttempts {
		t.Errorf("attempts = %d, want %d", job.Attempts, job.MaxAttempts)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"nil", nil, false},
		{"unauthorized", errors.New("401 unauthorized"), true},
		{"validation", errors.New("validation failed: bad recipient"), true},
		{"rate limited", errors.New("429 too many requests"), false},
		{"server error", errors.New("500 internal server error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.permanent {
				t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.permanent)
			}
		})
	}
}
