// Package scheduler runs the periodic jobs that ride alongside the email
// worker.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardwise/backend/internal/application/usecase/digest"
	"github.com/cardwise/backend/internal/domain/reward"
)

// DigestScheduler fires the monthly reward digest once per calendar month
// rollover. It checks on a coarse interval; the digest use case itself is
// keyed by month, so a late tick still targets the right period.
type DigestScheduler struct {
	buildDigest   *digest.BuildMonthlyDigestUseCase
	checkInterval time.Duration
	lastRunMonth  reward.MonthKey
}

// NewDigestScheduler creates a new DigestScheduler instance.
func NewDigestScheduler(buildDigest *digest.BuildMonthlyDigestUseCase, checkInterval time.Duration) *DigestScheduler {
	if checkInterval <= 0 {
		checkInterval = time.Hour
	}
	return &DigestScheduler{
		buildDigest:   buildDigest,
		checkInterval: checkInterval,
	}
}

// Start begins the scheduler loop. It blocks until the context is cancelled.
// The month active at startup is treated as already digested, so process
// restarts do not queue duplicate emails.
func (s *DigestScheduler) Start(ctx context.Context) {
	s.lastRunMonth = previousMonth(time.Now().UTC())

	slog.Info("Digest scheduler started",
		"check_interval", s.checkInterval,
		"baseline_month", s.lastRunMonth,
	)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Digest scheduler shutting down")
			return
		case <-ticker.C:
			s.runIfDue(ctx)
		}
	}
}

// runIfDue runs the digest when the calendar has moved to a month that has
// not been digested yet.
func (s *DigestScheduler) runIfDue(ctx context.Context) {
	month := previousMonth(time.Now().UTC())
	if month == s.lastRunMonth {
		return
	}

	slog.Info("Month rollover detected, running digest", "month", month)
	output, err := s.buildDigest.Execute(ctx, digest.BuildMonthlyDigestInput{Month: string(month)})
	if err != nil {
		// Leave lastRunMonth untouched so the next tick retries
		slog.Error("Digest run failed", "month", month, "error", err)
		return
	}

	s.lastRunMonth = month
	slog.Info("Digest run finished",
		"month", output.Month,
		"users", output.UsersProcessed,
		"queued", output.EmailsQueued,
	)
}

// RunNow triggers one digest run for the previous month regardless of the
// rollover state. Used by tests.
func (s *DigestScheduler) RunNow(ctx context.Context) (*digest.BuildMonthlyDigestOutput, error) {
	return s.buildDigest.Execute(ctx, digest.BuildMonthlyDigestInput{})
}

// previousMonth returns the month key of the calendar month before t.
func previousMonth(t time.Time) reward.MonthKey {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return reward.MonthKeyOf(firstOfMonth.AddDate(0, 0, -1))
}
