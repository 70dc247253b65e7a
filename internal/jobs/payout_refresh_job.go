package jobs

import (
	"context"
	"errors"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/services"
)

// PayoutRefreshJob keeps the current month's moderator payout rows in step
// with accumulating points and revenue. Each run is a full recompute; rows
// are replaced, never accumulated, so the job is safe to rerun.
type PayoutRefreshJob struct {
	payouts *services.PayoutService
	now     func() time.Time
}

func NewPayoutRefreshJob(payouts *services.PayoutService) *PayoutRefreshJob {
	return &PayoutRefreshJob{
		payouts: payouts,
		now:     time.Now,
	}
}

// Run recomputes the current month's payouts once.
func (j *PayoutRefreshJob) Run(ctx context.Context) error {
	month := j.now().Format("2006-01")

	report, err := j.payouts.CalculateAndSetModeratorPayouts(ctx, month)
	if err != nil {
		if errors.Is(err, constants.ErrNoActivity) {
			logging.Debug("Payout refresh skipped, no activity", "month", month)
			return nil
		}
		return err
	}

	logging.Info("Payout refresh completed",
		"month", report.Month,
		"pool", report.Pool,
		"participants", report.Participants,
	)
	return nil
}

// RunScheduled runs the payout refresh on a schedule
func (j *PayoutRefreshJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Error("Payout refresh failed in initial run", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Payout refresh failed in scheduled run", "error", err.Error())
			}
		case <-ctx.Done():
			logging.Info("Payout refresh job shutting down")
			return
		}
	}
}
