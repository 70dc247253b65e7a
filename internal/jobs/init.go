package jobs

import (
	"context"
	"time"

	"khola-chithi/engine/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(ctx context.Context, payoutSvc *services.PayoutService) *PayoutRefreshJob {
	// Refresh the running month's payout rows daily
	payoutJob := NewPayoutRefreshJob(payoutSvc)

	go payoutJob.RunScheduled(ctx, 24*time.Hour)

	return payoutJob
}
