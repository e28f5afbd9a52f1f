package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"riverdeals.backend/pkg/logger"
	"riverdeals.backend/pkg/metrics"
)

type expiryRepository interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// DealExpiryJob periodically deactivates deals whose end date has passed.
// Reads already exclude expired deals by predicate, so the job only keeps
// the stored is_active flag in sync for reporting.
type DealExpiryJob struct {
	repo     expiryRepository
	interval time.Duration
	stop     chan struct{}
}

func NewDealExpiryJob(repo expiryRepository, interval time.Duration) *DealExpiryJob {
	return &DealExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *DealExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting deal expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "deal expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "deal expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *DealExpiryJob) Stop() {
	close(j.stop)
}

func (j *DealExpiryJob) sweep(ctx context.Context) {
	count, err := j.repo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		logger.Error(ctx, "deal expiry sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		metrics.DealsExpired.Add(float64(count))
		logger.Info(ctx, "deactivated expired deals", zap.Int64("count", count))
	}
}
