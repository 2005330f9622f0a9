package product

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher runs a reconciliation pass.
type Refresher interface {
	AutoRefreshProducts(ctx context.Context) (*RefreshResult, error)
}

// Scheduler triggers a refresh on a fixed interval.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	logger    *zap.Logger
}

// NewScheduler creates a scheduler. A non-positive interval makes Start return immediately.
func NewScheduler(refresher Refresher, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{refresher: refresher, interval: interval, logger: logger}
}

// Start blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Refresh scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping refresh scheduler")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	result, err := s.refresher.AutoRefreshProducts(ctx)
	if err != nil {
		s.logger.Error("Scheduled refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("Scheduled refresh finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", len(result.Skipped)),
	)
}
