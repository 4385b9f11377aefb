package poller

import (
	"context"
	"time"

	"github.com/rcarvalho-pb/payment_notifier-go/internal/infra/logging"
)

type RecentPaymentsChecker interface {
	Check(ctx context.Context) Result
}

// Scheduler runs the checker on a fixed interval. Ticks are handled one at a
// time, so runs never overlap within a process.
type Scheduler struct {
	Checker  RecentPaymentsChecker
	Interval time.Duration
	Logger   logging.Logger
}

func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Logger.Info("scheduler started", map[string]any{"interval": s.Interval.String()})

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("scheduler stopped", nil)
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) Result {
	res := s.Checker.Check(ctx)
	s.Logger.Info("recent payments result", res.Fields())
	return res
}
