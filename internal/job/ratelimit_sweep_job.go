package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hitkalariya/portfolio-api/internal/ratelimit"
)

// RateLimitSweepJob drops expired rate-limit entries. This only bounds
// memory: the limiter already treats stale entries as fresh windows, so
// correctness never depends on the sweep running.
type RateLimitSweepJob struct {
	limiters []*ratelimit.Limiter
}

func NewRateLimitSweepJob(limiters ...*ratelimit.Limiter) *RateLimitSweepJob {
	return &RateLimitSweepJob{limiters: limiters}
}

func (j *RateLimitSweepJob) Name() string {
	return "ratelimit_sweep"
}

func (j *RateLimitSweepJob) Run(ctx context.Context) error {
	removed := 0
	for _, limiter := range j.limiters {
		removed += limiter.SweepExpired()
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Debug("swept rate limit entries", zap.Int("removed", removed))
	}
	return nil
}
