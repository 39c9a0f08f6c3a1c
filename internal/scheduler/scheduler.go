// Package scheduler fires a unit of work on a fixed cadence.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/padmin-io/newsboard/internal/logger"
)

// Runner is a unit of work the scheduler triggers each tick.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler invokes its job on a fixed interval until the context is
// cancelled. Each tick runs in its own goroutine: a slow or failed run
// never blocks or skips the next tick, and overlapping runs are allowed.
type Scheduler struct {
	interval time.Duration
	job      Runner
	log      logger.Logger
}

// New builds a scheduler for the given job and interval.
func New(interval time.Duration, job Runner, log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scheduler{interval: interval, job: job, log: log}
}

// Start blocks, firing the job once per tick, until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.InfoObj("scheduler started", "scheduler_start", map[string]any{
		"interval": s.interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("scheduler stopped", "scheduler_stop", nil)
			return
		case <-ticker.C:
			go s.runOnce(ctx)
		}
	}
}

// runOnce executes a single run, containing both errors and panics so the
// loop keeps ticking.
func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if p := recover(); p != nil {
			s.log.ErrorObj("run panicked", "scheduler_run_panic", map[string]any{
				"panic": fmt.Sprint(p),
			})
		}
	}()

	s.log.DebugObj("run triggered", "scheduler_tick", nil)

	if err := s.job.Run(ctx); err != nil {
		s.log.ErrorObj("run failed", "scheduler_run_error", map[string]any{
			"error": err.Error(),
		})
	}
}
