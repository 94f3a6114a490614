package usecase

import (
	"context"
	"time"

	"NewsSummary/internal/ports"
)

// DayJob runs one scheduled summarization pass; trigger is the tick time.
type DayJob func(ctx context.Context, trigger time.Time)

// Scheduler wires the interval driver with the daemon-mode day job.
type Scheduler struct {
	driver ports.Scheduler
	job    DayJob
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, job DayJob) *Scheduler {
	return &Scheduler{driver: driver, job: job}
}

// Start registers the job with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.job == nil {
		return nil
	}

	return s.driver.Start(ctx, func(trigger time.Time) {
		s.job(ctx, trigger)
	})
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
