package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the global sweep on a recurring schedule given as a cron
// expression. The scheduled sweep uses the configured save interval as its
// cutoff.
type Scheduler struct {
	sweeper *Sweeper
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool

	// onSweep, if set, observes the outcome of each scheduled sweep.
	// Used by the metrics layer.
	onSweep func(deleted int64, err error)
}

// NewScheduler creates a new retention scheduler.
func NewScheduler(sweeper *Sweeper) *Scheduler {
	return &Scheduler{
		sweeper: sweeper,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "actions.scheduler"),
	}
}

// OnSweep registers an observer for scheduled sweep outcomes. Must be
// called before Start.
func (s *Scheduler) OnSweep(fn func(deleted int64, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSweep = fn
}

// Start begins scheduled sweeping based on the configured cron expression.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
//   - "0 0 * * 0"    - Weekly on Sunday at midnight
//
// If SweepSchedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sweeper.config.SweepSchedule == "" {
		s.logger.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	// Validate cron expression
	_, err := cron.ParseStandard(s.sweeper.config.SweepSchedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w",
			s.sweeper.config.SweepSchedule, err)
	}

	_, err = s.cron.AddFunc(s.sweeper.config.SweepSchedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("retention scheduler started",
		"schedule", s.sweeper.config.SweepSchedule,
		"save_interval_hours", s.sweeper.config.SaveIntervalHours,
	)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSweep executes one sweep cycle. Failures are logged and reported to
// the observer; they never propagate.
func (s *Scheduler) runSweep(ctx context.Context) {
	s.logger.Info("starting scheduled sweep")

	deleted, err := s.sweeper.SweepAll(ctx, s.sweeper.config.SaveIntervalHours)
	if s.onSweep != nil {
		s.onSweep(deleted, err)
	}
	if err != nil {
		s.logger.Error("scheduled sweep failed", "error", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("scheduled sweep completed", "deleted_count", deleted)
	} else {
		s.logger.Debug("scheduled sweep completed, no records deleted")
	}
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("retention scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sweep time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
