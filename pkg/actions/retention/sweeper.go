package retention

import (
	"context"
	"log/slog"
	"time"

	"portal-hq/chronicle/pkg/actions"
)

// Config contains configuration for the retention sweeper.
type Config struct {
	// SaveIntervalHours is the retention window in hours. Records older
	// than this are removed by the scheduled sweep.
	// Default: 72
	SaveIntervalHours int

	// SweepSchedule is a cron expression for scheduling the global sweep.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	SweepSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		SaveIntervalHours: 72,
		SweepSchedule:     "0 3 * * *",
	}
}

// Sweeper deletes action records older than a cutoff, either on demand per
// user or globally on a recurring schedule. All cutoffs are computed in
// UTC. Sweeps are idempotent: repeating one with the same or a later
// cutoff deletes nothing further.
type Sweeper struct {
	storage   actions.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
}

// NewSweeper creates a new retention sweeper.
func NewSweeper(storage actions.Storage, config *Config) *Sweeper {
	if config == nil {
		config = DefaultConfig()
	}

	sweeper := &Sweeper{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "actions.retention"),
		now:     time.Now,
	}

	sweeper.scheduler = NewScheduler(sweeper)

	return sweeper
}

// DeleteForUser removes the user's records older than now − afterHours.
// Returns the number of records deleted.
func (s *Sweeper) DeleteForUser(ctx context.Context, userID string, afterHours int) (int64, error) {
	cutoff := s.cutoff(afterHours)

	deleted, err := s.storage.DeleteBefore(ctx, userID, cutoff)
	if err != nil {
		return 0, actions.NewRetentionError(afterHours, err)
	}

	s.logger.Info("user records deleted",
		"user_id", userID,
		"after_hours", afterHours,
		"deleted_count", deleted,
	)

	return deleted, nil
}

// SweepAll removes records older than now − afterHours across all users.
// Returns the number of records deleted.
func (s *Sweeper) SweepAll(ctx context.Context, afterHours int) (int64, error) {
	cutoff := s.cutoff(afterHours)

	deleted, err := s.storage.DeleteBefore(ctx, "", cutoff)
	if err != nil {
		return 0, actions.NewRetentionError(afterHours, err)
	}

	if deleted == 0 {
		s.logger.Debug("sweep found nothing to delete", "after_hours", afterHours)
	} else {
		s.logger.Info("sweep completed",
			"after_hours", afterHours,
			"deleted_count", deleted,
		)
	}

	return deleted, nil
}

// cutoff computes the deletion threshold in UTC.
func (s *Sweeper) cutoff(afterHours int) time.Time {
	return s.now().UTC().Add(-time.Duration(afterHours) * time.Hour)
}

// Start starts the automatic sweep scheduler.
// Call this when starting the application.
func (s *Sweeper) Start(ctx context.Context) error {
	return s.scheduler.Start(ctx)
}

// Stop stops the automatic sweep scheduler.
// Call this during graceful shutdown.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}

// NextSweep returns the time of the next scheduled sweep.
func (s *Sweeper) NextSweep() *time.Time {
	return s.scheduler.NextRun()
}

// Scheduler exposes the underlying scheduler, e.g. to attach a sweep
// observer before Start.
func (s *Sweeper) Scheduler() *Scheduler {
	return s.scheduler
}
