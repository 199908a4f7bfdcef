package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"portal-hq/chronicle/pkg/actions/retention"
	"portal-hq/chronicle/pkg/telemetry/logging"
)

var sweepFlags struct {
	afterHours int
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one retention sweep and exit",
	Long: `Delete all action records older than the retention horizon, across all
users, then exit. Without --after-hours the configured save interval is used.

Examples:
  # Sweep with the configured retention horizon
  chronicle sweep

  # Sweep everything older than 24 hours
  chronicle sweep --after-hours 24`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().IntVar(&sweepFlags.afterHours, "after-hours", 0, "delete records older than this many hours (default: configured save interval)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return err
	}

	store, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	afterHours := sweepFlags.afterHours
	if afterHours == 0 {
		afterHours = cfg.History.SaveIntervalHours
	}

	sweeper := retention.NewSweeper(store, &retention.Config{
		SaveIntervalHours: cfg.History.SaveIntervalHours,
		SweepSchedule:     cfg.History.SweepSchedule,
	})

	deleted, err := sweeper.SweepAll(context.Background(), afterHours)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Printf("✓ Sweep complete: %d records deleted (older than %d hours)\n", deleted, afterHours)
	return nil
}
