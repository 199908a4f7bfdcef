package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portal-hq/chronicle/pkg/actions"
	"portal-hq/chronicle/pkg/actions/query"
	"portal-hq/chronicle/pkg/actions/retention"
	"portal-hq/chronicle/pkg/actions/storage"
	"portal-hq/chronicle/pkg/auth"
	"portal-hq/chronicle/pkg/config"
	"portal-hq/chronicle/pkg/server"
	"portal-hq/chronicle/pkg/telemetry/logging"
	"portal-hq/chronicle/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Chronicle server",
	Long: `Start the Chronicle server with the specified configuration.

The server listens on the configured address, serves the action history
endpoints, and runs the scheduled retention sweep in the background.

Examples:
  # Start with default config
  chronicle run

  # Start with custom config
  chronicle run --config /etc/chronicle/config.yaml

  # Override listen address
  chronicle run --listen 0.0.0.0:9080

  # Validate config without starting the server
  chronicle run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Chronicle v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	store, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	fmt.Printf("✓ Storage initialized (%s)\n", cfg.Storage.Backend)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	engine := query.NewEngine(store, &query.Config{
		DefaultPageSize: cfg.History.DefaultPageSize,
		MaxPageSize:     cfg.History.MaxPageSize,
	})

	sweeper := retention.NewSweeper(store, &retention.Config{
		SaveIntervalHours: cfg.History.SaveIntervalHours,
		SweepSchedule:     cfg.History.SweepSchedule,
	})
	sweeper.Scheduler().OnSweep(collector.RecordSweep)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start retention scheduler: %w", err)
	}
	defer sweeper.Stop()
	if next := sweeper.NextSweep(); next != nil {
		fmt.Printf("✓ Retention sweep scheduled (next: %s)\n", next.Format("2006-01-02 15:04:05 MST"))
	}

	srv := server.NewServer(cfg, store, engine, sweeper, auth.NewGuard(), collector)

	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	// Blocks until a signal or listener failure
	return srv.Start(ctx)
}

// loadConfig loads the configured file with environment overrides. When the
// default config file is absent, built-in defaults apply instead. An
// explicitly passed path that does not exist is an error.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if rootCmd.PersistentFlags().Changed("config") {
			return nil, fmt.Errorf("config file %q not found", cfgFile)
		}
		cfg := config.DefaultConfig()
		return cfg, nil
	}

	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// buildStorage constructs the configured storage backend.
func buildStorage(cfg *config.Config) (actions.Storage, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:         cfg.Storage.SQLite.Path,
			MaxOpenConns: cfg.Storage.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Storage.SQLite.MaxIdleConns,
			WALMode:      cfg.Storage.SQLite.WALMode,
			BusyTimeout:  cfg.Storage.SQLite.BusyTimeout,
		})
	case "memory":
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}
