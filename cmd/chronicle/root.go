package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chronicle",
	Short: "Chronicle - per-user action history service",
	Long: `Chronicle records user action events and serves their history.

It provides:
  - Per-user action recording with opaque JSON payloads
  - Time-windowed, paginated history queries, newest first
  - Ownership enforcement on the self-service endpoints
  - Retention deletion, on demand and on a cron schedule`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
