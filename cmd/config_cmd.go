// Package cmd implements the pflow CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/pflow/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Seed data:      %v\n", cfg.General.Seed)
	fmt.Printf("    Report latency: %s\n", cfg.ReportLatency().Round(time.Millisecond))
	if cfg.General.DateOverride != "" {
		fmt.Printf("    Date override:  %s\n", cfg.General.DateOverride)
	}
	if v := os.Getenv(config.TodayEnv); v != "" {
		fmt.Printf("    $%s:   %s\n", config.TodayEnv, v)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Session]")
	if cfg.Session.Authenticated {
		fmt.Println("    Signed in")
	} else {
		fmt.Println("    Signed out")
	}
	fmt.Println()

	fmt.Println("  Run `pflow setup` to reconfigure.")
	return nil
}
