// ABOUTME: Root Cobra command for trainer CLI.
// ABOUTME: Opens the configured key-value store and wires the stores together.
package main

import (
	"fmt"

	"github.com/harperreed/trainer/internal/config"
	"github.com/harperreed/trainer/internal/kv"
	"github.com/harperreed/trainer/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	store     kv.Store
	weekStore *storage.WeeklyStore
	repo      *storage.ActivityRepository
	typeStore *storage.TypeStore
	codec     *storage.ExportImport
)

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Personal activity tracker",
	Long: `Trainer is a CLI tool for logging activities against daily and weekly goals.

QUICK START:

  $ trainer type add pushups --daily 50 --benefit Positive
  $ trainer add pushups 30                  # Log 30 pushups now
  $ trainer add pushups 20 --at "2026-08-28 07:00"
  $ trainer list                            # Recent activity log
  $ trainer summary --duration week         # Progress against goals

DATA STORAGE:

  Activities are stored in week-sized buckets keyed by ISO week
  (activities-YYYY.WW), so range queries only read the weeks they touch.
  Data written by versions that kept one flat list is migrated
  automatically on first use.

BACKENDS:

  badger   Embedded local database (default), at ~/.local/share/trainer
  charm    Charm Cloud synced storage, E2E encrypted with your SSH key
  memory   Throwaway in-memory store

  Select with "backend" in ~/.config/trainer/config.json.

MCP INTEGRATION:

  Run 'trainer mcp' to start the Model Context Protocol server for use
  with MCP-compatible AI assistants.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		weekStore = storage.NewWeeklyStore(store)
		repo = storage.NewActivityRepository(weekStore, store)
		typeStore = storage.NewTypeStore(store)
		codec = storage.NewExportImport(weekStore, typeStore, repo)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}
