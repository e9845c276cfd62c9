// ABOUTME: CLI command that syncs the charm backend with the cloud server.
// ABOUTME: Errors when the configured backend has no sync capability.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/kv"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync data with the charm cloud",
	Long: `Sync local data with the charm cloud server.

Only available when the backend is set to "charm" in the config file.
The charm backend also syncs automatically after each write; this
command forces an immediate sync, which is useful after working
offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charm, ok := store.(*kv.Charm)
		if !ok {
			return fmt.Errorf("sync requires the charm backend (current backend: %s)", cfg.GetBackend())
		}

		if err := charm.Sync(); err != nil {
			return fmt.Errorf("failed to sync: %w", err)
		}

		color.Green("✓ Synced with charm cloud")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
