// ABOUTME: CLI command for deleting a logged activity by id.
// ABOUTME: Removes the week bucket entirely when its last entry is deleted.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "del"},
	Short:   "Delete a logged activity",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid activity id: %s", args[0])
		}

		activity, err := repo.Get(id)
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}
		if activity == nil {
			return fmt.Errorf("no activity with id %d", id)
		}

		if err := repo.Delete(id); err != nil {
			return fmt.Errorf("failed to delete activity: %w", err)
		}

		color.Green("✓ Deleted activity #%d", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
