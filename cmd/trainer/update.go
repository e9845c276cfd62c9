// ABOUTME: CLI command for editing an existing activity by id.
// ABOUTME: Rewrites the activity into the correct week bucket if its date moves.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	updateAmount int
	updateAt     string
	updateNotes  string
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update a logged activity",
	Long: `Update a logged activity by id.

Only the fields you pass as flags change. Moving an activity's date
to a different week relocates it to that week's bucket.

EXAMPLES:

  trainer update 12 --amount 30
  trainer update 12 --at "2026-08-20 07:30" --notes "morning session"`,
	Args: cobra.ExactArgs(1),
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

		if cmd.Flags().Changed("amount") {
			activity.Amount = updateAmount
		}
		if cmd.Flags().Changed("at") {
			when, err := parseTime(updateAt)
			if err != nil {
				return fmt.Errorf("invalid --at time: %s", updateAt)
			}
			activity.When = when
		}
		if cmd.Flags().Changed("notes") {
			activity.Notes = updateNotes
		}

		if err := repo.Update(*activity); err != nil {
			return fmt.Errorf("failed to update activity: %w", err)
		}

		color.Green("✓ Updated activity #%d", id)
		return nil
	},
}

func init() {
	updateCmd.Flags().IntVar(&updateAmount, "amount", 0, "new amount")
	updateCmd.Flags().StringVar(&updateAt, "at", "", "new timestamp (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "new notes (empty string clears)")
	rootCmd.AddCommand(updateCmd)
}
