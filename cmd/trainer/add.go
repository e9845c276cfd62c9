// ABOUTME: CLI command for logging activities.
// ABOUTME: Resolves the activity type by name and appends to its week bucket.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/models"
	"github.com/spf13/cobra"
)

var (
	addAt    string
	addNotes string
)

var addCmd = &cobra.Command{
	Use:     "add <type> <amount>",
	Aliases: []string{"a", "log"},
	Short:   "Log an activity",
	Long: `Log an activity against one of your activity types.

Examples:
  trainer add pushups 30
  trainer add running 5 --at "2026-08-28 07:00"
  trainer add reading 45 --notes "finished chapter 3"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName := args[0]

		t, err := typeStore.GetByName(typeName)
		if err != nil {
			return fmt.Errorf("failed to look up activity type: %w", err)
		}
		if t == nil {
			return fmt.Errorf("unknown activity type: %s (create it with 'trainer type add %s')", typeName, typeName)
		}

		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount: %s", args[1])
		}

		a := models.NewActivity(t.ID, amount)
		if addAt != "" {
			when, err := parseTime(addAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", addAt)
			}
			a = a.WithWhen(when)
		}
		if addNotes != "" {
			a = a.WithNotes(addNotes)
		}

		added, err := repo.Add(a)
		if err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}

		color.Green("✓ Logged %s", t.Name)
		fmt.Printf("  %s %d%s\n",
			color.New(color.Faint).Sprintf("#%d", added.ID),
			added.Amount, unitSuffix(t))

		return nil
	},
}

// parseTime accepts RFC 3339, "2006-01-02 15:04", or a bare date.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func unitSuffix(t *models.ActivityType) string {
	if t.Unit == nil || *t.Unit == "" {
		return ""
	}
	return " " + *t.Unit
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "timestamp for the activity (default now)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the activity")
	rootCmd.AddCommand(addCmd)
}
