// ABOUTME: CLI command for listing logged activities.
// ABOUTME: Supports date-range and type filtering over weekly buckets.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/timefmt"
	"github.com/spf13/cobra"
)

var (
	listType  string
	listFrom  string
	listTo    string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List logged activities",
	Long: `List logged activities, most recent first.

Each line shows: ID  WHEN  TYPE  AMOUNT  (NOTES)

When --from or --to is given, only the week buckets touched by the
range are read from storage.

EXAMPLES:

  trainer list                         # Last 20 activities
  trainer list --type pushups          # Only pushups
  trainer list --from 2026-08-01 --to 2026-08-28
  trainer list -n 50                   # Last 50 activities`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var start, end *time.Time
		if listFrom != "" {
			t, err := parseTime(listFrom)
			if err != nil {
				return fmt.Errorf("invalid --from date: %s", listFrom)
			}
			start = &t
		}
		if listTo != "" {
			t, err := parseTime(listTo)
			if err != nil {
				return fmt.Errorf("invalid --to date: %s", listTo)
			}
			// A bare date means the whole day.
			t = t.AddDate(0, 0, 1).Add(-time.Second)
			end = &t
		}

		activities, err := repo.List(start, end)
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}

		types, err := typeStore.List()
		if err != nil {
			return fmt.Errorf("failed to list activity types: %w", err)
		}
		names := make(map[int]string, len(types))
		units := make(map[int]string, len(types))
		for _, t := range types {
			names[t.ID] = t.Name
			if t.Unit != nil {
				units[t.ID] = " " + *t.Unit
			}
		}

		if listType != "" {
			t, err := typeStore.GetByName(listType)
			if err != nil {
				return fmt.Errorf("failed to look up activity type: %w", err)
			}
			if t == nil {
				return fmt.Errorf("unknown activity type: %s", listType)
			}
			var filtered []models.Activity
			for _, a := range activities {
				if a.ActivityTypeID == t.ID {
					filtered = append(filtered, a)
				}
			}
			activities = filtered
		}

		if len(activities) > listLimit {
			activities = activities[:listLimit]
		}
		if len(activities) == 0 {
			fmt.Println("No activities found.")
			return nil
		}

		now := time.Now()
		faint := color.New(color.Faint)
		for _, a := range activities {
			name := names[a.ActivityTypeID]
			if name == "" {
				name = fmt.Sprintf("type-%d", a.ActivityTypeID)
			}
			notes := ""
			if a.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(a.Notes, 40))
			}
			fmt.Printf("%s %s %s %d%s%s\n",
				faint.Sprintf("#%-4d", a.ID),
				padRight(timefmt.FormatWhen(a.When, now), 20),
				padRight(name, 14),
				a.Amount,
				units[a.ActivityTypeID],
				notes)
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by activity type name")
	listCmd.Flags().StringVar(&listFrom, "from", "", "range start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "range end date (YYYY-MM-DD)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
