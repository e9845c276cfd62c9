// ABOUTME: CLI command listing the week buckets that contain activities.
// ABOUTME: Shows each week key with its date range and entry count.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/week"
	"github.com/spf13/cobra"
)

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List weeks that have logged activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := repo.WeekKeys()
		if err != nil {
			return fmt.Errorf("failed to list weeks: %w", err)
		}
		if len(keys) == 0 {
			fmt.Println("No activities logged yet.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, key := range keys {
			start, err := week.StartDate(key)
			if err != nil {
				return fmt.Errorf("failed to resolve week %s: %w", key, err)
			}
			end, err := week.EndDate(key)
			if err != nil {
				return fmt.Errorf("failed to resolve week %s: %w", key, err)
			}
			activities, err := weekStore.GetWeek(key)
			if err != nil {
				return fmt.Errorf("failed to read week %s: %w", key, err)
			}
			fmt.Printf("%s  %s — %s  %s\n",
				key,
				start.Format("Jan 2"),
				end.Format("Jan 2, 2006"),
				faint.Sprintf("(%d activities)", len(activities)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weeksCmd)
}
