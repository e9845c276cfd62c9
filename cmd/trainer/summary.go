// ABOUTME: CLI command summarizing activity totals against goals.
// ABOUTME: Aggregates per type over a selectable duration window.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/goal"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/timefmt"
	"github.com/spf13/cobra"
)

var summaryDuration string

var summaryCmd = &cobra.Command{
	Use:     "summary",
	Aliases: []string{"sum", "s"},
	Short:   "Show activity totals against goals",
	Long: `Show per-type totals for a duration window, compared against each
type's configured goal.

Windows:

  day     Last 24 hours (compared against daily goals)
  7days   Last 7 days
  week    Current calendar week, Monday through now
  4weeks  Last 4 weeks

EXAMPLES:

  trainer summary            # Current week
  trainer summary -d day     # Last 24 hours
  trainer summary -d 4weeks`,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, err := parseDuration(summaryDuration)
		if err != nil {
			return err
		}

		now := time.Now()
		start, end := timefmt.DateRange(duration, now)

		activities, err := repo.List(&start, &end)
		if err != nil {
			return fmt.Errorf("failed to list activities: %w", err)
		}

		types, err := typeStore.List()
		if err != nil {
			return fmt.Errorf("failed to list activity types: %w", err)
		}

		totals := make(map[int]int)
		for _, a := range activities {
			totals[a.ActivityTypeID] += a.Amount
		}

		fmt.Printf("Summary for %s — %s\n\n",
			start.Format("Jan 2"), end.Format("Jan 2, 2006"))

		shown := 0
		faint := color.New(color.Faint)
		for _, t := range types {
			total := totals[t.ID]
			target := goal.Amount(t, duration)
			if total == 0 && target == nil {
				continue
			}
			shown++

			unit := ""
			if t.Unit != nil {
				unit = " " + *t.Unit
			}
			line := fmt.Sprintf("%s %d%s", padRight(t.Name, 16), total, unit)
			if target == nil {
				fmt.Println(line)
				continue
			}

			line = fmt.Sprintf("%s / %d%s", line, *target, unit)
			met := total >= *target
			if t.NetBenefit == models.BenefitNegative {
				met = total <= *target
			}
			if met {
				color.Green("%s ✓", line)
			} else if t.NetBenefit == models.BenefitNegative {
				fmt.Printf("%s %s\n", line, faint.Sprintf("(%d over)", total-*target))
			} else {
				fmt.Printf("%s %s\n", line, faint.Sprintf("(%d to go)", *target-total))
			}
		}

		if shown == 0 {
			fmt.Println("Nothing logged in this window.")
		}
		return nil
	},
}

func parseDuration(s string) (goal.Duration, error) {
	switch s {
	case "day", "24h":
		return goal.Last24Hours, nil
	case "7days", "7d":
		return goal.Last7Days, nil
	case "week", "":
		return goal.Week, nil
	case "4weeks", "4w":
		return goal.Last4Weeks, nil
	}
	return "", fmt.Errorf("invalid duration %q (valid: day, 7days, week, 4weeks)", s)
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryDuration, "duration", "d", "week", "window: day, 7days, week, or 4weeks")
	rootCmd.AddCommand(summaryCmd)
}
