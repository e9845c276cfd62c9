// ABOUTME: CLI commands for managing activity types.
// ABOUTME: Supports adding, listing, editing, and removing type definitions.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/models"
	"github.com/spf13/cobra"
)

var (
	typeDaily   int
	typeWeekly  int
	typeUnit    string
	typeBenefit string
)

var typeCmd = &cobra.Command{
	Use:     "type",
	Aliases: []string{"types", "t"},
	Short:   "Manage activity types",
	Long: `Manage the activity types you can log against.

Each type has a name, an optional goal (daily or weekly amount), an
optional unit label, and a net-benefit classification used when
summarizing progress.`,
}

var typeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an activity type",
	Long: `Add a new activity type.

EXAMPLES:

  trainer type add pushups --daily 50
  trainer type add running --weekly 20 --unit km
  trainer type add beer --weekly 6 --unit bottles --benefit negative`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		existing, err := typeStore.GetByName(name)
		if err != nil {
			return fmt.Errorf("failed to look up activity type: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("activity type %q already exists", existing.Name)
		}

		benefit := models.BenefitNone
		if typeBenefit != "" {
			var err error
			benefit, err = parseBenefit(typeBenefit)
			if err != nil {
				return err
			}
		}

		at := models.NewActivityType(name).WithNetBenefit(benefit)
		if cmd.Flags().Changed("daily") {
			at = at.WithDailyAmount(typeDaily)
		}
		if cmd.Flags().Changed("weekly") {
			at = at.WithWeeklyAmount(typeWeekly)
		}
		if typeUnit != "" {
			at = at.WithUnit(typeUnit)
		}

		created, err := typeStore.Add(at)
		if err != nil {
			return fmt.Errorf("failed to add activity type: %w", err)
		}

		color.Green("✓ Added activity type %s (#%d)", created.Name, created.ID)
		return nil
	},
}

var typeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List activity types",
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := typeStore.List()
		if err != nil {
			return fmt.Errorf("failed to list activity types: %w", err)
		}
		if len(types) == 0 {
			fmt.Println("No activity types defined. Add one with: trainer type add <name>")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range types {
			goal := ""
			switch {
			case t.DailyAmount != nil:
				goal = fmt.Sprintf("%d/day", *t.DailyAmount)
			case t.WeeklyAmount != nil:
				goal = fmt.Sprintf("%d/week", *t.WeeklyAmount)
			}
			if goal != "" && t.Unit != nil {
				goal = fmt.Sprintf("%s %s", goal, *t.Unit)
			}
			benefit := ""
			if t.NetBenefit == models.BenefitNegative {
				benefit = faint.Sprint(" [limit]")
			}
			fmt.Printf("%s %s %s%s\n",
				faint.Sprintf("#%-3d", t.ID),
				padRight(t.Name, 16),
				goal,
				benefit)
		}
		return nil
	},
}

var typeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an activity type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid activity type id: %s", args[0])
		}

		at, err := typeStore.Get(id)
		if err != nil {
			return fmt.Errorf("failed to load activity type: %w", err)
		}
		if at == nil {
			return fmt.Errorf("no activity type with id %d", id)
		}

		if cmd.Flags().Changed("daily") {
			at.DailyAmount = &typeDaily
			at.WeeklyAmount = nil
		}
		if cmd.Flags().Changed("weekly") {
			at.WeeklyAmount = &typeWeekly
			at.DailyAmount = nil
		}
		if cmd.Flags().Changed("unit") {
			if typeUnit == "" {
				at.Unit = nil
			} else {
				at.Unit = &typeUnit
			}
		}
		if cmd.Flags().Changed("benefit") {
			benefit, err := parseBenefit(typeBenefit)
			if err != nil {
				return err
			}
			at.NetBenefit = benefit
		}

		if err := typeStore.Update(*at); err != nil {
			return fmt.Errorf("failed to update activity type: %w", err)
		}

		color.Green("✓ Updated activity type %s", at.Name)
		return nil
	},
}

func parseBenefit(s string) (models.NetBenefit, error) {
	switch strings.ToLower(s) {
	case "none":
		return models.BenefitNone, nil
	case "positive":
		return models.BenefitPositive, nil
	case "negative":
		return models.BenefitNegative, nil
	}
	return "", fmt.Errorf("invalid benefit %q (valid: none, positive, negative)", s)
}

var typeRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove an activity type",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid activity type id: %s", args[0])
		}

		at, err := typeStore.Get(id)
		if err != nil {
			return fmt.Errorf("failed to load activity type: %w", err)
		}
		if at == nil {
			return fmt.Errorf("no activity type with id %d", id)
		}

		if err := typeStore.Delete(id); err != nil {
			return fmt.Errorf("failed to remove activity type: %w", err)
		}

		color.Green("✓ Removed activity type %s", at.Name)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{typeAddCmd, typeUpdateCmd} {
		c.Flags().IntVar(&typeDaily, "daily", 0, "daily goal amount")
		c.Flags().IntVar(&typeWeekly, "weekly", 0, "weekly goal amount")
		c.Flags().StringVar(&typeUnit, "unit", "", "unit label (km, minutes, ...)")
		c.Flags().StringVar(&typeBenefit, "benefit", "", "net benefit: none, positive, or negative")
	}
	typeCmd.AddCommand(typeAddCmd)
	typeCmd.AddCommand(typeListCmd)
	typeCmd.AddCommand(typeUpdateCmd)
	typeCmd.AddCommand(typeRemoveCmd)
	rootCmd.AddCommand(typeCmd)
}
