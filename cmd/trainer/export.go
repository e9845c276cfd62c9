// ABOUTME: CLI commands for exporting and importing the full dataset as JSON.
// ABOUTME: Export writes week-keyed activities plus types; import accepts both layouts.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	Long: `Export every activity and activity type as a single JSON document.

Activities are grouped by week key. Writes to stdout unless -o is given.

EXAMPLES:

  trainer export                   # Print to stdout
  trainer export -o backup.json    # Write to a file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := codec.Export()
		if err != nil {
			return fmt.Errorf("failed to export data: %w", err)
		}

		if exportOutput == "" {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON export",
	Long: `Import activities and activity types from a JSON document.

Accepts exports from this tool (week-keyed activities) as well as flat
activity arrays. Imported activities replace the stored ones; the id
counter is recalculated afterwards so new activities never collide.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		if err := codec.Import(data); err != nil {
			return fmt.Errorf("failed to import data: %w", err)
		}

		color.Green("✓ Imported %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
