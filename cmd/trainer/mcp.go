// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/trainer/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your activity data
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "trainer": {
        "command": "trainer",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_activity         Log an activity
  list_activities      List activities, optionally by range or type
  update_activity      Update a logged activity
  delete_activity      Delete an activity by ID
  list_activity_types  List activity type definitions
  add_activity_type    Define a new activity type
  get_summary          Totals against goals for a duration window
  export_data          Export everything as JSON
  import_data          Import a JSON export

AVAILABLE RESOURCES:

  trainer://recent     Most recent activities
  trainer://weeks      Week buckets that contain activities`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(repo, typeStore, codec)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
