// ABOUTME: MCP server setup for the trainer activity store.
// ABOUTME: Wires the repository, type store, and export codec into MCP.
package mcp

import (
	"context"

	"github.com/harperreed/trainer/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      *storage.ActivityRepository
	types     *storage.TypeStore
	codec     *storage.ExportImport
}

// NewServer creates an MCP server over the given stores.
func NewServer(repo *storage.ActivityRepository, types *storage.TypeStore, codec *storage.ExportImport) *Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "trainer",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		types:     types,
		codec:     codec,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
