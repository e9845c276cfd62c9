// ABOUTME: MCP resource implementations for the trainer activity store.
// ABOUTME: Provides trainer://recent and trainer://weeks resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// trainer://recent - last 10 logged activities
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "trainer://recent",
		Name:        "Recent Activities",
		Description: "Last 10 logged activities",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// trainer://weeks - every week that has stored activities
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "trainer://weeks",
		Name:        "Populated Weeks",
		Description: "Week keys that currently have stored activities",
		MIMEType:    "application/json",
	}, s.handleWeeksResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	activities, err := s.repo.List(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if len(activities) > 10 {
		activities = activities[:10]
	}

	data, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "trainer://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleWeeksResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	weeks, err := s.repo.WeekKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to list weeks: %w", err)
	}

	data, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "trainer://weeks",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
