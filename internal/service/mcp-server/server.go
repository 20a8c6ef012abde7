package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"jira_tracker/internal/tracker"
)

// NewServer creates an MCP server exposing the tracker client as a
// set of issue tools.
func NewServer(client tracker.IssueTrackerClient, newBoard func(boardID string) tracker.Board) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"jira tracker",
		"1.0.0",
	)

	if err := registerTrackerTools(s, client, newBoard); err != nil {
		return nil, err
	}

	return s, nil
}

// Serve starts the MCP server on stdio.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
