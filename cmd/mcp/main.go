package main

import (
	"flag"
	"fmt"
	"log"

	"jira_tracker/internal/config"
	"jira_tracker/internal/jira"
	"jira_tracker/internal/logger"
	mcpserver "jira_tracker/internal/service/mcp-server"
	"jira_tracker/internal/tracker"
)

func main() {
	interactive := flag.Bool("interactive", false, "prompt for missing Jira credentials instead of failing")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *interactive {
		cfg, err = config.LoadInteractive()
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client := jira.NewClient(cfg.BaseURL, cfg.UserEmail, cfg.APIToken)
	newBoard := func(boardID string) tracker.Board {
		return jira.NewBoard(boardID, "Board "+boardID, client)
	}

	server, err := mcpserver.NewServer(client, newBoard)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	fmt.Println("Starting Jira Tracker MCP server...")
	if err := mcpserver.Serve(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
