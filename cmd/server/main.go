package main

import (
	"context"
	"flag"
	"log"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"jira_tracker/internal/config"
	"jira_tracker/internal/handler"
	"jira_tracker/internal/jira"
	"jira_tracker/internal/logger"
	"jira_tracker/internal/storage"
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

	h, err := buildHandler(cfg)
	if err != nil {
		log.Fatalf("Failed to build handler: %v", err)
	}

	addr := ":" + port()
	logger.GetLogger().Info("starting jira tracker server")
	if err := h.Router().Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func buildHandler(cfg *config.Config) (*handler.Handler, error) {
	client := jira.NewClient(cfg.BaseURL, cfg.UserEmail, cfg.APIToken)

	newClient := func(email, apiToken string) tracker.IssueTrackerClient {
		return jira.NewClient(cfg.BaseURL, email, apiToken)
	}
	newBoard := func(boardID string) tracker.Board {
		return jira.NewBoard(boardID, "Board "+boardID, client)
	}

	var credStore storage.CredentialStore
	if cfg.CredentialBucket != "" && cfg.CredentialEncryptKey != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, err
		}
		credStore = storage.NewS3CredentialStore(
			s3.NewFromConfig(awsCfg),
			cfg.CredentialBucket,
			[]byte(cfg.CredentialEncryptKey),
		)
	}

	return handler.New(client, newClient, newBoard, credStore), nil
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
