package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"jira_tracker/internal/config"
	"jira_tracker/internal/handler"
	"jira_tracker/internal/jira"
	"jira_tracker/internal/logger"
	"jira_tracker/internal/storage"
	"jira_tracker/internal/tracker"
)

var ginLambda *ginadapter.GinLambda

func handleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

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
			log.Fatalf("Failed to load AWS config: %v", err)
		}
		credStore = storage.NewS3CredentialStore(
			s3.NewFromConfig(awsCfg),
			cfg.CredentialBucket,
			[]byte(cfg.CredentialEncryptKey),
		)
	}

	h := handler.New(client, newClient, newBoard, credStore)
	ginLambda = ginadapter.New(h.Router())

	lambda.Start(handleRequest)
}
