package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jira_tracker/internal/logger"
	"jira_tracker/internal/storage"
	"jira_tracker/internal/tracker"
)

// ClientFactory builds a tracker client for one set of credentials.
type ClientFactory func(email, apiToken string) tracker.IssueTrackerClient

// BoardFactory builds a board view for a remote board id.
type BoardFactory func(boardID string) tracker.Board

// Handler exposes the tracker over HTTP. Requests carrying an
// X-User-ID header resolve to that user's stored credentials when a
// credential store is configured; everything else uses the default
// client.
type Handler struct {
	defaultClient tracker.IssueTrackerClient
	newClient     ClientFactory
	newBoard      BoardFactory
	credStore     storage.CredentialStore // nil disables per-user clients
}

// New wires a Handler. credStore may be nil.
func New(defaultClient tracker.IssueTrackerClient, newClient ClientFactory, newBoard BoardFactory, credStore storage.CredentialStore) *Handler {
	return &Handler{
		defaultClient: defaultClient,
		newClient:     newClient,
		newBoard:      newBoard,
		credStore:     credStore,
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(logger.RequestLogMiddleware(), gin.Recovery())

	router.GET("/issues", h.SearchIssues)
	router.POST("/issues", h.CreateIssue)
	router.GET("/issues/:id", h.GetIssue)
	router.PUT("/issues/:id", h.UpdateIssue)
	router.DELETE("/issues/:id", h.DeleteIssue)

	router.GET("/boards/:id/columns", h.BoardColumns)
	router.GET("/boards/:id/issues", h.BoardIssues)

	router.PUT("/credentials", h.StoreCredentials)

	return router
}

// clientFor resolves the tracker client for one request. Missing or
// unknown users fall back to the default client.
func (h *Handler) clientFor(c *gin.Context) tracker.IssueTrackerClient {
	userID := c.GetHeader("X-User-ID")
	if userID == "" || h.credStore == nil {
		return h.defaultClient
	}
	creds, err := h.credStore.Get(c.Request.Context(), userID)
	if err != nil {
		logger.GetLogger().Warn("no stored credentials, using default client",
			zap.String("user_id", userID), zap.Error(err))
		return h.defaultClient
	}
	return h.newClient(creds.Email, creds.APIToken)
}

// writeError maps tracker errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		notFound     *tracker.NotFoundError
		transition   *tracker.TransitionUnavailableError
		invalidInput *tracker.InvalidInputError
		protocol     *tracker.ProtocolError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &protocol):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, tracker.ErrNotSupported):
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": err.Error()})
	default:
		logger.GetLogger().Error("unhandled tracker error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseStatus validates an optional status parameter. "" yields nil.
func parseStatus(value string) (*tracker.Status, error) {
	if value == "" {
		return nil, nil
	}
	switch s := tracker.Status(value); s {
	case tracker.StatusTodo, tracker.StatusInProgress, tracker.StatusComplete, tracker.StatusCancelled:
		return &s, nil
	}
	return nil, &tracker.InvalidInputError{Reason: "unknown status " + value}
}
