package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jira_tracker/internal/logger"
	"jira_tracker/internal/storage"
)

// credentialsRequest is the PUT /credentials body.
type credentialsRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Email    string `json:"email" binding:"required"`
	APIToken string `json:"api_token" binding:"required"`
}

// StoreCredentials handles PUT /credentials, storing one user's Jira
// credentials for later per-request client resolution.
func (h *Handler) StoreCredentials(c *gin.Context) {
	if h.credStore == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "credential storage is not configured"})
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().Error("invalid credentials request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.APIToken) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_token must be at least 8 characters long"})
		return
	}

	creds := storage.Credentials{Email: req.Email, APIToken: req.APIToken}
	if err := h.credStore.Put(c.Request.Context(), req.UserID, creds); err != nil {
		logger.GetLogger().Error("failed to store credentials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "credentials stored"})
}
