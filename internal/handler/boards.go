package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jira_tracker/internal/tracker"
)

// BoardColumns handles GET /boards/:id/columns
func (h *Handler) BoardColumns(c *gin.Context) {
	board := h.newBoard(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"id":      board.ID(),
		"name":    board.Name(),
		"columns": board.Columns(),
	})
}

// BoardIssues handles GET /boards/:id/issues with an optional status
// filter applied client-side over the fetched board issues.
func (h *Handler) BoardIssues(c *gin.Context) {
	status, err := parseStatus(c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	board := h.newBoard(c.Param("id"))
	issues, err := board.ListIssues(c.Request.Context(), status)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]tracker.IssueView, 0, len(issues))
	for _, issue := range issues {
		views = append(views, tracker.ViewOf(issue))
	}
	c.JSON(http.StatusOK, gin.H{"issues": views})
}
