package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jira_tracker/internal/tracker"
)

// createIssueRequest is the POST /issues body.
type createIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
}

// updateIssueRequest is the PUT /issues/:id body. Pointer fields keep
// "absent" distinguishable from an explicit empty string.
type updateIssueRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"due_date"`
}

// GetIssue handles GET /issues/:id
func (h *Handler) GetIssue(c *gin.Context) {
	issue, err := h.clientFor(c).GetIssue(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracker.ViewOf(issue))
}

// SearchIssues handles GET /issues with optional filter parameters.
func (h *Handler) SearchIssues(c *gin.Context) {
	status, err := parseStatus(c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	filter := tracker.SearchFilter{
		Title:       c.Query("title"),
		Description: c.Query("description"),
		Status:      status,
		Assignee:    c.Query("assignee"),
		DueDate:     c.Query("due_date"),
	}
	if raw := c.Query("max_results"); raw != "" {
		maxResults, err := strconv.Atoi(raw)
		if err != nil || maxResults <= 0 {
			writeError(c, &tracker.InvalidInputError{Reason: "max_results must be a positive integer"})
			return
		}
		filter.MaxResults = maxResults
	}

	views := []tracker.IssueView{}
	it := h.clientFor(c).SearchIssues(c.Request.Context(), filter)
	for it.Next() {
		views = append(views, tracker.ViewOf(it.Issue()))
	}
	if err := it.Err(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": views})
}

// CreateIssue handles POST /issues
func (h *Handler) CreateIssue(c *gin.Context) {
	var req createIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &tracker.InvalidInputError{Reason: err.Error()})
		return
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	issue, err := h.clientFor(c).CreateIssue(c.Request.Context(), tracker.IssueDraft{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tracker.ViewOf(issue))
}

// UpdateIssue handles PUT /issues/:id
func (h *Handler) UpdateIssue(c *gin.Context) {
	var req updateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &tracker.InvalidInputError{Reason: err.Error()})
		return
	}

	update := tracker.IssueUpdate{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		update.Status = status
	}

	issue, err := h.clientFor(c).UpdateIssue(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracker.ViewOf(issue))
}

// DeleteIssue handles DELETE /issues/:id
func (h *Handler) DeleteIssue(c *gin.Context) {
	if err := h.clientFor(c).DeleteIssue(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
