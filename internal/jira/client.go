package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"jira_tracker/internal/logger"
	"jira_tracker/internal/model"
	"jira_tracker/internal/tracker"
)

const (
	apiPrefix   = "/rest/api/3"
	agilePrefix = "/rest/agile/1.0"

	// searchPageCap is Jira's maximum page size for issue search.
	searchPageCap = 100

	// boardIssueFields is the field set requested for board listings.
	boardIssueFields = "summary,description,status,assignee,duedate"
)

// Client implements tracker.IssueTrackerClient against the Jira Cloud
// REST API v3 and the Jira Agile API. One Client owns one authenticated
// HTTP session; it performs no retries or caching of its own and is
// meant for single-threaded use per instance.
type Client struct {
	baseURL    string
	userEmail  string
	apiToken   string
	httpClient *http.Client
}

var _ tracker.IssueTrackerClient = (*Client)(nil)

// NewClient returns a Client for the Jira instance at baseURL,
// authenticating with HTTP Basic using the account email and API
// token.
func NewClient(baseURL, userEmail, apiToken string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userEmail:  userEmail,
		apiToken:   apiToken,
		httpClient: &http.Client{},
	}
}

// url joins the base URL, an API prefix and a resource path.
func (c *Client) url(prefix, path string) string {
	return c.baseURL + prefix + path
}

// do issues one HTTP request and decodes the JSON response into out
// when out is non-nil. 404 responses become NotFoundError, other
// non-2xx responses become ProtocolError carrying the response body.
func (c *Client) do(ctx context.Context, method, rawURL string, params url.Values, body, out any) error {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.userEmail, c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	logger.GetLogger().Debug("jira request", zap.String("method", method), zap.String("url", rawURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to Jira failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Jira response: %w", err)
	}
	return nil
}

// checkResponse translates non-success responses into the tracker
// error taxonomy. 404 maps to NotFoundError so callers can tell
// "absent" from "broken".
func checkResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return &tracker.NotFoundError{Resource: resp.Request.URL.String()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return &tracker.ProtocolError{
			StatusCode: resp.StatusCode,
			Detail:     string(detail),
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, prefix, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.url(prefix, path), params, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.url(apiPrefix, path), nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any) error {
	// Jira answers PUT /issue with 204 No Content
	return c.do(ctx, http.MethodPut, c.url(apiPrefix, path), nil, body, nil)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.url(apiPrefix, path), nil, nil, nil)
}

// GetIssue fetches a single Jira issue by key.
func (c *Client) GetIssue(ctx context.Context, id string) (tracker.Issue, error) {
	var issue model.JiraIssue
	if err := c.get(ctx, apiPrefix, "/issue/"+id, nil, &issue); err != nil {
		return nil, err
	}
	return NewIssue(issue.Key, issue.Fields), nil
}

// SearchIssues builds a JQL query from the filter and returns a lazy
// iterator that pages through matching issues on demand.
func (c *Client) SearchIssues(ctx context.Context, filter tracker.SearchFilter) tracker.IssueIterator {
	maxResults := filter.MaxResults
	if maxResults <= 0 {
		maxResults = tracker.DefaultMaxResults
	}
	pageSize := maxResults
	if pageSize > searchPageCap {
		pageSize = searchPageCap
	}
	return &searchIterator{
		ctx:        ctx,
		client:     c,
		jql:        BuildJQL(filter),
		pageSize:   pageSize,
		maxResults: maxResults,
	}
}

// CreateIssue creates a Jira issue. Jira does not accept a status on
// creation, so a draft status is applied afterwards through the
// transition protocol; when that transition fails the issue still
// exists in its initial state.
func (c *Client) CreateIssue(ctx context.Context, draft tracker.IssueDraft) (tracker.Issue, error) {
	fields := map[string]any{
		"summary":   draft.Title,
		"issuetype": map[string]any{"name": "Issue"},
	}
	if draft.Description != "" {
		fields["description"] = TextToADF(draft.Description)
	}
	if draft.Assignee != "" {
		fields["assignee"] = map[string]any{"emailAddress": draft.Assignee}
	}
	if draft.DueDate != "" {
		fields["duedate"] = draft.DueDate
	}

	var created model.JiraCreatedIssue
	if err := c.post(ctx, "/issue", map[string]any{"fields": fields}, &created); err != nil {
		return nil, err
	}
	logger.GetLogger().Info("created issue", zap.String("key", created.Key))

	if draft.Status != nil {
		if err := c.applyStatusTransition(ctx, created.Key, *draft.Status); err != nil {
			return nil, err
		}
	}
	return c.GetIssue(ctx, created.Key)
}

// UpdateIssue applies the set fields of update. Non-status fields go
// out in one partial-update request; a status change follows as a
// separate transition because Jira cannot combine the two. An empty
// update performs no write at all.
func (c *Client) UpdateIssue(ctx context.Context, id string, update tracker.IssueUpdate) (tracker.Issue, error) {
	if update.Empty() {
		return c.GetIssue(ctx, id)
	}

	fields := map[string]any{}
	if update.Title != nil {
		fields["summary"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = TextToADF(*update.Description)
	}
	if update.Assignee != nil {
		fields["assignee"] = map[string]any{"emailAddress": *update.Assignee}
	}
	if update.DueDate != nil {
		fields["duedate"] = *update.DueDate
	}

	if len(fields) > 0 {
		if err := c.put(ctx, "/issue/"+id, map[string]any{"fields": fields}); err != nil {
			return nil, err
		}
	}

	if update.Status != nil {
		if err := c.applyStatusTransition(ctx, id, *update.Status); err != nil {
			return nil, err
		}
	}
	return c.GetIssue(ctx, id)
}

// DeleteIssue removes a Jira issue by key.
func (c *Client) DeleteIssue(ctx context.Context, id string) error {
	return c.delete(ctx, "/issue/"+id)
}

// BoardIssues fetches the issues bound to one Agile board. Records
// without a key are skipped.
func (c *Client) BoardIssues(ctx context.Context, boardID string) ([]tracker.Issue, error) {
	params := url.Values{}
	params.Set("fields", boardIssueFields)

	var resp model.JiraBoardIssuesResponse
	if err := c.get(ctx, agilePrefix, "/board/"+boardID+"/issue", params, &resp); err != nil {
		return nil, err
	}

	issues := make([]tracker.Issue, 0, len(resp.Issues))
	for _, raw := range resp.Issues {
		if raw.Key == "" {
			logger.GetLogger().Warn("skipping board issue without key", zap.String("board_id", boardID))
			continue
		}
		issues = append(issues, NewIssue(raw.Key, raw.Fields))
	}
	return issues, nil
}

// applyStatusTransition moves an issue to the target status. Jira has
// no direct status write: the set of transitions depends on the
// issue's current workflow state, so the client first asks which
// transitions are available, then invokes the first candidate name
// that exists for the target status.
func (c *Client) applyStatusTransition(ctx context.Context, id string, target tracker.Status) error {
	var resp model.JiraTransitionsResponse
	if err := c.get(ctx, apiPrefix, "/issue/"+id+"/transitions", nil, &resp); err != nil {
		return err
	}

	available := make(map[string]model.JiraTransition, len(resp.Transitions))
	names := make([]string, 0, len(resp.Transitions))
	for _, t := range resp.Transitions {
		name := strings.ToLower(t.Name)
		available[name] = t
		names = append(names, name)
	}

	for _, candidate := range transitionCandidates[target] {
		match, ok := available[candidate]
		if !ok {
			continue
		}
		body := map[string]any{"transition": map[string]any{"id": match.ID}}
		if err := c.post(ctx, "/issue/"+id+"/transitions", body, nil); err != nil {
			return err
		}
		logger.GetLogger().Info("applied transition",
			zap.String("key", id),
			zap.String("transition", match.Name),
			zap.String("target", string(target)))
		return nil
	}

	return &tracker.TransitionUnavailableError{
		IssueID:   id,
		Target:    target,
		Available: names,
	}
}
