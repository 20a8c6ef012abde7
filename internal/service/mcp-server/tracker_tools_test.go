package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_tracker/internal/tracker"
)

// fakeIssue is a canned tracker.Issue.
type fakeIssue struct {
	id, title string
	status    tracker.Status
}

func (f fakeIssue) ID() string             { return f.id }
func (f fakeIssue) Title() string          { return f.title }
func (f fakeIssue) Description() string    { return "" }
func (f fakeIssue) Status() tracker.Status { return f.status }
func (f fakeIssue) Assignee() string       { return "" }
func (f fakeIssue) DueDate() string        { return "" }

// fakeClient records calls and replies from canned values.
type fakeClient struct {
	issue      tracker.Issue
	issues     []tracker.Issue
	err        error
	lastUpdate tracker.IssueUpdate
	lastDraft  tracker.IssueDraft
	lastFilter tracker.SearchFilter
	deleted    []string
}

type sliceIterator struct {
	issues []tracker.Issue
	pos    int
}

func (it *sliceIterator) Next() bool {
	if it.pos >= len(it.issues) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Issue() tracker.Issue { return it.issues[it.pos-1] }
func (it *sliceIterator) Err() error           { return nil }

func (f *fakeClient) GetIssue(ctx context.Context, id string) (tracker.Issue, error) {
	return f.issue, f.err
}

func (f *fakeClient) SearchIssues(ctx context.Context, filter tracker.SearchFilter) tracker.IssueIterator {
	f.lastFilter = filter
	return &sliceIterator{issues: f.issues}
}

func (f *fakeClient) CreateIssue(ctx context.Context, draft tracker.IssueDraft) (tracker.Issue, error) {
	f.lastDraft = draft
	return f.issue, f.err
}

func (f *fakeClient) UpdateIssue(ctx context.Context, id string, update tracker.IssueUpdate) (tracker.Issue, error) {
	f.lastUpdate = update
	return f.issue, f.err
}

func (f *fakeClient) DeleteIssue(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleGetIssue(t *testing.T) {
	client := &fakeClient{issue: fakeIssue{id: "TEST-1", title: "one", status: tracker.StatusTodo}}

	result, err := handleGetIssue(client)(context.Background(), toolRequest(map[string]any{
		"issue_id": "TEST-1",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"id":"TEST-1"`)
	assert.Contains(t, text, `"status":"todo"`)
}

func TestHandleGetIssue_RejectsMissingID(t *testing.T) {
	client := &fakeClient{}
	_, err := handleGetIssue(client)(context.Background(), toolRequest(map[string]any{}))
	assert.Error(t, err)
}

func TestHandleSearchIssues_PassesFilter(t *testing.T) {
	client := &fakeClient{issues: []tracker.Issue{
		fakeIssue{id: "TEST-1", status: tracker.StatusTodo},
		fakeIssue{id: "TEST-2", status: tracker.StatusTodo},
	}}

	result, err := handleSearchIssues(client)(context.Background(), toolRequest(map[string]any{
		"title":       "login",
		"status":      "todo",
		"max_results": float64(7),
	}))
	require.NoError(t, err)

	assert.Equal(t, "login", client.lastFilter.Title)
	require.NotNil(t, client.lastFilter.Status)
	assert.Equal(t, tracker.StatusTodo, *client.lastFilter.Status)
	assert.Equal(t, 7, client.lastFilter.MaxResults)
	assert.Contains(t, resultText(t, result), `"total":2`)
}

func TestHandleSearchIssues_RejectsNonStringTitle(t *testing.T) {
	client := &fakeClient{}

	_, err := handleSearchIssues(client)(context.Background(), toolRequest(map[string]any{
		"title": 42,
	}))

	var invalid *tracker.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestHandleSearchIssues_RejectsUnknownStatus(t *testing.T) {
	client := &fakeClient{}

	_, err := handleSearchIssues(client)(context.Background(), toolRequest(map[string]any{
		"status": "bogus",
	}))

	var invalid *tracker.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestHandleCreateIssue(t *testing.T) {
	client := &fakeClient{issue: fakeIssue{id: "TEST-9", title: "made", status: tracker.StatusInProgress}}

	_, err := handleCreateIssue(client)(context.Background(), toolRequest(map[string]any{
		"title":       "made",
		"description": "body",
		"status":      "in_progress",
	}))
	require.NoError(t, err)

	assert.Equal(t, "made", client.lastDraft.Title)
	assert.Equal(t, "body", client.lastDraft.Description)
	require.NotNil(t, client.lastDraft.Status)
	assert.Equal(t, tracker.StatusInProgress, *client.lastDraft.Status)
}

func TestHandleCreateIssue_RejectsNonStringDescription(t *testing.T) {
	client := &fakeClient{}

	_, err := handleCreateIssue(client)(context.Background(), toolRequest(map[string]any{
		"title":       "ok",
		"description": map[string]any{"nested": true},
	}))

	var invalid *tracker.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestHandleUpdateIssue_AbsentFieldsStayUnset(t *testing.T) {
	client := &fakeClient{issue: fakeIssue{id: "TEST-1"}}

	_, err := handleUpdateIssue(client)(context.Background(), toolRequest(map[string]any{
		"issue_id": "TEST-1",
		"title":    "renamed",
	}))
	require.NoError(t, err)

	require.NotNil(t, client.lastUpdate.Title)
	assert.Equal(t, "renamed", *client.lastUpdate.Title)
	assert.Nil(t, client.lastUpdate.Description)
	assert.Nil(t, client.lastUpdate.Status)
	assert.Nil(t, client.lastUpdate.Assignee)
	assert.Nil(t, client.lastUpdate.DueDate)
}

func TestHandleUpdateIssue_ExplicitEmptyStringIsSet(t *testing.T) {
	client := &fakeClient{issue: fakeIssue{id: "TEST-1"}}

	_, err := handleUpdateIssue(client)(context.Background(), toolRequest(map[string]any{
		"issue_id":    "TEST-1",
		"description": "",
	}))
	require.NoError(t, err)

	require.NotNil(t, client.lastUpdate.Description)
	assert.Equal(t, "", *client.lastUpdate.Description)
}

func TestHandleUpdateIssue_NullMeansUnset(t *testing.T) {
	client := &fakeClient{issue: fakeIssue{id: "TEST-1"}}

	_, err := handleUpdateIssue(client)(context.Background(), toolRequest(map[string]any{
		"issue_id":    "TEST-1",
		"title":       "renamed",
		"description": nil,
	}))
	require.NoError(t, err)

	require.NotNil(t, client.lastUpdate.Title)
	assert.Nil(t, client.lastUpdate.Description)
}

func TestHandleUpdateIssue_RejectsNonStringField(t *testing.T) {
	client := &fakeClient{}

	_, err := handleUpdateIssue(client)(context.Background(), toolRequest(map[string]any{
		"issue_id": "TEST-1",
		"title":    7,
	}))

	var invalid *tracker.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestHandleDeleteIssue(t *testing.T) {
	client := &fakeClient{}

	result, err := handleDeleteIssue(client)(context.Background(), toolRequest(map[string]any{
		"issue_id": "TEST-1",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"TEST-1"}, client.deleted)
	assert.Contains(t, resultText(t, result), "TEST-1")
}

// fakeBoard lists canned issues, filtered by status.
type fakeBoard struct {
	id     string
	issues []tracker.Issue
}

func (b *fakeBoard) ID() string                     { return b.id }
func (b *fakeBoard) Name() string                   { return "Board " + b.id }
func (b *fakeBoard) Columns() []tracker.BoardColumn { return nil }

func (b *fakeBoard) ListIssues(ctx context.Context, status *tracker.Status) ([]tracker.Issue, error) {
	if status == nil {
		return b.issues, nil
	}
	var filtered []tracker.Issue
	for _, issue := range b.issues {
		if issue.Status() == *status {
			filtered = append(filtered, issue)
		}
	}
	return filtered, nil
}

func (b *fakeBoard) GetIssue(ctx context.Context, id string) (tracker.Issue, error) {
	return nil, &tracker.NotFoundError{Resource: id}
}

func (b *fakeBoard) CreateIssue(ctx context.Context, title, description string, status tracker.Status) (tracker.Issue, error) {
	return nil, tracker.ErrNotSupported
}

func (b *fakeBoard) UpdateIssue(ctx context.Context, id string, update tracker.IssueUpdate) (tracker.Issue, error) {
	return nil, tracker.ErrNotSupported
}

func (b *fakeBoard) DeleteIssue(ctx context.Context, id string) error {
	return tracker.ErrNotSupported
}

func TestHandleListBoardIssues_FiltersByStatus(t *testing.T) {
	board := &fakeBoard{id: "7", issues: []tracker.Issue{
		fakeIssue{id: "TEST-1", status: tracker.StatusTodo},
		fakeIssue{id: "TEST-2", status: tracker.StatusComplete},
	}}
	newBoard := func(boardID string) tracker.Board { return board }

	result, err := handleListBoardIssues(newBoard)(context.Background(), toolRequest(map[string]any{
		"board_id": "7",
		"status":   "complete",
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "TEST-2")
	assert.NotContains(t, text, "TEST-1")
	assert.Contains(t, text, `"total":1`)
}

func TestHandleListBoardIssues_RejectsUnknownStatus(t *testing.T) {
	newBoard := func(boardID string) tracker.Board { return &fakeBoard{id: boardID} }

	_, err := handleListBoardIssues(newBoard)(context.Background(), toolRequest(map[string]any{
		"board_id": "7",
		"status":   "bogus",
	}))

	var invalid *tracker.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}
