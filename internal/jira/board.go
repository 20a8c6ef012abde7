package jira

import (
	"context"

	"jira_tracker/internal/tracker"
)

// defaultColumns is the fixed column layout every board exposes, one
// column per normalized status.
var defaultColumns = []tracker.BoardColumn{
	{Status: tracker.StatusTodo, Name: "To Do"},
	{Status: tracker.StatusInProgress, Name: "In Progress"},
	{Status: tracker.StatusComplete, Name: "Done"},
	{Status: tracker.StatusCancelled, Name: "Cancelled"},
}

// Board is a view over one Jira Agile board. It narrows the client to
// the board's issue set and otherwise delegates issue operations.
type Board struct {
	id      string
	name    string
	client  *Client
	columns []tracker.BoardColumn
}

var _ tracker.Board = (*Board)(nil)

// NewBoard returns a Board backed by the given client and scoped to
// the remote board id.
func NewBoard(id, name string, client *Client) *Board {
	columns := make([]tracker.BoardColumn, len(defaultColumns))
	copy(columns, defaultColumns)
	return &Board{id: id, name: name, client: client, columns: columns}
}

// ID returns the remote board identifier.
func (b *Board) ID() string {
	return b.id
}

// Name returns the board display name.
func (b *Board) Name() string {
	return b.name
}

// Columns returns a copy of the board's columns; mutations of the
// returned slice do not affect the board.
func (b *Board) Columns() []tracker.BoardColumn {
	columns := make([]tracker.BoardColumn, len(b.columns))
	copy(columns, b.columns)
	return columns
}

// ListIssues fetches every issue on the board via the Agile API, then
// filters client-side when a status is given. Order follows the remote
// response.
func (b *Board) ListIssues(ctx context.Context, status *tracker.Status) ([]tracker.Issue, error) {
	issues, err := b.client.BoardIssues(ctx, b.id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return issues, nil
	}
	filtered := make([]tracker.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Status() == *status {
			filtered = append(filtered, issue)
		}
	}
	return filtered, nil
}

// GetIssue delegates to the underlying client.
func (b *Board) GetIssue(ctx context.Context, id string) (tracker.Issue, error) {
	return b.client.GetIssue(ctx, id)
}

// CreateIssue creates an issue through the underlying client.
func (b *Board) CreateIssue(ctx context.Context, title, description string, status tracker.Status) (tracker.Issue, error) {
	return b.client.CreateIssue(ctx, tracker.IssueDraft{
		Title:       title,
		Description: description,
		Status:      &status,
	})
}

// UpdateIssue delegates to the underlying client.
func (b *Board) UpdateIssue(ctx context.Context, id string, update tracker.IssueUpdate) (tracker.Issue, error) {
	return b.client.UpdateIssue(ctx, id, update)
}

// DeleteIssue always fails: the Agile API has no board-scoped deletion
// distinct from deleting the issue itself.
func (b *Board) DeleteIssue(ctx context.Context, id string) error {
	return tracker.ErrNotSupported
}
