package tracker

import "context"

// BoardColumn pairs a status with its display name on a board.
type BoardColumn struct {
	Status Status `json:"status"`
	Name   string `json:"name"`
}

// Board scopes issue operations to one remote board and exposes a
// fixed set of status-named columns.
type Board interface {
	// ID returns the opaque board identifier.
	ID() string

	// Name returns the board display name.
	Name() string

	// Columns returns the board's columns in display order. The
	// returned slice is a copy; callers may mutate it freely.
	Columns() []BoardColumn

	// ListIssues returns the issues on this board, in remote response
	// order. A non-nil status restricts the result to that column.
	ListIssues(ctx context.Context, status *Status) ([]Issue, error)

	// GetIssue fetches a single issue by id.
	GetIssue(ctx context.Context, id string) (Issue, error)

	// CreateIssue creates an issue on this board's tracker.
	CreateIssue(ctx context.Context, title, description string, status Status) (Issue, error)

	// UpdateIssue applies a partial update to an issue.
	UpdateIssue(ctx context.Context, id string, update IssueUpdate) (Issue, error)

	// DeleteIssue removes an issue. Board implementations may not
	// support deletion and return ErrNotSupported.
	DeleteIssue(ctx context.Context, id string) error
}
