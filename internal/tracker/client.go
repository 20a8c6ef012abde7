package tracker

import "context"

// SearchFilter restricts an issue search. Empty string fields and a
// nil Status are not applied. Filters combine with AND logic.
type SearchFilter struct {
	Title       string
	Description string
	Status      *Status
	Assignee    string
	DueDate     string

	// MaxResults caps the number of issues the iterator yields.
	// Zero or negative means the default of 20.
	MaxResults int
}

// DefaultMaxResults is the search cap applied when a filter does not
// specify one.
const DefaultMaxResults = 20

// IssueIterator is a single-pass, forward-only sequence of issues.
// Advancing it may trigger a network round trip; it never fetches
// ahead of consumption.
//
//	for it.Next() {
//		use(it.Issue())
//	}
//	if err := it.Err(); err != nil { ... }
type IssueIterator interface {
	// Next advances to the next issue. It returns false when the
	// sequence is exhausted or a fetch failed; check Err afterwards.
	Next() bool

	// Issue returns the current issue. Only valid after Next
	// returned true.
	Issue() Issue

	// Err returns the first error encountered while fetching.
	Err() error
}

// IssueTrackerClient is the tracker-agnostic client contract.
type IssueTrackerClient interface {
	// GetIssue fetches a single issue by id. Returns a NotFoundError
	// when the remote reports the issue does not exist.
	GetIssue(ctx context.Context, id string) (Issue, error)

	// SearchIssues returns a lazy iterator over issues matching the
	// filter. Pages are fetched on demand as the iterator advances.
	SearchIssues(ctx context.Context, filter SearchFilter) IssueIterator

	// CreateIssue creates a new issue and returns it re-fetched in
	// its final state. A draft status is applied as a separate
	// post-creation transition; create and transition are not atomic.
	CreateIssue(ctx context.Context, draft IssueDraft) (Issue, error)

	// UpdateIssue applies the set fields of update to an existing
	// issue and returns the refreshed issue. An empty update issues
	// no write request.
	UpdateIssue(ctx context.Context, id string, update IssueUpdate) (Issue, error)

	// DeleteIssue removes an issue. Returns a NotFoundError when the
	// issue does not exist.
	DeleteIssue(ctx context.Context, id string) error
}
