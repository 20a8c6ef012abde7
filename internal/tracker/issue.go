package tracker

// Status is the tracker-agnostic issue status. Every remote status
// string maps onto exactly one of these four values.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusCancelled  Status = "cancelled"
)

// Issue is a read-only view over a single remote issue. Implementations
// are value objects built fresh from each API response; two fetches of
// the same remote issue produce independent instances.
type Issue interface {
	// ID returns the stable, non-empty identifier of the issue.
	ID() string

	// Title returns the issue title, or "" when unset.
	Title() string

	// Description returns the plain-text description, or "" when unset.
	Description() string

	// Status returns the normalized status of the issue.
	Status() Status

	// Assignee returns an identifier for the assignee (a contact
	// address when available, otherwise a display name), or "" when
	// the issue is unassigned.
	Assignee() string

	// DueDate returns the due date as an opaque string, or "" when
	// no due date is set.
	DueDate() string
}

// IssueUpdate carries a partial update. Nil fields are unset and left
// unchanged; a pointer to the empty string is an explicit change.
type IssueUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	Assignee    *string
	DueDate     *string
}

// Empty reports whether no field of the update is set.
func (u IssueUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Assignee == nil && u.DueDate == nil
}

// IssueDraft describes a new issue to create. Zero values mean the
// field is omitted from the creation request; a non-nil Status is
// applied after creation via the remote transition protocol.
type IssueDraft struct {
	Title       string
	Description string
	Status      *Status
	Assignee    string
	DueDate     string
}

// IssueView is a serializable snapshot of an Issue, used by the HTTP
// and MCP surfaces.
type IssueView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Assignee    string `json:"assignee,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

// ViewOf snapshots an Issue into an IssueView.
func ViewOf(is Issue) IssueView {
	return IssueView{
		ID:          is.ID(),
		Title:       is.Title(),
		Description: is.Description(),
		Status:      is.Status(),
		Assignee:    is.Assignee(),
		DueDate:     is.DueDate(),
	}
}

// Ptr returns a pointer to v. Convenience for building IssueUpdate
// values in place.
func Ptr[T any](v T) *T {
	return &v
}
