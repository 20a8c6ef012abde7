package tracker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotSupported is returned by operations an implementation cannot
// express against its remote protocol.
var ErrNotSupported = errors.New("operation not supported")

// NotFoundError reports that the remote tracker has no resource at the
// requested location.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Resource)
}

// IsNotFound reports whether err (or any error it wraps) is a
// NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ProtocolError reports a non-success response from the remote tracker
// other than "not found". Detail carries the response body for
// diagnosis.
type ProtocolError struct {
	StatusCode int
	Detail     string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("tracker API error %d: %s", e.StatusCode, e.Detail)
}

// TransitionUnavailableError reports that the requested status has no
// reachable workflow transition from the issue's current state.
type TransitionUnavailableError struct {
	IssueID   string
	Target    Status
	Available []string
}

func (e *TransitionUnavailableError) Error() string {
	return fmt.Sprintf("no transition to %q found for %s, available transitions: [%s]",
		e.Target, e.IssueID, strings.Join(e.Available, ", "))
}

// InvalidInputError reports a local precondition violation before any
// request is issued.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}
