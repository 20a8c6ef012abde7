package jira

import (
	"strings"

	"jira_tracker/internal/tracker"
)

// jiraStatusNames maps lowercased Jira status names onto the
// normalized statuses. Workflows name their columns freely, so common
// synonyms are covered here.
var jiraStatusNames = map[string]tracker.Status{
	"to do":   tracker.StatusTodo,
	"open":    tracker.StatusTodo,
	"backlog": tracker.StatusTodo,
	"new":     tracker.StatusTodo,

	"in progress": tracker.StatusInProgress,
	"working":     tracker.StatusInProgress,
	"development": tracker.StatusInProgress,

	"complete": tracker.StatusComplete,
	"done":     tracker.StatusComplete,
	"closed":   tracker.StatusComplete,
	"resolved": tracker.StatusComplete,

	"cancelled": tracker.StatusCancelled,
	"canceled":  tracker.StatusCancelled,
	"rejected":  tracker.StatusCancelled,
}

// statusJQL maps each normalized status to the quoted JQL literal used
// in status clauses. Values come from this fixed table, never from
// user input, so they are not sanitized.
var statusJQL = map[tracker.Status]string{
	tracker.StatusTodo:       `"To Do"`,
	tracker.StatusInProgress: `"In Progress"`,
	tracker.StatusComplete:   `"Complete"`,
	tracker.StatusCancelled:  `"Cancelled"`,
}

// transitionCandidates lists, per target status, transition names
// commonly configured in Jira workflows, in preference order. The
// transition protocol picks the first candidate available on the
// issue.
var transitionCandidates = map[tracker.Status][]string{
	tracker.StatusTodo: {
		"to do",
		"reopen issue",
		"reopen",
		"stop progress",
		"backlog",
	},
	tracker.StatusInProgress: {
		"in progress",
		"start progress",
		"in development",
		"start development",
		"in work",
	},
	tracker.StatusComplete: {
		"done",
		"resolve issue",
		"close issue",
		"resolved",
		"complete",
		"closed",
	},
	tracker.StatusCancelled: {
		"cancelled",
		"canceled",
		"won't do",
		"wont do",
		"rejected",
		"invalid",
	},
}

// NormalizeStatus maps a raw Jira status name onto a tracker.Status.
// Matching is case-insensitive; unknown or empty names fall back to
// StatusTodo rather than erroring.
func NormalizeStatus(name string) tracker.Status {
	if name == "" {
		return tracker.StatusTodo
	}
	if s, ok := jiraStatusNames[strings.ToLower(name)]; ok {
		return s
	}
	return tracker.StatusTodo
}
