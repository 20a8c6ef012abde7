package jira

import (
	"jira_tracker/internal/model"
	"jira_tracker/internal/tracker"
)

// Issue adapts a raw Jira issue payload to the tracker.Issue contract.
// All accessors degrade to zero values when the payload is missing
// fields; structurally incomplete responses never panic here.
type Issue struct {
	id     string
	fields model.JiraFields
}

var _ tracker.Issue = (*Issue)(nil)

// NewIssue builds an Issue view over the fields of one API response
// record.
func NewIssue(id string, fields model.JiraFields) *Issue {
	return &Issue{id: id, fields: fields}
}

// ID returns the Jira issue key, e.g. "PROJ-42".
func (i *Issue) ID() string {
	return i.id
}

// Title returns the Jira summary field.
func (i *Issue) Title() string {
	return i.fields.Summary
}

// Description returns the description flattened to plain text.
func (i *Issue) Description() string {
	return DecodeDescription(i.fields.Description)
}

// Status returns the normalized status of the issue.
func (i *Issue) Status() tracker.Status {
	if i.fields.Status == nil {
		return NormalizeStatus("")
	}
	return NormalizeStatus(i.fields.Status.Name)
}

// Assignee returns the assignee's email address, falling back to the
// display name, or "" when unassigned.
func (i *Issue) Assignee() string {
	assignee := i.fields.Assignee
	if assignee == nil {
		return ""
	}
	if assignee.EmailAddress != "" {
		return assignee.EmailAddress
	}
	return assignee.DisplayName
}

// DueDate returns the raw duedate value, opaque to this package.
func (i *Issue) DueDate() string {
	return i.fields.DueDate
}
