package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"jira_tracker/internal/model"
	"jira_tracker/internal/tracker"
)

func TestIssue_AllFieldsPresent(t *testing.T) {
	issue := NewIssue("PROJ-123", model.JiraFields{
		Summary:     "Fix the flux capacitor",
		Status:      &model.JiraStatus{Name: "In Progress"},
		Description: json.RawMessage(`"Standard string description"`),
		Assignee:    &model.JiraUser{EmailAddress: "doc@brown.com", DisplayName: "Emmett Brown"},
		DueDate:     "2026-12-31",
	})

	assert.Equal(t, "PROJ-123", issue.ID())
	assert.Equal(t, "Fix the flux capacitor", issue.Title())
	assert.Equal(t, "Standard string description", issue.Description())
	assert.Equal(t, tracker.StatusInProgress, issue.Status())
	assert.Equal(t, "doc@brown.com", issue.Assignee())
	assert.Equal(t, "2026-12-31", issue.DueDate())
}

func TestIssue_EmptyFieldsFallBack(t *testing.T) {
	issue := NewIssue("PROJ-EMPTY", model.JiraFields{})

	assert.Equal(t, "", issue.Title())
	assert.Equal(t, "", issue.Description())
	assert.Equal(t, tracker.StatusTodo, issue.Status())
	assert.Equal(t, "", issue.Assignee())
	assert.Equal(t, "", issue.DueDate())
}

func TestIssue_AssigneePrefersEmailOverDisplayName(t *testing.T) {
	both := NewIssue("A-1", model.JiraFields{
		Assignee: &model.JiraUser{EmailAddress: "a@b.com", DisplayName: "A B"},
	})
	assert.Equal(t, "a@b.com", both.Assignee())

	nameOnly := NewIssue("A-2", model.JiraFields{
		Assignee: &model.JiraUser{DisplayName: "A B"},
	})
	assert.Equal(t, "A B", nameOnly.Assignee())
}

func TestIssue_UnknownStatusNormalizesToTodo(t *testing.T) {
	issue := NewIssue("PROJ-2", model.JiraFields{Status: &model.JiraStatus{Name: "Ghost"}})
	assert.Equal(t, tracker.StatusTodo, issue.Status())
}

func TestIssue_ADFDescriptionIsFlattened(t *testing.T) {
	issue := NewIssue("PROJ-3", model.JiraFields{
		Description: json.RawMessage(`{
			"type": "doc",
			"content": [{"type": "paragraph", "content": [{"type": "text", "text": "from adf"}]}]
		}`),
	})
	assert.Equal(t, "from adf", issue.Description())
}
