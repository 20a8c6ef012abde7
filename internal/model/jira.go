package model

import "encoding/json"

// JiraIssue represents a Jira issue response
type JiraIssue struct {
	Key    string     `json:"key"`
	Fields JiraFields `json:"fields"`
}

// JiraFields represents the fields in a Jira issue. Description stays
// raw because Jira Cloud returns either a plain string or an Atlassian
// Document Format tree.
type JiraFields struct {
	Summary     string          `json:"summary"`
	Status      *JiraStatus     `json:"status,omitempty"`
	Description json.RawMessage `json:"description,omitempty"`
	Assignee    *JiraUser       `json:"assignee,omitempty"`
	DueDate     string          `json:"duedate,omitempty"`
}

// JiraStatus represents the status of a Jira issue
type JiraStatus struct {
	Name string `json:"name"`
}

// JiraUser represents a Jira user
type JiraUser struct {
	EmailAddress string `json:"emailAddress,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// JiraSearchResponse represents the response from a Jira search
type JiraSearchResponse struct {
	StartAt    int         `json:"startAt"`
	MaxResults int         `json:"maxResults"`
	Total      int         `json:"total"`
	Issues     []JiraIssue `json:"issues"`
}

// JiraCreatedIssue represents the response to an issue creation
type JiraCreatedIssue struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// JiraTransition represents one available workflow transition
type JiraTransition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JiraTransitionsResponse represents GET /issue/{id}/transitions
type JiraTransitionsResponse struct {
	Transitions []JiraTransition `json:"transitions"`
}

// JiraBoardIssuesResponse represents GET /board/{id}/issue from the
// Agile API. It shares the issue shape with the search endpoint.
type JiraBoardIssuesResponse struct {
	Issues []JiraIssue `json:"issues"`
}
