package jira

import (
	"fmt"
	"strings"

	"jira_tracker/internal/tracker"
)

// jqlSpecialChars are the characters JQL treats as operators or
// syntax. Every occurrence in a user-supplied value gets a backslash
// escape so the value cannot be interpreted as query syntax.
const jqlSpecialChars = `"'*?=~><!+-:&|()[]{}\^`

// SanitizeJQL escapes JQL special characters in a user-supplied value.
func SanitizeJQL(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if strings.ContainsRune(jqlSpecialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BuildJQL translates a search filter into a JQL query. Clauses are
// AND-joined; with no filters a tautological bounding clause is used
// because Jira rejects unbounded queries. The result always orders by
// last update, newest first, so pagination is deterministic.
func BuildJQL(filter tracker.SearchFilter) string {
	var clauses []string
	if filter.Title != "" {
		// summary is Jira's name for the title field
		clauses = append(clauses, fmt.Sprintf("summary ~ '%s'", SanitizeJQL(filter.Title)))
	}
	if filter.Description != "" {
		clauses = append(clauses, fmt.Sprintf("description ~ '%s'", SanitizeJQL(filter.Description)))
	}
	if filter.Status != nil {
		clauses = append(clauses, fmt.Sprintf("status = %s", statusJQL[*filter.Status]))
	}
	if filter.DueDate != "" {
		clauses = append(clauses, fmt.Sprintf("due = '%s'", SanitizeJQL(filter.DueDate)))
	}
	if filter.Assignee != "" {
		clauses = append(clauses, fmt.Sprintf("assignee = '%s'", SanitizeJQL(filter.Assignee)))
	}
	if len(clauses) == 0 {
		clauses = append(clauses, "project IS NOT EMPTY")
	}
	return strings.Join(clauses, " AND ") + " ORDER BY updated DESC"
}
