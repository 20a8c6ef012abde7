package jira

import (
	"encoding/json"
	"fmt"
	"strings"

	"jira_tracker/internal/tracker"
)

// ADFNode is a node in an Atlassian Document Format tree. Jira Cloud
// requires long-text fields such as description to be sent in this
// format and returns them the same way.
type ADFNode struct {
	Type    string    `json:"type"`
	Version int       `json:"version,omitempty"`
	Text    string    `json:"text,omitempty"`
	Content []ADFNode `json:"content,omitempty"`
}

// TextToADF wraps plain text as a single-paragraph ADF document.
// Multi-line text stays in one paragraph; it is not split per line.
func TextToADF(text string) ADFNode {
	return ADFNode{
		Type:    "doc",
		Version: 1,
		Content: []ADFNode{
			{
				Type:    "paragraph",
				Content: []ADFNode{{Type: "text", Text: text}},
			},
		},
	}
}

// ValueToADF wraps a value that is expected to be plain text. Anything
// other than a string is rejected with an InvalidInputError before a
// request is built from it.
func ValueToADF(value any) (ADFNode, error) {
	text, ok := value.(string)
	if !ok {
		return ADFNode{}, &tracker.InvalidInputError{
			Reason: fmt.Sprintf("description must be a string, got %T", value),
		}
	}
	return TextToADF(text), nil
}

// DecodeDescription extracts plain text from a raw Jira description
// value. The field arrives absent, as a plain string, or as an ADF
// tree; anything else decodes to "".
func DecodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var node ADFNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return ""
	}
	return flattenADF(node)
}

// flattenADF concatenates the text leaves of an ADF tree, joining
// sibling blocks with newlines and skipping nodes with no text.
func flattenADF(node ADFNode) string {
	if node.Type == "text" {
		return node.Text
	}
	var parts []string
	for _, child := range node.Content {
		if part := flattenADF(child); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n")
}
