package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_tracker/internal/tracker"
)

func encodeNode(t *testing.T, node ADFNode) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(node)
	require.NoError(t, err)
	return raw
}

func TestTextToADF_SingleParagraph(t *testing.T) {
	node := TextToADF("testing adf formatting")

	assert.Equal(t, "doc", node.Type)
	assert.Equal(t, 1, node.Version)
	require.Len(t, node.Content, 1)
	require.Equal(t, "paragraph", node.Content[0].Type)
	require.Len(t, node.Content[0].Content, 1)
	assert.Equal(t, "text", node.Content[0].Content[0].Type)
	assert.Equal(t, "testing adf formatting", node.Content[0].Content[0].Text)
}

func TestADFRoundTrip(t *testing.T) {
	for _, text := range []string{
		"plain text",
		"",
		"line 1\nline 2\nline 3",
	} {
		decoded := DecodeDescription(encodeNode(t, TextToADF(text)))
		assert.Equal(t, text, decoded, "text %q", text)
	}
}

func TestTextToADF_MultilineStaysInOneParagraph(t *testing.T) {
	node := TextToADF("line 1\nline 2")
	require.Len(t, node.Content, 1)
	require.Len(t, node.Content[0].Content, 1)
	assert.Equal(t, "line 1\nline 2", node.Content[0].Content[0].Text)
}

func TestValueToADF_RejectsNonString(t *testing.T) {
	_, err := ValueToADF(12345)

	var invalid *tracker.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestValueToADF_AcceptsString(t *testing.T) {
	node, err := ValueToADF("fine")
	require.NoError(t, err)
	assert.Equal(t, "doc", node.Type)
}

func TestDecodeDescription_AbsentAndNull(t *testing.T) {
	assert.Equal(t, "", DecodeDescription(nil))
	assert.Equal(t, "", DecodeDescription(json.RawMessage("null")))
}

func TestDecodeDescription_PlainString(t *testing.T) {
	assert.Equal(t, "already plain", DecodeDescription(json.RawMessage(`"already plain"`)))
}

func TestDecodeDescription_FlattensNestedContent(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "doc",
		"content": [
			{
				"type": "paragraph",
				"content": [{"type": "text", "text": "Hello "}, {"type": "text", "text": "World"}]
			}
		]
	}`)
	assert.Equal(t, "Hello \nWorld", DecodeDescription(raw))
}

func TestDecodeDescription_JoinsBlocksWithNewlines(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "doc",
		"content": [
			{"type": "paragraph", "content": [{"type": "text", "text": "first"}]},
			{"type": "paragraph", "content": [{"type": "bulletList", "content": [
				{"type": "listItem", "content": [{"type": "text", "text": "deep"}]}
			]}]},
			{"type": "paragraph"}
		]
	}`)
	assert.Equal(t, "first\ndeep", DecodeDescription(raw))
}

func TestDecodeDescription_UnrecognizedShape(t *testing.T) {
	assert.Equal(t, "", DecodeDescription(json.RawMessage(`42`)))
	assert.Equal(t, "", DecodeDescription(json.RawMessage(`{"type":"doc"}`)))
}
