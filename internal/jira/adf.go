package jira

// Document is an Atlassian Document Format document, the rich-text type
// v3 of the API expects for description fields.
type Document struct {
	Version int    `json:"version"`
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// Node is a block or inline node inside a Document.
type Node struct {
	Type    string  `json:"type"`
	Content []Node  `json:"content,omitempty"`
	Text    *string `json:"text,omitempty"`
}

const (
	nodeDoc       = "doc"
	nodeParagraph = "paragraph"
	nodeText      = "text"
)

// PlainDocument wraps text in a version 1 document holding exactly one
// paragraph with one text node. The text is not split or trimmed, and an
// empty string is still sent as a text node.
func PlainDocument(text string) *Document {
	return &Document{
		Version: 1,
		Type:    nodeDoc,
		Content: []Node{
			{
				Type: nodeParagraph,
				Content: []Node{
					{Type: nodeText, Text: &text},
				},
			},
		},
	}
}
