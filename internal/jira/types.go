package jira

import "github.com/nhle/jiractl/internal/issue"

// SearchPage is one batch of the response from GET /rest/api/3/search.
type SearchPage struct {
	StartAt    int            `json:"startAt"`
	MaxResults int            `json:"maxResults"`
	Total      int            `json:"total"`
	Issues     []issue.Record `json:"issues"`
}

// CreateIssueRequest is the body of POST /rest/api/3/issue.
type CreateIssueRequest struct {
	Fields CreateIssueFields `json:"fields"`
}

// CreateIssueFields holds the fields set on a new issue.
type CreateIssueFields struct {
	Project     ProjectRef   `json:"project"`
	Summary     string       `json:"summary"`
	Description *Document    `json:"description"`
	IssueType   IssueTypeRef `json:"issuetype"`
}

// ProjectRef references a project by key.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueTypeRef references an issue type by name.
type IssueTypeRef struct {
	Name string `json:"name"`
}

// IssueRef is the response from creating an issue.
type IssueRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}
