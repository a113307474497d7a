package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nhle/jiractl/internal/issue"
)

// DefaultPageSize is the number of issues requested per search call.
const DefaultPageSize = 100

// defaultIssueType is the issue type used for every created issue.
const defaultIssueType = "Task"

// ProjectJQL returns the query used to list a project's issues,
// most recently created first.
func ProjectJQL(projectKey string) string {
	return fmt.Sprintf("project=%s ORDER BY created DESC", projectKey)
}

// CreateIssue creates one Task in the given project. The call is not
// idempotent: calling it twice creates two issues.
func (c *Client) CreateIssue(
	ctx context.Context,
	summary string,
	description string,
	projectKey string,
) (*IssueRef, error) {
	if projectKey == "" {
		return nil, ErrProjectKeyRequired
	}

	body := CreateIssueRequest{
		Fields: CreateIssueFields{
			Project:     ProjectRef{Key: projectKey},
			Summary:     summary,
			Description: PlainDocument(description),
			IssueType:   IssueTypeRef{Name: defaultIssueType},
		},
	}

	var ref IssueRef
	if err := c.post(ctx, apiRoot+"/issue", body, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// SearchIssues fetches one page of the project's issues starting at offset
// startAt. Ordering is whatever the server returns for ProjectJQL.
func (c *Client) SearchIssues(
	ctx context.Context,
	projectKey string,
	startAt int,
	pageSize int,
) (*SearchPage, error) {
	if projectKey == "" {
		return nil, ErrProjectKeyRequired
	}

	q := make(url.Values)
	q.Set("jql", ProjectJQL(projectKey))
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(pageSize))

	var page SearchPage
	if err := c.get(ctx, apiRoot+"/search", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NoLimit lists every issue the server reports.
const NoLimit = -1

// ListOptions bounds a ListIssues call.
type ListOptions struct {
	// Max caps the number of issues returned. NoLimit (or any negative
	// value) means all of them.
	Max int

	// PageSize is the largest page requested. Zero means DefaultPageSize.
	PageSize int
}

// Searcher fetches one page of a project's issues.
type Searcher interface {
	SearchIssues(ctx context.Context, projectKey string, startAt, pageSize int) (*SearchPage, error)
}

// ListIssues pages through the project's issues with c.
func (c *Client) ListIssues(
	ctx context.Context,
	projectKey string,
	opts ListOptions,
) ([]issue.Record, error) {
	return ListIssues(ctx, c, projectKey, opts)
}

// ListIssues accumulates pages from s sequentially. It stops when opts.Max
// issues are collected, when the total reported by the first page is
// reached, or when a page comes back empty. An error on any page discards
// what was collected so far.
func ListIssues(
	ctx context.Context,
	s Searcher,
	projectKey string,
	opts ListOptions,
) ([]issue.Record, error) {
	bounded := opts.Max >= 0
	if bounded && opts.Max == 0 {
		return []issue.Record{}, nil
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var (
		issues  []issue.Record
		startAt int
		total   = -1
	)
	for {
		size := pageSize
		if bounded {
			size = min(pageSize, opts.Max-len(issues))
		}

		page, err := s.SearchIssues(ctx, projectKey, startAt, size)
		if err != nil {
			return nil, err
		}

		issues = append(issues, page.Issues...)
		if total < 0 {
			total = page.Total
		}

		if bounded && len(issues) >= opts.Max {
			return issues[:opts.Max], nil
		}
		if len(issues) >= total || len(page.Issues) == 0 {
			break
		}
		startAt += len(page.Issues)
	}

	if issues == nil {
		issues = []issue.Record{}
	}
	return issues, nil
}
