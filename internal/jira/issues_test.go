package jira

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/jiractl/internal/issue"
)

func keys(records []issue.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key()
	}
	return out
}

func TestListIssuesUnbounded(t *testing.T) {
	tests := []struct {
		total     int
		pageSize  int
		wantCalls int
	}{
		{total: 0, pageSize: 100, wantCalls: 1},
		{total: 3, pageSize: 100, wantCalls: 1},
		{total: 100, pageSize: 100, wantCalls: 1},
		{total: 101, pageSize: 100, wantCalls: 2},
		{total: 250, pageSize: 100, wantCalls: 3},
		{total: 7, pageSize: 2, wantCalls: 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.pageSize), func(t *testing.T) {
			f, srv := newFakeJira(t, tt.total)
			got, err := f.client(srv).ListIssues(context.Background(), "TEST",
				ListOptions{Max: NoLimit, PageSize: tt.pageSize})
			require.NoError(t, err)
			assert.Len(t, got, tt.total)
			assert.Len(t, f.searchCalls(), tt.wantCalls)
		})
	}
}

func TestListIssuesDefaultPageSize(t *testing.T) {
	f, srv := newFakeJira(t, 150)
	got, err := f.client(srv).ListIssues(context.Background(), "TEST", ListOptions{Max: NoLimit})
	require.NoError(t, err)
	assert.Len(t, got, 150)

	calls := f.searchCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "100", calls[0].query["maxResults"])
	assert.Equal(t, "0", calls[0].query["startAt"])
	assert.Equal(t, "100", calls[1].query["startAt"])
}

func TestListIssuesBounded(t *testing.T) {
	f, srv := newFakeJira(t, 10)
	got, err := f.client(srv).ListIssues(context.Background(), "TEST",
		ListOptions{Max: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST-10", "TEST-9", "TEST-8", "TEST-7", "TEST-6"}, keys(got))

	var sizes []string
	for _, c := range f.searchCalls() {
		sizes = append(sizes, c.query["maxResults"])
	}
	assert.Equal(t, []string{"2", "2", "1"}, sizes, "last page is capped to the remaining quota")
}

func TestListIssuesMaxAboveTotal(t *testing.T) {
	f, srv := newFakeJira(t, 3)
	got, err := f.client(srv).ListIssues(context.Background(), "TEST", ListOptions{Max: 5})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Len(t, f.searchCalls(), 1)
	assert.Equal(t, "5", f.searchCalls()[0].query["maxResults"])
}

func TestListIssuesMaxZero(t *testing.T) {
	f, srv := newFakeJira(t, 3)
	got, err := f.client(srv).ListIssues(context.Background(), "TEST", ListOptions{Max: 0})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Empty(t, f.searchCalls())
}

func TestListIssuesStopsOnEmptyBatch(t *testing.T) {
	f, srv := newFakeJira(t, 3)
	f.total = 50 // server overstates the total

	got, err := f.client(srv).ListIssues(context.Background(), "TEST",
		ListOptions{Max: NoLimit, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Len(t, f.searchCalls(), 3)
}

// scripted returns canned pages and counts calls.
type scripted struct {
	pages []*SearchPage
	errAt int
	calls []int
}

func (s *scripted) SearchIssues(_ context.Context, _ string, startAt, _ int) (*SearchPage, error) {
	s.calls = append(s.calls, startAt)
	i := len(s.calls) - 1
	if i == s.errAt {
		return nil, errors.New("boom")
	}
	return s.pages[i], nil
}

func page(total int, keys ...string) *SearchPage {
	p := &SearchPage{Total: total}
	for _, k := range keys {
		p.Issues = append(p.Issues, issue.Record{"key": k})
	}
	return p
}

func TestListIssuesTotalFromFirstPageOnly(t *testing.T) {
	s := &scripted{errAt: -1, pages: []*SearchPage{
		page(3, "A-1", "A-2"),
		page(1000, "A-3"),
	}}
	got, err := ListIssues(context.Background(), s, "A", ListOptions{Max: NoLimit, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "A-2", "A-3"}, keys(got))
	assert.Equal(t, []int{0, 2}, s.calls)
}

func TestListIssuesOffsetFollowsBatchSize(t *testing.T) {
	s := &scripted{errAt: -1, pages: []*SearchPage{
		page(5, "A-1"),
		page(5, "A-2", "A-3"),
		page(5, "A-4", "A-5"),
	}}
	got, err := ListIssues(context.Background(), s, "A", ListOptions{Max: NoLimit, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, []int{0, 1, 3}, s.calls)
}

func TestListIssuesErrorDiscardsPartial(t *testing.T) {
	s := &scripted{errAt: 1, pages: []*SearchPage{page(4, "A-1", "A-2")}}
	got, err := ListIssues(context.Background(), s, "A", ListOptions{Max: NoLimit, PageSize: 2})
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestListIssuesBoundedTruncates(t *testing.T) {
	// A server that ignores maxResults must not push the result past Max.
	s := &scripted{errAt: -1, pages: []*SearchPage{page(10, "A-1", "A-2", "A-3", "A-4")}}
	got, err := ListIssues(context.Background(), s, "A", ListOptions{Max: 2, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "A-2"}, keys(got))
}

func TestProjectJQL(t *testing.T) {
	for i, key := range []string{"A", "PROJ", "X1"} {
		assert.Equal(t, "project="+key+" ORDER BY created DESC", ProjectJQL(key), strconv.Itoa(i))
	}
}
