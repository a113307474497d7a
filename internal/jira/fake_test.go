package jira

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/nhle/jiractl/internal/config"
)

// fakeJira serves a read/write subset of the v3 API backed by an in-memory
// list of issues, newest first. Every request is recorded.
type fakeJira struct {
	t        *testing.T
	mu       sync.Mutex
	issues   []map[string]any
	total    int // reported total; defaults to len(issues)
	requests []*recorded
	created  int
}

type recorded struct {
	method string
	path   string
	query  map[string]string
	user   string
	pass   string
	body   []byte
}

func newFakeJira(t *testing.T, n int) (*fakeJira, *httptest.Server) {
	t.Helper()
	f := &fakeJira{t: t, total: -1}
	for i := n; i >= 1; i-- {
		f.issues = append(f.issues, map[string]any{
			"key": fmt.Sprintf("TEST-%d", i),
			"fields": map[string]any{
				"summary": fmt.Sprintf("issue %d", i),
				"status":  map[string]any{"name": "Open"},
			},
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/api/3/search", f.search)
	mux.HandleFunc("POST /rest/api/3/issue", f.create)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeJira) client(srv *httptest.Server) *Client {
	return NewClient(config.Credentials{
		BaseURL:  srv.URL + "/",
		Email:    "me@example.com",
		APIToken: "secret",
	})
}

func (f *fakeJira) record(req *http.Request) *recorded {
	user, pass, _ := req.BasicAuth()
	body, _ := io.ReadAll(req.Body)
	q := make(map[string]string)
	for k := range req.URL.Query() {
		q[k] = req.URL.Query().Get(k)
	}
	r := &recorded{
		method: req.Method,
		path:   req.URL.Path,
		query:  q,
		user:   user,
		pass:   pass,
		body:   body,
	}
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()
	return r
}

func (f *fakeJira) search(w http.ResponseWriter, req *http.Request) {
	r := f.record(req)
	startAt, _ := strconv.Atoi(r.query["startAt"])
	maxResults, _ := strconv.Atoi(r.query["maxResults"])

	f.mu.Lock()
	defer f.mu.Unlock()
	total := f.total
	if total < 0 {
		total = len(f.issues)
	}
	start := min(startAt, len(f.issues))
	end := min(start+maxResults, len(f.issues))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"startAt":    startAt,
		"maxResults": maxResults,
		"total":      total,
		"issues":     f.issues[start:end],
	})
}

func (f *fakeJira) create(w http.ResponseWriter, req *http.Request) {
	f.record(req)
	f.mu.Lock()
	f.created++
	n := f.created
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintf(w, `{"id":"1000%d","key":"TEST-%d","self":"http://jira/rest/api/3/issue/1000%d"}`, n, 100+n, n)
}

func (f *fakeJira) searchCalls() []*recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	var calls []*recorded
	for _, r := range f.requests {
		if r.path == "/rest/api/3/search" {
			calls = append(calls, r)
		}
	}
	return calls
}
