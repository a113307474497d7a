package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nhle/jiractl/internal/config"
)

// apiRoot is the REST API prefix for Jira Cloud.
const apiRoot = "/rest/api/3"

// Client is a thin HTTP client for the Jira Cloud REST API v3.
// It authenticates every request with HTTP basic auth (account email and
// API token) and never retries: a failed call surfaces immediately.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets a per-request timeout. It is applied to a copy of the
// HTTP client, so a client passed to WithHTTPClient is never modified.
// Zero keeps the HTTP client's own timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the Jira instance described by creds.
func NewClient(creds config.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(creds.BaseURL, "/"),
		email:      creds.Email,
		token:      creds.APIToken,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the instance root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BrowseURL returns the web link for an issue key.
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

// get performs an HTTP GET with query parameters and decodes the JSON
// response into result.
func (c *Client) get(
	ctx context.Context,
	path string,
	query url.Values,
	result any,
) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post performs an HTTP POST with a JSON body and decodes the JSON
// response into result.
func (c *Client) post(
	ctx context.Context,
	path string,
	body any,
	result any,
) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// do builds the request, applies auth, and handles JSON (de)serialization.
// Any status outside 2xx becomes an *APIError.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body any,
	result any,
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.DebugContext(ctx, "jira request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, endpoint(path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.logger.DebugContext(ctx, "jira response",
		"method", method, "path", path, "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, method, endpoint(path), respBody)
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, endpoint(path), err)
	}

	return nil
}

// endpoint strips the query string so errors do not repeat JQL verbatim.
func endpoint(path string) string {
	p, _, _ := strings.Cut(path, "?")
	return p
}
