package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors an *APIError unwraps to, keyed on status code.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("authentication failed")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("resource not found")
	ErrRateLimited  = errors.New("rate limit exceeded")
	ErrServerError  = errors.New("server error")
)

// ErrProjectKeyRequired is returned when an operation is called without a
// project key.
var ErrProjectKeyRequired = errors.New("project key is required")

// APIError is a non-2xx response from the Jira API. Body holds the raw
// response so callers can surface it unchanged.
type APIError struct {
	StatusCode    int
	Status        string
	Method        string
	Endpoint      string
	Body          string
	ErrorMessages []string
	Errors        map[string]string
}

// ErrorResponse is the standard Jira error response format.
type ErrorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func newAPIError(resp *http.Response, method, endpoint string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Method:     method,
		Endpoint:   endpoint,
		Body:       strings.TrimSpace(string(body)),
	}
	var jiraErr ErrorResponse
	if json.Unmarshal(body, &jiraErr) == nil {
		apiErr.ErrorMessages = jiraErr.ErrorMessages
		apiErr.Errors = jiraErr.Errors
	}
	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	prefix := fmt.Sprintf("jira API error (%s) on %s %s", status, e.Method, e.Endpoint)

	var details []string
	details = append(details, e.ErrorMessages...)
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		details = append(details, field+": "+e.Errors[field])
	}
	switch {
	case len(details) > 0:
		return prefix + ": " + strings.Join(details, "; ")
	case e.Body != "":
		return prefix + ": " + e.Body
	default:
		return prefix
	}
}

// Unwrap returns the sentinel error matching the status code.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		if e.StatusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// IsUnauthorized reports whether err is a 401 from Jira.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether err is a 404 from Jira.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
