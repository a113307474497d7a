// Package model holds the records jiractl keeps on local disk.
package model

import "time"

// CreatedIssue is a ledger entry for an issue created from this machine.
type CreatedIssue struct {
	// ID is the local identifier for the ledger entry.
	ID string `db:"id" json:"id"`

	// Key is the issue key assigned by Jira (e.g., "PROJ-42").
	Key string `db:"key" json:"key"`

	// ProjectKey is the project the issue was created in.
	ProjectKey string `db:"project_key" json:"project_key"`

	// Summary is the summary sent with the create request.
	Summary string `db:"summary" json:"summary"`

	// URL is the browse link printed after creation.
	URL string `db:"url" json:"url"`

	// BaseURL identifies the Jira instance.
	BaseURL string `db:"base_url" json:"base_url"`

	// CreatedAt is when the create call returned.
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
