package store

import (
	"context"

	"github.com/nhle/jiractl/internal/model"
)

// HistoryFilter controls which ledger entries ListCreated returns.
type HistoryFilter struct {
	ProjectKey string // empty for all projects
	Limit      int    // 0 for no limit
}

// Store defines the persistence interface for the created-issue ledger.
type Store interface {
	RecordCreated(ctx context.Context, issue model.CreatedIssue) error
	ListCreated(ctx context.Context, filter HistoryFilter) ([]model.CreatedIssue, error)
	Close() error
}
