// Package store persists the local ledger of issues created by jiractl.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/jiractl/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
// The special path ":memory:" opens a private in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", dbPath, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// RecordCreated appends a ledger entry. A missing ID is generated and a
// zero CreatedAt is set to now.
func (s *SQLiteStore) RecordCreated(ctx context.Context, issue model.CreatedIssue) error {
	if issue.ID == "" {
		issue.ID = uuid.New().String()
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now()
	}
	issue.CreatedAt = issue.CreatedAt.UTC()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO created_issues (
			id, key, project_key, summary, url, base_url, created_at
		) VALUES (
			:id, :key, :project_key, :summary, :url, :base_url, :created_at
		)`, issue)
	if err != nil {
		return fmt.Errorf("recording created issue %s: %w", issue.Key, err)
	}
	return nil
}

// ListCreated returns ledger entries newest first.
func (s *SQLiteStore) ListCreated(
	ctx context.Context,
	filter HistoryFilter,
) ([]model.CreatedIssue, error) {
	var conditions []string
	var args []interface{}

	if filter.ProjectKey != "" {
		conditions = append(conditions, "project_key = ?")
		args = append(args, filter.ProjectKey)
	}

	query := "SELECT id, key, project_key, summary, url, base_url, created_at FROM created_issues"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	var issues []model.CreatedIssue
	if err := s.db.SelectContext(ctx, &issues, query, args...); err != nil {
		return nil, fmt.Errorf("querying created issues: %w", err)
	}
	return issues, nil
}
