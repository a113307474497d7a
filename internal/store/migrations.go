package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS created_issues (
	id          TEXT PRIMARY KEY,
	key         TEXT NOT NULL,
	project_key TEXT NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	base_url    TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_created_issues_project ON created_issues(project_key);
CREATE INDEX IF NOT EXISTS idx_created_issues_created_at ON created_issues(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
