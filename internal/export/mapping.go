// Package export flattens issue records into CSV using an ordered table of
// column names and field paths.
package export

import (
	"github.com/nhle/jiractl/internal/issue"
)

// Mapping binds one output column to a path inside an issue record.
type Mapping struct {
	Column string
	Path   []string
}

// Table is an ordered list of mappings. Its order fixes the header order and
// the order of values in every row.
type Table []Mapping

// DefaultTable is the column layout used by issuecsv and "jiractl export".
var DefaultTable = Table{
	{Column: "Name", Path: []string{"fields", "summary"}},
	{Column: "Email", Path: []string{"fields", "customfield_10037"}},
	{Column: "Phone", Path: []string{"fields", "customfield_10038"}},
	{Column: "Status", Path: []string{"fields", "status", "name"}},
	{Column: "Created Date", Path: []string{"fields", "created"}},
	{Column: "Reporter Name", Path: []string{"fields", "reporter", "displayName"}},
	{Column: "Reporter Email", Path: []string{"fields", "reporter", "emailAddress"}},
}

// Header returns the column names in table order.
func (t Table) Header() []string {
	header := make([]string, len(t))
	for i, m := range t {
		header[i] = m.Column
	}
	return header
}

// Row maps a record to one value per column. Unresolvable paths become "".
func (t Table) Row(r issue.Record) []string {
	row := make([]string, len(t))
	for i, m := range t {
		row[i] = r.String(m.Path...)
	}
	return row
}
