// Package issue holds the schema-less representation of a Jira issue as
// returned by search and export endpoints.
package issue

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is a single issue decoded without a fixed schema. Only specific
// paths are ever read from it, so unknown and custom fields survive as-is.
type Record map[string]any

// Lookup walks the record one key at a time. It reports false when a key is
// missing or when an intermediate value is not a JSON object.
func (r Record) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range path {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		next, ok := obj[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// String resolves path and formats the value for display or CSV output.
// Absent paths and JSON null yield the empty string.
func (r Record) String(path ...string) string {
	v, ok := r.Lookup(path...)
	if !ok {
		return ""
	}
	return Format(v)
}

// Key returns the issue key, e.g. "PROJ-12".
func (r Record) Key() string {
	return r.String("key")
}

// Summary returns fields.summary.
func (r Record) Summary() string {
	return r.String("fields", "summary")
}

// StatusName returns fields.status.name.
func (r Record) StatusName() string {
	return r.String("fields", "status", "name")
}

// StatusCategory returns fields.status.statusCategory.key, one of "new",
// "indeterminate" or "done" on Jira Cloud.
func (r Record) StatusCategory() string {
	return r.String("fields", "status", "statusCategory", "key")
}

// Format renders a decoded JSON value as a flat string: strings as is,
// numbers as their literal text, booleans as true/false, objects and arrays
// as compact JSON.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any, Record, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

func asObject(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case map[string]any:
		return v, true
	case Record:
		return v, true
	default:
		return nil, false
	}
}
