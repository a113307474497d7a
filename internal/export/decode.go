package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nhle/jiractl/internal/issue"
)

// ErrUnrecognizedShape is returned when the input is neither a single issue,
// a list of issues, nor an object wrapping an "issues" list.
var ErrUnrecognizedShape = errors.New("unrecognized JSON structure")

// DecodeRecords reads issue JSON in any of the shapes Jira exports produce:
//
//	{"key": ..., "fields": {...}}     a single issue
//	[{...}, {...}]                    a bare list
//	{"issues": [{...}, {...}], ...}   a search response
//
// A single issue is detected before the wrapper, so an object holding both
// "fields" and "issues" is treated as one issue.
func DecodeRecords(r io.Reader) ([]issue.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding issues json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after the top-level value")
		}
		return nil, fmt.Errorf("decoding issues json: %w", err)
	}

	switch v := data.(type) {
	case map[string]any:
		if _, ok := v["fields"]; ok {
			return []issue.Record{v}, nil
		}
		if list, ok := v["issues"]; ok {
			items, ok := list.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: \"issues\" is not a list", ErrUnrecognizedShape)
			}
			return toRecords(items), nil
		}
	case []any:
		return toRecords(v), nil
	}
	return nil, ErrUnrecognizedShape
}

// ReadFile decodes the issue JSON stored at path.
func ReadFile(path string) ([]issue.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// toRecords keeps list positions stable: an element that is not an object
// becomes an empty record and therefore a row of empty cells.
func toRecords(items []any) []issue.Record {
	records := make([]issue.Record, len(items))
	for i, it := range items {
		if obj, ok := it.(map[string]any); ok {
			records[i] = obj
		}
	}
	return records
}
