package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/nhle/jiractl/internal/issue"
)

// WriteCSV writes the table header followed by one row per record.
// Lines end in CRLF.
func WriteCSV(w io.Writer, t Table, records []issue.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(t.Row(r)); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// WriteFile writes the CSV document to path, replacing any existing file.
func WriteFile(path string, t Table, records []issue.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return WriteCSV(f, t, records)
}
