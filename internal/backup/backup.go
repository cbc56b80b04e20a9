// Package backup reads and writes the portable JSON form of the entry
// collection.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/iammorganparry/rewind/internal/models"
)

// ErrInvalidFormat is returned when an import document is not a JSON array.
var ErrInvalidFormat = errors.New("invalid file format: expected a JSON array of entries")

// FileName is the download name for a backup taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("rewind-backup-%s.json", now.UTC().Format("2006-01-02"))
}

// Export writes entries as an indented JSON array.
func Export(w io.Writer, entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Result is the outcome of reading a backup document.
type Result struct {
	Entries []models.Entry
	Invalid int
}

// Import parses a backup document. Elements lacking a non-empty id,
// timestamp, type, title or content are skipped and counted in Invalid.
func Import(r io.Reader) (*Result, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if raw == nil {
		return nil, ErrInvalidFormat
	}

	res := &Result{Entries: []models.Entry{}}
	for _, item := range raw {
		var e models.Entry
		if err := json.Unmarshal(item, &e); err != nil || !complete(e) {
			res.Invalid++
			continue
		}
		if e.Metadata.IsEmpty() {
			e.Metadata = nil
		}
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}

func complete(e models.Entry) bool {
	return e.ID != "" && e.Timestamp != "" && e.Type != "" && e.Title != "" && e.Content != ""
}
