package search

import (
	"sort"
	"strings"
	"time"

	"github.com/iammorganparry/rewind/internal/models"
)

const dayLayout = "2006-01-02"

// ParseTimestamp parses an entry timestamp or a filter bound. Full ISO-8601
// instants keep their offset, offset-less date-times are read in local time,
// and date-only strings are midnight UTC. ok is false for anything else.
func ParseTimestamp(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// sortNewestFirst stably orders entries by descending timestamp in place.
// Entries with unparsable timestamps go after every valid one.
func sortNewestFirst(entries []models.Entry) {
	type keyed struct {
		entry models.Entry
		at    time.Time
		valid bool
	}
	keys := make([]keyed, len(entries))
	for i, e := range entries {
		at, ok := ParseTimestamp(e.Timestamp)
		keys[i] = keyed{entry: e, at: at, valid: ok}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].valid && keys[j].valid {
			return keys[i].at.After(keys[j].at)
		}
		return keys[i].valid && !keys[j].valid
	})
	for i := range keys {
		entries[i] = keys[i].entry
	}
}
