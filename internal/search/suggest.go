package search

import (
	"strings"

	"github.com/iammorganparry/rewind/internal/models"
)

// DefaultSuggestionLimit is how many query suggestions the search box shows.
const DefaultSuggestionLimit = 5

var commonQueries = []string{
	"React error fix",
	"API documentation",
	"CSS styling tips",
	"JavaScript functions",
	"Database queries",
	"Meeting notes",
	"Code snippets",
	"Bug reports",
	"Design patterns",
	"Performance optimization",
}

// Suggestions returns the canned queries that share at least one word with
// some entry's title, content or tags.
func Suggestions(entries []models.Entry, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		parts := []string{e.Title, e.Content}
		if e.Metadata != nil {
			parts = append(parts, e.Metadata.Tags...)
		}
		texts[i] = strings.ToLower(strings.Join(parts, " "))
	}

	out := []string{}
	for _, s := range commonQueries {
		if len(out) == limit {
			break
		}
		if relevant(strings.Fields(strings.ToLower(s)), texts) {
			out = append(out, s)
		}
	}
	return out
}

func relevant(words, texts []string) bool {
	for _, text := range texts {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
	}
	return false
}

// CategoryStats counts entries per type, plus "all". Types with no entries
// are absent.
func CategoryStats(entries []models.Entry) map[string]int {
	stats := map[string]int{models.CategoryAll: len(entries)}
	for _, e := range entries {
		stats[string(e.Type)]++
	}
	return stats
}
