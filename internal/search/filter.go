package search

import (
	"strings"
	"time"

	"github.com/iammorganparry/rewind/internal/models"
)

// Search composes the plain (non-scored) path the timeline renders:
// structured filters, then text, then category.
func Search(entries []models.Entry, query string, filters models.SearchFilters, category string) []models.Entry {
	result := FilterByStructuredCriteria(entries, filters)
	result = FilterByText(result, query)
	return FilterByCategory(result, category)
}

// FilterByStructuredCriteria applies the type and date-range filters without
// reordering. Both range bounds are inclusive. An unparsable bound is ignored;
// while any bound is active, entries with unparsable timestamps are dropped.
func FilterByStructuredCriteria(entries []models.Entry, filters models.SearchFilters) []models.Entry {
	var start, end time.Time
	var hasStart, hasEnd bool
	if filters.DateRange != nil {
		start, hasStart = ParseTimestamp(filters.DateRange.Start)
		end, hasEnd = ParseTimestamp(filters.DateRange.End)
	}

	result := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if filters.Type != "" && e.Type != filters.Type {
			continue
		}
		if hasStart || hasEnd {
			at, ok := ParseTimestamp(e.Timestamp)
			if !ok {
				continue
			}
			if hasStart && at.Before(start) {
				continue
			}
			if hasEnd && at.After(end) {
				continue
			}
		}
		result = append(result, e)
	}
	return result
}

// FilterByText keeps entries whose searchable text contains query, case
// insensitively, and returns them newest first. A blank query returns the
// input order untouched.
func FilterByText(entries []models.Entry, query string) []models.Entry {
	result := make([]models.Entry, 0, len(entries))
	if strings.TrimSpace(query) == "" {
		return append(result, entries...)
	}

	needle := strings.ToLower(query)
	for _, e := range entries {
		if strings.Contains(SearchableText(e), needle) {
			result = append(result, e)
		}
	}
	sortNewestFirst(result)
	return result
}

// FilterByCategory keeps entries of the given type; "all" keeps everything.
func FilterByCategory(entries []models.Entry, category string) []models.Entry {
	result := make([]models.Entry, 0, len(entries))
	if category == "" || category == models.CategoryAll {
		return append(result, entries...)
	}
	for _, e := range entries {
		if string(e.Type) == category {
			result = append(result, e)
		}
	}
	return result
}

// SearchableText is the lower-cased, space-joined concatenation of title,
// content, file path, language, context and tags. Missing metadata fields
// still contribute an empty slot.
func SearchableText(e models.Entry) string {
	var md models.Metadata
	if e.Metadata != nil {
		md = *e.Metadata
	}
	parts := make([]string, 0, 5+len(md.Tags))
	parts = append(parts, e.Title, e.Content, md.FilePath, md.Language, md.Context)
	parts = append(parts, md.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
