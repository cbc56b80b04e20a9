package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/rewind/internal/models"
)

func entry(id, ts string, typ models.EntryType, title, content string) models.Entry {
	return models.Entry{ID: id, Timestamp: ts, Type: typ, Title: title, Content: content}
}

func ids(entries []models.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func fixture() []models.Entry {
	return []models.Entry{
		entry("a", "2024-01-01T09:00:00Z", models.EntryTypeNote, "Groceries", "milk and eggs"),
		entry("b", "2024-01-03T12:00:00Z", models.EntryTypeCode, "Handler", "func main() {}"),
		entry("c", "2024-01-02T08:30:00Z", models.EntryTypeClipboard, "Copied link", "https://example.com"),
		{
			ID: "d", Timestamp: "2024-01-02T18:00:00Z", Type: models.EntryTypeFile,
			Title: "Modified file", Content: "export class Service {}",
			Metadata: &models.Metadata{
				FilePath: "/src/services/UserService.ts",
				Language: "typescript",
				Context:  "Copied from the wiki",
				Tags:     []string{"backend", "Services"},
			},
		},
	}
}

func TestFilterByStructuredCriteria(t *testing.T) {
	t.Run("type filter keeps every matching entry", func(t *testing.T) {
		got := FilterByStructuredCriteria(fixture(), models.SearchFilters{Type: models.EntryTypeCode})
		assert.Equal(t, []string{"b"}, ids(got))
	})

	t.Run("no filters is identity", func(t *testing.T) {
		got := FilterByStructuredCriteria(fixture(), models.SearchFilters{})
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
	})

	t.Run("date-only start is inclusive", func(t *testing.T) {
		entries := []models.Entry{
			entry("note", "2024-01-01", models.EntryTypeNote, "n", "n"),
			entry("code", "2024-01-02", models.EntryTypeCode, "c", "c"),
		}
		got := FilterByStructuredCriteria(entries, models.SearchFilters{
			DateRange: &models.DateRange{Start: "2024-01-02"},
		})
		assert.Equal(t, []string{"code"}, ids(got))
	})

	t.Run("end bound is inclusive and order is preserved", func(t *testing.T) {
		got := FilterByStructuredCriteria(fixture(), models.SearchFilters{
			DateRange: &models.DateRange{Start: "2024-01-01T09:00:00Z", End: "2024-01-02T18:00:00Z"},
		})
		assert.Equal(t, []string{"a", "c", "d"}, ids(got))
	})

	t.Run("type and range combine", func(t *testing.T) {
		got := FilterByStructuredCriteria(fixture(), models.SearchFilters{
			Type:      models.EntryTypeNote,
			DateRange: &models.DateRange{Start: "2024-01-02"},
		})
		assert.Empty(t, got)
	})

	t.Run("unparsable timestamp is excluded while a bound is active", func(t *testing.T) {
		entries := append(fixture(), entry("bad", "yesterday", models.EntryTypeNote, "x", "y"))
		got := FilterByStructuredCriteria(entries, models.SearchFilters{
			DateRange: &models.DateRange{Start: "2023-01-01"},
		})
		assert.NotContains(t, ids(got), "bad")

		got = FilterByStructuredCriteria(entries, models.SearchFilters{})
		assert.Contains(t, ids(got), "bad")
	})

	t.Run("unparsable bound is ignored", func(t *testing.T) {
		got := FilterByStructuredCriteria(fixture(), models.SearchFilters{
			DateRange: &models.DateRange{Start: "not a date"},
		})
		assert.Len(t, got, 4)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		in := fixture()
		_ = FilterByStructuredCriteria(in, models.SearchFilters{Type: models.EntryTypeFile})
		assert.Equal(t, fixture(), in)
	})
}

func TestFilterByText(t *testing.T) {
	t.Run("blank query is identity without re-sort", func(t *testing.T) {
		for _, q := range []string{"", "   ", "\t"} {
			got := FilterByText(fixture(), q)
			assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
		}
	})

	t.Run("matches are sorted newest first", func(t *testing.T) {
		got := FilterByText(fixture(), "e")
		assert.Equal(t, []string{"b", "d", "c", "a"}, ids(got))
	})

	t.Run("case insensitive over metadata", func(t *testing.T) {
		tests := []struct {
			query string
			want  []string
		}{
			{"USERSERVICE", []string{"d"}},
			{"TypeScript", []string{"d"}},
			{"from the wiki", []string{"d"}},
			{"services", []string{"d"}},
			{"milk", []string{"a"}},
			{"func main", []string{"b"}},
			{"nothing here", []string{}},
		}
		for _, tt := range tests {
			t.Run(tt.query, func(t *testing.T) {
				assert.Equal(t, tt.want, ids(FilterByText(fixture(), tt.query)))
			})
		}
	})

	t.Run("substring, not tokens", func(t *testing.T) {
		got := FilterByText(fixture(), "ilk and e")
		assert.Equal(t, []string{"a"}, ids(got))
	})

	t.Run("every result contains the query", func(t *testing.T) {
		for _, e := range FilterByText(fixture(), "co") {
			assert.Contains(t, SearchableText(e), "co")
		}
	})

	t.Run("unparsable timestamps sort last", func(t *testing.T) {
		entries := []models.Entry{
			entry("bad", "???", models.EntryTypeNote, "match", "x"),
			entry("old", "2020-01-01T00:00:00Z", models.EntryTypeNote, "match", "x"),
			entry("new", "2024-01-01T00:00:00Z", models.EntryTypeNote, "match", "x"),
		}
		assert.Equal(t, []string{"new", "old", "bad"}, ids(FilterByText(entries, "match")))
	})
}

func TestFilterByCategory(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(FilterByCategory(fixture(), "all")))
	assert.Equal(t, []string{"c"}, ids(FilterByCategory(fixture(), "clipboard")))
	assert.Empty(t, FilterByCategory(fixture(), "screenshot"))
}

func TestSearchComposition(t *testing.T) {
	got := Search(fixture(), "o", models.SearchFilters{
		DateRange: &models.DateRange{Start: "2024-01-02"},
	}, "file")
	require.Len(t, got, 1)
	assert.Equal(t, "d", got[0].ID)

	got = Search(fixture(), "", models.SearchFilters{}, "all")
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestSearchableText(t *testing.T) {
	e := fixture()[3]
	assert.Equal(t,
		"modified file export class service {} /src/services/userservice.ts typescript copied from the wiki backend services",
		SearchableText(e))

	bare := entry("x", "", models.EntryTypeNote, "T", "C")
	assert.Equal(t, "t c   ", SearchableText(bare))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-01-02T10:00:00.000Z", true},
		{"2024-01-02T10:00:00+02:00", true},
		{"2024-01-02T10:00:00", true},
		{"2024-01-02", true},
		{" 2024-01-02 ", true},
		{"", false},
		{"02/01/2024", false},
		{"Invalid Date", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, ok := ParseTimestamp(tt.in)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
