package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/rewind/internal/models"
)

func entry(typ models.EntryType, ts, content string) models.Entry {
	return models.Entry{ID: ts, Timestamp: ts, Type: typ, Title: "t", Content: content}
}

func TestAnalyze(t *testing.T) {
	entries := []models.Entry{
		entry(models.EntryTypeNote, "2024-01-01T09:15:00Z", ""),
		entry(models.EntryTypeCode, "2024-01-01T14:00:00Z", ""),
		entry(models.EntryTypeCode, "2024-01-02T14:30:00Z", ""),
	}

	got := Analyze(entries, time.UTC)
	require.Len(t, got.Insights, 5)
	assert.Equal(t, "You've captured 3 memories in your timeline", got.Insights[0])
	assert.Equal(t, "Most active type: code", got.Insights[1])
	assert.Equal(t, "Peak activity time: 14:00", got.Insights[2])
	assert.Len(t, got.Suggestions, 5)
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Analyze(nil, time.UTC)
	assert.Equal(t, "You've captured 0 memories in your timeline", got.Insights[0])
	assert.Equal(t, "Most active type: none", got.Insights[1])
	assert.Equal(t, "Peak activity time: Unknown", got.Insights[2])
}

func TestMostActiveTypeTieGoesToFirstSeen(t *testing.T) {
	entries := []models.Entry{
		entry(models.EntryTypeFile, "x", ""),
		entry(models.EntryTypeNote, "y", ""),
	}
	assert.Equal(t, "file", MostActiveType(entries))
}

func TestPeakHour(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)

	t.Run("uses location", func(t *testing.T) {
		entries := []models.Entry{entry(models.EntryTypeNote, "2024-01-01T23:00:00Z", "")}
		assert.Equal(t, "8:00", PeakHour(entries, tokyo))
	})

	t.Run("tie goes to earlier hour", func(t *testing.T) {
		entries := []models.Entry{
			entry(models.EntryTypeNote, "2024-01-01T17:00:00Z", ""),
			entry(models.EntryTypeNote, "2024-01-01T03:00:00Z", ""),
		}
		assert.Equal(t, "3:00", PeakHour(entries, time.UTC))
	})

	t.Run("skips unparsable timestamps", func(t *testing.T) {
		entries := []models.Entry{entry(models.EntryTypeNote, "garbage", "")}
		assert.Equal(t, "Unknown", PeakHour(entries, time.UTC))
	})
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "Personal note or reminder created", Summarize(models.Entry{Type: models.EntryTypeNote}))
	assert.Equal(t, "Memory entry captured", Summarize(models.Entry{Type: "video"}))
}

func TestSuggestTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "grocery list", []string{}},
		{"react keyword", "A React component", []string{"react"}},
		{"jsx also hits js", "<App /> in JSX", []string{"react", "javascript"}},
		{"js substring", "parse the JSON body", []string{"javascript"}},
		{"capped at three", "React fetch error in app.js with style", []string{"react", "javascript", "css"}},
		{"debugging and meeting", "bug triage meeting", []string{"debugging", "meeting"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestTags(models.Entry{Content: tt.content}))
		})
	}
}

func TestForEntry(t *testing.T) {
	got := ForEntry(models.Entry{ID: "1", Type: models.EntryTypeCode, Content: "fetch('/api')"})
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "Code snippet saved, could be a solution or reference", got.Summary)
	assert.Equal(t, []string{"api"}, got.SuggestedTags)
}
