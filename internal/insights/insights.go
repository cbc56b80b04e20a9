// Package insights derives assistant-style observations from the timeline
// using fixed keyword and counting rules.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iammorganparry/rewind/internal/models"
	"github.com/iammorganparry/rewind/internal/search"
)

const maxSuggestedTags = 3

var fixedInsights = []string{
	"Detected recurring patterns in your code snippets",
	"Found 3 unresolved error messages that might need attention",
}

var fixedSuggestions = []string{
	"Consider organizing your React snippets into a dedicated collection",
	"Your API documentation copies could be tagged for easier retrieval",
	"Set up auto-tagging for error messages and bug fixes",
	"Create a summary of your weekly meeting notes",
	"Archive old clipboard entries to improve search performance",
}

var summaries = map[models.EntryType]string{
	models.EntryTypeClipboard:  "Copied text content, likely for reference or reuse",
	models.EntryTypeFile:       "File activity detected, possibly editing or reviewing",
	models.EntryTypeScreenshot: "Visual content captured, may contain important information",
	models.EntryTypeCode:       "Code snippet saved, could be a solution or reference",
	models.EntryTypeNote:       "Personal note or reminder created",
}

// tagRules are checked in order against lower-cased content.
var tagRules = []struct {
	tag      string
	keywords []string
}{
	{"react", []string{"react", "jsx"}},
	{"javascript", []string{"javascript", "js"}},
	{"python", []string{"python", "py"}},
	{"css", []string{"css", "style"}},
	{"api", []string{"api", "fetch"}},
	{"debugging", []string{"error", "bug"}},
	{"meeting", []string{"meeting", "notes"}},
}

// Analyze summarizes the whole timeline. Hours are read in loc.
func Analyze(entries []models.Entry, loc *time.Location) models.InsightsResponse {
	insights := []string{
		fmt.Sprintf("You've captured %d memories in your timeline", len(entries)),
		"Most active type: " + MostActiveType(entries),
		"Peak activity time: " + PeakHour(entries, loc),
	}
	insights = append(insights, fixedInsights...)

	return models.InsightsResponse{
		Insights:    insights,
		Suggestions: append([]string(nil), fixedSuggestions...),
	}
}

// MostActiveType returns the most frequent entry type, or "none" for an
// empty timeline. Ties go to the type seen first.
func MostActiveType(entries []models.Entry) string {
	counts := make(map[models.EntryType]int)
	var order []models.EntryType
	for _, e := range entries {
		if counts[e.Type] == 0 {
			order = append(order, e.Type)
		}
		counts[e.Type]++
	}
	if len(order) == 0 {
		return "none"
	}
	best := order[0]
	for _, t := range order[1:] {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return string(best)
}

// PeakHour returns the busiest hour of day as "H:00", or "Unknown" when no
// timestamp parses. Ties go to the earlier hour.
func PeakHour(entries []models.Entry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	counts := make(map[int]int)
	for _, e := range entries {
		if at, ok := search.ParseTimestamp(e.Timestamp); ok {
			counts[at.In(loc).Hour()]++
		}
	}
	if len(counts) == 0 {
		return "Unknown"
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})
	return fmt.Sprintf("%d:00", hours[0])
}

// Summarize describes an entry by its type.
func Summarize(e models.Entry) string {
	if s, ok := summaries[e.Type]; ok {
		return s
	}
	return "Memory entry captured"
}

// SuggestTags proposes up to three tags from keywords in the entry content.
func SuggestTags(e models.Entry) []string {
	content := strings.ToLower(e.Content)
	tags := []string{}
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(content, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
		if len(tags) == maxSuggestedTags {
			break
		}
	}
	return tags
}

// ForEntry bundles the per-entry analysis.
func ForEntry(e models.Entry) models.EntryInsight {
	return models.EntryInsight{
		ID:            e.ID,
		Summary:       Summarize(e),
		SuggestedTags: SuggestTags(e),
	}
}
