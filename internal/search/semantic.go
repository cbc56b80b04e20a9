package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iammorganparry/rewind/internal/models"
)

// Score weights for the keyword relevance heuristic.
const (
	exactMatchWeight = 1.0
	synonymWeight    = 0.7
	tokenWeight      = 0.3
	minTokenLength   = 3
)

// SynonymGroups are the fixed related-term sets. A group contributes once per
// entry when both the query and the entry mention any of its terms.
var SynonymGroups = [][]string{
	{"error", "bug", "issue", "problem", "fix"},
	{"react", "component", "jsx", "hook", "state"},
	{"api", "fetch", "request", "endpoint", "http"},
	{"database", "sql", "query", "table", "data"},
	{"css", "style", "design", "layout", "responsive"},
	{"javascript", "js", "function", "variable", "object"},
	{"meeting", "notes", "discussion", "planning", "agenda"},
}

// ScoreAndRankSemantic scores every entry against query and returns those
// with a positive score, best first. Ties keep input order. A blank query
// passes all entries through unscored.
func ScoreAndRankSemantic(entries []models.Entry, query string) []models.ScoredEntry {
	result := make([]models.ScoredEntry, 0, len(entries))
	if strings.TrimSpace(query) == "" {
		for _, e := range entries {
			result = append(result, models.ScoredEntry{Entry: e})
		}
		return result
	}

	q := strings.ToLower(query)
	words := strings.Fields(q)
	for _, e := range entries {
		if score := scoreEntry(SearchableText(e), q, words); score > 0 {
			result = append(result, models.ScoredEntry{Entry: e, Score: score})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// Score returns the relevance of a single entry for query.
func Score(e models.Entry, query string) float64 {
	if strings.TrimSpace(query) == "" {
		return 0
	}
	q := strings.ToLower(query)
	return scoreEntry(SearchableText(e), q, strings.Fields(q))
}

func scoreEntry(text, query string, queryWords []string) float64 {
	var score float64
	if strings.Contains(text, query) {
		score += exactMatchWeight
	}

	for _, group := range SynonymGroups {
		if containsAny(query, group) && containsAny(text, group) {
			score += synonymWeight
		}
	}

	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(text) {
		tokens[tok] = true
	}
	common := 0
	for _, w := range queryWords {
		if utf8.RuneCountInString(w) >= minTokenLength && tokens[w] {
			common++
		}
	}
	score += float64(common) * tokenWeight

	return score
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// RelevancePercent renders a score the way the results banner shows it.
func RelevancePercent(score float64) int {
	return int(math.Round(score * 100))
}

// Entries strips scores, keeping rank order.
func Entries(scored []models.ScoredEntry) []models.Entry {
	out := make([]models.Entry, len(scored))
	for i, s := range scored {
		out[i] = s.Entry
	}
	return out
}
