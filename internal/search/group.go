package search

import (
	"sort"
	"time"

	"github.com/iammorganparry/rewind/internal/models"
)

// GroupByCalendarDay buckets entries by their local calendar date.
func GroupByCalendarDay(entries []models.Entry) []models.DayGroup {
	return GroupByCalendarDayIn(entries, time.Local)
}

// GroupByCalendarDayIn buckets entries by calendar date in loc. Entries keep
// their relative order inside a bucket; buckets are newest day first, with
// unparsable timestamps collected in a trailing bucket whose Date is empty.
func GroupByCalendarDayIn(entries []models.Entry, loc *time.Location) []models.DayGroup {
	if loc == nil {
		loc = time.Local
	}

	index := make(map[string]int)
	var groups []models.DayGroup
	for _, e := range entries {
		key := ""
		if at, ok := ParseTimestamp(e.Timestamp); ok {
			key = at.In(loc).Format(dayLayout)
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.DayGroup{Date: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Date == "" || groups[j].Date == "" {
			return groups[j].Date == "" && groups[i].Date != ""
		}
		return groups[i].Date > groups[j].Date
	})
	return groups
}
