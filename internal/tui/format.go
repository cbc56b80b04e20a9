package tui

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/iammorganparry/rewind/internal/search"
)

// DayLabel renders a YYYY-MM-DD group key relative to now.
func DayLabel(date string, now time.Time, loc *time.Location) string {
	if date == "" {
		return "Unknown date"
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return date
	}
	today := now.In(loc).Format("2006-01-02")
	switch date {
	case today:
		return "Today"
	case now.In(loc).AddDate(0, 0, -1).Format("2006-01-02"):
		return "Yesterday"
	}
	return day.Format("Monday, January 2, 2006")
}

// TimeAgo renders an entry timestamp as a relative time.
func TimeAgo(ts string, now time.Time) string {
	at, ok := search.ParseTimestamp(ts)
	if !ok {
		return "unknown time"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}
