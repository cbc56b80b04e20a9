package models

// SearchMode selects between the two exclusive search paths.
type SearchMode string

const (
	SearchModeText     SearchMode = "text"
	SearchModeSemantic SearchMode = "semantic"
)

func (m SearchMode) IsValid() bool {
	return m == "" || m == SearchModeText || m == SearchModeSemantic
}

// AddRequest is the payload for POST /entries. Tags is the raw
// comma-separated input.
type AddRequest struct {
	Type     EntryType `json:"type" validate:"required,oneof=clipboard file screenshot code note"`
	Title    string    `json:"title" validate:"required"`
	Content  string    `json:"content" validate:"required"`
	FilePath string    `json:"filePath,omitempty"`
	FileType string    `json:"fileType,omitempty"`
	Language string    `json:"language,omitempty"`
	ImageURL string    `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Context  string    `json:"context,omitempty"`
	Tags     string    `json:"tags,omitempty"`
}

// UpdateRequest is the payload for PUT /entries/{id}. The entry type is not
// editable.
type UpdateRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	FilePath string `json:"filePath,omitempty"`
	FileType string `json:"fileType,omitempty"`
	Language string `json:"language,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Context  string `json:"context,omitempty"`
	Tags     string `json:"tags,omitempty"`
}

// ViewRequest describes what the timeline should show.
type ViewRequest struct {
	Query    string        `json:"query"`
	Filters  SearchFilters `json:"filters"`
	Category string        `json:"category"`
	Mode     SearchMode    `json:"mode"`
	GroupBy  string        `json:"groupBy"`
}

// ScoredEntry pairs an entry with its semantic relevance.
type ScoredEntry struct {
	Entry Entry   `json:"entry"`
	Score float64 `json:"score"`
}

// DayGroup is one timeline section. Date is YYYY-MM-DD, or empty for entries
// whose timestamp cannot be parsed.
type DayGroup struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// ViewResponse is returned from GET /entries.
type ViewResponse struct {
	Entries   []Entry       `json:"entries"`
	Groups    []DayGroup    `json:"groups,omitempty"`
	Matches   []ScoredEntry `json:"matches,omitempty"`
	Relevance int           `json:"relevance,omitempty"`
	Meta      ViewMeta      `json:"meta"`
}

type ViewMeta struct {
	Filtered int        `json:"filtered"`
	Total    int        `json:"total"`
	Mode     SearchMode `json:"mode"`
}

// ImportResponse is returned from POST /import.
type ImportResponse struct {
	Imported  int `json:"imported"`
	Invalid   int `json:"invalid"`
	Duplicate int `json:"duplicate"`
}

// StatsResponse is returned from GET /stats.
type StatsResponse struct {
	Categories map[string]int `json:"categories"`
	DataSize   int64          `json:"dataSize"`
	DataSizeHR string         `json:"dataSizeHuman"`
	Storage    string         `json:"storage"`
}

// InsightsResponse is returned from GET /insights.
type InsightsResponse struct {
	Insights    []string `json:"insights"`
	Suggestions []string `json:"suggestions"`
}

// EntryInsight is returned from GET /entries/{id}/insight.
type EntryInsight struct {
	ID            string   `json:"id"`
	Summary       string   `json:"summary"`
	SuggestedTags []string `json:"suggestedTags"`
}

// CaptureStatus is returned from GET /capture.
type CaptureStatus struct {
	Active         bool           `json:"active"`
	Interval       int            `json:"intervalSeconds"`
	RecentActivity []string       `json:"recentActivity"`
	Stats          map[string]int `json:"stats"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status     string       `json:"status"`
	DB         ServiceCheck `json:"db"`
	EntryCount int          `json:"entryCount"`
}

type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
