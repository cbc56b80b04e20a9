package models

// Entry is one recorded memory item on the timeline.
//
// Timestamp is an ISO-8601 string assigned at creation and never rewritten;
// Type is fixed at creation and survives edits.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	Type      EntryType `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Metadata is the optional attachment on an entry. It is nil rather than
// empty when no field is set.
type Metadata struct {
	FilePath string   `json:"filePath,omitempty"`
	FileType string   `json:"fileType,omitempty"`
	Language string   `json:"language,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Context  string   `json:"context,omitempty"`
}

// IsEmpty reports whether no sub-field is set.
func (m *Metadata) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.FilePath == "" && m.FileType == "" && m.Language == "" &&
		m.ImageURL == "" && m.Context == "" && len(m.Tags) == 0
}

// EntryType classifies where a memory came from.
type EntryType string

const (
	EntryTypeClipboard  EntryType = "clipboard"
	EntryTypeFile       EntryType = "file"
	EntryTypeScreenshot EntryType = "screenshot"
	EntryTypeCode       EntryType = "code"
	EntryTypeNote       EntryType = "note"
)

// EntryTypes lists every type in sidebar order.
var EntryTypes = []EntryType{
	EntryTypeClipboard,
	EntryTypeFile,
	EntryTypeScreenshot,
	EntryTypeCode,
	EntryTypeNote,
}

var ValidEntryTypes = map[EntryType]bool{
	EntryTypeClipboard:  true,
	EntryTypeFile:       true,
	EntryTypeScreenshot: true,
	EntryTypeCode:       true,
	EntryTypeNote:       true,
}

func (t EntryType) IsValid() bool {
	return ValidEntryTypes[t]
}

// CategoryAll selects every entry type.
const CategoryAll = "all"

// SearchFilters is the structured part of a query. Tags is reserved and not
// consulted by filtering.
type SearchFilters struct {
	Type      EntryType  `json:"type,omitempty"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

// DateRange bounds are date-only or full ISO-8601 strings; either may be empty.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// AppSettings are the user-tunable capture settings.
type AppSettings struct {
	AutoCapture     bool `json:"autoCapture"`
	CaptureInterval int  `json:"captureInterval" validate:"min=1"`
	MaxEntries      int  `json:"maxEntries" validate:"min=1"`
	EnableOCR       bool `json:"enableOCR"`
}

// UIState is presentation state persisted next to the entries.
type UIState struct {
	DarkMode         bool   `json:"darkMode"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
	SelectedCategory string `json:"selectedCategory"`
}
