package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/iammorganparry/rewind/internal/backup"
	"github.com/iammorganparry/rewind/internal/models"
	"github.com/iammorganparry/rewind/internal/observability"
	"github.com/iammorganparry/rewind/internal/privacy"
	"github.com/iammorganparry/rewind/internal/search"
	"github.com/iammorganparry/rewind/internal/store"
	"github.com/iammorganparry/rewind/internal/validate"
)

var (
	// ErrNotFound is returned when an operation names an unknown entry.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalid wraps request validation failures.
	ErrInvalid = errors.New("invalid request")
)

// GroupByDay asks View to section its result by calendar day.
const GroupByDay = "day"

// timestampLayout matches the millisecond ISO-8601 form used in backups.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t the way entry timestamps are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Service is the main facade for all timeline operations.
type Service struct {
	entries  *store.EntryStore
	kv       *store.KVStore
	defaults models.AppSettings
	loc      *time.Location
	metrics  *observability.Collector
	now      func() time.Time
	logger   *slog.Logger
}

// NewService creates a new timeline service. defaults are used until
// settings are saved; loc is the zone calendar days are computed in.
func NewService(
	entries *store.EntryStore,
	kv *store.KVStore,
	defaults models.AppSettings,
	loc *time.Location,
	metrics *observability.Collector,
	logger *slog.Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		entries:  entries,
		kv:       kv,
		defaults: defaults,
		loc:      loc,
		metrics:  metrics,
		now:      time.Now,
		logger:   logger,
	}
}

// Add creates a new entry at the head of the timeline. <private> blocks are
// removed from the content before it is stored.
func (s *Service) Add(req *models.AddRequest) (*models.Entry, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = privacy.StripPrivateTags(req.Content)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	e := &models.Entry{
		ID:        uuid.New().String(),
		Timestamp: FormatTimestamp(s.now()),
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		Metadata: buildMetadata(metadataFields{
			FilePath: req.FilePath,
			FileType: req.FileType,
			Language: req.Language,
			ImageURL: req.ImageURL,
			Context:  req.Context,
			Tags:     SplitTags(req.Tags),
		}),
	}
	if err := s.entries.Insert(e); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	s.metrics.EntryCreated()
	s.logger.Info("entry added", "id", e.ID, "type", e.Type)

	if err := s.enforceLimit(); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable fields of an entry. ID, timestamp and type
// are preserved.
func (s *Service) Update(id string, req *models.UpdateRequest) (*models.Entry, error) {
	existing, err := s.entries.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = privacy.StripPrivateTags(req.Content)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.Metadata = buildMetadata(metadataFields{
		FilePath: req.FilePath,
		FileType: req.FileType,
		Language: req.Language,
		ImageURL: req.ImageURL,
		Context:  req.Context,
		Tags:     SplitTags(req.Tags),
	})
	if err := s.entries.Replace(existing); err != nil {
		return nil, err
	}
	s.logger.Info("entry updated", "id", id)
	return existing, nil
}

// Delete removes one entry.
func (s *Service) Delete(id string) error {
	e, err := s.entries.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.entries.Delete(id); err != nil {
		return err
	}
	s.metrics.EntriesRemoved(1)
	s.logger.Info("entry deleted", "id", id)
	return nil
}

// GetByID retrieves an entry, or nil when none has that ID.
func (s *Service) GetByID(id string) (*models.Entry, error) {
	return s.entries.GetByID(id)
}

// ClearAll removes every entry and returns how many were removed.
func (s *Service) ClearAll() (int64, error) {
	n, err := s.entries.DeleteAll()
	if err != nil {
		return 0, err
	}
	s.metrics.EntriesRemoved(n)
	s.logger.Warn("timeline cleared", "removed", n)
	return n, nil
}

// List returns the whole timeline, newest-inserted first.
func (s *Service) List() ([]models.Entry, error) {
	return s.entries.All()
}

// Count returns the number of stored entries.
func (s *Service) Count() (int, error) {
	return s.entries.Count()
}

// View runs one timeline query. The text path applies structured filters,
// free-text search and the category. The semantic path ranks by relevance
// instead of running the free-text search.
func (s *Service) View(req *models.ViewRequest) (*models.ViewResponse, error) {
	if !req.Mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown search mode %q", ErrInvalid, req.Mode)
	}
	if req.GroupBy != "" && req.GroupBy != GroupByDay {
		return nil, fmt.Errorf("%w: unknown grouping %q", ErrInvalid, req.GroupBy)
	}
	mode := req.Mode
	if mode == "" {
		mode = models.SearchModeText
	}

	all, err := s.entries.All()
	if err != nil {
		return nil, err
	}
	s.warnUnparsableBounds(req.Filters.DateRange)

	resp := &models.ViewResponse{}
	switch mode {
	case models.SearchModeSemantic:
		scored := search.ScoreAndRankSemantic(search.FilterByStructuredCriteria(all, req.Filters), req.Query)
		scored = filterScoredByCategory(scored, req.Category)
		if strings.TrimSpace(req.Query) != "" {
			resp.Matches = scored
			if len(scored) > 0 {
				resp.Relevance = search.RelevancePercent(scored[0].Score)
			}
		}
		resp.Entries = search.Entries(scored)
	default:
		resp.Entries = search.Search(all, req.Query, req.Filters, req.Category)
	}
	s.metrics.SearchPerformed(string(mode))

	if req.GroupBy == GroupByDay {
		resp.Groups = search.GroupByCalendarDayIn(resp.Entries, s.loc)
	}
	resp.Meta = models.ViewMeta{Filtered: len(resp.Entries), Total: len(all), Mode: mode}
	return resp, nil
}

func filterScoredByCategory(scored []models.ScoredEntry, category string) []models.ScoredEntry {
	if category == "" || category == models.CategoryAll {
		return scored
	}
	out := make([]models.ScoredEntry, 0, len(scored))
	for _, se := range scored {
		if string(se.Entry.Type) == category {
			out = append(out, se)
		}
	}
	return out
}

func (s *Service) warnUnparsableBounds(dr *models.DateRange) {
	if dr == nil {
		return
	}
	for name, bound := range map[string]string{"start": dr.Start, "end": dr.End} {
		if strings.TrimSpace(bound) == "" {
			continue
		}
		if _, ok := search.ParseTimestamp(bound); !ok {
			s.logger.Warn("ignoring unparsable date bound", "bound", name, "value", bound)
		}
	}
}

// Suggestions returns query suggestions drawn from the stored entries.
func (s *Service) Suggestions(limit int) ([]string, error) {
	all, err := s.entries.All()
	if err != nil {
		return nil, err
	}
	return search.Suggestions(all, limit), nil
}

// Stats returns per-category counts and the serialized size of the timeline.
func (s *Service) Stats() (*models.StatsResponse, error) {
	all, err := s.entries.All()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(all)
	if err != nil {
		return nil, fmt.Errorf("measure entries: %w", err)
	}
	size := int64(len(data))
	return &models.StatsResponse{
		Categories: search.CategoryStats(all),
		DataSize:   size,
		DataSizeHR: humanize.IBytes(uint64(size)),
		Storage:    "SQLite",
	}, nil
}

// Export writes the whole timeline as a backup document.
func (s *Service) Export(w io.Writer) error {
	all, err := s.entries.All()
	if err != nil {
		return err
	}
	return backup.Export(w, all)
}

// Import restores a backup document. Valid entries are placed at the head of
// the timeline in document order; IDs already present are skipped.
func (s *Service) Import(r io.Reader) (*models.ImportResponse, error) {
	res, err := backup.Import(r)
	if err != nil {
		return nil, err
	}
	n, err := s.entries.InsertMany(res.Entries)
	if err != nil {
		return nil, fmt.Errorf("import entries: %w", err)
	}
	s.metrics.Imported(n)
	s.logger.Info("backup imported", "imported", n, "invalid", res.Invalid, "duplicate", len(res.Entries)-n)

	if err := s.enforceLimit(); err != nil {
		return nil, err
	}
	return &models.ImportResponse{
		Imported:  n,
		Invalid:   res.Invalid,
		Duplicate: len(res.Entries) - n,
	}, nil
}

// Settings returns the saved settings, or the defaults when none are saved.
func (s *Service) Settings() (models.AppSettings, error) {
	settings := s.defaults
	if _, err := s.kv.Get(store.KeySettings, &settings); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// UpdateSettings validates and saves settings, trimming the timeline if the
// entry limit shrank.
func (s *Service) UpdateSettings(settings models.AppSettings) (models.AppSettings, error) {
	if err := validate.Struct(settings); err != nil {
		return models.AppSettings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.kv.Put(store.KeySettings, settings); err != nil {
		return models.AppSettings{}, err
	}
	s.logger.Info("settings updated",
		"auto_capture", settings.AutoCapture,
		"capture_interval", settings.CaptureInterval,
		"max_entries", settings.MaxEntries,
	)
	if err := s.enforceLimit(); err != nil {
		return models.AppSettings{}, err
	}
	return settings, nil
}

// UIState returns the saved presentation state.
func (s *Service) UIState() (models.UIState, error) {
	state := models.UIState{SelectedCategory: models.CategoryAll}
	if _, err := s.kv.Get(store.KeyUIState, &state); err != nil {
		return models.UIState{}, err
	}
	return state, nil
}

// UpdateUIState saves presentation state.
func (s *Service) UpdateUIState(state models.UIState) (models.UIState, error) {
	if state.SelectedCategory == "" {
		state.SelectedCategory = models.CategoryAll
	}
	if state.SelectedCategory != models.CategoryAll && !models.EntryType(state.SelectedCategory).IsValid() {
		return models.UIState{}, fmt.Errorf("%w: unknown category %q", ErrInvalid, state.SelectedCategory)
	}
	if err := s.kv.Put(store.KeyUIState, state); err != nil {
		return models.UIState{}, err
	}
	return state, nil
}

func (s *Service) enforceLimit() error {
	settings, err := s.Settings()
	if err != nil {
		return err
	}
	n, err := s.entries.TrimTo(settings.MaxEntries)
	if err != nil {
		return err
	}
	if n > 0 {
		s.metrics.EntriesRemoved(n)
		s.logger.Info("trimmed timeline to limit", "removed", n, "max_entries", settings.MaxEntries)
	}
	return nil
}

// SplitTags parses comma-separated tag input, dropping blanks.
func SplitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

type metadataFields struct {
	FilePath string
	FileType string
	Language string
	ImageURL string
	Context  string
	Tags     []string
}

// buildMetadata trims each field and returns nil when nothing is left.
func buildMetadata(f metadataFields) *models.Metadata {
	md := &models.Metadata{
		FilePath: strings.TrimSpace(f.FilePath),
		FileType: strings.TrimSpace(f.FileType),
		Language: strings.TrimSpace(f.Language),
		ImageURL: strings.TrimSpace(f.ImageURL),
		Context:  strings.TrimSpace(f.Context),
		Tags:     f.Tags,
	}
	if md.IsEmpty() {
		return nil
	}
	return md
}
