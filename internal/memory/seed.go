package memory

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/iammorganparry/rewind/internal/models"
)

//go:embed samples.yaml
var builtinSamples []byte

// SeedEntry is one entry in a YAML seed document. Ago is how long before
// seeding the entry is stamped.
type SeedEntry struct {
	Ago      string           `yaml:"ago"`
	Type     models.EntryType `yaml:"type"`
	Title    string           `yaml:"title"`
	Content  string           `yaml:"content"`
	FilePath string           `yaml:"filePath"`
	Language string           `yaml:"language"`
	ImageURL string           `yaml:"imageUrl"`
	Context  string           `yaml:"context"`
	Tags     []string         `yaml:"tags"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) ([]SeedEntry, error) {
	var seeds []SeedEntry
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	return seeds, nil
}

// LoadSeedFile reads a YAML seed document from disk.
func LoadSeedFile(path string) ([]SeedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// BuiltinSamples returns the demonstration entries shipped with the binary.
func BuiltinSamples() []SeedEntry {
	seeds, err := ParseSeed(builtinSamples)
	if err != nil {
		panic(err)
	}
	return seeds
}

// SeedIfEmpty fills an empty timeline with seeds while auto-capture is on.
// It returns the number of entries written.
func (s *Service) SeedIfEmpty(seeds []SeedEntry) (int, error) {
	settings, err := s.Settings()
	if err != nil {
		return 0, err
	}
	if !settings.AutoCapture {
		return 0, nil
	}
	count, err := s.entries.Count()
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := s.now()
	batch := make([]models.Entry, 0, len(seeds))
	for _, seed := range seeds {
		e, err := seed.toEntry(now)
		if err != nil {
			return 0, err
		}
		batch = append(batch, e)
	}

	n, err := s.entries.InsertMany(batch)
	if err != nil {
		return 0, fmt.Errorf("insert seeds: %w", err)
	}
	s.logger.Info("seeded sample entries", "count", n)
	return n, nil
}

func (seed SeedEntry) toEntry(now time.Time) (models.Entry, error) {
	var ago time.Duration
	if seed.Ago != "" {
		d, err := time.ParseDuration(seed.Ago)
		if err != nil {
			return models.Entry{}, fmt.Errorf("seed %q: invalid ago: %w", seed.Title, err)
		}
		ago = d
	}
	if !seed.Type.IsValid() {
		return models.Entry{}, fmt.Errorf("seed %q: invalid type %q", seed.Title, seed.Type)
	}
	title, content := strings.TrimSpace(seed.Title), strings.TrimSpace(seed.Content)
	if title == "" || content == "" {
		return models.Entry{}, fmt.Errorf("seed %q: title and content are required", seed.Title)
	}

	return models.Entry{
		ID:        uuid.New().String(),
		Timestamp: FormatTimestamp(now.Add(-ago)),
		Type:      seed.Type,
		Title:     title,
		Content:   content,
		Metadata: buildMetadata(metadataFields{
			FilePath: seed.FilePath,
			Language: seed.Language,
			ImageURL: seed.ImageURL,
			Context:  seed.Context,
			Tags:     seed.Tags,
		}),
	}, nil
}
