package backup

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/rewind/internal/models"
)

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "rewind-backup-2024-03-09.json", FileName(now))
}

func TestExportImportRoundTrip(t *testing.T) {
	entries := []models.Entry{
		{
			ID: "1", Timestamp: "2024-01-01T10:00:00.000Z", Type: models.EntryTypeCode,
			Title: "Hook", Content: "useEffect(() => {\n}, [])",
			Metadata: &models.Metadata{Language: "javascript", Tags: []string{"react", "react"}},
		},
		{ID: "2", Timestamp: "2024-01-02T10:00:00.000Z", Type: models.EntryTypeNote, Title: "Note", Content: "body"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, entries))
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))
	assert.NotContains(t, buf.String(), `"metadata": {}`)

	res, err := Import(&buf)
	require.NoError(t, err)
	assert.Zero(t, res.Invalid)
	assert.Equal(t, entries, res.Entries)
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestImport(t *testing.T) {
	t.Run("skips incomplete elements", func(t *testing.T) {
		doc := `[
			{"id":"1","timestamp":"2024-01-01","type":"note","title":"t","content":"c"},
			{"id":"2","timestamp":"2024-01-01","type":"note","title":"","content":"c"},
			{"timestamp":"2024-01-01","type":"note","title":"t","content":"c"},
			42,
			"text"
		]`
		res, err := Import(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, res.Entries, 1)
		assert.Equal(t, "1", res.Entries[0].ID)
		assert.Equal(t, 4, res.Invalid)
	})

	t.Run("rejects non-arrays", func(t *testing.T) {
		for _, doc := range []string{`{"id":"1"}`, `null`, `not json`, ``} {
			_, err := Import(strings.NewReader(doc))
			assert.True(t, errors.Is(err, ErrInvalidFormat), "doc %q", doc)
		}
	})

	t.Run("empty metadata object is dropped", func(t *testing.T) {
		doc := `[{"id":"1","timestamp":"2024-01-01","type":"note","title":"t","content":"c","metadata":{}}]`
		res, err := Import(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Nil(t, res.Entries[0].Metadata)
	})
}
