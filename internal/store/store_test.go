package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/rewind/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newEntry(id string) *models.Entry {
	return &models.Entry{
		ID:        id,
		Timestamp: "2024-01-02T10:00:00Z",
		Type:      models.EntryTypeNote,
		Title:     "title " + id,
		Content:   "line one\nline two",
	}
}

func allIDs(t *testing.T, s *EntryStore) []string {
	t.Helper()
	all, err := s.All()
	require.NoError(t, err)
	out := make([]string, len(all))
	for i, e := range all {
		out[i] = e.ID
	}
	return out
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rewind.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	n, err := db.EntryCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEntryStore(t *testing.T) {
	db := setupTestDB(t)
	s := NewEntryStore(db)

	t.Run("Insert prepends", func(t *testing.T) {
		require.NoError(t, s.Insert(newEntry("1")))
		require.NoError(t, s.Insert(newEntry("2")))
		require.NoError(t, s.Insert(newEntry("3")))
		assert.Equal(t, []string{"3", "2", "1"}, allIDs(t, s))
	})

	t.Run("Insert rejects duplicate id", func(t *testing.T) {
		assert.Error(t, s.Insert(newEntry("1")))
	})

	t.Run("GetByID round-trips metadata and newlines", func(t *testing.T) {
		e := newEntry("meta")
		e.Metadata = &models.Metadata{
			FilePath: "/src/app.go",
			Language: "go",
			Tags:     []string{"b", "a", "b"},
		}
		require.NoError(t, s.Insert(e))

		got, err := s.GetByID("meta")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, e, got)
	})

	t.Run("GetByID miss returns nil", func(t *testing.T) {
		got, err := s.GetByID("missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty metadata is stored as absent", func(t *testing.T) {
		e := newEntry("empty-meta")
		e.Metadata = &models.Metadata{}
		require.NoError(t, s.Insert(e))

		got, err := s.GetByID("empty-meta")
		require.NoError(t, err)
		assert.Nil(t, got.Metadata)
	})

	t.Run("Replace keeps position", func(t *testing.T) {
		e := newEntry("2")
		e.Title = "edited"
		require.NoError(t, s.Replace(e))

		got, err := s.GetByID("2")
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Title)
		assert.Equal(t, []string{"empty-meta", "meta", "3", "2", "1"}, allIDs(t, s))

		assert.Error(t, s.Replace(newEntry("nope")))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete("3"))
		assert.Error(t, s.Delete("3"))
		assert.Equal(t, []string{"empty-meta", "meta", "2", "1"}, allIDs(t, s))
	})

	t.Run("TrimTo drops oldest inserted", func(t *testing.T) {
		n, err := s.TrimTo(2)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		assert.Equal(t, []string{"empty-meta", "meta"}, allIDs(t, s))
	})

	t.Run("DeleteAll", func(t *testing.T) {
		n, err := s.DeleteAll()
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		count, err := s.Count()
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestInsertMany(t *testing.T) {
	db := setupTestDB(t)
	s := NewEntryStore(db)

	require.NoError(t, s.Insert(newEntry("old")))

	batch := []models.Entry{*newEntry("a"), *newEntry("b"), *newEntry("old"), *newEntry("a"), *newEntry("c")}
	n, err := s.InsertMany(batch)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c", "old"}, allIDs(t, s))
}

func TestKVStore(t *testing.T) {
	db := setupTestDB(t)
	kv := NewKVStore(db)

	var settings models.AppSettings
	found, err := kv.Get(KeySettings, &settings)
	require.NoError(t, err)
	assert.False(t, found)

	want := models.AppSettings{AutoCapture: true, CaptureInterval: 7, MaxEntries: 50}
	require.NoError(t, kv.Put(KeySettings, want))
	found, err = kv.Get(KeySettings, &settings)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, settings)

	want.EnableOCR = true
	require.NoError(t, kv.Put(KeySettings, want))
	_, err = kv.Get(KeySettings, &settings)
	require.NoError(t, err)
	assert.True(t, settings.EnableOCR)
}
