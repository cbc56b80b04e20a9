package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iammorganparry/rewind/internal/models"
)

// entryColumns is the canonical column list for all SELECT queries.
// Order must match scanEntry.
const entryColumns = `id, timestamp, type, title, content, metadata`

// EntryStore persists the entry collection. The collection order is
// newest-inserted first: every insert goes to the head.
type EntryStore struct {
	db *DB
}

func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

// Insert puts a new entry at the head of the collection.
func (s *EntryStore) Insert(e *models.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSeq(tx)
	if err != nil {
		return err
	}
	if err := insertEntry(tx, e, seq); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertMany prepends a batch so that entries[0] becomes the new head and the
// batch keeps its own order. Entries whose ID already exists are skipped; the
// number inserted is returned.
func (s *EntryStore) InsertMany(entries []models.Entry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin insert many: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSeq(tx)
	if err != nil {
		return 0, err
	}

	// First occurrence wins for ids repeated inside the batch.
	var fresh []models.Entry
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		var exists int
		err := tx.QueryRow(`SELECT COUNT(*) FROM entries WHERE id = ?`, e.ID).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("check entry %s: %w", e.ID, err)
		}
		if exists == 0 {
			fresh = append(fresh, e)
		}
	}

	for i := len(fresh) - 1; i >= 0; i-- {
		if err := insertEntry(tx, &fresh[i], seq); err != nil {
			return 0, err
		}
		seq++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert many: %w", err)
	}
	return len(fresh), nil
}

// GetByID fetches a single entry by ID. It returns nil, nil when absent.
func (s *EntryStore) GetByID(id string) (*models.Entry, error) {
	row := s.db.QueryRow(fmt.Sprintf(`SELECT %s FROM entries WHERE id = ?`, entryColumns), id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// Replace overwrites every field of an existing entry, keeping its position.
func (s *EntryStore) Replace(e *models.Entry) error {
	md, err := encodeMetadata(e.Metadata)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE entries SET timestamp = ?, type = ?, title = ?, content = ?, metadata = ?
		WHERE id = ?
	`, e.Timestamp, string(e.Type), e.Title, e.Content, md, e.ID)
	if err != nil {
		return fmt.Errorf("replace entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("entry not found: %s", e.ID)
	}
	return nil
}

// Delete removes an entry by ID.
func (s *EntryStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("entry not found: %s", id)
	}
	return nil
}

// DeleteAll empties the collection and returns how many entries were removed.
func (s *EntryStore) DeleteAll() (int64, error) {
	res, err := s.db.Exec("DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("delete all entries: %w", err)
	}
	return res.RowsAffected()
}

// All returns the whole collection, newest-inserted first.
func (s *EntryStore) All() ([]models.Entry, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT %s FROM entries ORDER BY seq DESC`, entryColumns))
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	result := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// Count returns the number of stored entries.
func (s *EntryStore) Count() (int, error) {
	return s.db.EntryCount()
}

// TrimTo keeps the max newest-inserted entries and deletes the rest.
func (s *EntryStore) TrimTo(max int) (int64, error) {
	if max <= 0 {
		return 0, nil
	}
	res, err := s.db.Exec(`
		DELETE FROM entries WHERE seq NOT IN (
			SELECT seq FROM entries ORDER BY seq DESC LIMIT ?
		)
	`, max)
	if err != nil {
		return 0, fmt.Errorf("trim entries: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var e models.Entry
	var metadata sql.NullString
	if err := row.Scan(&e.ID, &e.Timestamp, &e.Type, &e.Title, &e.Content, &metadata); err != nil {
		return nil, err
	}
	if metadata.Valid {
		var md models.Metadata
		if json.Unmarshal([]byte(metadata.String), &md) == nil && !md.IsEmpty() {
			e.Metadata = &md
		}
	}
	return &e, nil
}

func nextSeq(tx *sql.Tx) (int64, error) {
	var seq int64
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq), 0) + 1 FROM entries`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

func insertEntry(tx *sql.Tx, e *models.Entry, seq int64) error {
	md, err := encodeMetadata(e.Metadata)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO entries (id, seq, timestamp, type, title, content, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, seq, e.Timestamp, string(e.Type), e.Title, e.Content, md)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// encodeMetadata returns nil for absent or empty metadata so the column stays NULL.
func encodeMetadata(md *models.Metadata) (*string, error) {
	if md.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	s := string(b)
	return &s, nil
}
