package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Fixed keys in the kv table.
const (
	KeySettings = "settings"
	KeyUIState  = "ui-state"
)

// KVStore holds small JSON documents under fixed keys.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get decodes the value stored under key into dst. found is false when the
// key has never been written; dst is left untouched in that case.
func (s *KVStore) Get(key string, dst any) (found bool, err error) {
	var raw string
	err = s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put stores value as JSON under key, replacing any previous value.
func (s *KVStore) Put(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(b), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
