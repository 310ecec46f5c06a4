// Package options caches the selectable values of the project form: image types, project
// categories and project types.
package options

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Repository persists named lists of option values
type Repository interface {
	// Load returns the list stored under key; ok is false when nothing was stored yet
	Load(key string) (values []string, ok bool, err error)
	Save(key string, values []string) error
}

// MemoryRepository keeps lists in memory
type MemoryRepository struct {
	mu    sync.RWMutex
	lists map[string][]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{lists: make(map[string][]string)}
}

func (r *MemoryRepository) Load(key string) ([]string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values, ok := r.lists[key]
	if !ok {
		return nil, false, nil
	}
	return append([]string(nil), values...), true, nil
}

func (r *MemoryRepository) Save(key string, values []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists[key] = append([]string{}, values...)
	return nil
}

// SQLiteRepository keeps lists in a SQLite file, one JSON array per key
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens or creates the cache database at path
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS option_lists (
		key TEXT PRIMARY KEY,
		value_json TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Load(key string) ([]string, bool, error) {
	var raw string
	err := r.db.QueryRow(`SELECT value_json FROM option_lists WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return values, true, nil
}

func (r *SQLiteRepository) Save(key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO option_lists (key, value_json) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = CURRENT_TIMESTAMP`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
