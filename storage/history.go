package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Lookup is one recorded tool fetch: which tool ran, what it looked up and
// the value it came back with.
type Lookup struct {
	ID        int64
	Tool      string
	Key       string
	Value     string
	CreatedAt time.Time
}

// HistoryStore records successful tool lookups in a sqlite database so past
// fetches can be reviewed outside the conversation.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := &HistoryStore{db: db}
	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}

	return store, nil
}

func (h *HistoryStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		lookup_key TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lookups_tool ON lookups(tool);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Record stores one successful lookup. Implements tools.LookupRecorder.
func (h *HistoryStore) Record(tool, key, value string) error {
	_, err := h.db.Exec(
		`INSERT INTO lookups (tool, lookup_key, value, created_at) VALUES (?, ?, ?, ?)`,
		tool, key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// Recent returns the most recent lookups, newest first.
func (h *HistoryStore) Recent(limit int) ([]Lookup, error) {
	rows, err := h.db.Query(
		`SELECT id, tool, lookup_key, value, created_at FROM lookups ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var lookups []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.ID, &l.Tool, &l.Key, &l.Value, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		lookups = append(lookups, l)
	}

	return lookups, rows.Err()
}

func (h *HistoryStore) Close() error {
	return h.db.Close()
}
