package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	derrors "git.home.luguber.info/inful/docportal/internal/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-backed preference store.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		client_id TEXT PRIMARY KEY,
		framework TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (unixepoch())
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the stored framework preference for a client.
func (s *SQLiteStore) Get(ctx context.Context, clientID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var framework string
	err := s.db.QueryRowContext(ctx,
		"SELECT framework FROM preferences WHERE client_id = ?", clientID).Scan(&framework)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, derrors.StoreError("get", err)
	}
	return framework, true, nil
}

// Set stores or replaces the framework preference for a client.
func (s *SQLiteStore) Set(ctx context.Context, clientID, framework string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (client_id, framework, updated_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(client_id) DO UPDATE SET framework = excluded.framework, updated_at = excluded.updated_at`,
		clientID, framework)
	if err != nil {
		return derrors.StoreError("set", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
