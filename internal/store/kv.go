package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// KV is the durable key-value backend the Store writes its records to.
// Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// SQLiteKV implements KV on the kv_store table.
type SQLiteKV struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteKV creates a KV over an open, migrated SQLite connection.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db, now: time.Now}
}

// Get retrieves the value stored under key.
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("querying key %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the value stored under key.
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, s.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// MemoryKV is a process-local KV used when durable storage is disabled and
// in tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get retrieves the value stored under key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
