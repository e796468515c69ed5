// Package sqlite implements [locallink.Slot] on top of a SQLite database
// using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/locallink"
	_ "modernc.org/sqlite"
)

// Interface compliance check.
var _ locallink.Slot = (*Slot)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);
`

// Slot stores each key as a row in the slots table.
type Slot struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a [Slot].
type Option func(*Slot)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Slot) { s.logger = l }
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Parent directories are created if needed. Use ":memory:" for an
// in-memory database.
func Open(path string, opts ...Option) (*Slot, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes
	// writers, which is all a single-user transcript needs.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: enable WAL mode: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}

	s := &Slot{db: db, logger: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "sqlite.slot")
	s.logger.Debug("slot store opened", "path", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Slot) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, locallink.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return value, nil
}

// Put replaces the value stored under key.
func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, data, s.now().UTC())
	if err != nil {
		return fmt.Errorf("sqlite: put %s: %w", key, err)
	}
	s.logger.Debug("slot written", "key", key, "bytes", len(data))
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Slot) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", key, err)
	}
	return nil
}
