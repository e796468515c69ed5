// Package fs provides a filesystem-backed durable slot. Each key is stored
// in its own file and every Put overwrites the whole value atomically.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/locallink"
)

// Interface compliance check.
var _ locallink.Slot = (*Slot)(nil)

// Slot implements [locallink.Slot] with one JSON file per key under dir.
type Slot struct {
	dir    string
	logger *slog.Logger
}

// Option configures a [Slot].
type Option func(*Slot)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Slot) { s.logger = l }
}

// New creates a Slot rooted at dir. The directory is created on first Put.
func New(dir string, opts ...Option) *Slot {
	s := &Slot{dir: dir, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "fs.slot")
	return s
}

// Path returns the file backing key.
func (s *Slot) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the value stored under key.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, locallink.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("fs: read %s: %w", key, err)
	}
	return data, nil
}

// Put replaces the value stored under key, creating parent directories
// as needed. The write goes to a temp file that is renamed into place so
// a crash never leaves a half-written value behind.
func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("fs: create directories: %w", err)
	}
	path := s.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("fs: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("fs: rename temp file: %w", err)
	}
	s.logger.Debug("slot written", "key", key, "bytes", len(data))
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Slot) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("fs: remove %s: %w", key, err)
	}
	return nil
}

// validKey rejects keys that would escape the slot directory.
func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("fs: invalid key %q", key)
	}
	return nil
}
