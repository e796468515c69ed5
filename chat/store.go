// Package chat holds the conversation store and the send flow that drives
// a single user turn through the gateway.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/locallink"
	lljson "github.com/fwojciec/locallink/json"
)

// Store is the in-memory transcript mirrored in full to a durable slot.
// Every mutation rewrites the whole slot value.
type Store struct {
	slot   locallink.Slot
	key    string
	logger *slog.Logger

	mu       sync.Mutex
	messages locallink.Transcript
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithKey sets the slot key. Default is locallink.DefaultSlotKey.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithStoreLogger sets the logger. Default is slog.Default().
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty Store backed by slot. Call Load to restore
// a previous session.
func NewStore(slot locallink.Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:   slot,
		key:    locallink.DefaultSlotKey,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "chat.store", "key", s.key)
	return s
}

// Load replaces the in-memory transcript with the one held in the slot.
// An absent, unreadable, or corrupt slot leaves the transcript empty; the
// problem is logged and never returned.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil

	data, err := s.slot.Get(ctx, s.key)
	switch {
	case errors.Is(err, locallink.ErrSlotEmpty):
		s.logger.Debug("no saved transcript")
		return
	case err != nil:
		s.logger.Warn("read saved transcript failed, starting empty", "error", err)
		return
	}

	t, err := lljson.UnmarshalTranscript(data)
	if err != nil {
		s.logger.Warn("saved transcript is corrupt, starting empty", "error", err)
		return
	}
	s.messages = t
	s.logger.Info("transcript loaded", "messages", len(t))
}

// Append adds msg to the end of the transcript and rewrites the slot.
// The in-memory append takes effect even when persisting fails; the
// persistence error is returned so the caller may report it.
func (s *Store) Append(ctx context.Context, msg locallink.Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)

	// The slot write stays under the lock so an older snapshot can never
	// overwrite a newer one.
	data, err := lljson.MarshalTranscript(s.messages)
	if err != nil {
		return fmt.Errorf("chat: marshal transcript: %w", err)
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		s.logger.Warn("persist transcript failed", "error", err, "messages", len(s.messages))
		return fmt.Errorf("chat: persist transcript: %w", err)
	}
	return nil
}

// Messages returns a copy of the current transcript.
func (s *Store) Messages() locallink.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages.Clone()
}

// Len returns the number of records in the transcript.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
