package locallink

import "context"

// DefaultSlotKey is the key the transcript is mirrored under.
const DefaultSlotKey = "localLinkChatMessages"

// Slot is a durable key-value cell. Put overwrites the whole value.
// Get returns ErrSlotEmpty when nothing is stored under key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
