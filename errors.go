package locallink

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrEmptyUtterance indicates a submission with no non-whitespace text.
	ErrEmptyUtterance = errors.New("empty utterance")

	// ErrSlotEmpty indicates the durable slot holds no value for the key.
	ErrSlotEmpty = errors.New("slot empty")

	// ErrUnknownSender indicates a persisted record with an unrecognized sender.
	ErrUnknownSender = errors.New("unknown sender")

	// ErrNoCompletion indicates the upstream model returned no choices.
	ErrNoCompletion = errors.New("no completion")
)
