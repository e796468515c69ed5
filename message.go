// Package locallink contains the domain types for the LocalLink campus
// services assistant: the message and transcript model, the gateway and
// slot interfaces, and the events emitted while a turn is in flight.
// Implementations live in subpackages named after their dependency.
package locallink

import "time"

// TimestampLayout is the HH:MM layout used for message timestamps.
const TimestampLayout = "15:04"

// Message is a single record in a transcript.
type Message struct {
	Sender    Sender
	Text      string
	Timestamp string
}

// NewUserMessage creates a user record stamped with t.
func NewUserMessage(text string, t time.Time) Message {
	return Message{Sender: SenderUser, Text: text, Timestamp: FormatTimestamp(t)}
}

// NewBotMessage creates a bot record stamped with t.
func NewBotMessage(text string, t time.Time) Message {
	return Message{Sender: SenderBot, Text: text, Timestamp: FormatTimestamp(t)}
}

// FormatTimestamp renders t in the local HH:MM form used on records.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Transcript is the ordered sequence of records for a session.
// It only ever grows within a session.
type Transcript []Message

// Clone returns a copy that does not share the backing array.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}
