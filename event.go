package locallink

// Event is a sealed interface representing a change during a turn.
// Events are purely informational; the transcript is already updated
// by the time an EventMessageAppended is delivered.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventMessageAppended signals a record was added to the transcript.
type EventMessageAppended struct {
	Message Message
}

func (EventMessageAppended) event() {}

// EventPendingChanged signals the pending flag flipped.
type EventPendingChanged struct {
	Pending bool
}

func (EventPendingChanged) event() {}

// Interface compliance checks.
var (
	_ Event = EventMessageAppended{}
	_ Event = EventPendingChanged{}
)
