package locallink

import "context"

// FallbackReply is shown in place of a bot reply when the gateway fails.
const FallbackReply = "Oops! Something went wrong."

// Result is a sealed interface describing how a gateway call settled.
// The unexported marker method prevents external implementations.
type Result interface {
	result()
}

// Reply is a successful gateway call carrying the bot's text.
type Reply struct {
	Text string
}

func (Reply) result() {}

// Failure is a gateway call that did not produce a usable reply.
type Failure struct {
	Err error
}

func (Failure) result() {}

// Gateway sends a user utterance to the bot and reports the outcome.
// Send never returns an error; transport and protocol failures are
// reported as a Failure result.
type Gateway interface {
	Send(ctx context.Context, utterance string) Result
}

// Interface compliance checks.
var (
	_ Result = Reply{}
	_ Result = Failure{}
)
