package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/locallink"
)

// Flow drives a user turn: it records the utterance, asks the gateway for
// a reply, and records exactly one bot message whatever the outcome.
//
// Turns are serialized. A Submit issued while another is awaiting its
// reply blocks until that turn settles, so the transcript always reads
// user, bot, user, bot in submission order.
type Flow struct {
	store    *Store
	gateway  locallink.Gateway
	fallback string
	now      func() time.Time
	logger   *slog.Logger

	turnMu  sync.Mutex
	pending atomic.Bool
}

// Option configures a [Flow].
type Option func(*Flow)

// WithFallback sets the text recorded when the gateway fails.
// Default is locallink.FallbackReply.
func WithFallback(text string) Option {
	return func(f *Flow) { f.fallback = text }
}

// WithClock sets the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

// NewFlow creates a Flow that records into store and replies via gateway.
func NewFlow(store *Store, gateway locallink.Gateway, opts ...Option) *Flow {
	f := &Flow{
		store:    store,
		gateway:  gateway,
		fallback: locallink.FallbackReply,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(f)
	}
	f.logger = f.logger.With("component", "chat.flow")
	return f
}

// SubmitOption configures a single Submit invocation.
type SubmitOption func(*submitConfig)

type submitConfig struct {
	onEvent func(locallink.Event)
}

// WithEventHandler sets a callback that receives each event during the
// turn. If nil or not set, events are silently discarded.
func WithEventHandler(h func(locallink.Event)) SubmitOption {
	return func(c *submitConfig) {
		c.onEvent = h
	}
}

// Turn is the outcome of one Submit.
type Turn struct {
	User   locallink.Message
	Bot    locallink.Message
	Result locallink.Result // raw gateway outcome, before fallback substitution
}

// Pending reports whether a bot reply is outstanding.
func (f *Flow) Pending() bool { return f.pending.Load() }

// Store returns the store the flow records into.
func (f *Flow) Store() *Store { return f.store }

// Submit runs one turn for text. Text with no non-whitespace characters is
// rejected with ErrEmptyUtterance and leaves the transcript untouched.
// Otherwise text is recorded as typed. Persistence failures are logged and
// do not fail the turn.
func (f *Flow) Submit(ctx context.Context, text string, opts ...SubmitOption) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, locallink.ErrEmptyUtterance
	}
	var cfg submitConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f.turnMu.Lock()
	defer f.turnMu.Unlock()

	// Records are persisted even when ctx is cancelled mid-turn so the
	// user/bot pair is never split in the slot.
	persistCtx := context.WithoutCancel(ctx)

	user := locallink.NewUserMessage(text, f.now())
	f.record(persistCtx, user, &cfg)
	f.setPending(true, &cfg)

	start := time.Now()
	res := f.gateway.Send(ctx, text)

	bot := locallink.NewBotMessage(f.replyText(res, time.Since(start)), f.now())
	f.record(persistCtx, bot, &cfg)
	f.setPending(false, &cfg)

	return Turn{User: user, Bot: bot, Result: res}, nil
}

// QuickReply submits the canned question for topic through the same flow
// as a typed message.
func (f *Flow) QuickReply(ctx context.Context, topic string, opts ...SubmitOption) (Turn, error) {
	return f.Submit(ctx, locallink.QuickReplyUtterance(topic), opts...)
}

func (f *Flow) record(ctx context.Context, msg locallink.Message, cfg *submitConfig) {
	// Store.Append already logged the failure; the turn carries on.
	_ = f.store.Append(ctx, msg)
	if cfg.onEvent != nil {
		cfg.onEvent(locallink.EventMessageAppended{Message: msg})
	}
}

func (f *Flow) setPending(v bool, cfg *submitConfig) {
	f.pending.Store(v)
	if cfg.onEvent != nil {
		cfg.onEvent(locallink.EventPendingChanged{Pending: v})
	}
}

// replyText applies the fallback policy: only a Reply carries text the
// user sees verbatim.
func (f *Flow) replyText(res locallink.Result, took time.Duration) string {
	switch r := res.(type) {
	case locallink.Reply:
		f.logger.Debug("reply received", "duration_ms", took.Milliseconds(), "chars", len(r.Text))
		return r.Text
	case locallink.Failure:
		f.logger.Warn("gateway failed, using fallback", "error", r.Err, "duration_ms", took.Milliseconds())
		return f.fallback
	default:
		f.logger.Error("gateway returned unknown result", "type", res)
		return f.fallback
	}
}
