// Package openrouter implements [locallink.Completer] on top of the
// OpenRouter chat completions API using the openai-go SDK.
package openrouter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/locallink"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Defaults for the OpenRouter upstream.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "meta-llama/llama-3.1-70b-instruct"
	DefaultReferer = "http://localhost:5173"
	DefaultTitle   = "LocalLink AI Chatbot"
)

// Interface compliance check.
var _ locallink.Completer = (*Client)(nil)

// Client implements [locallink.Completer] for OpenRouter.
type Client struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

type config struct {
	baseURL    string
	model      string
	referer    string
	title      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*config)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithModel sets the default model ID.
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithReferer sets the HTTP-Referer header OpenRouter uses for attribution.
func WithReferer(referer string) Option {
	return func(c *config) { c.referer = referer }
}

// WithTitle sets the X-Title header.
func WithTitle(title string) Option {
	return func(c *config) { c.title = title }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New creates a Client authenticated with apiKey. Requests are attempted
// once; the SDK's automatic retries are disabled.
func New(apiKey string, opts ...Option) *Client {
	cfg := config{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		referer: DefaultReferer,
		title:   DefaultTitle,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.referer != "" {
		reqOpts = append(reqOpts, option.WithHeader("HTTP-Referer", cfg.referer))
	}
	if cfg.title != "" {
		reqOpts = append(reqOpts, option.WithHeader("X-Title", cfg.title))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	return &Client{
		client: openai.NewClient(reqOpts...),
		model:  cfg.model,
		logger: cfg.logger.With("component", "openrouter"),
	}
}

// Complete sends the system prompt and user message as a single chat
// completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req locallink.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Message))

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", locallink.ErrNoCompletion
	}

	c.logger.DebugContext(ctx, "completion done",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
