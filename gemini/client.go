package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/locallink"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ locallink.Completer = (*Client)(nil)

// Client implements [locallink.Completer] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

type config struct {
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*config)

// WithModel sets the model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	cfg := config{model: defaultModel, logger: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.httpClient,
	}
	if cfg.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Client{
		client: gc,
		model:  cfg.model,
		logger: cfg.logger.With("component", "gemini"),
	}, nil
}

// Complete asks Gemini for a single reply to req.Message.
func (c *Client) Complete(ctx context.Context, req locallink.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.Message), buildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", locallink.ErrNoCompletion
	}
	c.logger.DebugContext(ctx, "completion done",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"finish_reason", resp.Candidates[0].FinishReason)
	return strings.TrimSpace(resp.Text()), nil
}

func buildConfig(req locallink.CompletionRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}
	return config
}
