// Package gateway implements [locallink.Gateway] as a single JSON POST to
// the bot endpoint. Every failure is reported as a [locallink.Failure];
// the caller decides what the user sees.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/locallink"
)

// DefaultEndpoint is the address of a locally running bot server.
const DefaultEndpoint = "http://127.0.0.1:8000/chat"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Errors wrapped inside a Failure.
var (
	// ErrBadStatus indicates the endpoint answered with a non-2xx status.
	ErrBadStatus = errors.New("gateway: unexpected status")

	// ErrMalformedResponse indicates the body was not {"reply": string}.
	ErrMalformedResponse = errors.New("gateway: malformed response")

	// ErrResponseTooLarge indicates the body exceeded the read limit.
	ErrResponseTooLarge = errors.New("gateway: response body exceeds limit")
)

// Interface compliance check.
var _ locallink.Gateway = (*Client)(nil)

// Client posts utterances to the bot endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] for endpoint. An empty endpoint selects
// DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("component", "gateway", "endpoint", c.endpoint)
	return c
}

// Endpoint returns the address requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

type request struct {
	Message string `json:"message"`
}

type response struct {
	Reply *string `json:"reply"`
}

// Send makes exactly one attempt to deliver utterance. There is no retry;
// cancellation flows through ctx.
func (c *Client) Send(ctx context.Context, utterance string) locallink.Result {
	reply, err := c.send(ctx, utterance)
	if err != nil {
		c.logger.Warn("send failed", "error", err)
		return locallink.Failure{Err: err}
	}
	return locallink.Reply{Text: reply}
}

func (c *Client) send(ctx context.Context, utterance string) (string, error) {
	body, err := json.Marshal(request{Message: utterance})
	if err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("gateway: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrBadStatus, resp.StatusCode, snippet(data))
	}
	if len(data) > maxBodyBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxBodyBytes)
	}

	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if r.Reply == nil {
		return "", fmt.Errorf("%w: missing reply field", ErrMalformedResponse)
	}
	return *r.Reply, nil
}

// snippet trims a body for inclusion in an error message.
func snippet(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
