// Package server exposes the LocalLink bot endpoint over HTTP.
//
// POST /chat accepts {"message": "..."} and always answers 200 with
// {"reply": "..."} once the body parses; upstream failures become canned
// replies so the chat client has something to show.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/locallink"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Canned replies for failed completions.
const (
	UpstreamErrorReply = "Oops! Something went wrong with the AI."
	NoCompletionReply  = "Sorry, I couldn't generate a response."
	EmptyReply         = "No reply from AI."
)

// StatusMessage is returned by GET /.
const StatusMessage = "LocalLink AI Chatbot is running"

// ExchangeIDHeader carries the id assigned to each chat exchange.
const ExchangeIDHeader = "X-Exchange-ID"

const maxBodyBytes = 1 << 20

// Server answers chat requests using a Completer.
type Server struct {
	completer      locallink.Completer
	systemPrompt   string
	model          string
	allowedOrigins []string
	logger         *slog.Logger
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAllowedOrigins sets the CORS allow list. "*" allows any origin,
// which is the default.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// WithSystemPrompt sets the system prompt sent with every completion.
func WithSystemPrompt(prompt string) Option {
	return func(s *Server) { s.systemPrompt = prompt }
}

// WithModel sets the model requested from the completer. Empty uses the
// completer's default.
func WithModel(model string) Option {
	return func(s *Server) { s.model = model }
}

// New creates a Server backed by completer.
func New(completer locallink.Completer, opts ...Option) *Server {
	s := &Server{
		completer:      completer,
		allowedOrigins: []string{"*"},
		logger:         slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "server")
	return s
}

// Handler returns the HTTP handler with routes and middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(s.allowedOrigins))

	r.Get("/", s.handleStatus)
	r.Post("/chat", s.handleChat)

	return r
}

type chatRequest struct {
	Message json.RawMessage `json:"message"`
}

// text returns the message as a string. Non-string values are passed on as
// their JSON text; a missing or null message is empty.
func (r chatRequest) text() string {
	if len(r.Message) == 0 || string(r.Message) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Message, &s); err == nil {
		return s
	}
	return string(r.Message)
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": StatusMessage})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exchangeID := uuid.NewString()
	w.Header().Set(ExchangeIDHeader, exchangeID)
	logger := s.logger.With("exchange_id", exchangeID, "request_id", middleware.GetReqID(r.Context()))

	start := time.Now()
	text, err := s.completer.Complete(r.Context(), locallink.CompletionRequest{
		Model:        s.model,
		SystemPrompt: s.systemPrompt,
		Message:      req.text(),
	})
	reply := replyFor(text, err)
	if err != nil {
		logger.ErrorContext(r.Context(), "completion failed", "error", err)
	} else {
		logger.InfoContext(r.Context(), "completion done",
			"duration_ms", time.Since(start).Milliseconds(),
			"reply_len", len(reply))
	}

	respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// replyFor maps a completion outcome to the text sent to the client.
func replyFor(text string, err error) string {
	switch {
	case errors.Is(err, locallink.ErrNoCompletion):
		return NoCompletionReply
	case err != nil:
		return UpstreamErrorReply
	case strings.TrimSpace(text) == "":
		return EmptyReply
	default:
		return text
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
