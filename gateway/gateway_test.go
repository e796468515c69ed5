package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RequestFormat(t *testing.T) {
	t.Parallel()

	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"ok"}`))
	}))
	defer srv.Close()

	client := gateway.New(srv.URL + "/chat")
	res := client.Send(context.Background(), "Tell me about tutoring")
	assert.Equal(t, locallink.Reply{Text: "ok"}, res)

	var body map[string]any
	require.NoError(t, json.Unmarshal(captured, &body))
	assert.Equal(t, map[string]any{"message": "Tell me about tutoring"}, body)
}

func TestClient_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    locallink.Result
		wantErr error
	}{
		{name: "reply", status: 200, body: `{"reply":"Hello from LocalLink"}`, want: locallink.Reply{Text: "Hello from LocalLink"}},
		{name: "empty reply", status: 200, body: `{"reply":""}`, want: locallink.Reply{Text: ""}},
		{name: "extra fields ignored", status: 200, body: `{"reply":"hi","model":"x"}`, want: locallink.Reply{Text: "hi"}},
		{name: "created status", status: 201, body: `{"reply":"made"}`, want: locallink.Reply{Text: "made"}},
		{name: "server error", status: 500, body: `{"reply":"nope"}`, wantErr: gateway.ErrBadStatus},
		{name: "not found", status: 404, body: `not here`, wantErr: gateway.ErrBadStatus},
		{name: "invalid json", status: 200, body: `<html>`, wantErr: gateway.ErrMalformedResponse},
		{name: "missing reply", status: 200, body: `{"message":"hi"}`, wantErr: gateway.ErrMalformedResponse},
		{name: "null reply", status: 200, body: `{"reply":null}`, wantErr: gateway.ErrMalformedResponse},
		{name: "reply wrong type", status: 200, body: `{"reply":42}`, wantErr: gateway.ErrMalformedResponse},
		{name: "empty body", status: 200, body: ``, wantErr: gateway.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res := gateway.New(srv.URL).Send(context.Background(), "hi")
			if tt.wantErr == nil {
				assert.Equal(t, tt.want, res)
				return
			}
			failure, ok := res.(locallink.Failure)
			require.True(t, ok, "expected Failure, got %T", res)
			assert.ErrorIs(t, failure.Err, tt.wantErr)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := gateway.New(url).Send(context.Background(), "hi")
	failure, ok := res.(locallink.Failure)
	require.True(t, ok)
	assert.Error(t, failure.Err)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := gateway.New(srv.URL).Send(ctx, "hi")
	failure, ok := res.(locallink.Failure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, context.Canceled)
}

func TestClient_ResponseTooLarge(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"reply":"`+strings.Repeat("a", 1<<20)+`"}`)
	}))
	defer srv.Close()

	res := gateway.New(srv.URL).Send(context.Background(), "hi")
	failure, ok := res.(locallink.Failure)
	require.True(t, ok)
	assert.ErrorIs(t, failure.Err, gateway.ErrResponseTooLarge)
	assert.NotErrorIs(t, failure.Err, gateway.ErrMalformedResponse)
}

func TestClient_SingleAttempt(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res := gateway.New(srv.URL).Send(context.Background(), "hi")
	_, isFailure := res.(locallink.Failure)
	assert.True(t, isFailure)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNew_DefaultEndpoint(t *testing.T) {
	t.Parallel()
	assert.Equal(t, gateway.DefaultEndpoint, gateway.New("").Endpoint())
	assert.Equal(t, "http://example.test/chat", gateway.New("http://example.test/chat").Endpoint())
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()
	used := false
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used = true
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(stringReader(`{"reply":"via custom"}`)),
			Header:     make(http.Header),
		}, nil
	})}

	res := gateway.New("http://bot.invalid/chat", gateway.WithHTTPClient(hc)).Send(context.Background(), "hi")
	assert.True(t, used)
	assert.Equal(t, locallink.Reply{Text: "via custom"}, res)
}
