// Package mock provides test doubles for locallink interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/locallink"
)

// Interface compliance checks.
var (
	_ locallink.Gateway   = (*Gateway)(nil)
	_ locallink.Slot      = (*Slot)(nil)
	_ locallink.Completer = (*Completer)(nil)
)

// Gateway is a test double for locallink.Gateway.
// Set SendFn before calling Send.
type Gateway struct {
	SendFn func(ctx context.Context, utterance string) locallink.Result
}

// Send delegates to SendFn.
func (g *Gateway) Send(ctx context.Context, utterance string) locallink.Result {
	return g.SendFn(ctx, utterance)
}

// Slot is a test double for locallink.Slot.
// Set the function fields for the methods you need.
type Slot struct {
	GetFn    func(ctx context.Context, key string) ([]byte, error)
	PutFn    func(ctx context.Context, key string, data []byte) error
	DeleteFn func(ctx context.Context, key string) error
}

// Get delegates to GetFn.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

// Put delegates to PutFn.
func (s *Slot) Put(ctx context.Context, key string, data []byte) error {
	return s.PutFn(ctx, key, data)
}

// Delete delegates to DeleteFn.
func (s *Slot) Delete(ctx context.Context, key string) error {
	return s.DeleteFn(ctx, key)
}

// Completer is a test double for locallink.Completer.
// Set CompleteFn before calling Complete.
type Completer struct {
	CompleteFn func(ctx context.Context, req locallink.CompletionRequest) (string, error)
}

// Complete delegates to CompleteFn.
func (c *Completer) Complete(ctx context.Context, req locallink.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}
