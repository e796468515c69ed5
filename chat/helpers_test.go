package chat_test

import (
	"context"
	"sync"

	"github.com/fwojciec/locallink"
	"github.com/fwojciec/locallink/mock"
)

// memSlot returns a mock.Slot backed by a map, plus an accessor for the
// raw bytes stored under a key.
func memSlot() (*mock.Slot, func(key string) ([]byte, bool)) {
	var mu sync.Mutex
	data := make(map[string][]byte)
	s := &mock.Slot{
		GetFn: func(_ context.Context, key string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := data[key]
			if !ok {
				return nil, locallink.ErrSlotEmpty
			}
			return v, nil
		},
		PutFn: func(_ context.Context, key string, v []byte) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = append([]byte(nil), v...)
			return nil
		},
		DeleteFn: func(_ context.Context, key string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(data, key)
			return nil
		},
	}
	raw := func(key string) ([]byte, bool) {
		mu.Lock()
		defer mu.Unlock()
		v, ok := data[key]
		return v, ok
	}
	return s, raw
}

func replyGateway(text string) *mock.Gateway {
	return &mock.Gateway{
		SendFn: func(context.Context, string) locallink.Result {
			return locallink.Reply{Text: text}
		},
	}
}
