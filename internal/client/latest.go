package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a response that finished after a newer
// request for the same key had already started.
var ErrSuperseded = errors.New("request superseded by a newer one")

// Latest enforces "last request wins" per key. Starting a request cancels the
// one still in flight for the same key.
type Latest struct {
	mu      sync.Mutex
	gens    map[string]uint64
	cancels map[string]context.CancelFunc
}

func NewLatest() *Latest {
	return &Latest{
		gens:    make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin registers a new request for key and returns its context. The returned
// finish func releases the context and reports whether the request is still
// the newest for key.
func (l *Latest) Begin(ctx context.Context, key string) (context.Context, func() bool) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if prev, ok := l.cancels[key]; ok {
		prev()
	}
	l.gens[key]++
	gen := l.gens[key]
	l.cancels[key] = cancel
	l.mu.Unlock()

	finish := func() bool {
		l.mu.Lock()
		current := l.gens[key] == gen
		if current {
			delete(l.cancels, key)
		}
		l.mu.Unlock()
		cancel()
		return current
	}
	return ctx, finish
}

// Do runs fn as the newest request for key. A result that lost the race is
// discarded and ErrSuperseded is returned instead.
func Do[T any](l *Latest, ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	ctx, finish := l.Begin(ctx, key)
	v, err := fn(ctx)
	if !finish() {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}
