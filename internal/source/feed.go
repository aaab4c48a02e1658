// Package source implements the adapter layer between the engine and the
// push-based remote store. Each collection is exposed as a Feed: the latest
// decoded snapshot plus loading/error state, updated whenever the store
// signals a change. The engine only ever reads whole snapshots — there is no
// partial update and no cross-feed transaction.
package source

import (
	"encoding/json"
	"sync"
)

// Snapshot is the uniform adapter contract: the latest decoded data, a
// loading flag (true until the first load resolves), a hard error (the load
// or decode itself failed) and an optional soft validation error (individual
// records were skipped but the snapshot is usable).
type Snapshot[T any] struct {
	Data          T
	Loading       bool
	Err           error
	ValidationErr error
}

// Decoded carries a decode result: the data plus any per-record soft
// validation error the decoder chose to surface.
type Decoded[T any] struct {
	Data          T
	ValidationErr error
}

// DecodeFunc turns one collection document into its typed map. An empty
// document must decode to the type's empty value, not fail.
type DecodeFunc[T any] func(doc []byte) (Decoded[T], error)

// DecodeJSON is the default decoder: plain JSON unmarshal, no soft
// validation.
func DecodeJSON[T any](doc []byte) (Decoded[T], error) {
	var out Decoded[T]
	if len(doc) == 0 {
		return out, nil
	}
	err := json.Unmarshal(doc, &out.Data)
	return out, err
}

// Feed holds the latest snapshot of one collection. Snapshots are immutable:
// every update replaces the whole value, and readers receive copies of the
// struct (the maps inside are shared but never written after publication).
type Feed[T any] struct {
	name   string
	decode DecodeFunc[T]

	mu   sync.RWMutex
	snap Snapshot[T]

	notify func(name string)
}

// NewFeed creates a feed that starts in the loading state.
func NewFeed[T any](name string, decode DecodeFunc[T], notify func(name string)) *Feed[T] {
	return &Feed[T]{
		name:   name,
		decode: decode,
		snap:   Snapshot[T]{Loading: true},
		notify: notify,
	}
}

// Name returns the collection name ("bookings", "loans", …).
func (f *Feed[T]) Name() string { return f.name }

// Snapshot returns the latest snapshot.
func (f *Feed[T]) Snapshot() Snapshot[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap
}

// Set replaces the snapshot and signals the change. Last snapshot wins:
// there is no merging with the previous value.
func (f *Feed[T]) Set(snap Snapshot[T]) {
	f.mu.Lock()
	f.snap = snap
	f.mu.Unlock()
	if f.notify != nil {
		f.notify(f.name)
	}
}

// Apply decodes a raw collection document into the feed. A decode failure
// becomes a hard error snapshot that keeps no stale data.
func (f *Feed[T]) Apply(doc []byte) {
	decoded, err := f.decode(doc)
	if err != nil {
		var zero T
		f.Set(Snapshot[T]{Data: zero, Err: err})
		return
	}
	f.Set(Snapshot[T]{Data: decoded.Data, ValidationErr: decoded.ValidationErr})
}

// Fail publishes a hard error snapshot (e.g. the store read itself failed).
func (f *Feed[T]) Fail(err error) {
	var zero T
	f.Set(Snapshot[T]{Data: zero, Err: err})
}
