// Package kv defines the key-value store gateway the service is built on.
//
// The contract is deliberately weak: no transactions, no compare-and-swap in
// the base interface, and only last-write-wins ordering per key. Backends may
// be eventually consistent across replicas. Code layered on top must not
// assume anything stronger.
package kv

import "context"

// Store is the minimal capability every backend provides.
type Store interface {
	// Get returns the value for key. An absent key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all keys with the given prefix, sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ConditionalStore is an optional capability for backends that support
// conditional writes. Callers must treat it as best-effort: a backend that
// does not implement it falls back to read-then-write, which leaves a
// check-then-act window open between concurrent writers.
type ConditionalStore interface {
	// PutIfAbsent writes value under key only if the key does not exist,
	// reporting whether the write happened.
	PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
}
