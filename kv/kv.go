// Package kv provides the durable key-value medium backing the yata stores.
//
// A Medium maps string keys to string values. The stores keep one key per
// entity kind and write full snapshots, so the contract is deliberately
// small: get, set, delete. All implementations must make Set durable before
// returning nil.
package kv

import "context"

// Medium is an asynchronous string key-value store.
type Medium interface {
	// Get returns the value for key. The second result is false when the
	// key does not exist; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}
