// Package kv defines the key-value port everything persists through: an
// on-device store of serialized record collections addressed by string
// keys. The contract is get/set/delete only; there are no transactions and
// no atomicity across keys.
package kv

import "context"

// Store is the outbound port for the device key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent;
	// an absent key is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
