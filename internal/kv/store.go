// ABOUTME: Key-value store capability consumed by the storage layer.
// ABOUTME: String keys, UTF-8 JSON payloads; backends are interchangeable.
package kv

import "errors"

// ErrStoreUnavailable reports that the backing engine could not be opened
// or reached. Surfaced by backend constructors; not retried automatically.
var ErrStoreUnavailable = errors.New("storage backend unavailable")

// Store is the byte-level persistence capability. Implementations must
// treat a missing key as absence, not an error: Get returns (nil, nil).
type Store interface {
	// Get returns the value for key, or nil if the key does not exist.
	Get(key string) ([]byte, error)

	// Set stores value under key, overwriting any existing value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys returns all keys starting with prefix. An empty prefix
	// returns every key.
	Keys(prefix string) ([]string, error)

	// GetMany returns the values for the given keys in one batched
	// fetch. Missing keys are simply absent from the result map.
	GetMany(keys []string) (map[string][]byte, error)

	// Clear removes all keys.
	Clear() error

	// Close releases the underlying engine.
	Close() error
}
