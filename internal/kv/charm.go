// ABOUTME: Charm KV implementation of the Store capability.
// ABOUTME: Cloud-synced backend; data is E2E encrypted with the user's SSH key.
package kv

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
	badger "github.com/dgraph-io/badger/v3"
)

const charmHost = "charm.2389.dev"

// Charm is a Store backed by Charm KV, which syncs through Charm Cloud.
// Writes are rejected when another process holds the database lock and
// the store falls back to read-only mode.
type Charm struct {
	mu       sync.RWMutex
	kv       *kv.KV
	autoSync bool
}

// OpenCharm opens the named Charm KV database, pulling remote state on
// startup when the database is writable.
func OpenCharm(name string) (*Charm, error) {
	if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open charm kv %q: %v", ErrStoreUnavailable, name, err)
	}

	if !db.IsReadOnly() {
		_ = db.Sync()
	}

	return &Charm{kv: db, autoSync: true}, nil
}

// SetAutoSync enables or disables automatic cloud sync after writes.
func (c *Charm) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// Sync synchronizes local state with Charm Cloud.
func (c *Charm) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// Get returns the value for key, or nil if the key does not exist.
func (c *Charm) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key and syncs if auto-sync is enabled.
func (c *Charm) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(); err != nil {
		return err
	}
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Delete removes key and syncs if auto-sync is enabled.
func (c *Charm) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(); err != nil {
		return err
	}
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// Keys returns all keys starting with prefix.
func (c *Charm) Keys(prefix string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	p := []byte(prefix)
	var keys []string
	for _, k := range all {
		if bytes.HasPrefix(k, p) {
			keys = append(keys, string(k))
		}
	}
	return keys, nil
}

// GetMany returns the values for the given keys. Charm KV has no batch
// read, so the keys are fetched one by one under a single lock hold.
func (c *Charm) GetMany(keys []string) (map[string][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values := make(map[string][]byte, len(keys))
	for _, key := range keys {
		value, err := c.kv.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		values[key] = value
	}
	return values, nil
}

// Clear wipes local data and rebuilds from Charm Cloud.
func (c *Charm) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Close closes the KV database connection.
func (c *Charm) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

func (c *Charm) checkWritable() error {
	if c.kv.IsReadOnly() {
		return fmt.Errorf("cannot write: database is locked by another process")
	}
	return nil
}

func (c *Charm) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}
